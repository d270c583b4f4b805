package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/UCR-ReservationService/pkg/txmanager"
)

const table = "reservations"

var columns = []string{
	"id",
	"user_id",
	"classroom_id",
	"term_id",
	"weekday",
	"range_start",
	"range_end",
	"start_time",
	"end_time",
	"status",
	"admin_note",
	"is_holiday",
	"conflict_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий резерваций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет пакет экземпляров резервации одной заявки.
// Вызывается внутри сериализуемой транзакции пайплайна подачи заявки,
// чтобы весь пакет попал в БД атомарно
func (r *Repository) CreateBatch(ctx context.Context, instances []*domain.Reservation) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	for _, inst := range instances {
		query, args, err := psqlbuilder.Insert(table).
			Columns(
				"user_id",
				"classroom_id",
				"term_id",
				"weekday",
				"range_start",
				"range_end",
				"start_time",
				"end_time",
				"status",
				"admin_note",
				"is_holiday",
				"conflict_reason",
			).
			Values(
				inst.UserID,
				inst.ClassroomID,
				inst.TermID,
				inst.Weekday,
				inst.RangeStart,
				inst.RangeEnd,
				inst.StartTime,
				inst.EndTime,
				inst.Status,
				inst.AdminNote,
				inst.IsHoliday,
				inst.ConflictReason,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&inst.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
		}
		inst.CreatedAt = createdAt.Time
		inst.UpdatedAt = updatedAt.Time
	}

	return instances, nil
}

// GetByID получает экземпляр резервации по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByUserWithFilter получает резервации пользователя с фильтрацией по
// статусу и диапазону дат, с пагинацией. Возвращает страницу и общее
// количество записей под фильтром
func (r *Repository) GetByUserWithFilter(ctx context.Context, filter domain.UserReservationsFilter) ([]*domain.Reservation, int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"user_id": filter.UserID}}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"range_start": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"range_end": *filter.EndDate})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - execute count: %v", ErrExecQuery, err)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("range_start DESC, start_time ASC, id ASC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		selectBuilder = selectBuilder.
			Offset(uint64((page - 1) * filter.PageSize)).
			Limit(uint64(filter.PageSize))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := scanReservations(rows)
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// GetByUser получает все резервации пользователя (для построения групп)
func (r *Repository) GetByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetAll получает все резервации (админский обзор, отчет о конфликтах)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("range_start DESC, start_time ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetSiblings получает резервации, конкурирующие за тот же слот
// (класс + семестр + день недели), опционально суженные по статусам.
// Внутри транзакции блокирует строки (FOR UPDATE) - снапшот используется
// для проверки конфликтов перед записью
func (r *Repository) GetSiblings(ctx context.Context, filter domain.SiblingsFilter) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{
		squirrel.Eq{"classroom_id": filter.ClassroomID},
		squirrel.Eq{"weekday": filter.Weekday},
	}
	if filter.TermID != nil {
		where = append(where, squirrel.Eq{"term_id": *filter.TermID})
	} else {
		where = append(where, squirrel.Eq{"term_id": nil})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, squirrel.Eq{"status": statuses})
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("start_time ASC, id ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSiblings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSiblings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetGroupMembers получает участников группы по якорной резервации:
// совпадение по всем шести полям ключа группы, опционально по статусу
func (r *Repository) GetGroupMembers(ctx context.Context, anchor *domain.Reservation, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{
		squirrel.Eq{"user_id": anchor.UserID},
		squirrel.Eq{"classroom_id": anchor.ClassroomID},
		squirrel.Eq{"weekday": anchor.Weekday},
		squirrel.Eq{"range_start": anchor.RangeStart},
		squirrel.Eq{"range_end": anchor.RangeEnd},
	}
	if anchor.TermID != nil {
		where = append(where, squirrel.Eq{"term_id": *anchor.TermID})
	} else {
		where = append(where, squirrel.Eq{"term_id": nil})
	}
	if status != nil {
		where = append(where, squirrel.Eq{"status": *status})
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("start_time ASC, id ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupMembers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetGroupMembers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// HasApprovedForClassroomTerm проверяет, есть ли у пользователя одобренная
// резервация для пары (класс, семестр). Используется правилом отзывов
func (r *Repository) HasApprovedForClassroomTerm(ctx context.Context, userID, classroomID int64, termID *int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{
		squirrel.Eq{"user_id": userID},
		squirrel.Eq{"classroom_id": classroomID},
		squirrel.Eq{"status": domain.StatusApproved},
	}
	if termID != nil {
		where = append(where, squirrel.Eq{"term_id": *termID})
	} else {
		where = append(where, squirrel.Eq{"term_id": nil})
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasApprovedForClassroomTerm - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasApprovedForClassroomTerm - execute count: %v", ErrExecQuery, err)
	}

	return count > 0, nil
}

// UpdateStatus обновляет статус экземпляра, опционально с заметкой админа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, note *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	if note != nil {
		updateBuilder = updateBuilder.Set("admin_note", *note)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateStatusBatch переводит набор экземпляров в один статус.
// Вызывается из групповых операций внутри транзакции
func (r *Repository) UpdateStatusBatch(ctx context.Context, ids []int64, status domain.ReservationStatus) error {
	if len(ids) == 0 {
		return nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusBatch - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateStatusBatch - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete физически удаляет экземпляр резервации.
// Допустимо только для pending (отмена пользователем) - одобренные и
// отклоненные экземпляры остаются как история; это правило контролирует
// сервисный слой
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// DeleteBatch удаляет набор экземпляров (групповая отмена)
func (r *Repository) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBatch - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBatch - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.ClassroomID,
		&res.TermID,
		&res.Weekday,
		&res.RangeStart,
		&res.RangeEnd,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.AdminNote,
		&res.IsHoliday,
		&res.ConflictReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
