package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/UCR-ReservationService/pkg/txmanager"
)

const table = "feedbacks"

var columns = []string{"id", "user_id", "classroom_id", "term_id", "rating", "comment", "created_at", "is_read"}

// Repository репозиторий отзывов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв
func (r *Repository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("user_id", "classroom_id", "term_id", "rating", "comment", "is_read").
		Values(f.UserID, f.ClassroomID, f.TermID, f.Rating, f.Comment, f.IsRead).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	f.CreatedAt = createdAt.Time

	return f, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.Feedback
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&f.ID, &f.UserID, &f.ClassroomID, &f.TermID, &f.Rating, &f.Comment, &createdAt, &f.IsRead)
	if err == sql.ErrNoRows {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan feedback: %v", ErrScanRow, err)
	}
	f.CreatedAt = createdAt.Time

	return &f, nil
}

// Exists проверяет, оставлял ли пользователь отзыв для пары (класс, семестр).
// Инвариант единственности отзыва опирается на эту проверку
func (r *Repository) Exists(ctx context.Context, userID, classroomID int64, termID *int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{
		squirrel.Eq{"user_id": userID},
		squirrel.Eq{"classroom_id": classroomID},
	}
	if termID != nil {
		where = append(where, squirrel.Eq{"term_id": *termID})
	} else {
		where = append(where, squirrel.Eq{"term_id": nil})
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: Exists - execute count: %v", ErrExecQuery, err)
	}

	return count > 0, nil
}

// GetByUser получает отзывы пользователя, свежие первыми
func (r *Repository) GetByUser(ctx context.Context, userID int64) ([]*domain.Feedback, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanFeedbacks(rows)
}

// GetWithFilter получает отзывы с фильтрацией по рейтингу, периоду и
// подстроке комментария, с пагинацией. Возвращает страницу и общее число
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.Rating != nil {
		where = append(where, squirrel.Eq{"rating": *filter.Rating})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"created_at": *filter.EndDate})
	}
	if filter.Search != nil {
		where = append(where, squirrel.ILike{"comment": "%" + *filter.Search + "%"})
	}
	if len(where) == 0 {
		where = append(where, squirrel.Expr("TRUE"))
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - execute count: %v", ErrExecQuery, err)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	feedbacks, err := scanFeedbacks(rows)
	if err != nil {
		return nil, 0, err
	}

	return feedbacks, total, nil
}

// Update обновляет рейтинг и комментарий отзыва; дата создания не меняется
func (r *Repository) Update(ctx context.Context, id int64, rating int, comment string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("rating", rating).
		Set("comment", comment).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}

// MarkRead помечает отзыв прочитанным или непрочитанным
func (r *Repository) MarkRead(ctx context.Context, id int64, isRead bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_read", isRead).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}

// Delete удаляет отзыв
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
		return ErrFeedbackNotFound
	}

	return nil
}

func scanFeedbacks(rows *sql.Rows) ([]*domain.Feedback, error) {
	feedbacks := make([]*domain.Feedback, 0)

	for rows.Next() {
		var f domain.Feedback
		var createdAt sql.NullTime
		if err := rows.Scan(&f.ID, &f.UserID, &f.ClassroomID, &f.TermID, &f.Rating, &f.Comment, &createdAt, &f.IsRead); err != nil {
			return nil, fmt.Errorf("%w: scanFeedbacks - scan row: %v", ErrScanRow, err)
		}
		f.CreatedAt = createdAt.Time
		feedbacks = append(feedbacks, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanFeedbacks - rows error: %v", ErrScanRow, err)
	}

	return feedbacks, nil
}
