package classroom

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/UCR-ReservationService/pkg/txmanager"
)

const table = "classrooms"

var columns = []string{"id", "name", "capacity", "description", "is_active"}

// Repository репозиторий аудиторий
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудиторий
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает аудиторию
func (r *Repository) Create(ctx context.Context, c *domain.Classroom) (*domain.Classroom, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "capacity", "description", "is_active").
		Values(c.Name, c.Capacity, c.Description, c.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// GetByID получает аудиторию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Classroom, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Classroom
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.Capacity, &c.Description, &c.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrClassroomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan classroom: %v", ErrScanRow, err)
	}

	return &c, nil
}

// GetAll получает все аудитории, отсортированные по имени
// activeOnly ограничивает выборку активными аудиториями - списки для
// новых заявок не должны содержать выведенные из эксплуатации классы
func (r *Repository) GetAll(ctx context.Context, activeOnly bool) ([]*domain.Classroom, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC")
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	classrooms := make([]*domain.Classroom, 0)
	for rows.Next() {
		var c domain.Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.Capacity, &c.Description, &c.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		classrooms = append(classrooms, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return classrooms, nil
}

// Update обновляет атрибуты аудитории
func (r *Repository) Update(ctx context.Context, c *domain.Classroom) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", c.Name).
		Set("capacity", c.Capacity).
		Set("description", c.Description).
		Set("is_active", c.IsActive).
		Where(squirrel.Eq{"id": c.ID}).
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
		return ErrClassroomNotFound
	}

	return nil
}

// Delete удаляет аудиторию
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
		return ErrClassroomNotFound
	}

	return nil
}
