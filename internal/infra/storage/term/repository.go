package term

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/UCR-ReservationService/pkg/txmanager"
)

const table = "terms"

var columns = []string{"id", "name", "start_date", "end_date"}

// Repository репозиторий семестров
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория семестров
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает семестр
func (r *Repository) Create(ctx context.Context, t *domain.Term) (*domain.Term, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "start_date", "end_date").
		Values(t.Name, t.StartDate, t.EndDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// GetByID получает семестр по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Term, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Term
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate)
	if err == sql.ErrNoRows {
		return nil, ErrTermNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan term: %v", ErrScanRow, err)
	}

	return &t, nil
}

// GetAll получает все семестры, свежие первыми
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Term, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	terms := make([]*domain.Term, 0)
	for rows.Next() {
		var t domain.Term
		if err := rows.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		terms = append(terms, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return terms, nil
}

// Update обновляет семестр
func (r *Repository) Update(ctx context.Context, t *domain.Term) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", t.Name).
		Set("start_date", t.StartDate).
		Set("end_date", t.EndDate).
		Where(squirrel.Eq{"id": t.ID}).
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
		return ErrTermNotFound
	}

	return nil
}

// Delete удаляет семестр
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
		return ErrTermNotFound
	}

	return nil
}
