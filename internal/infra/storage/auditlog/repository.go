package auditlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/UCR-ReservationService/pkg/txmanager"
)

const table = "audit_logs"

var columns = []string{"id", "user_id", "operation", "details", "level", "is_error", "created_at"}

// Repository репозиторий журнала аудита
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала аудита
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись аудита
func (r *Repository) Create(ctx context.Context, e *domain.AuditEntry) (*domain.AuditEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("user_id", "operation", "details", "level", "is_error").
		Values(e.UserID, e.Operation, e.Details, e.Level, e.IsError).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	e.Timestamp = createdAt.Time

	return e, nil
}

// GetWithFilter получает записи аудита с фильтрацией по пользователю,
// уровню, периоду и подстроке операции или деталей, с пагинацией
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.UserID != nil {
		where = append(where, squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Level != nil {
		where = append(where, squirrel.Eq{"level": *filter.Level})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"created_at": *filter.EndDate})
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"operation": pattern},
			squirrel.ILike{"details": pattern},
		})
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

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		var e domain.AuditEntry
		var createdAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.UserID, &e.Operation, &e.Details, &e.Level, &e.IsError, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("%w: GetWithFilter - scan row: %v", ErrScanRow, err)
		}
		e.Timestamp = createdAt.Time
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - rows error: %v", ErrScanRow, err)
	}

	return entries, total, nil
}
