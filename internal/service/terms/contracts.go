package terms

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// TermRepository интерфейс репозитория семестров
type TermRepository interface {
	Create(ctx context.Context, t *domain.Term) (*domain.Term, error)
	GetByID(ctx context.Context, id int64) (*domain.Term, error)
	GetAll(ctx context.Context) ([]*domain.Term, error)
	Update(ctx context.Context, t *domain.Term) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
