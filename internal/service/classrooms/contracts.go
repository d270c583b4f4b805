package classrooms

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// ClassroomRepository интерфейс репозитория аудиторий
type ClassroomRepository interface {
	Create(ctx context.Context, c *domain.Classroom) (*domain.Classroom, error)
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*domain.Classroom, error)
	Update(ctx context.Context, c *domain.Classroom) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
