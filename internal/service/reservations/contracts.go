package reservations

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error)
	GetByUserWithFilter(ctx context.Context, filter domain.UserReservationsFilter) ([]*domain.Reservation, int, error)
	GetAll(ctx context.Context) ([]*domain.Reservation, error)
	GetGroupMembers(ctx context.Context, anchor *domain.Reservation, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, note *string) error
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ClassroomRepository интерфейс репозитория аудиторий
type ClassroomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
}

// MailerClient интерфейс SMTP клиента
type MailerClient interface {
	Send(to, subject, htmlBody string) error
}

// AuditRecorder интерфейс журнала бизнес-операций
type AuditRecorder interface {
	Record(ctx context.Context, actorID string, operation string, level domain.AuditLevel, details *string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
