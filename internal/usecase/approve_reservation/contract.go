package approve_reservation

import (
	"context"
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetSiblings(ctx context.Context, filter domain.SiblingsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, note *string) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ClassroomRepository интерфейс репозитория аудиторий
type ClassroomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
}

// HolidayClient интерфейс клиента календаря государственных праздников
type HolidayClient interface {
	IsHoliday(ctx context.Context, date time.Time) bool
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
