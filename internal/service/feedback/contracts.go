package feedback

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// FeedbackRepository интерфейс репозитория отзывов
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)
	Exists(ctx context.Context, userID, classroomID int64, termID *int64) (bool, error)
	GetByUser(ctx context.Context, userID int64) ([]*domain.Feedback, error)
	GetWithFilter(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, int, error)
	Update(ctx context.Context, id int64, rating int, comment string) error
	MarkRead(ctx context.Context, id int64, isRead bool) error
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория резерваций.
// Отзыв допустим только при наличии одобренной резервации
type ReservationRepository interface {
	HasApprovedForClassroomTerm(ctx context.Context, userID, classroomID int64, termID *int64) (bool, error)
}

// MailerClient интерфейс SMTP клиента
type MailerClient interface {
	Send(to, subject, htmlBody string) error
}

// ClassroomRepository интерфейс репозитория аудиторий
type ClassroomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Classroom, error)
}

// AuditRecorder интерфейс журнала бизнес-операций
type AuditRecorder interface {
	Record(ctx context.Context, actorID string, operation string, level domain.AuditLevel, details *string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
