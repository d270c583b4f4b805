package audit

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// AuditRepository интерфейс репозитория журнала аудита
type AuditRepository interface {
	Create(ctx context.Context, e *domain.AuditEntry) (*domain.AuditEntry, error)
	GetWithFilter(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
