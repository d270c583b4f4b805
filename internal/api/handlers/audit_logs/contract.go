package audit_logs

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
