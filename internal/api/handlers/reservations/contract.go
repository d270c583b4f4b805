package reservations

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.ReservationResponse, error)
	ListByUser(ctx context.Context, req *models.ListUserReservationsRequest) (*models.ReservationListResponse, error)
	CancelInstance(ctx context.Context, id int64, userID int64) error
	Reject(ctx context.Context, id int64, req *models.RejectReservationRequest) (*models.ReservationResponse, error)
	ConflictReport(ctx context.Context) (*models.ConflictReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
