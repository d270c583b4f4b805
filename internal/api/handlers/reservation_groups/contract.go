package reservation_groups

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	ListGroups(ctx context.Context, userID int64) (*models.GroupListResponse, error)
	ListAllGroups(ctx context.Context) (*models.GroupListResponse, error)
	GetGroup(ctx context.Context, anchorID int64, userID int64, isAdmin bool) (*models.GroupDetailResponse, error)
	CancelGroup(ctx context.Context, anchorID int64, userID int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
