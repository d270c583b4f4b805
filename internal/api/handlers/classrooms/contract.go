package classrooms

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/service/classrooms/models"
)

type ClassroomsService interface {
	Create(ctx context.Context, req *models.CreateClassroomRequest) (*models.ClassroomResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ClassroomResponse, error)
	List(ctx context.Context, activeOnly bool) (*models.ClassroomListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateClassroomRequest) (*models.ClassroomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
