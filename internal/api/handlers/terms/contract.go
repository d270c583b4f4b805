package terms

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/service/terms/models"
)

type TermsService interface {
	Create(ctx context.Context, req *models.CreateTermRequest) (*models.TermResponse, error)
	GetByID(ctx context.Context, id int64) (*models.TermResponse, error)
	List(ctx context.Context) (*models.TermListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateTermRequest) (*models.TermResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
