package feedbacks

import (
	"context"

	"github.com/m04kA/UCR-ReservationService/internal/service/feedback/models"
)

type FeedbackService interface {
	Submit(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.FeedbackResponse, error)
	Edit(ctx context.Context, id int64, req *models.EditFeedbackRequest) (*models.FeedbackResponse, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.FeedbackResponse, error)
	List(ctx context.Context, req *models.ListFeedbackRequest) (*models.FeedbackListResponse, error)
	MarkRead(ctx context.Context, id int64, isRead bool) error
	Delete(ctx context.Context, id int64, userID int64, isAdmin bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
