package models

import (
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// Request модели

// SubmitFeedbackRequest запрос на создание отзыва
type SubmitFeedbackRequest struct {
	UserID      int64  `json:"userId"`
	ClassroomID int64  `json:"classroomId"`
	TermID      *int64 `json:"termId,omitempty"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// EditFeedbackRequest запрос на редактирование своего отзыва
type EditFeedbackRequest struct {
	UserID  int64  `json:"userId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListFeedbackRequest запрос на админский список отзывов
type ListFeedbackRequest struct {
	Rating    *int       `json:"rating,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Search    *string    `json:"search,omitempty"`
	Page      int        `json:"page"`
	PageSize  int        `json:"pageSize"`
}

// Response модели

// FeedbackResponse отзыв в ответе API
type FeedbackResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	ClassroomID int64  `json:"classroomId"`
	TermID      *int64 `json:"termId,omitempty"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	CreatedAt   string `json:"createdAt"`
	IsRead      bool   `json:"isRead"`
}

// FeedbackListResponse постраничный список отзывов
type FeedbackListResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"pageSize"`
}

// FromDomainFeedback конвертирует domain модель в response
func FromDomainFeedback(f *domain.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:          f.ID,
		UserID:      f.UserID,
		ClassroomID: f.ClassroomID,
		TermID:      f.TermID,
		Rating:      f.Rating,
		Comment:     f.Comment,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
		IsRead:      f.IsRead,
	}
}

// FromDomainFeedbackList конвертирует список domain моделей в response
func FromDomainFeedbackList(feedbacks []*domain.Feedback, total, page, pageSize int) *FeedbackListResponse {
	result := make([]FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		result = append(result, *FromDomainFeedback(f))
	}
	return &FeedbackListResponse{
		Feedbacks: result,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListFeedbackRequest) ToDomainFilter() domain.FeedbackFilter {
	return domain.FeedbackFilter{
		Rating:    r.Rating,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Search:    r.Search,
		Page:      r.Page,
		PageSize:  r.PageSize,
	}
}
