package feedbacks

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/internal/service/feedback/models"
)

// SubmitFeedbackRequest HTTP request model
type SubmitFeedbackRequest struct {
	ClassroomID int64  `json:"classroomId"`
	TermID      *int64 `json:"termId,omitempty"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// EditFeedbackRequest HTTP request model
type EditFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// MarkReadRequest HTTP request model
type MarkReadRequest struct {
	IsRead bool `json:"isRead"`
}

// parseListQuery собирает админский фильтр отзывов из query-параметров
func parseListQuery(r *http.Request) (*models.ListFeedbackRequest, error) {
	q := r.URL.Query()

	req := &models.ListFeedbackRequest{
		Page:     1,
		PageSize: domain.FeedbackPageSize,
	}

	if v := q.Get("rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.Rating = &rating
	}
	if v := q.Get("startDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &d
	}
	if v := q.Get("endDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &d
	}
	if v := q.Get("search"); v != "" {
		req.Search = &v
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.Page = page
	}
	if v := q.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.PageSize = pageSize
	}

	return req, nil
}
