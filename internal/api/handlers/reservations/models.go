package reservations

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/internal/service/reservations/models"
)

// RejectReservationRequest HTTP request model
type RejectReservationRequest struct {
	AdminNote *string `json:"adminNote,omitempty"`
}

// parseListQuery собирает фильтр списка из query-параметров
func parseListQuery(r *http.Request, userID int64) (*models.ListUserReservationsRequest, error) {
	q := r.URL.Query()

	req := &models.ListUserReservationsRequest{
		UserID:   userID,
		Page:     1,
		PageSize: domain.DefaultPageSize,
	}

	if v := q.Get("status"); v != "" {
		req.Status = &v
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
