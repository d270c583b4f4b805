package approve_reservation

import (
	"github.com/m04kA/UCR-ReservationService/internal/domain"
	approveReservation "github.com/m04kA/UCR-ReservationService/internal/usecase/approve_reservation"
)

// ApproveReservationRequest HTTP request model
type ApproveReservationRequest struct {
	AdminNote *string `json:"adminNote,omitempty"`
}

// ApproveReservationResponse HTTP response model
type ApproveReservationResponse struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	AdminNote     *string `json:"adminNote,omitempty"`
	RefusalReason string  `json:"refusalReason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveReservation.Response) *ApproveReservationResponse {
	r := resp.Reservation
	return &ApproveReservationResponse{
		ID:            r.ID,
		Date:          r.StartTime.Format(domain.DateFormat),
		StartTime:     r.StartTime.Format(domain.TimeFormat),
		EndTime:       r.EndTime.Format(domain.TimeFormat),
		Status:        string(r.Status),
		AdminNote:     r.AdminNote,
		RefusalReason: resp.RefusalReason,
	}
}
