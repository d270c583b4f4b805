package approve_group

import (
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	approveGroup "github.com/m04kA/UCR-ReservationService/internal/usecase/approve_group"
)

// ApproveGroupResponse HTTP response model
type ApproveGroupResponse struct {
	Approved      int      `json:"approved"`
	HolidayDates  []string `json:"holidayDates"`
	ConflictDates []string `json:"conflictDates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveGroup.Response) *ApproveGroupResponse {
	return &ApproveGroupResponse{
		Approved:      resp.Approved,
		HolidayDates:  formatDates(resp.HolidayDates),
		ConflictDates: formatDates(resp.ConflictDates),
	}
}

func formatDates(dates []time.Time) []string {
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, d.Format(domain.DateFormat))
	}
	return result
}
