package submit_reservation

import (
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	submitReservation "github.com/m04kA/UCR-ReservationService/internal/usecase/submit_reservation"
	"github.com/m04kA/UCR-ReservationService/pkg/types"
)

// SubmitReservationRequest HTTP request model
type SubmitReservationRequest struct {
	ClassroomID int64  `json:"classroomId"`
	TermID      *int64 `json:"termId,omitempty"`
	Weekday     int    `json:"weekday"`    // 1=Monday .. 7=Sunday
	RangeStart  string `json:"rangeStart"` // "2025-09-01"
	RangeEnd    string `json:"rangeEnd"`   // "2025-12-19"
	DailyStart  string `json:"dailyStart"` // "10:00"
	DailyEnd    string `json:"dailyEnd"`   // "12:00"
}

// ReservationResponse одна созданная резервация
type ReservationResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// SubmitReservationResponse HTTP response model
type SubmitReservationResponse struct {
	Created          []ReservationResponse `json:"created"`
	SkippedHolidays  []string              `json:"skippedHolidays"`
	SkippedConflicts []string              `json:"skippedConflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitReservationRequest) ToUseCaseRequest(userID int64) (*submitReservation.Request, error) {
	rangeStart, err := time.Parse(domain.DateFormat, r.RangeStart)
	if err != nil {
		return nil, err
	}
	rangeEnd, err := time.Parse(domain.DateFormat, r.RangeEnd)
	if err != nil {
		return nil, err
	}

	dailyStart, err := types.NewTimeStringFromString(r.DailyStart)
	if err != nil {
		return nil, err
	}
	dailyEnd, err := types.NewTimeStringFromString(r.DailyEnd)
	if err != nil {
		return nil, err
	}

	return &submitReservation.Request{
		UserID:      userID,
		ClassroomID: r.ClassroomID,
		TermID:      r.TermID,
		Weekday:     r.Weekday,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		DailyStart:  dailyStart,
		DailyEnd:    dailyEnd,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitReservation.Response) *SubmitReservationResponse {
	created := make([]ReservationResponse, 0, len(resp.Created))
	for _, r := range resp.Created {
		created = append(created, ReservationResponse{
			ID:        r.ID,
			Date:      r.StartTime.Format(domain.DateFormat),
			StartTime: r.StartTime.Format(domain.TimeFormat),
			EndTime:   r.EndTime.Format(domain.TimeFormat),
			Status:    string(r.Status),
		})
	}

	return &SubmitReservationResponse{
		Created:          created,
		SkippedHolidays:  formatDates(resp.SkippedHolidays),
		SkippedConflicts: formatDates(resp.SkippedConflicts),
	}
}

func formatDates(dates []time.Time) []string {
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, d.Format(domain.DateFormat))
	}
	return result
}
