package submit_reservation

import (
	"fmt"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ClassroomID <= 0 {
		return fmt.Errorf("%w: classroomID must be positive", ErrInvalidInput)
	}

	if req.TermID != nil && *req.TermID <= 0 {
		return fmt.Errorf("%w: termID must be positive", ErrInvalidInput)
	}

	if req.Weekday < domain.MinWeekday || req.Weekday > domain.MaxWeekday {
		return fmt.Errorf("%w: weekday must be between %d and %d", ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
	}

	if req.RangeStart.IsZero() || req.RangeEnd.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}

	if req.RangeEnd.Before(req.RangeStart) {
		return fmt.Errorf("%w: rangeEnd must not precede rangeStart", ErrInvalidInput)
	}

	if req.DailyStart.IsZero() || req.DailyEnd.IsZero() {
		return fmt.Errorf("%w: daily time window is required", ErrInvalidInput)
	}

	if err := req.DailyStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid dailyStart format: %v", ErrInvalidInput, err)
	}

	if err := req.DailyEnd.Validate(); err != nil {
		return fmt.Errorf("%w: invalid dailyEnd format: %v", ErrInvalidInput, err)
	}

	// Инвертированное окно (конец не позже начала) отклоняется здесь:
	// раскрытие расписания такой запрос до проверок не доводит
	if !req.DailyStart.IsBefore(req.DailyEnd) {
		return fmt.Errorf("%w: dailyStart must be before dailyEnd", ErrInvalidInput)
	}

	return nil
}
