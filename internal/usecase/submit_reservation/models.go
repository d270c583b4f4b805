package submit_reservation

import (
	"time"

	"github.com/m04kA/UCR-ReservationService/internal/domain"
	"github.com/m04kA/UCR-ReservationService/pkg/types"
)

// Request модель запроса на подачу повторяющейся заявки
type Request struct {
	UserID      int64            // ID преподавателя
	ClassroomID int64            // ID аудитории
	TermID      *int64           // ID семестра (опционально)
	Weekday     int              // День недели, 1=понедельник .. 7=воскресенье
	RangeStart  time.Time        // Начало диапазона дат (без времени)
	RangeEnd    time.Time        // Конец диапазона дат (без времени)
	DailyStart  types.TimeString // Время начала ежедневного окна (например, "10:00")
	DailyEnd    types.TimeString // Время конца ежедневного окна
}

// Response модель ответа: созданные резервации и пропущенные даты.
// Заполняется и при ErrNoValidDays - списки объясняют, почему ничего
// не создано
type Response struct {
	Created          []*domain.Reservation // Созданные резервации в статусе pending
	SkippedHolidays  []time.Time           // Даты, пропущенные из-за праздников
	SkippedConflicts []time.Time           // Даты, пропущенные из-за занятого слота
}
