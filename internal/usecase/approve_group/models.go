package approve_group

import "time"

// Request модель запроса на одобрение группы
type Request struct {
	AnchorID int64 // ID любой резервации группы, обычно якорной
	AdminID  int64 // ID администратора, принимающего решение
}

// Response модель ответа об одобрении группы.
// При ErrCannotApprove списки дат объясняют, какие участники не прошли
// валидацию
type Response struct {
	Approved      int         // Сколько резерваций одобрено
	HolidayDates  []time.Time // Даты, оказавшиеся праздниками
	ConflictDates []time.Time // Даты с конфликтом против одобренных резерваций
}
