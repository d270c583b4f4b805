package submit_reservation

import "errors"

var (
	// ErrClassroomNotFound возвращается, когда аудитория не найдена
	ErrClassroomNotFound = errors.New("submit_reservation: classroom not found")

	// ErrClassroomInactive возвращается, когда аудитория выведена из эксплуатации
	ErrClassroomInactive = errors.New("submit_reservation: classroom is inactive")

	// ErrTermNotFound возвращается, когда семестр не найден
	ErrTermNotFound = errors.New("submit_reservation: term not found")

	// ErrOutsideTerm возвращается, когда диапазон дат выходит за рамки семестра
	ErrOutsideTerm = errors.New("submit_reservation: date range is outside the term")

	// ErrNoValidDays возвращается, когда ни одна дата не прошла проверки:
	// все совпавшие дни оказались праздниками или заняты.
	// Ответ при этом не nil - в нем списки пропущенных дат
	ErrNoValidDays = errors.New("submit_reservation: no valid reservation days found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_reservation: internal error")
)
