package feedback

import "errors"

var (
	// ErrFeedbackNotFound возвращается, когда отзыв не найден
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrAlreadyLeft возвращается, когда пользователь уже оставил отзыв
	// для этой пары (аудитория, семестр)
	ErrAlreadyLeft = errors.New("feedback already left for this classroom and term")

	// ErrNoApprovedReservation возвращается, когда у пользователя нет
	// одобренной резервации этой аудитории в этом семестре
	ErrNoApprovedReservation = errors.New("no approved reservation for this classroom and term")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
