package approve_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("approve_reservation: reservation not found")

	// ErrAlreadyDecided возвращается при попытке одобрить резервацию
	// в терминальном статусе
	ErrAlreadyDecided = errors.New("approve_reservation: reservation already decided")

	// ErrCannotApprove возвращается, когда повторная валидация перед
	// одобрением не прошла: дата оказалась праздником или слот уже занят
	// одобренной резервацией. Причина - в Response.RefusalReason
	ErrCannotApprove = errors.New("approve_reservation: cannot approve reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_reservation: internal error")
)
