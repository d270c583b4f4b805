package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается при попытке отменить резервацию,
	// по которой уже принято решение
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrAlreadyDecided возвращается при попытке повторного решения по
	// резервации в терминальном статусе
	ErrAlreadyDecided = errors.New("reservation already decided")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
