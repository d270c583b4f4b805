package terms

import "errors"

var (
	// ErrTermNotFound возвращается, когда семестр не найден
	ErrTermNotFound = errors.New("term not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
