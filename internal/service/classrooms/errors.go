package classrooms

import "errors"

var (
	// ErrClassroomNotFound возвращается, когда аудитория не найдена
	ErrClassroomNotFound = errors.New("classroom not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
