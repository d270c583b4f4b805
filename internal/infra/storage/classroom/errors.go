package classroom

import "errors"

var (
	// ErrClassroomNotFound возвращается, когда аудитория не найдена
	ErrClassroomNotFound = errors.New("classroom.repository: classroom not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("classroom.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("classroom.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("classroom.repository: failed to scan row")
)
