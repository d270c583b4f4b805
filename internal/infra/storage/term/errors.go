package term

import "errors"

var (
	// ErrTermNotFound возвращается, когда семестр не найден
	ErrTermNotFound = errors.New("term.repository: term not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("term.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("term.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("term.repository: failed to scan row")
)
