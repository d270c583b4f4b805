package reject_group

import "errors"

var (
	// ErrGroupNotFound возвращается, когда якорная резервация не найдена
	ErrGroupNotFound = errors.New("reject_group: reservation group not found")

	// ErrNoPendingMembers возвращается, когда в группе нет резерваций,
	// ожидающих решения
	ErrNoPendingMembers = errors.New("reject_group: no pending reservations in group")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_group: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_group: internal error")
)
