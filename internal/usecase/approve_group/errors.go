package approve_group

import "errors"

var (
	// ErrGroupNotFound возвращается, когда якорная резервация не найдена
	ErrGroupNotFound = errors.New("approve_group: reservation group not found")

	// ErrNoPendingMembers возвращается, когда в группе нет резерваций,
	// ожидающих решения
	ErrNoPendingMembers = errors.New("approve_group: no pending reservations in group")

	// ErrCannotApprove возвращается, когда хотя бы одна дата группы не
	// прошла повторную валидацию. Группа одобряется только целиком:
	// при отказе ни один участник не меняет статус
	ErrCannotApprove = errors.New("approve_group: cannot approve reservation group")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_group: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_group: internal error")
)
