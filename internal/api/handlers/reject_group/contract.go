package reject_group

import (
	"context"

	rejectGroup "github.com/m04kA/UCR-ReservationService/internal/usecase/reject_group"
)

type RejectGroupUseCase interface {
	Execute(ctx context.Context, req *rejectGroup.Request) (*rejectGroup.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
