package approve_group

import (
	"context"

	approveGroup "github.com/m04kA/UCR-ReservationService/internal/usecase/approve_group"
)

type ApproveGroupUseCase interface {
	Execute(ctx context.Context, req *approveGroup.Request) (*approveGroup.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
