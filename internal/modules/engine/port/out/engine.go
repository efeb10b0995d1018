package out

import (
	"context"

	"focusguard/internal/modules/engine/dto"
)

type IPCHandler interface {
	Handle(ctx context.Context, msg dto.Message) dto.Response
}

type IPCServer interface {
	Serve(ctx context.Context, socketPath string, handler IPCHandler) error
}

type IPCClient interface {
	Send(ctx context.Context, socketPath string, msg dto.Message) (dto.Response, error)
}
