package in

import (
	"context"

	sessiondto "focusguard/internal/modules/session/dto"
	sessionin "focusguard/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, config sessiondto.SessionConfig) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Config: config})
}

func (h CLIHandler) End(ctx context.Context) (sessiondto.EndOutput, error) {
	return h.usecase.End(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Defaults(ctx context.Context) (sessiondto.SessionConfig, error) {
	return h.usecase.Defaults(ctx)
}

func (h CLIHandler) UpdateDefaults(ctx context.Context, config sessiondto.SessionConfig) (sessiondto.SessionConfig, error) {
	return h.usecase.UpdateDefaults(ctx, config)
}
