package in

import (
	"context"

	"focusguard/internal/modules/reminder/dto"
	reminderin "focusguard/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
