package in

import (
	"context"

	"focusguard/internal/modules/blocking/dto"
	blockingin "focusguard/internal/modules/blocking/port/in"
)

type CLIHandler struct {
	usecase blockingin.Usecase
}

func NewCLIHandler(usecase blockingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Rules(ctx context.Context) ([]dto.RuleOutput, error) {
	return h.usecase.ListRules(ctx)
}

func (h CLIHandler) Reconcile(ctx context.Context) (dto.ReconcileOutput, error) {
	return h.usecase.Reconcile(ctx)
}
