package in

import (
	"context"

	"focusguard/internal/modules/blocking/dto"
)

type Usecase interface {
	SetBlocking(ctx context.Context, active bool) (dto.StatusOutput, error)
	Toggle(ctx context.Context) (dto.StatusOutput, error)
	UpdateBlockList(ctx context.Context, blockList []string) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Reconcile(ctx context.Context) (dto.ReconcileOutput, error)
	ListRules(ctx context.Context) ([]dto.RuleOutput, error)
}
