package in

import (
	"context"

	"focusguard/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	End(ctx context.Context) (dto.EndOutput, error)
	HandleAlarm(ctx context.Context, name string) error
	Recover(ctx context.Context) (dto.RecoverOutput, error)
	Status(ctx context.Context) (dto.SessionOutput, error)
	Defaults(ctx context.Context) (dto.SessionConfig, error)
	UpdateDefaults(ctx context.Context, config dto.SessionConfig) (dto.SessionConfig, error)
}
