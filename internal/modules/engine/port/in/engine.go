package in

import (
	"context"

	"focusguard/internal/modules/engine/dto"
)

// Usecase is the single entry point for UI messages and fired alarms.
type Usecase interface {
	Handle(ctx context.Context, msg dto.Message) dto.Response
	HandleAlarm(ctx context.Context, name string)
	Boot(ctx context.Context) (dto.BootOutput, error)
}
