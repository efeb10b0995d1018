package in

import (
	"context"

	"focusguard/internal/modules/reminder/dto"
)

// Usecase takes the current focus state from the caller; the blocking module
// owns it.
type Usecase interface {
	UpdateMinutes(ctx context.Context, minutes int, focusActive bool) error
	Rearm(ctx context.Context, focusActive bool) error
	HandleAlarm(ctx context.Context, focusActive bool) error
	Status(ctx context.Context) (dto.StatusOutput, error)
}
