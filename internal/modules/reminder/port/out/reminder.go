package out

import (
	"context"

	"focusguard/internal/platform/alarm"
)

type IntervalStore interface {
	LoadMinutes(ctx context.Context) (int, error)
	SaveMinutes(ctx context.Context, minutes int) error
}

type Alarms interface {
	Create(ctx context.Context, name string, info alarm.CreateInfo) error
	Clear(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) (alarm.Alarm, bool, error)
}
