package alarm

import (
	"context"
	"time"
)

// Alarm is a named, minute-resolution timer. A zero PeriodMinutes marks a
// one-shot alarm.
type Alarm struct {
	Name          string
	ScheduledAt   time.Time
	PeriodMinutes int
}

func (a Alarm) Repeating() bool {
	return a.PeriodMinutes > 0
}

// CreateInfo describes when an alarm fires. Creating an alarm replaces any
// alarm with the same name. A repeating alarm without a delay first fires
// after one period.
type CreateInfo struct {
	DelayMinutes  int
	PeriodMinutes int
}

type Service interface {
	Create(ctx context.Context, name string, info CreateInfo) error
	Clear(ctx context.Context, name string) (bool, error)
	Get(ctx context.Context, name string) (Alarm, bool, error)
	All(ctx context.Context) ([]Alarm, error)
}
