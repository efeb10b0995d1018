package alarm

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"focusguard/internal/platform/clock"
	"focusguard/internal/platform/logging"
)

// Handler receives every alarm occurrence the pump delivers.
type Handler func(ctx context.Context, alarm Alarm)

type dueSource interface {
	Due(ctx context.Context, now time.Time) ([]Alarm, error)
}

// Pump polls the alarm store and delivers due alarms by name.
type Pump struct {
	source dueSource
	clock  clock.Clock
	tick   time.Duration
	logger hclog.Logger
}

func NewPump(source dueSource, clk clock.Clock, tick time.Duration, logger hclog.Logger) *Pump {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if tick <= 0 {
		tick = 15 * time.Second
	}
	return &Pump{source: source, clock: clk, tick: tick, logger: logging.OrDiscard(logger)}
}

// Run delivers due alarms immediately and then on every tick until ctx is done.
func (p *Pump) Run(ctx context.Context, handler Handler) error {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		if _, err := p.Fire(ctx, handler); err != nil {
			p.logger.Error("deliver due alarms", "error", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Fire delivers every alarm due at the current time and returns how many fired.
func (p *Pump) Fire(ctx context.Context, handler Handler) (int, error) {
	due, err := p.source.Due(ctx, p.clock.Now())
	if err != nil {
		return 0, err
	}
	for _, alarm := range due {
		p.logger.Debug("alarm fired", "name", alarm.Name, "scheduled_at", alarm.ScheduledAt)
		handler(ctx, alarm)
	}
	return len(due), nil
}
