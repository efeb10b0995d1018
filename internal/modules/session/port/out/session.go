package out

import (
	"context"

	"focusguard/internal/modules/session/domain"
	"focusguard/internal/platform/alarm"
)

type SessionStore interface {
	LoadCurrent(ctx context.Context) (domain.WorkSession, bool, error)
	SaveCurrent(ctx context.Context, session domain.WorkSession) error
	LoadDefaults(ctx context.Context) (domain.Config, error)
	SaveDefaults(ctx context.Context, config domain.Config) error
}

type Alarms interface {
	Create(ctx context.Context, name string, info alarm.CreateInfo) error
	Clear(ctx context.Context, name string) (bool, error)
}
