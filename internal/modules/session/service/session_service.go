package service

import (
	"context"
	"fmt"
	"time"

	"focusguard/internal/modules/session/domain"
	sessionout "focusguard/internal/modules/session/port/out"
	"focusguard/internal/platform/alarm"
	"focusguard/internal/platform/clock"
)

type SessionService struct {
	clock  clock.Clock
	alarms sessionout.Alarms
}

func NewSessionService(clock clock.Clock, alarms sessionout.Alarms) *SessionService {
	return &SessionService{clock: clock, alarms: alarms}
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}

func (s *SessionService) NewSession(settings domain.Settings, priorFocusActive bool) (domain.WorkSession, error) {
	if err := settings.Validate(); err != nil {
		return domain.WorkSession{}, err
	}
	return domain.New(settings, s.clock.Now(), priorFocusActive), nil
}

// ScheduleAlarms clears all four session alarms before arming any, then arms
// those that apply to an active session. The end alarm uses the time left
// until EndTime, so recovery and fresh starts share this path.
func (s *SessionService) ScheduleAlarms(ctx context.Context, session domain.WorkSession) error {
	if err := s.ClearAlarms(ctx); err != nil {
		return err
	}
	if !session.IsActive {
		return nil
	}

	remaining := domain.RemainingMinutes(session.EndTime, s.clock.Now())
	if err := s.alarms.Create(ctx, domain.AlarmSessionEnd, alarm.CreateInfo{DelayMinutes: remaining}); err != nil {
		return fmt.Errorf("arm %s: %w", domain.AlarmSessionEnd, err)
	}
	if session.EyeBreakEnabled {
		if err := s.arm(ctx, domain.AlarmEyeBreak, domain.EyeBreakIntervalMinutes); err != nil {
			return err
		}
	}
	if session.WaterEnabled() {
		if err := s.arm(ctx, domain.AlarmWater, session.WaterReminderInterval); err != nil {
			return err
		}
	}
	if session.MovementEnabled() {
		if err := s.arm(ctx, domain.AlarmMovement, session.MovementReminderInterval); err != nil {
			return err
		}
	}
	return nil
}

// RearmEnd re-arms only the end alarm, for an end alarm delivered early.
func (s *SessionService) RearmEnd(ctx context.Context, session domain.WorkSession) (int, error) {
	remaining := domain.RemainingMinutes(session.EndTime, s.clock.Now())
	if err := s.alarms.Create(ctx, domain.AlarmSessionEnd, alarm.CreateInfo{DelayMinutes: remaining}); err != nil {
		return 0, fmt.Errorf("rearm %s: %w", domain.AlarmSessionEnd, err)
	}
	return remaining, nil
}

func (s *SessionService) ClearAlarms(ctx context.Context) error {
	for _, name := range domain.Alarms {
		if _, err := s.alarms.Clear(ctx, name); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return nil
}

func (s *SessionService) arm(ctx context.Context, name string, everyMinutes int) error {
	if err := s.alarms.Create(ctx, name, alarm.CreateInfo{PeriodMinutes: everyMinutes}); err != nil {
		return fmt.Errorf("arm %s: %w", name, err)
	}
	return nil
}
