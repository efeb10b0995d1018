package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusguard/internal/modules/session/domain"
	"focusguard/internal/platform/alarm"
	"focusguard/internal/platform/clock"
	apperrors "focusguard/internal/platform/errors"
)

type recordingAlarms struct {
	ops     []string
	created map[string]alarm.CreateInfo
}

func (r *recordingAlarms) Create(_ context.Context, name string, info alarm.CreateInfo) error {
	r.ops = append(r.ops, "create:"+name)
	r.created[name] = info
	return nil
}

func (r *recordingAlarms) Clear(_ context.Context, name string) (bool, error) {
	r.ops = append(r.ops, "clear:"+name)
	delete(r.created, name)
	return true, nil
}

func TestScheduleAlarmsClearsBeforeArming(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	alarms := &recordingAlarms{created: map[string]alarm.CreateInfo{}}
	svc := NewSessionService(clock.Func(func() time.Time { return now }), alarms)

	session, err := svc.NewSession(domain.Settings{
		DurationMinutes:          40,
		EyeBreakEnabled:          true,
		WaterReminderEnabled:     true,
		WaterReminderInterval:    15,
		MovementReminderEnabled:  true,
		MovementReminderInterval: 45,
	}, false)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := svc.ScheduleAlarms(context.Background(), session); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	for i, name := range domain.Alarms {
		if alarms.ops[i] != "clear:"+name {
			t.Fatalf("expected every alarm cleared first, got %v", alarms.ops)
		}
	}
	if info := alarms.created[domain.AlarmSessionEnd]; info.DelayMinutes != 40 || info.PeriodMinutes != 0 {
		t.Fatalf("unexpected end alarm: %+v", info)
	}
	if info := alarms.created[domain.AlarmWater]; info.PeriodMinutes != 15 {
		t.Fatalf("unexpected water alarm: %+v", info)
	}
	if _, ok := alarms.created[domain.AlarmMovement]; ok {
		t.Fatal("movement interval beyond the duration must not be armed")
	}

	session.IsActive = false
	if err := svc.ScheduleAlarms(context.Background(), session); err != nil {
		t.Fatalf("schedule inactive: %v", err)
	}
	if len(alarms.created) != 0 {
		t.Fatalf("inactive session must leave no alarms, got %v", alarms.created)
	}
}

func TestNewSessionRejectsInvalidSettings(t *testing.T) {
	svc := NewSessionService(clock.SystemClock{}, &recordingAlarms{created: map[string]alarm.CreateInfo{}})
	if _, err := svc.NewSession(domain.Settings{DurationMinutes: 0}, false); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
