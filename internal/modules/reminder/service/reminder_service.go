package service

import (
	"context"
	"fmt"

	"focusguard/internal/modules/reminder/domain"
	reminderout "focusguard/internal/modules/reminder/port/out"
	"focusguard/internal/platform/alarm"
)

type ReminderService struct {
	alarms reminderout.Alarms
}

func NewReminderService(alarms reminderout.Alarms) *ReminderService {
	return &ReminderService{alarms: alarms}
}

// Rearm clears the reminder unconditionally, then arms a one-shot alarm when
// the reminder should run. It reports whether an alarm was armed.
func (s *ReminderService) Rearm(ctx context.Context, focusActive bool, minutes int) (bool, error) {
	if _, err := s.alarms.Clear(ctx, domain.AlarmName); err != nil {
		return false, fmt.Errorf("clear reminder: %w", err)
	}
	if !domain.ShouldArm(focusActive, minutes) {
		return false, nil
	}
	if err := s.alarms.Create(ctx, domain.AlarmName, alarm.CreateInfo{DelayMinutes: minutes}); err != nil {
		return false, fmt.Errorf("arm reminder: %w", err)
	}
	return true, nil
}

func (s *ReminderService) Pending(ctx context.Context) (alarm.Alarm, bool, error) {
	return s.alarms.Get(ctx, domain.AlarmName)
}
