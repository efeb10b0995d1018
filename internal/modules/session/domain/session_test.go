package domain_test

import (
	"errors"
	"testing"
	"time"

	"focusguard/internal/modules/session/domain"
	apperrors "focusguard/internal/platform/errors"
)

var start = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestConfigLayering(t *testing.T) {
	t.Parallel()
	defaults := domain.Config{DurationMinutes: intPtr(25), WaterReminderEnabled: boolPtr(true)}
	incoming := domain.Config{Intent: strPtr("essay"), WaterReminderEnabled: boolPtr(false)}

	settings := incoming.Over(defaults).Resolve()
	if settings.DurationMinutes != 25 || settings.Intent != "essay" || settings.WaterReminderEnabled {
		t.Fatalf("unexpected merge: %+v", settings)
	}
	if !settings.EyeBreakEnabled || settings.WaterReminderInterval != 30 || settings.MovementReminderInterval != 45 {
		t.Fatalf("built-in defaults not applied: %+v", settings)
	}
	if builtin := (domain.Config{}).Resolve(); builtin.DurationMinutes != 60 || !builtin.EyeBreakEnabled || builtin.MovementReminderEnabled {
		t.Fatalf("unexpected built-in settings: %+v", builtin)
	}
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()
	for _, duration := range []int{0, -5} {
		err := domain.Config{DurationMinutes: intPtr(duration)}.Resolve().Validate()
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("duration %d: expected invalid input, got %v", duration, err)
		}
	}
	if err := (domain.Config{WaterReminderInterval: intPtr(-1)}).Resolve().Validate(); err == nil {
		t.Fatalf("expected negative interval error")
	}
}

func TestNewSessionTimes(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.Settings{DurationMinutes: 45}, start, true)
	if !s.IsActive || !s.EndTime.Equal(start.Add(45*time.Minute)) || !s.PriorFocusActive || s.HistoryRecorded {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestIntervalsLongerThanSessionAreIgnored(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.Settings{
		DurationMinutes:          45,
		WaterReminderEnabled:     true,
		WaterReminderInterval:    60,
		MovementReminderEnabled:  true,
		MovementReminderInterval: 45,
	}, start, false)
	if s.WaterEnabled() {
		t.Fatalf("60 minute water interval must not fit a 45 minute session")
	}
	if !s.MovementEnabled() {
		t.Fatalf("45 minute movement interval fits a 45 minute session")
	}
	if s.IntervalHonored(0) {
		t.Fatalf("zero interval must not be honored")
	}
}

func TestReminderDueGuards(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.Settings{DurationMinutes: 30, EyeBreakEnabled: true}, start, false)
	if !s.ReminderDue(domain.AlarmEyeBreak, start.Add(20*time.Minute)) {
		t.Fatalf("eye break should be due mid-session")
	}
	if s.ReminderDue(domain.AlarmEyeBreak, start.Add(30*time.Minute)) {
		t.Fatalf("eye break must not fire once the end time passed")
	}
	if s.ReminderDue(domain.AlarmWater, start.Add(time.Minute)) {
		t.Fatalf("water disabled")
	}
	ended, _ := s.Complete(start.Add(5 * time.Minute))
	if ended.ReminderDue(domain.AlarmEyeBreak, start.Add(10*time.Minute)) {
		t.Fatalf("ended session must not fire reminders")
	}
}

func TestCompleteOnlyOnce(t *testing.T) {
	t.Parallel()
	s := domain.New(domain.Settings{DurationMinutes: 30}, start, false)
	first, fresh := s.Complete(start.Add(10 * time.Minute))
	if !fresh || first.IsActive || !first.HistoryRecorded || first.ActualEndTime == nil {
		t.Fatalf("unexpected first completion: %+v fresh=%v", first, fresh)
	}
	second, fresh := first.Complete(start.Add(20 * time.Minute))
	if fresh || !second.ActualEndTime.Equal(start.Add(10*time.Minute)) {
		t.Fatalf("second completion must not restamp: %+v fresh=%v", second, fresh)
	}
}

func TestRemainingMinutes(t *testing.T) {
	t.Parallel()
	if got := domain.RemainingMinutes(start.Add(30*time.Second), start); got != 1 {
		t.Fatalf("expected floor of 1, got %d", got)
	}
	if got := domain.RemainingMinutes(start.Add(-time.Minute), start); got != 1 {
		t.Fatalf("expected floor of 1 for past end, got %d", got)
	}
	if got := domain.RemainingMinutes(start.Add(29*time.Minute+40*time.Second), start); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
}
