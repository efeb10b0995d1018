package domain

import (
	"math"
	"time"
)

const (
	AlarmSessionEnd = "sessionEnd"
	AlarmEyeBreak   = "eyeBreakReminder"
	AlarmWater      = "waterReminder"
	AlarmMovement   = "movementReminder"

	EyeBreakIntervalMinutes = 20
)

// Alarms lists every alarm a work session owns.
var Alarms = []string{AlarmSessionEnd, AlarmEyeBreak, AlarmWater, AlarmMovement}

// WorkSession is the single current session. It stays stored after it ends so
// duplicate completions can be recognised through HistoryRecorded.
type WorkSession struct {
	IsActive                 bool       `json:"isActive"`
	StartTime                time.Time  `json:"startTime"`
	EndTime                  time.Time  `json:"endTime"`
	DurationMinutes          int        `json:"durationMinutes"`
	Intent                   string     `json:"intent"`
	EyeBreakEnabled          bool       `json:"eyeBreakEnabled"`
	WaterReminderEnabled     bool       `json:"waterReminderEnabled"`
	WaterReminderInterval    int        `json:"waterReminderInterval"`
	MovementReminderEnabled  bool       `json:"movementReminderEnabled"`
	MovementReminderInterval int        `json:"movementReminderInterval"`
	HistoryRecorded          bool       `json:"historyRecorded"`
	ActualEndTime            *time.Time `json:"actualEndTime,omitempty"`
	PriorFocusActive         bool       `json:"priorFocusActive"`
}

func New(settings Settings, now time.Time, priorFocusActive bool) WorkSession {
	return WorkSession{
		IsActive:                 true,
		StartTime:                now,
		EndTime:                  now.Add(time.Duration(settings.DurationMinutes) * time.Minute),
		DurationMinutes:          settings.DurationMinutes,
		Intent:                   settings.Intent,
		EyeBreakEnabled:          settings.EyeBreakEnabled,
		WaterReminderEnabled:     settings.WaterReminderEnabled,
		WaterReminderInterval:    settings.WaterReminderInterval,
		MovementReminderEnabled:  settings.MovementReminderEnabled,
		MovementReminderInterval: settings.MovementReminderInterval,
		PriorFocusActive:         priorFocusActive,
	}
}

func (s WorkSession) Expired(now time.Time) bool {
	return !s.EndTime.After(now)
}

// Running reports an active session whose end time is still ahead.
func (s WorkSession) Running(now time.Time) bool {
	return s.IsActive && !s.Expired(now)
}

// IntervalHonored reports whether a reminder interval fits inside the session.
func (s WorkSession) IntervalHonored(interval int) bool {
	return interval > 0 && interval <= s.DurationMinutes
}

func (s WorkSession) WaterEnabled() bool {
	return s.WaterReminderEnabled && s.IntervalHonored(s.WaterReminderInterval)
}

func (s WorkSession) MovementEnabled() bool {
	return s.MovementReminderEnabled && s.IntervalHonored(s.MovementReminderInterval)
}

// ReminderDue guards a wellness reminder alarm against stale deliveries.
func (s WorkSession) ReminderDue(alarm string, now time.Time) bool {
	if !s.Running(now) {
		return false
	}
	switch alarm {
	case AlarmEyeBreak:
		return s.EyeBreakEnabled
	case AlarmWater:
		return s.WaterEnabled()
	case AlarmMovement:
		return s.MovementEnabled()
	default:
		return false
	}
}

// Complete marks the session finished at now. It reports false, changing only
// IsActive, when the session was already recorded.
func (s WorkSession) Complete(now time.Time) (WorkSession, bool) {
	s.IsActive = false
	if s.HistoryRecorded {
		return s, false
	}
	ended := now
	s.ActualEndTime = &ended
	s.HistoryRecorded = true
	return s, true
}

// RemainingMinutes rounds the time left to whole minutes with a floor of one.
func RemainingMinutes(end, now time.Time) int {
	minutes := int(math.Round(end.Sub(now).Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}
