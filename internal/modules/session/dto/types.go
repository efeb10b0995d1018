package dto

import (
	"time"

	"focusguard/internal/modules/session/domain"
)

// Alarm names owned by the session module.
const (
	AlarmSessionEnd = domain.AlarmSessionEnd
	AlarmEyeBreak   = domain.AlarmEyeBreak
	AlarmWater      = domain.AlarmWater
	AlarmMovement   = domain.AlarmMovement
)

func OwnsAlarm(name string) bool {
	for _, alarm := range domain.Alarms {
		if alarm == name {
			return true
		}
	}
	return false
}

// SessionConfig is a partial configuration; nil fields fall back to the
// saved defaults and then to built-in values.
type SessionConfig struct {
	DurationMinutes          *int    `json:"durationMinutes,omitempty"`
	Intent                   *string `json:"intent,omitempty"`
	EyeBreakEnabled          *bool   `json:"eyeBreakEnabled,omitempty"`
	WaterReminderEnabled     *bool   `json:"waterReminderEnabled,omitempty"`
	WaterReminderInterval    *int    `json:"waterReminderInterval,omitempty"`
	MovementReminderEnabled  *bool   `json:"movementReminderEnabled,omitempty"`
	MovementReminderInterval *int    `json:"movementReminderInterval,omitempty"`
}

type StartInput struct {
	Config SessionConfig
}

type SessionOutput struct {
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
	RemainingSeconds         int        `json:"remainingSeconds"`
}

type EndOutput struct {
	Reason                string `json:"reason"`
	AlreadyRecorded       bool   `json:"alreadyRecorded"`
	ActualDurationMinutes int    `json:"actualDurationMinutes"`
}

const (
	RecoveryNone        = "none"
	RecoveryRescheduled = "rescheduled"
	RecoveryEnded       = "ended"
)

type RecoverOutput struct {
	Action           string `json:"action"`
	RemainingMinutes int    `json:"remainingMinutes,omitempty"`
}
