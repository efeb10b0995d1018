package dto

import (
	"time"

	"focusguard/internal/modules/history/domain"
)

// Completion reasons accepted by Record.
const (
	ReasonCompleted = domain.ReasonCompleted
	ReasonManualEnd = domain.ReasonManualEnd
	ReasonAutoEnd   = domain.ReasonAutoEnd
)

type RecordInput struct {
	StartTime                time.Time
	EndTime                  time.Time
	ActualEndTime            time.Time
	DurationMinutes          int
	Intent                   string
	CompletedReason          string
	EyeBreakEnabled          bool
	WaterReminderEnabled     bool
	WaterReminderInterval    int
	MovementReminderEnabled  bool
	MovementReminderInterval int
}

// EntryOutput is a recorded entry. Duplicate is set when the session had
// already been recorded and no new entry was appended.
type EntryOutput struct {
	ID                       string    `json:"id"`
	StartTime                time.Time `json:"startTime"`
	EndTime                  time.Time `json:"endTime"`
	ActualEndTime            time.Time `json:"actualEndTime"`
	DurationMinutes          int       `json:"durationMinutes"`
	ActualDurationMinutes    int       `json:"actualDurationMinutes"`
	Intent                   string    `json:"intent"`
	CompletedReason          string    `json:"completedReason"`
	EyeBreakEnabled          bool      `json:"eyeBreakEnabled"`
	WaterReminderEnabled     bool      `json:"waterReminderEnabled"`
	WaterReminderInterval    int       `json:"waterReminderInterval"`
	MovementReminderEnabled  bool      `json:"movementReminderEnabled"`
	MovementReminderInterval int       `json:"movementReminderInterval"`
	Duplicate                bool      `json:"-"`
}

type ExportOutput struct {
	Dir       string
	Paths     []string
	IndexPath string
}
