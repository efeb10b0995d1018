package domain

import (
	"math"
	"sort"
	"time"
)

const RetentionWindow = 7 * 24 * time.Hour

const (
	ReasonCompleted = "completed"
	ReasonManualEnd = "manual_end"
	ReasonAutoEnd   = "auto_end"
)

// Entry is an immutable record of a finished work session.
type Entry struct {
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
	RecordedAt               time.Time `json:"recordedAt"`
}

// Snapshot is the session state captured at completion. A zero ActualEndTime
// means the session ended at recording time.
type Snapshot struct {
	StartTime                time.Time
	EndTime                  time.Time
	ActualEndTime            time.Time
	DurationMinutes          int
	Intent                   string
	EyeBreakEnabled          bool
	WaterReminderEnabled     bool
	WaterReminderInterval    int
	MovementReminderEnabled  bool
	MovementReminderInterval int
}

func NewEntry(id string, snap Snapshot, reason string, now time.Time) Entry {
	actualEnd := snap.ActualEndTime
	if actualEnd.IsZero() {
		actualEnd = now
	}
	return Entry{
		ID:                       id,
		StartTime:                snap.StartTime,
		EndTime:                  snap.EndTime,
		ActualEndTime:            actualEnd,
		DurationMinutes:          snap.DurationMinutes,
		ActualDurationMinutes:    ActualMinutes(snap.StartTime, actualEnd),
		Intent:                   snap.Intent,
		CompletedReason:          reason,
		EyeBreakEnabled:          snap.EyeBreakEnabled,
		WaterReminderEnabled:     snap.WaterReminderEnabled,
		WaterReminderInterval:    snap.WaterReminderInterval,
		MovementReminderEnabled:  snap.MovementReminderEnabled,
		MovementReminderInterval: snap.MovementReminderInterval,
		RecordedAt:               now,
	}
}

// ActualMinutes rounds the elapsed time to whole minutes with a floor of one.
func ActualMinutes(start, end time.Time) int {
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Prune keeps entries whose StartTime lies within the retention window.
func Prune(entries []Entry, now time.Time) []Entry {
	cutoff := now.Add(-RetentionWindow)
	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if !entry.StartTime.Before(cutoff) {
			kept = append(kept, entry)
		}
	}
	return kept
}

// FindByStart returns the entry recorded for the session that started at start.
func FindByStart(entries []Entry, start time.Time) (Entry, bool) {
	for _, entry := range entries {
		if entry.StartTime.Equal(start) {
			return entry, true
		}
	}
	return Entry{}, false
}

func SortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime.After(entries[j].StartTime)
	})
}
