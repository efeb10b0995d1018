package domain

import (
	"fmt"

	apperrors "focusguard/internal/platform/errors"
)

const (
	DefaultDurationMinutes          = 60
	DefaultWaterReminderInterval    = 30
	DefaultMovementReminderInterval = 45
)

// Config is a partial session configuration. Nil fields defer to the layer
// below: incoming request, then persisted defaults, then built-in defaults.
type Config struct {
	DurationMinutes          *int    `json:"durationMinutes,omitempty"`
	Intent                   *string `json:"intent,omitempty"`
	EyeBreakEnabled          *bool   `json:"eyeBreakEnabled,omitempty"`
	WaterReminderEnabled     *bool   `json:"waterReminderEnabled,omitempty"`
	WaterReminderInterval    *int    `json:"waterReminderInterval,omitempty"`
	MovementReminderEnabled  *bool   `json:"movementReminderEnabled,omitempty"`
	MovementReminderInterval *int    `json:"movementReminderInterval,omitempty"`
}

// Settings is a fully resolved configuration.
type Settings struct {
	DurationMinutes          int
	Intent                   string
	EyeBreakEnabled          bool
	WaterReminderEnabled     bool
	WaterReminderInterval    int
	MovementReminderEnabled  bool
	MovementReminderInterval int
}

func BuiltinSettings() Settings {
	return Settings{
		DurationMinutes:          DefaultDurationMinutes,
		EyeBreakEnabled:          true,
		WaterReminderInterval:    DefaultWaterReminderInterval,
		MovementReminderInterval: DefaultMovementReminderInterval,
	}
}

// Over returns c with every nil field taken from base.
func (c Config) Over(base Config) Config {
	out := base
	if c.DurationMinutes != nil {
		out.DurationMinutes = c.DurationMinutes
	}
	if c.Intent != nil {
		out.Intent = c.Intent
	}
	if c.EyeBreakEnabled != nil {
		out.EyeBreakEnabled = c.EyeBreakEnabled
	}
	if c.WaterReminderEnabled != nil {
		out.WaterReminderEnabled = c.WaterReminderEnabled
	}
	if c.WaterReminderInterval != nil {
		out.WaterReminderInterval = c.WaterReminderInterval
	}
	if c.MovementReminderEnabled != nil {
		out.MovementReminderEnabled = c.MovementReminderEnabled
	}
	if c.MovementReminderInterval != nil {
		out.MovementReminderInterval = c.MovementReminderInterval
	}
	return out
}

func (c Config) Resolve() Settings {
	s := BuiltinSettings()
	if c.DurationMinutes != nil {
		s.DurationMinutes = *c.DurationMinutes
	}
	if c.Intent != nil {
		s.Intent = *c.Intent
	}
	if c.EyeBreakEnabled != nil {
		s.EyeBreakEnabled = *c.EyeBreakEnabled
	}
	if c.WaterReminderEnabled != nil {
		s.WaterReminderEnabled = *c.WaterReminderEnabled
	}
	if c.WaterReminderInterval != nil {
		s.WaterReminderInterval = *c.WaterReminderInterval
	}
	if c.MovementReminderEnabled != nil {
		s.MovementReminderEnabled = *c.MovementReminderEnabled
	}
	if c.MovementReminderInterval != nil {
		s.MovementReminderInterval = *c.MovementReminderInterval
	}
	return s
}

func (s Settings) Validate() error {
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("%w: session duration must be positive, got %d", apperrors.ErrInvalidInput, s.DurationMinutes)
	}
	if s.WaterReminderInterval < 0 || s.MovementReminderInterval < 0 {
		return fmt.Errorf("%w: reminder intervals must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}
