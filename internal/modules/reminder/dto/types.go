package dto

import (
	"time"

	"focusguard/internal/modules/reminder/domain"
)

// AlarmName is the alarm the reminder module owns.
const AlarmName = domain.AlarmName

type StatusOutput struct {
	Minutes int       `json:"minutes"`
	Armed   bool      `json:"armed"`
	NextAt  time.Time `json:"nextAt,omitempty"`
}
