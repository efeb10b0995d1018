package domain

import (
	"fmt"
	"time"
)

type Kind string

const (
	KindDistraction     Kind = "distraction"
	KindEyeBreak        Kind = "eye_break"
	KindWater           Kind = "water"
	KindMovement        Kind = "movement"
	KindSessionComplete Kind = "session_complete"
	KindIndicator       Kind = "indicator"
)

func (k Kind) Validate() error {
	switch k {
	case KindDistraction, KindEyeBreak, KindWater, KindMovement, KindSessionComplete, KindIndicator:
		return nil
	default:
		return fmt.Errorf("unknown notification kind: %s", k)
	}
}

// Notification is a user-facing prompt. OpenView names a surface the sink
// should bring up, such as the distraction page.
type Notification struct {
	Kind      Kind
	Title     string
	Message   string
	OpenView  string
	CreatedAt time.Time
}

func (n Notification) Validate() error {
	if err := n.Kind.Validate(); err != nil {
		return err
	}
	if n.Title == "" {
		return fmt.Errorf("notification title is required")
	}
	return nil
}
