package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotifierDisabled = errors.New("notifier is disabled")
	ErrChecksumMismatch = errors.New("notifier checksum mismatch")
	ErrNotifierTimeout  = errors.New("notifier timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest registers an external notifier binary. An empty Kinds list
// subscribes the notifier to every kind.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
	Kinds   []Kind `json:"kinds,omitempty"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("notifier name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("notifier version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("notifier binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("notifier sha256 must be lowercase 64-char hex")
	}
	seen := map[Kind]struct{}{}
	for _, kind := range m.Kinds {
		if err := kind.Validate(); err != nil {
			return err
		}
		if _, ok := seen[kind]; ok {
			return fmt.Errorf("duplicate kind: %s", kind)
		}
		seen[kind] = struct{}{}
	}
	return nil
}

func (m Manifest) Accepts(kind Kind) bool {
	if len(m.Kinds) == 0 {
		return true
	}
	for _, k := range m.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
