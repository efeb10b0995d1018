package out

import (
	"context"

	reminderout "focusguard/internal/modules/reminder/port/out"
	"focusguard/internal/platform/storage"
)

const keyReminderMinutes = "focusReminderMinutes"

type KVIntervalStore struct {
	kv storage.KV
}

func NewKVIntervalStore(kv storage.KV) reminderout.IntervalStore {
	return &KVIntervalStore{kv: kv}
}

// LoadMinutes returns 0, meaning disabled, when no interval was saved.
func (s *KVIntervalStore) LoadMinutes(ctx context.Context) (int, error) {
	var minutes int
	if _, err := s.kv.Get(ctx, keyReminderMinutes, &minutes); err != nil {
		return 0, err
	}
	return minutes, nil
}

func (s *KVIntervalStore) SaveMinutes(ctx context.Context, minutes int) error {
	return s.kv.Set(ctx, map[string]any{keyReminderMinutes: minutes})
}
