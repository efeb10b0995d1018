package out

import (
	"context"

	"focusguard/internal/modules/history/domain"
	historyout "focusguard/internal/modules/history/port/out"
	"focusguard/internal/platform/storage"
)

const keyHistory = "history_of_work_Sessions"

type KVHistoryStore struct {
	kv storage.KV
}

func NewKVHistoryStore(kv storage.KV) historyout.HistoryStore {
	return &KVHistoryStore{kv: kv}
}

func (s *KVHistoryStore) Load(ctx context.Context) ([]domain.Entry, error) {
	entries := []domain.Entry{}
	if _, err := s.kv.Get(ctx, keyHistory, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nil
}

func (s *KVHistoryStore) Save(ctx context.Context, entries []domain.Entry) error {
	return s.kv.Set(ctx, map[string]any{keyHistory: entries})
}
