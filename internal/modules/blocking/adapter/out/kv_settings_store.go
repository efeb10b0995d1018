package out

import (
	"context"

	blockingout "focusguard/internal/modules/blocking/port/out"
	"focusguard/internal/platform/storage"
)

const (
	keyIsBlocking = "isBlocking"
	keyBlockList  = "blockList"
)

type KVSettingsStore struct {
	kv storage.KV
}

func NewKVSettingsStore(kv storage.KV) blockingout.SettingsStore {
	return &KVSettingsStore{kv: kv}
}

func (s *KVSettingsStore) LoadBlocking(ctx context.Context) (bool, error) {
	var active bool
	if _, err := s.kv.Get(ctx, keyIsBlocking, &active); err != nil {
		return false, err
	}
	return active, nil
}

func (s *KVSettingsStore) SaveBlocking(ctx context.Context, active bool) error {
	return s.kv.Set(ctx, map[string]any{keyIsBlocking: active})
}

func (s *KVSettingsStore) LoadBlockList(ctx context.Context) ([]string, error) {
	blockList := []string{}
	if _, err := s.kv.Get(ctx, keyBlockList, &blockList); err != nil {
		return nil, err
	}
	if blockList == nil {
		blockList = []string{}
	}
	return blockList, nil
}

func (s *KVSettingsStore) SaveBlockList(ctx context.Context, blockList []string) error {
	return s.kv.Set(ctx, map[string]any{keyBlockList: blockList})
}
