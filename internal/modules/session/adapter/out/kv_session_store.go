package out

import (
	"context"

	"focusguard/internal/modules/session/domain"
	sessionout "focusguard/internal/modules/session/port/out"
	"focusguard/internal/platform/storage"
)

const (
	keyCurrentSession  = "currentSession"
	keySessionDefaults = "sessionDefaults"
)

type KVSessionStore struct {
	kv storage.KV
}

func NewKVSessionStore(kv storage.KV) sessionout.SessionStore {
	return &KVSessionStore{kv: kv}
}

func (s *KVSessionStore) LoadCurrent(ctx context.Context) (domain.WorkSession, bool, error) {
	var session domain.WorkSession
	found, err := s.kv.Get(ctx, keyCurrentSession, &session)
	if err != nil {
		return domain.WorkSession{}, false, err
	}
	return session, found, nil
}

func (s *KVSessionStore) SaveCurrent(ctx context.Context, session domain.WorkSession) error {
	return s.kv.Set(ctx, map[string]any{keyCurrentSession: session})
}

func (s *KVSessionStore) LoadDefaults(ctx context.Context) (domain.Config, error) {
	var config domain.Config
	if _, err := s.kv.Get(ctx, keySessionDefaults, &config); err != nil {
		return domain.Config{}, err
	}
	return config, nil
}

func (s *KVSessionStore) SaveDefaults(ctx context.Context, config domain.Config) error {
	return s.kv.Set(ctx, map[string]any{keySessionDefaults: config})
}
