package service

import (
	"context"
	"fmt"

	"focusguard/internal/modules/history/domain"
	historyout "focusguard/internal/modules/history/port/out"
	"focusguard/internal/platform/clock"
	"focusguard/internal/platform/id"
)

type HistoryService struct {
	clock clock.Clock
	ids   id.Generator
	store historyout.HistoryStore
}

func NewHistoryService(clk clock.Clock, ids id.Generator, store historyout.HistoryStore) *HistoryService {
	return &HistoryService{clock: clk, ids: ids, store: store}
}

// Record prunes the log and prepends a new entry for snap. A session is
// identified by its StartTime: recording it again returns the stored entry
// and leaves the log untouched.
func (s *HistoryService) Record(ctx context.Context, snap domain.Snapshot, reason string) (domain.Entry, bool, error) {
	now := s.clock.Now()
	entries, err := s.store.Load(ctx)
	if err != nil {
		return domain.Entry{}, false, fmt.Errorf("load history: %w", err)
	}
	if existing, ok := domain.FindByStart(entries, snap.StartTime); ok {
		return existing, false, nil
	}
	entry := domain.NewEntry(s.ids.New(), snap, reason, now)

	kept := domain.Prune(entries, now)
	next := make([]domain.Entry, 0, len(kept)+1)
	next = append(next, entry)
	next = append(next, kept...)
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Entry{}, false, fmt.Errorf("save history: %w", err)
	}
	return entry, true, nil
}

// PruneNow drops expired entries and reports how many were removed.
func (s *HistoryService) PruneNow(ctx context.Context) (int, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load history: %w", err)
	}
	kept := domain.Prune(entries, s.clock.Now())
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.store.Save(ctx, kept); err != nil {
		return 0, fmt.Errorf("save history: %w", err)
	}
	return removed, nil
}

// List prunes on load and returns the retained entries, newest first.
func (s *HistoryService) List(ctx context.Context) ([]domain.Entry, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	kept := domain.Prune(entries, s.clock.Now())
	if len(kept) < len(entries) {
		if err := s.store.Save(ctx, kept); err != nil {
			return nil, fmt.Errorf("save history: %w", err)
		}
	}
	domain.SortNewestFirst(kept)
	return kept, nil
}
