package alarm

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"focusguard/internal/platform/storage"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*SQLiteStore, *manualClock) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "focusguard.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	clk := &manualClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	store, err := NewSQLiteStore(db, clk)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, clk
}

func TestCreateReplacesAndClearIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, clk := newTestStore(t)

	if err := store.Create(ctx, "sessionEnd", CreateInfo{DelayMinutes: 30}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, "sessionEnd", CreateInfo{DelayMinutes: 10}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	alarm, found, err := store.Get(ctx, "sessionEnd")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if !alarm.ScheduledAt.Equal(clk.now.Add(10 * time.Minute)) {
		t.Fatalf("expected replaced schedule, got %s", alarm.ScheduledAt)
	}

	all, err := store.All(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one alarm, got %d err=%v", len(all), err)
	}

	cleared, err := store.Clear(ctx, "sessionEnd")
	if err != nil || !cleared {
		t.Fatalf("clear: cleared=%v err=%v", cleared, err)
	}
	cleared, err = store.Clear(ctx, "sessionEnd")
	if err != nil || cleared {
		t.Fatalf("second clear should be a no-op: cleared=%v err=%v", cleared, err)
	}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	if err := store.Create(context.Background(), "", CreateInfo{DelayMinutes: 1}); err == nil {
		t.Fatalf("expected name error")
	}
	if err := store.Create(context.Background(), "x", CreateInfo{DelayMinutes: -1}); err == nil {
		t.Fatalf("expected timing error")
	}
}

func TestDueConsumesOneShotAndReschedulesRepeating(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, clk := newTestStore(t)
	start := clk.now

	if err := store.Create(ctx, "sessionEnd", CreateInfo{DelayMinutes: 45}); err != nil {
		t.Fatalf("create one-shot: %v", err)
	}
	if err := store.Create(ctx, "eyeBreakReminder", CreateInfo{PeriodMinutes: 20}); err != nil {
		t.Fatalf("create repeating: %v", err)
	}

	due, err := store.Due(ctx, start.Add(19*time.Minute))
	if err != nil || len(due) != 0 {
		t.Fatalf("expected nothing due, got %v err=%v", due, err)
	}

	due, err = store.Due(ctx, start.Add(20*time.Minute))
	if err != nil || len(due) != 1 || due[0].Name != "eyeBreakReminder" {
		t.Fatalf("expected eye break due, got %v err=%v", due, err)
	}
	eye, _, _ := store.Get(ctx, "eyeBreakReminder")
	if !eye.ScheduledAt.Equal(start.Add(40 * time.Minute)) {
		t.Fatalf("expected next occurrence at +40m, got %s", eye.ScheduledAt)
	}

	// A long gap fires each alarm once and skips missed occurrences.
	due, err = store.Due(ctx, start.Add(95*time.Minute))
	if err != nil || len(due) != 2 {
		t.Fatalf("expected two due alarms, got %v err=%v", due, err)
	}
	if _, found, _ := store.Get(ctx, "sessionEnd"); found {
		t.Fatalf("one-shot alarm should be consumed")
	}
	eye, _, _ = store.Get(ctx, "eyeBreakReminder")
	if !eye.ScheduledAt.Equal(start.Add(100 * time.Minute)) {
		t.Fatalf("expected next occurrence at +100m, got %s", eye.ScheduledAt)
	}
}

func TestPumpFireDeliversByName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, clk := newTestStore(t)
	if err := store.Create(ctx, "focusModeReminder", CreateInfo{DelayMinutes: 5}); err != nil {
		t.Fatalf("create: %v", err)
	}

	pump := NewPump(store, clk, time.Second, nil)
	var fired []string
	handler := func(_ context.Context, alarm Alarm) { fired = append(fired, alarm.Name) }

	if n, err := pump.Fire(ctx, handler); err != nil || n != 0 {
		t.Fatalf("expected nothing fired, n=%d err=%v", n, err)
	}
	clk.advance(5 * time.Minute)
	if n, err := pump.Fire(ctx, handler); err != nil || n != 1 {
		t.Fatalf("expected one fired, n=%d err=%v", n, err)
	}
	if n, _ := pump.Fire(ctx, handler); n != 0 {
		t.Fatalf("one-shot alarm fired twice")
	}
	if len(fired) != 1 || fired[0] != "focusModeReminder" {
		t.Fatalf("unexpected deliveries: %v", fired)
	}
}

func TestPumpRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	store, clk := newTestStore(t)
	pump := NewPump(store, clk, 10*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pump.Run(ctx, func(context.Context, Alarm) {}) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pump did not stop")
	}
}
