package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "focusguard.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	kv, err := NewSQLiteKV(db, nil)
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	return kv
}

func TestKVSetGetRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newTestKV(t)

	var blocking bool
	found, err := kv.Get(ctx, "isBlocking", &blocking)
	if err != nil || found {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}

	if err := kv.Set(ctx, map[string]any{
		"isBlocking": true,
		"blockList":  []string{"facebook.com", "x.com"},
	}); err != nil {
		t.Fatalf("set: %v", err)
	}

	found, err = kv.Get(ctx, "isBlocking", &blocking)
	if err != nil || !found || !blocking {
		t.Fatalf("unexpected isBlocking: found=%v value=%v err=%v", found, blocking, err)
	}
	var list []string
	if _, err := kv.Get(ctx, "blockList", &list); err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(list) != 2 || list[1] != "x.com" {
		t.Fatalf("unexpected list: %v", list)
	}

	if err := kv.Set(ctx, map[string]any{"isBlocking": false}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := kv.Get(ctx, "isBlocking", &blocking); err != nil || blocking {
		t.Fatalf("expected overwritten value, got %v err=%v", blocking, err)
	}

	if err := kv.Remove(ctx, "isBlocking", "missing"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if found, _ := kv.Get(ctx, "isBlocking", &blocking); found {
		t.Fatalf("expected key removed")
	}
}

func TestKVGetDecodeError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newTestKV(t)
	if err := kv.Set(ctx, map[string]any{"focusReminderMinutes": "ten"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	var minutes int
	if _, err := kv.Get(ctx, "focusReminderMinutes", &minutes); err == nil {
		t.Fatalf("expected decode error")
	}
}
