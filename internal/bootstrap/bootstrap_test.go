package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	enginedto "focusguard/internal/modules/engine/dto"
	sessiondto "focusguard/internal/modules/session/dto"
	"focusguard/internal/platform/alarm"
	"focusguard/internal/platform/clock"
	"focusguard/internal/platform/config"
	"focusguard/internal/platform/storage"
)

func TestFocusAndSessionFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	clk := clock.Func(func() time.Time { return now })

	db, err := storage.Open(filepath.Join(dir, "focusguard.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	cfg := config.Config{
		DataDir:      dir,
		DBPath:       filepath.Join(dir, "focusguard.db"),
		SocketPath:   filepath.Join(dir, "focusguard.sock"),
		NotifiersDir: filepath.Join(dir, "notifiers"),
		AlarmTick:    time.Second,
	}
	app, err := wire(cfg, nil, clk, db)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}

	send := func(msg enginedto.Message) enginedto.Response {
		t.Helper()
		resp := app.EngineCLI.Send(ctx, msg)
		if !resp.Success {
			t.Fatalf("%s failed: %s", msg.Action, resp.Error)
		}
		return resp
	}
	on, off, minutes, duration := true, false, 10, 25

	resp := send(enginedto.Message{Action: enginedto.ActionUpdateFocusReminderMinutes, Minutes: &minutes})
	if !resp.State.ReminderArmed || resp.State.FocusReminderMinutes != 10 {
		t.Fatalf("reminder should be armed while focus is off: %+v", resp.State)
	}
	send(enginedto.Message{Action: enginedto.ActionUpdateBlockList, BlockList: []string{"www.youtube.com", "m.youtube.com"}})
	resp = send(enginedto.Message{Action: enginedto.ActionSetBlockingState, IsBlocking: &on})
	if !resp.State.IsBlocking || resp.State.ReminderArmed {
		t.Fatalf("focus on should disarm the reminder: %+v", resp.State)
	}
	rules, err := app.BlockingCLI.Rules(ctx)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected one rule pair for youtube.com, got %+v", rules)
	}
	send(enginedto.Message{Action: enginedto.ActionSetBlockingState, IsBlocking: &off})
	if rules, _ := app.BlockingCLI.Rules(ctx); len(rules) != 0 {
		t.Fatalf("focus off should remove rules, got %+v", rules)
	}

	resp = send(enginedto.Message{Action: enginedto.ActionStartWorkSession, Config: &sessiondto.SessionConfig{DurationMinutes: &duration}})
	if resp.Session == nil || !resp.Session.IsActive {
		t.Fatalf("unexpected start response: %+v", resp)
	}
	resp = send(enginedto.Message{Action: enginedto.ActionGetState})
	if !resp.State.IsBlocking || resp.State.Session == nil {
		t.Fatalf("session should turn focus on: %+v", resp.State)
	}

	now = now.Add(25 * time.Minute)
	fired, err := app.pump.Fire(ctx, func(ctx context.Context, a alarm.Alarm) {
		app.engine.HandleAlarm(ctx, a.Name)
	})
	if err != nil {
		t.Fatalf("fire alarms: %v", err)
	}
	if fired == 0 {
		t.Fatal("expected the session end alarm to fire")
	}

	resp = send(enginedto.Message{Action: enginedto.ActionGetHistory})
	if len(resp.History) != 1 || resp.History[0].CompletedReason != "completed" || resp.History[0].ActualDurationMinutes != 25 {
		t.Fatalf("unexpected history: %+v", resp.History)
	}
	resp = send(enginedto.Message{Action: enginedto.ActionGetState})
	if resp.State.IsBlocking || !resp.State.ReminderArmed {
		t.Fatalf("completion should restore focus off and rearm the reminder: %+v", resp.State)
	}
	if resp.State.Session == nil || resp.State.Session.IsActive || !resp.State.Session.HistoryRecorded {
		t.Fatalf("unexpected session after completion: %+v", resp.State.Session)
	}

	boot, err := app.EngineCLI.Boot(ctx)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	if boot.SessionAction != sessiondto.RecoveryNone || !boot.ReminderArmed {
		t.Fatalf("unexpected boot output: %+v", boot)
	}
}

func TestRunDaemonServesSocket(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := config.Config{
		DataDir:      dir,
		DBPath:       filepath.Join(dir, "focusguard.db"),
		SocketPath:   filepath.Join(dir, "focusguard.sock"),
		NotifiersDir: filepath.Join(dir, "notifiers"),
		AlarmTick:    50 * time.Millisecond,
	}
	app, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- app.RunDaemon(ctx) }()

	var resp enginedto.Response
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err = app.SendToDaemon(context.Background(), enginedto.Message{Action: enginedto.ActionToggleBlocking})
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("send to daemon: %v", err)
	}
	if !resp.Success || resp.State == nil || !resp.State.IsBlocking {
		t.Fatalf("unexpected daemon response: %+v", resp)
	}
	unknown, err := app.SendToDaemon(context.Background(), enginedto.Message{Action: "nope"})
	if err != nil || unknown.Success || unknown.Error != "unknown action" {
		t.Fatalf("unexpected unknown-action response: %+v %v", unknown, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("daemon exit: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("daemon did not stop")
	}
}
