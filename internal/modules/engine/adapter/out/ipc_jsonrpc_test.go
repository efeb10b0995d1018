package out_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	out "focusguard/internal/modules/engine/adapter/out"
	"focusguard/internal/modules/engine/dto"
)

type fakeIPCHandler struct {
	mu       sync.Mutex
	received []dto.Message
}

func (h *fakeIPCHandler) Handle(_ context.Context, msg dto.Message) dto.Response {
	h.mu.Lock()
	h.received = append(h.received, msg)
	h.mu.Unlock()
	if msg.Action == "bogus" {
		return dto.Response{Error: "unknown action"}
	}
	return dto.Response{Success: true, State: &dto.StateOutput{IsBlocking: msg.IsBlocking != nil && *msg.IsBlocking, BlockList: []string{"reddit.com"}}}
}

func TestJSONRPCServerClientContract(t *testing.T) {
	t.Parallel()
	h := &fakeIPCHandler{}
	server := out.NewJSONRPCServer()
	client := out.NewJSONRPCClient()
	socketPath := filepath.Join(t.TempDir(), "focusguard.sock")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ctx, socketPath, h)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, err := client.Send(context.Background(), socketPath, dto.Message{Action: dto.ActionGetState})
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	on := true
	resp, err := client.Send(context.Background(), socketPath, dto.Message{Action: dto.ActionSetBlockingState, IsBlocking: &on})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !resp.Success || resp.State == nil || !resp.State.IsBlocking || len(resp.State.BlockList) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	failed, err := client.Send(context.Background(), socketPath, dto.Message{Action: "bogus"})
	if err != nil {
		t.Fatalf("send bogus: %v", err)
	}
	if failed.Success || failed.Error != "unknown action" {
		t.Fatalf("handler failures travel in the response, got %+v", failed)
	}

	h.mu.Lock()
	last := h.received[len(h.received)-1]
	h.mu.Unlock()
	if last.Action != "bogus" {
		t.Fatalf("unexpected last message: %+v", last)
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve exit error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server did not shut down")
	}
}
