package in

import (
	"errors"
	"testing"

	apperrors "focusguard/internal/platform/errors"
)

func TestDecodeMessage(t *testing.T) {
	t.Parallel()
	msg, err := DecodeMessage(`{"action":"startWorkSession","config":{"durationMinutes":25,"intent":"draft"}}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Config == nil || *msg.Config.DurationMinutes != 25 || *msg.Config.Intent != "draft" || msg.Config.EyeBreakEnabled != nil {
		t.Fatalf("unexpected message: %+v", msg)
	}

	cleared, err := DecodeMessage(`{"action":"updateBlockList","blockList":[]}`)
	if err != nil || cleared.BlockList == nil || len(cleared.BlockList) != 0 {
		t.Fatalf("an explicit empty block list must decode as empty, got %#v (err=%v)", cleared.BlockList, err)
	}
	missing, err := DecodeMessage(`{"action":"updateBlockList"}`)
	if err != nil || missing.BlockList != nil {
		t.Fatalf("a missing block list must decode as nil, got %#v (err=%v)", missing.BlockList, err)
	}

	for _, raw := range []string{`{}`, `not json`, `{"action":"getState","extra":1}`} {
		if _, err := DecodeMessage(raw); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %s, got %v", raw, err)
		}
	}
}
