package app

import (
	"testing"

	enginedto "focusguard/internal/modules/engine/dto"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	msg, err := parseCommand("session:start 25 write the report")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if msg.Action != enginedto.ActionStartWorkSession || *msg.Config.DurationMinutes != 25 || *msg.Config.Intent != "write the report" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	msg, err = parseCommand("session:start deep work")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if msg.Config.DurationMinutes != nil || *msg.Config.Intent != "deep work" {
		t.Fatalf("intent without minutes should keep defaults: %+v", msg.Config)
	}

	msg, err = parseCommand("focus:off")
	if err != nil || msg.Action != enginedto.ActionSetBlockingState || *msg.IsBlocking {
		t.Fatalf("unexpected focus message: %+v %v", msg, err)
	}

	msg, err = parseCommand("blocklist:set youtube.com reddit.com")
	if err != nil || len(msg.BlockList) != 2 {
		t.Fatalf("unexpected block list message: %+v %v", msg, err)
	}

	for _, bad := range []string{"reminder:set", "reminder:set soon", "defaults:set x", "launch"} {
		if _, err := parseCommand(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
