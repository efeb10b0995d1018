package markdown

import (
	"strings"
	"testing"
)

func TestRenderParseRoundTrip(t *testing.T) {
	t.Parallel()

	note := Note{Meta: map[string]any{"intent": "write report", "duration_minutes": 45}, Body: "notes\n"}
	content, err := note.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(content, "---\n") {
		t.Fatalf("expected frontmatter header, got %q", content)
	}

	parsed, err := Parse(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Meta["intent"] != "write report" {
		t.Fatalf("unexpected intent: %v", parsed.Meta["intent"])
	}
	if parsed.Body != "\nnotes\n" {
		t.Fatalf("unexpected body: %q", parsed.Body)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	t.Parallel()

	parsed, err := Parse("just text")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed.Meta) != 0 || parsed.Body != "just text" {
		t.Fatalf("unexpected note: %+v", parsed)
	}
	if _, err := Parse("---\nkey: value\n"); err == nil {
		t.Fatalf("expected missing separator error")
	}
}

func TestReplaceBlock(t *testing.T) {
	t.Parallel()

	body := ReplaceBlock("", "<!-- a -->", "<!-- b -->", "one")
	if body != "<!-- a -->\none\n<!-- b -->\n" {
		t.Fatalf("unexpected first block: %q", body)
	}
	body = ReplaceBlock("intro\n"+body, "<!-- a -->", "<!-- b -->", "two")
	if strings.Contains(body, "one") || !strings.Contains(body, "intro\n<!-- a -->\ntwo\n<!-- b -->") {
		t.Fatalf("unexpected replaced block: %q", body)
	}
}
