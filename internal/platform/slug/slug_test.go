package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Write the Q3 report!": "write-the-q3-report",
		"   ":                  "untitled",
		"--deep--work--":       "deep-work",
	}
	for input, want := range cases {
		if got := Make(input); got != want {
			t.Fatalf("Make(%q) = %q, want %q", input, got, want)
		}
	}
	if got := Make(strings.Repeat("focus ", 20)); len(got) > maxLen || strings.HasSuffix(got, "-") {
		t.Fatalf("expected trimmed slug, got %q", got)
	}
}
