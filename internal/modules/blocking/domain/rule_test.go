package domain_test

import (
	"testing"

	"focusguard/internal/modules/blocking/domain"
)

func TestRootDomain(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"www.facebook.com": "facebook.com",
		"m.facebook.com":   "facebook.com",
		"facebook.com":     "facebook.com",
		"localhost":        "localhost",
		"a.b.c.d.example":  "d.example",
		"bbc.co.uk":        "co.uk",
		"":                 "",
	}
	for input, want := range cases {
		if got := domain.RootDomain(input); got != want {
			t.Fatalf("RootDomain(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCompileFacebookVariantsYieldOnePair(t *testing.T) {
	t.Parallel()
	rules := domain.Compile([]string{"www.facebook.com", "facebook.com", "m.facebook.com"})
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	root, sub := rules[0], rules[1]
	if root.ID != 1 || sub.ID != 2 {
		t.Fatalf("unexpected ids: %d %d", root.ID, sub.ID)
	}
	if root.URLFilter != "*://facebook.com/*" || sub.URLFilter != "*://*.facebook.com/*" {
		t.Fatalf("unexpected filters: %q %q", root.URLFilter, sub.URLFilter)
	}
	for _, rule := range rules {
		if rule.RedirectPath != "/blocker.html" || rule.Priority != 1 {
			t.Fatalf("unexpected action: %+v", rule)
		}
		if len(rule.ResourceTypes) != 1 || rule.ResourceTypes[0] != "main_frame" {
			t.Fatalf("unexpected resource types: %v", rule.ResourceTypes)
		}
	}
}

func TestCompileIDsFollowRawIndex(t *testing.T) {
	t.Parallel()
	rules := domain.Compile([]string{"a.com", "www.a.com", "b.com"})
	if len(rules) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(rules))
	}
	if rules[2].RootDomain != "b.com" || rules[2].ID != 5 || rules[3].ID != 6 {
		t.Fatalf("expected b.com at ids 5/6, got %+v %+v", rules[2], rules[3])
	}

	seen := map[int]struct{}{}
	for _, rule := range rules {
		if _, ok := seen[rule.ID]; ok {
			t.Fatalf("duplicate id %d", rule.ID)
		}
		seen[rule.ID] = struct{}{}
	}
}

func TestCompileEmpty(t *testing.T) {
	t.Parallel()
	if rules := domain.Compile(nil); len(rules) != 0 {
		t.Fatalf("expected no rules, got %d", len(rules))
	}
}

func TestRuleValidate(t *testing.T) {
	t.Parallel()
	if err := domain.Compile([]string{"x.com"})[0].Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := domain.Compile([]string{""})[0].Validate(); err == nil {
		t.Fatalf("expected empty domain to be rejected")
	}
	if err := domain.Compile([]string{"bad domain.com"})[0].Validate(); err == nil {
		t.Fatalf("expected whitespace domain to be rejected")
	}
}
