package domain_test

import (
	"strings"
	"testing"

	"focusguard/internal/modules/notify/domain"
)

var validSHA = strings.Repeat("a", 64)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: validSHA, Enabled: true}},
		{name: "valid with kinds", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: validSHA, Kinds: []domain.Kind{domain.KindWater}}},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/n", SHA256: validSHA}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "n", Binary: "/tmp/n", SHA256: validSHA}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "n", Version: "1", SHA256: validSHA}, shouldErr: true},
		{name: "bad sha", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: "ABC"}, shouldErr: true},
		{name: "unknown kind", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: validSHA, Kinds: []domain.Kind{"fireworks"}}, shouldErr: true},
		{name: "duplicate kind", manifest: domain.Manifest{Name: "n", Version: "1", Binary: "/tmp/n", SHA256: validSHA, Kinds: []domain.Kind{domain.KindWater, domain.KindWater}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestManifestAccepts(t *testing.T) {
	t.Parallel()

	all := domain.Manifest{}
	if !all.Accepts(domain.KindDistraction) {
		t.Fatalf("manifest without kinds should accept everything")
	}
	water := domain.Manifest{Kinds: []domain.Kind{domain.KindWater}}
	if !water.Accepts(domain.KindWater) || water.Accepts(domain.KindEyeBreak) {
		t.Fatalf("unexpected kind filtering")
	}
}

func TestNotificationValidate(t *testing.T) {
	t.Parallel()

	if err := (domain.Notification{Kind: domain.KindEyeBreak, Title: "Eye break"}).Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := (domain.Notification{Kind: domain.KindEyeBreak}).Validate(); err == nil {
		t.Fatalf("expected missing title error")
	}
	if err := (domain.Notification{Kind: "bogus", Title: "x"}).Validate(); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
