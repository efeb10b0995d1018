package service_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	notifyout "focusguard/internal/modules/notify/adapter/out"
	"focusguard/internal/modules/notify/domain"
	"focusguard/internal/modules/notify/dto"
	"focusguard/internal/modules/notify/service"
	"focusguard/internal/platform/logging"
)

type recordingHost struct {
	delivered []string
	failFor   string
}

func (h *recordingHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }

func (h *recordingHost) Deliver(_ context.Context, manifest domain.Manifest, n domain.Notification) error {
	if manifest.Name == h.failFor {
		return errors.New("boom")
	}
	h.delivered = append(h.delivered, manifest.Name+":"+string(n.Kind))
	return nil
}

func writeBinary(t *testing.T, dir, name string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := []byte("notifier-" + name)
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256(payload)
	return path, hex.EncodeToString(hash[:])
}

func writeManifests(t *testing.T, dir string, manifests []domain.Manifest) {
	t.Helper()
	raw, err := json.Marshal(manifests)
	if err != nil {
		t.Fatalf("marshal manifests: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notifiers.json"), raw, 0o644); err != nil {
		t.Fatalf("write notifiers.json: %v", err)
	}
}

func TestNotifyFansOutToSubscribedNotifiers(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	allBin, allSum := writeBinary(t, dir, "all")
	waterBin, waterSum := writeBinary(t, dir, "water")
	offBin, offSum := writeBinary(t, dir, "off")
	badBin, _ := writeBinary(t, dir, "tampered")
	failBin, failSum := writeBinary(t, dir, "failing")
	writeManifests(t, dir, []domain.Manifest{
		{Name: "all", Version: "1", Binary: allBin, SHA256: allSum, Enabled: true},
		{Name: "water", Version: "1", Binary: waterBin, SHA256: waterSum, Enabled: true, Kinds: []domain.Kind{domain.KindWater}},
		{Name: "off", Version: "1", Binary: offBin, SHA256: offSum, Enabled: false},
		{Name: "tampered", Version: "1", Binary: badBin, SHA256: strings.Repeat("0", 64), Enabled: true},
		{Name: "failing", Version: "1", Binary: failBin, SHA256: failSum, Enabled: true},
	})

	host := &recordingHost{failFor: "failing"}
	logs := &bytes.Buffer{}
	svc := service.NewNotifyService(notifyout.NewFileManifestStore(dir), host, nil, logging.New(logging.Options{Output: logs}))

	if err := svc.Notify(context.Background(), dto.Notification{Kind: dto.KindEyeBreak, Title: "Eye break"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(host.delivered) != 1 || host.delivered[0] != "all:eye_break" {
		t.Fatalf("unexpected deliveries: %v", host.delivered)
	}
	out := logs.String()
	if !strings.Contains(out, "notification") || !strings.Contains(out, "deliver notification") || !strings.Contains(out, "skip notifier") {
		t.Fatalf("expected notification, failure and skip logs, got %q", out)
	}
}

func TestNotifyRejectsInvalidNotification(t *testing.T) {
	t.Parallel()
	svc := service.NewNotifyService(nil, nil, nil, nil)
	if err := svc.Notify(context.Background(), dto.Notification{Kind: "unknown", Title: "x"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := svc.Notify(context.Background(), dto.Notification{Kind: dto.KindWater, Title: "Drink water"}); err != nil {
		t.Fatalf("log-only notify: %v", err)
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binPath, _ := writeBinary(t, dir, "desktop")
	writeManifests(t, dir, []domain.Manifest{{
		Name:    "desktop",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  strings.Repeat("0", 64),
		Enabled: true,
	}})

	svc := service.NewNotifyService(notifyout.NewFileManifestStore(dir), nil, nil, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid || !results[0].BinaryReachable || results[0].Error != "checksum mismatch" {
		t.Fatalf("unexpected doctor result: %+v", results[0])
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	binPath, sum := writeBinary(t, dir, "desktop")
	m := domain.Manifest{Name: "desktop", Version: "1", Binary: binPath, SHA256: sum, Enabled: true}
	writeManifests(t, dir, []domain.Manifest{m, m})

	svc := service.NewNotifyService(notifyout.NewFileManifestStore(dir), nil, nil, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}
