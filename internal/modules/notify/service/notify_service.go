package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"focusguard/internal/modules/notify/domain"
	"focusguard/internal/modules/notify/dto"
	notifyout "focusguard/internal/modules/notify/port/out"
	"focusguard/internal/platform/clock"
	"focusguard/internal/platform/logging"
)

type NotifyService struct {
	store  notifyout.ManifestStore
	host   notifyout.Host
	clock  clock.Clock
	logger hclog.Logger
}

func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host, clk clock.Clock, logger hclog.Logger) *NotifyService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &NotifyService{store: store, host: host, clock: clk, logger: logging.OrDiscard(logger)}
}

// Notify records the notification in the log and fans it out to every
// enabled notifier subscribed to its kind. Delivery failures are logged.
func (s *NotifyService) Notify(ctx context.Context, input dto.Notification) error {
	notification := domain.Notification{
		Kind:      domain.Kind(input.Kind),
		Title:     input.Title,
		Message:   input.Message,
		OpenView:  input.OpenView,
		CreatedAt: s.clock.Now(),
	}
	if err := notification.Validate(); err != nil {
		return err
	}
	s.logger.Info("notification", "kind", notification.Kind, "title", notification.Title, "message", notification.Message, "open_view", notification.OpenView)

	if s.store == nil || s.host == nil {
		return nil
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		s.logger.Error("load notifier manifests", "error", err)
		return nil
	}
	for _, manifest := range manifests {
		if !manifest.Enabled || !manifest.Accepts(notification.Kind) {
			continue
		}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			s.logger.Warn("skip notifier", "notifier", manifest.Name, "error", err)
			continue
		}
		if err := s.host.Deliver(ctx, manifest, notification); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %s", domain.ErrNotifierTimeout, manifest.Name)
			}
			s.logger.Error("deliver notification", "notifier", manifest.Name, "kind", notification.Kind, "error", err)
		}
	}
	return nil
}

func (s *NotifyService) List(ctx context.Context) ([]dto.NotifierInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotifierInfo, 0, len(manifests))
	for _, m := range manifests {
		kinds := make([]string, 0, len(m.Kinds))
		for _, k := range m.Kinds {
			kinds = append(kinds, string(k))
		}
		out = append(out, dto.NotifierInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Kinds: kinds})
	}
	return out, nil
}

func (s *NotifyService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := binaryOK && checksumMatches(m.Binary, m.SHA256) == nil
		result.ChecksumValid = checksumOK

		switch {
		case !binaryOK:
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		case !checksumOK:
			result.Error = "checksum mismatch"
		case !m.Enabled:
			result.Error = domain.ErrNotifierDisabled.Error()
		case s.host != nil:
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *NotifyService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate notifier name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read notifier binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
