package usecase

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	notifydto "focusguard/internal/modules/notify/dto"
	notifyin "focusguard/internal/modules/notify/port/in"
	reminderdto "focusguard/internal/modules/reminder/dto"
	reminderin "focusguard/internal/modules/reminder/port/in"
	reminderout "focusguard/internal/modules/reminder/port/out"
	"focusguard/internal/modules/reminder/service"
	apperrors "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logging"
)

const distractionView = "distraction"

type Interactor struct {
	svc      *service.ReminderService
	store    reminderout.IntervalStore
	notifier notifyin.Usecase
	logger   hclog.Logger
}

func NewInteractor(svc *service.ReminderService, store reminderout.IntervalStore, notifier notifyin.Usecase, logger hclog.Logger) reminderin.Usecase {
	return &Interactor{svc: svc, store: store, notifier: notifier, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) UpdateMinutes(ctx context.Context, minutes int, focusActive bool) error {
	if minutes < 0 {
		return fmt.Errorf("%w: reminder minutes must be non-negative", apperrors.ErrInvalidInput)
	}
	if err := i.store.SaveMinutes(ctx, minutes); err != nil {
		return fmt.Errorf("save reminder minutes: %w", err)
	}
	return i.Rearm(ctx, focusActive)
}

func (i *Interactor) Rearm(ctx context.Context, focusActive bool) error {
	minutes, err := i.store.LoadMinutes(ctx)
	if err != nil {
		return fmt.Errorf("load reminder minutes: %w", err)
	}
	armed, err := i.svc.Rearm(ctx, focusActive, minutes)
	if err != nil {
		return err
	}
	i.logger.Debug("focus reminder rearmed", "armed", armed, "minutes", minutes)
	return nil
}

func (i *Interactor) HandleAlarm(ctx context.Context, focusActive bool) error {
	if focusActive {
		i.logger.Debug("stale focus reminder ignored", "reason", "focus active")
		return nil
	}
	if i.notifier == nil {
		return nil
	}
	return i.notifier.Notify(ctx, notifydto.Notification{
		Kind:     notifydto.KindDistraction,
		Title:    "Still on track?",
		Message:  "Focus mode is off. Take a moment to check what you are doing.",
		OpenView: distractionView,
	})
}

func (i *Interactor) Status(ctx context.Context) (reminderdto.StatusOutput, error) {
	minutes, err := i.store.LoadMinutes(ctx)
	if err != nil {
		return reminderdto.StatusOutput{}, fmt.Errorf("load reminder minutes: %w", err)
	}
	pending, armed, err := i.svc.Pending(ctx)
	if err != nil {
		return reminderdto.StatusOutput{}, err
	}
	return reminderdto.StatusOutput{Minutes: minutes, Armed: armed, NextAt: pending.ScheduledAt}, nil
}
