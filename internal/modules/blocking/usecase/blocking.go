package usecase

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	blockingdto "focusguard/internal/modules/blocking/dto"
	blockingin "focusguard/internal/modules/blocking/port/in"
	blockingout "focusguard/internal/modules/blocking/port/out"
	"focusguard/internal/modules/blocking/service"
	notifydto "focusguard/internal/modules/notify/dto"
	notifyin "focusguard/internal/modules/notify/port/in"
	reminderin "focusguard/internal/modules/reminder/port/in"
	"focusguard/internal/platform/logging"
)

type Interactor struct {
	svc      *service.BlockingService
	store    blockingout.SettingsStore
	reminder reminderin.Usecase
	notifier notifyin.Usecase
	logger   hclog.Logger
}

func NewInteractor(svc *service.BlockingService, store blockingout.SettingsStore, reminder reminderin.Usecase, notifier notifyin.Usecase, logger hclog.Logger) blockingin.Usecase {
	return &Interactor{svc: svc, store: store, reminder: reminder, notifier: notifier, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) SetBlocking(ctx context.Context, active bool) (blockingdto.StatusOutput, error) {
	if err := i.store.SaveBlocking(ctx, active); err != nil {
		return blockingdto.StatusOutput{}, fmt.Errorf("save focus state: %w", err)
	}
	status, err := i.Status(ctx)
	if err != nil {
		return blockingdto.StatusOutput{}, err
	}
	i.reconcile(ctx, status.BlockList, active)

	if i.reminder != nil {
		if err := i.reminder.Rearm(ctx, active); err != nil {
			i.logger.Error("rearm focus reminder", "error", err)
		}
	}
	i.indicate(ctx, active)
	return status, nil
}

func (i *Interactor) Toggle(ctx context.Context) (blockingdto.StatusOutput, error) {
	current, err := i.store.LoadBlocking(ctx)
	if err != nil {
		return blockingdto.StatusOutput{}, fmt.Errorf("load focus state: %w", err)
	}
	return i.SetBlocking(ctx, !current)
}

func (i *Interactor) UpdateBlockList(ctx context.Context, blockList []string) (blockingdto.StatusOutput, error) {
	if blockList == nil {
		blockList = []string{}
	}
	if err := i.store.SaveBlockList(ctx, blockList); err != nil {
		return blockingdto.StatusOutput{}, fmt.Errorf("save block list: %w", err)
	}
	status, err := i.Status(ctx)
	if err != nil {
		return blockingdto.StatusOutput{}, err
	}
	i.reconcile(ctx, status.BlockList, status.IsBlocking)
	return status, nil
}

func (i *Interactor) Status(ctx context.Context) (blockingdto.StatusOutput, error) {
	active, err := i.store.LoadBlocking(ctx)
	if err != nil {
		return blockingdto.StatusOutput{}, fmt.Errorf("load focus state: %w", err)
	}
	blockList, err := i.store.LoadBlockList(ctx)
	if err != nil {
		return blockingdto.StatusOutput{}, fmt.Errorf("load block list: %w", err)
	}
	return blockingdto.StatusOutput{IsBlocking: active, BlockList: blockList}, nil
}

func (i *Interactor) Reconcile(ctx context.Context) (blockingdto.ReconcileOutput, error) {
	status, err := i.Status(ctx)
	if err != nil {
		return blockingdto.ReconcileOutput{}, err
	}
	removed, added, err := i.svc.Reconcile(ctx, status.BlockList, status.IsBlocking)
	if err != nil {
		return blockingdto.ReconcileOutput{}, err
	}
	return blockingdto.ReconcileOutput{Removed: removed, Added: added}, nil
}

func (i *Interactor) ListRules(ctx context.Context) ([]blockingdto.RuleOutput, error) {
	rules, err := i.svc.Installed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]blockingdto.RuleOutput, 0, len(rules))
	for _, rule := range rules {
		out = append(out, blockingdto.RuleOutput{
			ID:         rule.ID,
			RootDomain: rule.RootDomain,
			Scope:      string(rule.Scope),
			URLFilter:  rule.URLFilter,
			Redirect:   rule.RedirectPath,
		})
	}
	return out, nil
}

// reconcile logs rule-engine failures and leaves them for the next call.
func (i *Interactor) reconcile(ctx context.Context, blockList []string, active bool) {
	removed, added, err := i.svc.Reconcile(ctx, blockList, active)
	if err != nil {
		i.logger.Error("reconcile blocking rules", "focus_active", active, "error", err)
		return
	}
	i.logger.Debug("blocking rules reconciled", "removed", removed, "added", added)
}

func (i *Interactor) indicate(ctx context.Context, active bool) {
	if i.notifier == nil {
		return
	}
	n := notifydto.Notification{Kind: notifydto.KindIndicator, Title: "Focus mode off", Message: "focus_off"}
	if active {
		n = notifydto.Notification{Kind: notifydto.KindIndicator, Title: "Focus mode on", Message: "focus_on"}
	}
	if err := i.notifier.Notify(ctx, n); err != nil {
		i.logger.Warn("focus indicator", "error", err)
	}
}
