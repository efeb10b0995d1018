package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	blockingin "focusguard/internal/modules/blocking/port/in"
	"focusguard/internal/modules/engine/dto"
	enginein "focusguard/internal/modules/engine/port/in"
	historyin "focusguard/internal/modules/history/port/in"
	reminderdto "focusguard/internal/modules/reminder/dto"
	reminderin "focusguard/internal/modules/reminder/port/in"
	sessiondto "focusguard/internal/modules/session/dto"
	sessionin "focusguard/internal/modules/session/port/in"
	apperrors "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logging"
)

// Interactor routes messages and alarms to the feature modules. One mutex
// covers every handler so socket goroutines and the alarm pump never
// interleave.
type Interactor struct {
	mu       sync.Mutex
	blocking blockingin.Usecase
	reminder reminderin.Usecase
	session  sessionin.Usecase
	history  historyin.Usecase
	logger   hclog.Logger
}

func NewInteractor(blocking blockingin.Usecase, reminder reminderin.Usecase, session sessionin.Usecase, history historyin.Usecase, logger hclog.Logger) enginein.Usecase {
	return &Interactor{blocking: blocking, reminder: reminder, session: session, history: history, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) Handle(ctx context.Context, msg dto.Message) dto.Response {
	i.mu.Lock()
	defer i.mu.Unlock()

	resp, err := i.dispatch(ctx, msg)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownAction) {
			i.logger.Warn("unknown action", "action", msg.Action)
			return dto.Response{Error: apperrors.ErrUnknownAction.Error()}
		}
		i.logger.Error("message failed", "action", msg.Action, "error", err)
		return dto.Response{Error: err.Error()}
	}
	resp.Success = true
	return resp
}

func (i *Interactor) dispatch(ctx context.Context, msg dto.Message) (dto.Response, error) {
	switch msg.Action {
	case dto.ActionSetBlockingState:
		if msg.IsBlocking == nil {
			return dto.Response{}, fmt.Errorf("%w: isBlocking is required", apperrors.ErrInvalidInput)
		}
		if _, err := i.blocking.SetBlocking(ctx, *msg.IsBlocking); err != nil {
			return dto.Response{}, err
		}
		return i.withState(ctx)
	case dto.ActionToggleBlocking:
		if _, err := i.blocking.Toggle(ctx); err != nil {
			return dto.Response{}, err
		}
		return i.withState(ctx)
	case dto.ActionUpdateBlockList:
		// An empty list clears; a missing one is rejected.
		if msg.BlockList == nil {
			return dto.Response{}, fmt.Errorf("%w: blockList is required", apperrors.ErrInvalidInput)
		}
		if _, err := i.blocking.UpdateBlockList(ctx, msg.BlockList); err != nil {
			return dto.Response{}, err
		}
		return i.withState(ctx)
	case dto.ActionUpdateFocusReminderMinutes:
		if msg.Minutes == nil {
			return dto.Response{}, fmt.Errorf("%w: minutes is required", apperrors.ErrInvalidInput)
		}
		status, err := i.blocking.Status(ctx)
		if err != nil {
			return dto.Response{}, err
		}
		if err := i.reminder.UpdateMinutes(ctx, *msg.Minutes, status.IsBlocking); err != nil {
			return dto.Response{}, err
		}
		return i.withState(ctx)
	case dto.ActionStartWorkSession:
		input := sessiondto.StartInput{}
		if msg.Config != nil {
			input.Config = *msg.Config
		}
		session, err := i.session.Start(ctx, input)
		if err != nil {
			return dto.Response{}, err
		}
		return dto.Response{Session: &session}, nil
	case dto.ActionEndWorkSession:
		ended, err := i.session.End(ctx)
		if err != nil {
			return dto.Response{}, err
		}
		return dto.Response{Ended: &ended}, nil
	case dto.ActionUpdateSessionDefaults:
		if msg.Config == nil {
			return dto.Response{}, fmt.Errorf("%w: config is required", apperrors.ErrInvalidInput)
		}
		if _, err := i.session.UpdateDefaults(ctx, *msg.Config); err != nil {
			return dto.Response{}, err
		}
		return i.withState(ctx)
	case dto.ActionGetState:
		return i.withState(ctx)
	case dto.ActionGetHistory:
		entries, err := i.history.List(ctx)
		if err != nil {
			return dto.Response{}, err
		}
		return dto.Response{History: entries}, nil
	default:
		return dto.Response{}, apperrors.ErrUnknownAction
	}
}

func (i *Interactor) withState(ctx context.Context) (dto.Response, error) {
	state, err := i.state(ctx)
	if err != nil {
		return dto.Response{}, err
	}
	return dto.Response{State: &state}, nil
}

func (i *Interactor) state(ctx context.Context) (dto.StateOutput, error) {
	blocking, err := i.blocking.Status(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	reminder, err := i.reminder.Status(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	defaults, err := i.session.Defaults(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	state := dto.StateOutput{
		IsBlocking:           blocking.IsBlocking,
		BlockList:            blocking.BlockList,
		FocusReminderMinutes: reminder.Minutes,
		ReminderArmed:        reminder.Armed,
		SessionDefaults:      defaults,
	}
	session, err := i.session.Status(ctx)
	switch {
	case err == nil:
		state.Session = &session
	case !errors.Is(err, apperrors.ErrNoActiveSession):
		return dto.StateOutput{}, err
	}
	return state, nil
}

func (i *Interactor) HandleAlarm(ctx context.Context, name string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var err error
	switch {
	case name == reminderdto.AlarmName:
		status, statusErr := i.blocking.Status(ctx)
		if statusErr != nil {
			err = statusErr
			break
		}
		err = i.reminder.HandleAlarm(ctx, status.IsBlocking)
	case sessiondto.OwnsAlarm(name):
		err = i.session.HandleAlarm(ctx, name)
	default:
		i.logger.Warn("unknown alarm ignored", "alarm", name)
		return
	}
	if err != nil {
		i.logger.Error("alarm handler failed", "alarm", name, "error", err)
	}
}

// Boot brings persisted state back in line after a restart: installed rules,
// the focus reminder, the current session, and the history window. Each step
// runs even when an earlier one fails.
func (i *Interactor) Boot(ctx context.Context) (dto.BootOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var out dto.BootOutput
	var errs []error

	reconciled, err := i.blocking.Reconcile(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("reconcile rules: %w", err))
	}
	out.RulesRemoved, out.RulesAdded = reconciled.Removed, reconciled.Added

	status, err := i.blocking.Status(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("load focus state: %w", err))
	} else if err := i.reminder.Rearm(ctx, status.IsBlocking); err != nil {
		errs = append(errs, fmt.Errorf("rearm focus reminder: %w", err))
	}
	if reminder, err := i.reminder.Status(ctx); err == nil {
		out.ReminderArmed = reminder.Armed
	}

	recovered, err := i.session.Recover(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("recover session: %w", err))
	}
	out.SessionAction = recovered.Action

	pruned, err := i.history.PruneNow(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("prune history: %w", err))
	}
	out.HistoryPruned = pruned

	i.logger.Info("boot recovery finished",
		"rules_removed", out.RulesRemoved,
		"rules_added", out.RulesAdded,
		"session", out.SessionAction,
		"history_pruned", out.HistoryPruned,
	)
	return out, errors.Join(errs...)
}
