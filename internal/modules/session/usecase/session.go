package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	blockingin "focusguard/internal/modules/blocking/port/in"
	historydto "focusguard/internal/modules/history/dto"
	historyin "focusguard/internal/modules/history/port/in"
	notifydto "focusguard/internal/modules/notify/dto"
	notifyin "focusguard/internal/modules/notify/port/in"
	"focusguard/internal/modules/session/domain"
	sessiondto "focusguard/internal/modules/session/dto"
	sessionin "focusguard/internal/modules/session/port/in"
	sessionout "focusguard/internal/modules/session/port/out"
	"focusguard/internal/modules/session/service"
	apperrors "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logging"
)

type reminderMessage struct {
	kind    string
	title   string
	message string
}

var reminderMessages = map[string]reminderMessage{
	domain.AlarmEyeBreak: {kind: notifydto.KindEyeBreak, title: "Eye break", message: "Look at something 20 feet away for 20 seconds."},
	domain.AlarmWater:    {kind: notifydto.KindWater, title: "Hydrate", message: "Time for a glass of water."},
	domain.AlarmMovement: {kind: notifydto.KindMovement, title: "Move", message: "Stand up and stretch for a minute."},
}

type Interactor struct {
	svc      *service.SessionService
	store    sessionout.SessionStore
	blocking blockingin.Usecase
	history  historyin.Usecase
	notifier notifyin.Usecase
	logger   hclog.Logger
}

func NewInteractor(svc *service.SessionService, store sessionout.SessionStore, blocking blockingin.Usecase, history historyin.Usecase, notifier notifyin.Usecase, logger hclog.Logger) sessionin.Usecase {
	return &Interactor{svc: svc, store: store, blocking: blocking, history: history, notifier: notifier, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	defaults, err := i.store.LoadDefaults(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("load session defaults: %w", err)
	}
	settings := toDomainConfig(input.Config).Over(defaults).Resolve()
	if err := settings.Validate(); err != nil {
		return sessiondto.SessionOutput{}, err
	}

	previous, found, err := i.store.LoadCurrent(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("load current session: %w", err)
	}
	priorFocus := false
	switch {
	case found && previous.Running(i.svc.Now()):
		i.logger.Warn("new work session replaces an active one", "previous_intent", previous.Intent, "previous_end", previous.EndTime)
		priorFocus = previous.PriorFocusActive
	default:
		if found && previous.IsActive {
			if _, err := i.complete(ctx, previous, historydto.ReasonAutoEnd); err != nil {
				return sessiondto.SessionOutput{}, err
			}
		}
		status, err := i.blocking.Status(ctx)
		if err != nil {
			return sessiondto.SessionOutput{}, err
		}
		priorFocus = status.IsBlocking
	}

	session, err := i.svc.NewSession(settings, priorFocus)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if err := i.store.SaveCurrent(ctx, session); err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("save session: %w", err)
	}
	if _, err := i.blocking.SetBlocking(ctx, true); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if err := i.svc.ScheduleAlarms(ctx, session); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	i.logger.Info("work session started", "intent", session.Intent, "duration_minutes", session.DurationMinutes, "end", session.EndTime)
	return toOutput(session, i.svc.Now()), nil
}

func (i *Interactor) End(ctx context.Context) (sessiondto.EndOutput, error) {
	session, found, err := i.store.LoadCurrent(ctx)
	if err != nil {
		return sessiondto.EndOutput{}, fmt.Errorf("load current session: %w", err)
	}
	if !found {
		return sessiondto.EndOutput{}, apperrors.ErrNoActiveSession
	}
	return i.complete(ctx, session, historydto.ReasonManualEnd)
}

func (i *Interactor) HandleAlarm(ctx context.Context, name string) error {
	session, found, err := i.store.LoadCurrent(ctx)
	if err != nil {
		return fmt.Errorf("load current session: %w", err)
	}
	if !found {
		i.logger.Debug("stale session alarm ignored", "alarm", name, "reason", "no session")
		return nil
	}
	now := i.svc.Now()

	if name == domain.AlarmSessionEnd {
		if !session.IsActive {
			i.logger.Debug("stale session alarm ignored", "alarm", name, "reason", "session ended")
			return nil
		}
		if !session.Expired(now) {
			remaining, err := i.svc.RearmEnd(ctx, session)
			if err != nil {
				return err
			}
			i.logger.Debug("early session end alarm rearmed", "remaining_minutes", remaining)
			return nil
		}
		_, err := i.complete(ctx, session, historydto.ReasonCompleted)
		return err
	}

	msg, ok := reminderMessages[name]
	if !ok {
		i.logger.Warn("unknown session alarm ignored", "alarm", name)
		return nil
	}
	if !session.ReminderDue(name, now) {
		i.logger.Debug("stale session alarm ignored", "alarm", name, "reason", "reminder not due")
		return nil
	}
	return i.notify(ctx, notifydto.Notification{Kind: msg.kind, Title: msg.title, Message: msg.message})
}

func (i *Interactor) Recover(ctx context.Context) (sessiondto.RecoverOutput, error) {
	session, found, err := i.store.LoadCurrent(ctx)
	if err != nil {
		return sessiondto.RecoverOutput{}, fmt.Errorf("load current session: %w", err)
	}
	if !found || !session.IsActive {
		return sessiondto.RecoverOutput{Action: sessiondto.RecoveryNone}, nil
	}
	now := i.svc.Now()
	if session.Expired(now) {
		if _, err := i.complete(ctx, session, historydto.ReasonAutoEnd); err != nil {
			return sessiondto.RecoverOutput{}, err
		}
		return sessiondto.RecoverOutput{Action: sessiondto.RecoveryEnded}, nil
	}
	if err := i.svc.ScheduleAlarms(ctx, session); err != nil {
		return sessiondto.RecoverOutput{}, err
	}
	remaining := domain.RemainingMinutes(session.EndTime, now)
	i.logger.Info("work session recovered", "remaining_minutes", remaining)
	return sessiondto.RecoverOutput{Action: sessiondto.RecoveryRescheduled, RemainingMinutes: remaining}, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.SessionOutput, error) {
	session, found, err := i.store.LoadCurrent(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, fmt.Errorf("load current session: %w", err)
	}
	if !found {
		return sessiondto.SessionOutput{}, apperrors.ErrNoActiveSession
	}
	return toOutput(session, i.svc.Now()), nil
}

func (i *Interactor) Defaults(ctx context.Context) (sessiondto.SessionConfig, error) {
	defaults, err := i.store.LoadDefaults(ctx)
	if err != nil {
		return sessiondto.SessionConfig{}, fmt.Errorf("load session defaults: %w", err)
	}
	return toDTOConfig(defaults), nil
}

// UpdateDefaults merges config over the saved defaults.
func (i *Interactor) UpdateDefaults(ctx context.Context, config sessiondto.SessionConfig) (sessiondto.SessionConfig, error) {
	current, err := i.store.LoadDefaults(ctx)
	if err != nil {
		return sessiondto.SessionConfig{}, fmt.Errorf("load session defaults: %w", err)
	}
	merged := toDomainConfig(config).Over(current)
	if err := merged.Resolve().Validate(); err != nil {
		return sessiondto.SessionConfig{}, err
	}
	if err := i.store.SaveDefaults(ctx, merged); err != nil {
		return sessiondto.SessionConfig{}, fmt.Errorf("save session defaults: %w", err)
	}
	return toDTOConfig(merged), nil
}

// complete is the single completion path for manual end, the end alarm and
// recovery. History recording is idempotent per session start, so a retry
// after a failed save never appends a second entry. Session alarms are
// cleared only once the ended session is stored; on failure they are re-armed
// so the end alarm retries.
func (i *Interactor) complete(ctx context.Context, session domain.WorkSession, reason string) (sessiondto.EndOutput, error) {
	now := i.svc.Now()
	updated, fresh := session.Complete(now)
	if !fresh {
		if err := i.store.SaveCurrent(ctx, updated); err != nil {
			return sessiondto.EndOutput{}, fmt.Errorf("save session: %w", err)
		}
		i.logger.Debug("duplicate session completion ignored", "reason", reason)
		return sessiondto.EndOutput{Reason: reason, AlreadyRecorded: true}, nil
	}

	entry, err := i.history.Record(ctx, historydto.RecordInput{
		StartTime:                session.StartTime,
		EndTime:                  session.EndTime,
		ActualEndTime:            now,
		DurationMinutes:          session.DurationMinutes,
		Intent:                   session.Intent,
		CompletedReason:          reason,
		EyeBreakEnabled:          session.EyeBreakEnabled,
		WaterReminderEnabled:     session.WaterReminderEnabled,
		WaterReminderInterval:    session.WaterReminderInterval,
		MovementReminderEnabled:  session.MovementReminderEnabled,
		MovementReminderInterval: session.MovementReminderInterval,
	})
	if err != nil {
		i.rearmAfterFailure(ctx, session)
		return sessiondto.EndOutput{}, fmt.Errorf("record session history: %w", err)
	}
	if err := i.store.SaveCurrent(ctx, updated); err != nil {
		i.rearmAfterFailure(ctx, session)
		return sessiondto.EndOutput{}, fmt.Errorf("save session: %w", err)
	}
	if err := i.svc.ClearAlarms(ctx); err != nil {
		i.logger.Error("clear session alarms", "error", err)
	}

	if !updated.PriorFocusActive {
		if _, err := i.blocking.SetBlocking(ctx, false); err != nil {
			i.logger.Error("restore focus state", "error", err)
		}
	}
	i.logger.Info("work session completed", "reason", reason, "actual_minutes", entry.ActualDurationMinutes)
	_ = i.notify(ctx, notifydto.Notification{
		Kind:    notifydto.KindSessionComplete,
		Title:   "Work session complete",
		Message: completionMessage(session.Intent, entry.ActualDurationMinutes),
	})
	return sessiondto.EndOutput{Reason: reason, ActualDurationMinutes: entry.ActualDurationMinutes}, nil
}

// rearmAfterFailure restores the alarms of a session whose completion did not
// persist. The end alarm fires again within a minute.
func (i *Interactor) rearmAfterFailure(ctx context.Context, session domain.WorkSession) {
	if err := i.svc.ScheduleAlarms(ctx, session); err != nil {
		i.logger.Error("rearm session alarms after failed completion", "error", err)
	}
}

func (i *Interactor) notify(ctx context.Context, n notifydto.Notification) error {
	if i.notifier == nil {
		return nil
	}
	if err := i.notifier.Notify(ctx, n); err != nil {
		i.logger.Warn("notification rejected", "kind", n.Kind, "error", err)
		return err
	}
	return nil
}

func completionMessage(intent string, minutes int) string {
	if intent == "" {
		return fmt.Sprintf("You focused for %d minutes.", minutes)
	}
	return fmt.Sprintf("%s: you focused for %d minutes.", intent, minutes)
}

func toOutput(s domain.WorkSession, now time.Time) sessiondto.SessionOutput {
	remaining := 0
	if s.Running(now) {
		remaining = int(s.EndTime.Sub(now).Seconds())
	}
	return sessiondto.SessionOutput{
		IsActive:                 s.IsActive,
		StartTime:                s.StartTime,
		EndTime:                  s.EndTime,
		DurationMinutes:          s.DurationMinutes,
		Intent:                   s.Intent,
		EyeBreakEnabled:          s.EyeBreakEnabled,
		WaterReminderEnabled:     s.WaterReminderEnabled,
		WaterReminderInterval:    s.WaterReminderInterval,
		MovementReminderEnabled:  s.MovementReminderEnabled,
		MovementReminderInterval: s.MovementReminderInterval,
		HistoryRecorded:          s.HistoryRecorded,
		ActualEndTime:            s.ActualEndTime,
		RemainingSeconds:         remaining,
	}
}

func toDomainConfig(c sessiondto.SessionConfig) domain.Config {
	return domain.Config{
		DurationMinutes:          c.DurationMinutes,
		Intent:                   c.Intent,
		EyeBreakEnabled:          c.EyeBreakEnabled,
		WaterReminderEnabled:     c.WaterReminderEnabled,
		WaterReminderInterval:    c.WaterReminderInterval,
		MovementReminderEnabled:  c.MovementReminderEnabled,
		MovementReminderInterval: c.MovementReminderInterval,
	}
}

func toDTOConfig(c domain.Config) sessiondto.SessionConfig {
	return sessiondto.SessionConfig{
		DurationMinutes:          c.DurationMinutes,
		Intent:                   c.Intent,
		EyeBreakEnabled:          c.EyeBreakEnabled,
		WaterReminderEnabled:     c.WaterReminderEnabled,
		WaterReminderInterval:    c.WaterReminderInterval,
		MovementReminderEnabled:  c.MovementReminderEnabled,
		MovementReminderInterval: c.MovementReminderInterval,
	}
}
