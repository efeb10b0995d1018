package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"focusguard/internal/modules/history/domain"
	historydto "focusguard/internal/modules/history/dto"
	historyin "focusguard/internal/modules/history/port/in"
	historyout "focusguard/internal/modules/history/port/out"
	"focusguard/internal/modules/history/service"
	apperrors "focusguard/internal/platform/errors"
	"focusguard/internal/platform/logging"
)

type Interactor struct {
	svc    *service.HistoryService
	notes  historyout.NoteWriter
	logger hclog.Logger
}

func NewInteractor(svc *service.HistoryService, notes historyout.NoteWriter, logger hclog.Logger) historyin.Usecase {
	return &Interactor{svc: svc, notes: notes, logger: logging.OrDiscard(logger)}
}

func (i *Interactor) Record(ctx context.Context, input historydto.RecordInput) (historydto.EntryOutput, error) {
	switch input.CompletedReason {
	case domain.ReasonCompleted, domain.ReasonManualEnd, domain.ReasonAutoEnd:
	default:
		return historydto.EntryOutput{}, fmt.Errorf("%w: unknown completion reason %q", apperrors.ErrInvalidInput, input.CompletedReason)
	}
	entry, appended, err := i.svc.Record(ctx, domain.Snapshot{
		StartTime:                input.StartTime,
		EndTime:                  input.EndTime,
		ActualEndTime:            input.ActualEndTime,
		DurationMinutes:          input.DurationMinutes,
		Intent:                   input.Intent,
		EyeBreakEnabled:          input.EyeBreakEnabled,
		WaterReminderEnabled:     input.WaterReminderEnabled,
		WaterReminderInterval:    input.WaterReminderInterval,
		MovementReminderEnabled:  input.MovementReminderEnabled,
		MovementReminderInterval: input.MovementReminderInterval,
	}, input.CompletedReason)
	if err != nil {
		return historydto.EntryOutput{}, err
	}
	out := toOutput(entry)
	if !appended {
		i.logger.Warn("session already recorded", "id", entry.ID, "start", entry.StartTime)
		out.Duplicate = true
		return out, nil
	}
	i.logger.Info("session recorded", "id", entry.ID, "reason", entry.CompletedReason, "actual_minutes", entry.ActualDurationMinutes)
	return out, nil
}

func (i *Interactor) PruneNow(ctx context.Context) (int, error) {
	removed, err := i.svc.PruneNow(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		i.logger.Info("history pruned", "removed", removed)
	}
	return removed, nil
}

func (i *Interactor) List(ctx context.Context) ([]historydto.EntryOutput, error) {
	entries, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]historydto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toOutput(entry))
	}
	return out, nil
}

func (i *Interactor) Export(ctx context.Context, dir string) (historydto.ExportOutput, error) {
	if strings.TrimSpace(dir) == "" {
		return historydto.ExportOutput{}, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	if i.notes == nil {
		return historydto.ExportOutput{}, fmt.Errorf("note writer is not configured")
	}
	entries, err := i.svc.List(ctx)
	if err != nil {
		return historydto.ExportOutput{}, err
	}
	out := historydto.ExportOutput{Dir: dir, Paths: make([]string, 0, len(entries))}
	for _, entry := range entries {
		path, err := i.notes.WriteEntry(ctx, dir, entry)
		if err != nil {
			return historydto.ExportOutput{}, err
		}
		out.Paths = append(out.Paths, path)
	}
	indexPath, err := i.notes.WriteIndex(ctx, dir, entries)
	if err != nil {
		return historydto.ExportOutput{}, err
	}
	out.IndexPath = indexPath
	return out, nil
}

func toOutput(entry domain.Entry) historydto.EntryOutput {
	return historydto.EntryOutput{
		ID:                       entry.ID,
		StartTime:                entry.StartTime,
		EndTime:                  entry.EndTime,
		ActualEndTime:            entry.ActualEndTime,
		DurationMinutes:          entry.DurationMinutes,
		ActualDurationMinutes:    entry.ActualDurationMinutes,
		Intent:                   entry.Intent,
		CompletedReason:          entry.CompletedReason,
		EyeBreakEnabled:          entry.EyeBreakEnabled,
		WaterReminderEnabled:     entry.WaterReminderEnabled,
		WaterReminderInterval:    entry.WaterReminderInterval,
		MovementReminderEnabled:  entry.MovementReminderEnabled,
		MovementReminderInterval: entry.MovementReminderInterval,
	}
}
