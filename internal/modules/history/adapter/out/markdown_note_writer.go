package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focusguard/internal/modules/history/domain"
	historyout "focusguard/internal/modules/history/port/out"
	"focusguard/internal/platform/markdown"
	"focusguard/internal/platform/slug"
)

const (
	indexFile        = "index.md"
	indexStartMarker = "<!-- focusguard:history:start -->"
	indexEndMarker   = "<!-- focusguard:history:end -->"
)

// MarkdownNoteWriter exports history entries as markdown notes with YAML
// frontmatter. Re-exporting refreshes the frontmatter and keeps any body
// text edited since the last export.
type MarkdownNoteWriter struct{}

func NewMarkdownNoteWriter() historyout.NoteWriter {
	return MarkdownNoteWriter{}
}

func (MarkdownNoteWriter) WriteEntry(_ context.Context, dir string, entry domain.Entry) (string, error) {
	start := entry.StartTime.UTC()
	noteDir := filepath.Join(dir, start.Format("2006"), start.Format("01"), start.Format("02"))
	if err := os.MkdirAll(noteDir, 0o755); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}
	path := filepath.Join(noteDir, fmt.Sprintf("%s-%s.md", start.Format("150405"), slug.Make(entry.Intent)))

	body := fmt.Sprintf("# %s\n\n- Planned: %d minutes\n- Actual: %d minutes\n- Ended: %s\n", title(entry), entry.DurationMinutes, entry.ActualDurationMinutes, entry.CompletedReason)
	existing, err := readNote(path)
	if err != nil {
		return "", err
	}
	if existing != nil {
		body = existing.Body
	}

	note := markdown.Note{
		Meta: map[string]any{
			"id":                      entry.ID,
			"intent":                  entry.Intent,
			"start_time":              entry.StartTime.UTC().Format(time.RFC3339),
			"end_time":                entry.EndTime.UTC().Format(time.RFC3339),
			"actual_end_time":         entry.ActualEndTime.UTC().Format(time.RFC3339),
			"duration_minutes":        entry.DurationMinutes,
			"actual_duration_minutes": entry.ActualDurationMinutes,
			"completed_reason":        entry.CompletedReason,
			"eye_break":               entry.EyeBreakEnabled,
			"water_reminder":          reminderMeta(entry.WaterReminderEnabled, entry.WaterReminderInterval),
			"movement_reminder":       reminderMeta(entry.MovementReminderEnabled, entry.MovementReminderInterval),
		},
		Body: body,
	}
	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write history note: %w", err)
	}
	return path, nil
}

func (MarkdownNoteWriter) WriteIndex(_ context.Context, dir string, entries []domain.Entry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}
	path := filepath.Join(dir, indexFile)
	body := "# Work sessions\n"
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		body = string(raw)
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read history index: %w", err)
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		start := entry.StartTime.UTC()
		lines = append(lines, fmt.Sprintf("- %s %s: %s (%d/%d min, %s)",
			start.Format("2006-01-02"), start.Format("15:04"), title(entry), entry.ActualDurationMinutes, entry.DurationMinutes, entry.CompletedReason))
	}
	if len(lines) == 0 {
		lines = append(lines, "_No sessions in the last 7 days._")
	}
	body = markdown.ReplaceBlock(body, indexStartMarker, indexEndMarker, strings.Join(lines, "\n"))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write history index: %w", err)
	}
	return path, nil
}

func readNote(path string) (*markdown.Note, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history note: %w", err)
	}
	note, err := markdown.Parse(string(raw))
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func title(entry domain.Entry) string {
	if strings.TrimSpace(entry.Intent) == "" {
		return "Work session"
	}
	return entry.Intent
}

func reminderMeta(enabled bool, interval int) any {
	if !enabled {
		return false
	}
	return map[string]any{"every_minutes": interval}
}
