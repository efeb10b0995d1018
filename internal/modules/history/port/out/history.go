package out

import (
	"context"

	"focusguard/internal/modules/history/domain"
)

type HistoryStore interface {
	Load(ctx context.Context) ([]domain.Entry, error)
	Save(ctx context.Context, entries []domain.Entry) error
}

type NoteWriter interface {
	WriteEntry(ctx context.Context, dir string, entry domain.Entry) (string, error)
	WriteIndex(ctx context.Context, dir string, entries []domain.Entry) (string, error)
}
