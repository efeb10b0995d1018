package in

import (
	"context"

	"focusguard/internal/modules/history/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) (dto.EntryOutput, error)
	PruneNow(ctx context.Context) (int, error)
	List(ctx context.Context) ([]dto.EntryOutput, error)
	Export(ctx context.Context, dir string) (dto.ExportOutput, error)
}
