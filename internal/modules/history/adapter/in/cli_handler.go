package in

import (
	"context"

	"focusguard/internal/modules/history/dto"
	historyin "focusguard/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.EntryOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Export(ctx context.Context, dir string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dir)
}

func (h CLIHandler) Prune(ctx context.Context) (int, error) {
	return h.usecase.PruneNow(ctx)
}
