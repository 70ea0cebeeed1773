package in

import (
	"context"

	checklistdto "lofi/internal/modules/checklist/dto"
	checklistin "lofi/internal/modules/checklist/port/in"
)

type CLIHandler struct {
	usecase checklistin.Usecase
}

func NewCLIHandler(usecase checklistin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (checklistdto.Snapshot, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context) (checklistdto.Snapshot, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Add(ctx context.Context, text string) (checklistdto.TaskOutput, error) {
	return h.usecase.Add(ctx, checklistdto.AddInput{Text: text})
}

func (h CLIHandler) Toggle(ctx context.Context, id string) (checklistdto.ToggleOutput, error) {
	return h.usecase.Toggle(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Rollover(ctx context.Context) (checklistdto.RolloverOutput, error) {
	return h.usecase.Rollover(ctx)
}
