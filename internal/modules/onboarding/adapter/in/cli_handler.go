package in

import (
	"context"

	onboardingin "lofi/internal/modules/onboarding/port/in"
)

type CLIHandler struct {
	usecase onboardingin.Usecase
}

func NewCLIHandler(usecase onboardingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Completed(ctx context.Context) bool {
	return h.usecase.Completed(ctx)
}

func (h CLIHandler) Complete(ctx context.Context) error {
	return h.usecase.Complete(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Welcome() string {
	return h.usecase.Welcome()
}
