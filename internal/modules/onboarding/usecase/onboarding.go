package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lofi/internal/modules/onboarding/domain"
	onboardingin "lofi/internal/modules/onboarding/port/in"
	onboardingout "lofi/internal/modules/onboarding/port/out"
)

type Interactor struct {
	store  onboardingout.FlagStore
	logger *zap.Logger
}

func NewInteractor(store onboardingout.FlagStore, logger *zap.Logger) onboardingin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{store: store, logger: logger}
}

func (i *Interactor) Completed(ctx context.Context) bool {
	return domain.IsCompleted(i.store.Read(ctx))
}

func (i *Interactor) Complete(ctx context.Context) error {
	if err := i.store.Write(ctx, domain.CompletedValue); err != nil {
		i.logger.Warn("save onboarding flag failed", zap.Error(err))
		return fmt.Errorf("complete onboarding: %w", err)
	}
	i.logger.Info("onboarding completed")
	return nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	if err := i.store.Clear(ctx); err != nil {
		return fmt.Errorf("reset onboarding: %w", err)
	}
	return nil
}

func (i *Interactor) Welcome() string {
	return domain.Welcome
}
