package out

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "lofi/internal/platform/errors"
	"lofi/internal/platform/kv"
)

type KVFlagStore struct {
	store  kv.Store
	logger *zap.Logger
}

func NewKVFlagStore(store kv.Store, logger *zap.Logger) *KVFlagStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVFlagStore{store: store, logger: logger}
}

func (s *KVFlagStore) Read(ctx context.Context) string {
	raw, err := s.store.Get(ctx, kv.KeyOnboarding)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("onboarding flag unreadable", zap.Error(err))
		}
		return ""
	}
	return string(raw)
}

func (s *KVFlagStore) Write(ctx context.Context, value string) error {
	return s.store.Set(ctx, kv.KeyOnboarding, []byte(value))
}

func (s *KVFlagStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, kv.KeyOnboarding)
}
