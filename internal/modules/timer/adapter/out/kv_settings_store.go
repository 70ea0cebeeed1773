package out

import (
	"context"

	"go.uber.org/zap"

	"lofi/internal/modules/timer/domain"
	"lofi/internal/platform/kv"
)

type KVSettingsStore struct {
	store  kv.Store
	logger *zap.Logger
}

func NewKVSettingsStore(store kv.Store, logger *zap.Logger) *KVSettingsStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVSettingsStore{store: store, logger: logger}
}

// LoadSettings fills absent fields from the defaults and falls back to the
// defaults entirely when the stored durations are out of range.
func (s *KVSettingsStore) LoadSettings(ctx context.Context) domain.Settings {
	def := domain.DefaultSettings()
	settings := kv.LoadJSON(ctx, s.store, s.logger, kv.KeySettings, def)
	if settings.FocusMinutes == 0 {
		settings.FocusMinutes = def.FocusMinutes
	}
	if settings.BreakMinutes == 0 {
		settings.BreakMinutes = def.BreakMinutes
	}
	if err := settings.Validate(); err != nil {
		s.logger.Debug("stored timer settings rejected, using defaults", zap.Error(err))
		return def
	}
	return settings
}

func (s *KVSettingsStore) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return kv.SaveJSON(ctx, s.store, kv.KeySettings, settings)
}
