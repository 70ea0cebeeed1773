// Package kv is the device-local key-value store behind every persisted
// record. Values are opaque bytes; records are JSON-encoded by their owners.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	apperrors "lofi/internal/platform/errors"
	"lofi/internal/platform/tx"
)

// Record keys. Each holds one JSON value.
const (
	KeyTasks      = "lofi_tasks"
	KeyStats      = "lofi_stats"
	KeySettings   = "lofi_settings"
	KeyOnboarding = "lofi_onboarding_completed"
)

// Store is a synchronous string-keyed byte store. Get returns
// apperrors.ErrNotFound for a missing key. Writes made through the context
// handed to Within commit together.
type Store interface {
	tx.Manager
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadJSON decodes the record under key into a T. A missing key, a read
// failure or malformed content all yield def; the cause is only logged.
func LoadJSON[T any](ctx context.Context, store Store, logger *zap.Logger, key string, def T) T {
	payload, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("record read failed, using default", zap.String("key", key), zap.Error(err))
		}
		return def
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		logger.Debug("record malformed, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return out
}

// SaveJSON replaces the record under key as a single unit.
func SaveJSON(ctx context.Context, store Store, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
