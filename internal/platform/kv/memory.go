package kv

import (
	"context"
	"sync"

	apperrors "lofi/internal/platform/errors"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remember(ctx, key)
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remember(ctx, key)
	delete(s.data, key)
	return nil
}

type journalKey struct{}

// journal holds the value each key had before a unit first wrote it.
type journal struct {
	prior map[string][]byte
}

// Within undoes the keys fn wrote when fn fails. Keys written by other
// callers in the meantime are left alone. Nested calls join the outer unit.
func (s *MemoryStore) Within(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}
	j := &journal{prior: map[string][]byte{}}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		s.mu.Lock()
		for key, v := range j.prior {
			if v == nil {
				delete(s.data, key)
				continue
			}
			s.data[key] = v
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// remember records key's current value the first time the unit in ctx
// touches it. Callers hold mu.
func (s *MemoryStore) remember(ctx context.Context, key string) {
	j, ok := ctx.Value(journalKey{}).(*journal)
	if !ok {
		return
	}
	if _, seen := j.prior[key]; seen {
		return
	}
	v, existed := s.data[key]
	if existed && v == nil {
		v = []byte{}
	}
	j.prior[key] = v
}

func (s *MemoryStore) Close() error { return nil }
