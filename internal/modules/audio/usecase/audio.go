package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"lofi/internal/modules/audio/domain"
	"lofi/internal/modules/audio/dto"
	audioin "lofi/internal/modules/audio/port/in"
	audioout "lofi/internal/modules/audio/port/out"
)

// Interactor drives one Output from the Player state. Playback failures are
// absorbed: the state simply reports not playing.
type Interactor struct {
	tracks []domain.Track
	output audioout.Output
	logger *zap.Logger

	mu     sync.Mutex
	player domain.Player
	loaded int
	nextID int
	subs   map[int]func(dto.PlayerState)
}

func NewInteractor(tracks []domain.Track, output audioout.Output, logger *zap.Logger) audioin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	i := &Interactor{
		tracks: tracks,
		output: output,
		logger: logger,
		player: domain.NewPlayer(len(tracks)),
		loaded: -1,
		subs:   map[int]func(dto.PlayerState){},
	}
	output.SetVolume(i.player.EffectiveVolume())
	output.OnEnded(func() { i.TrackEnded(context.Background()) })
	return i
}

func (i *Interactor) State(context.Context) dto.PlayerState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stateLocked()
}

func (i *Interactor) TogglePlay(ctx context.Context) dto.PlayerState {
	return i.apply(func() {
		if i.player.IsPlaying {
			if err := i.output.Pause(); err != nil {
				i.logger.Warn("pause failed", zap.Error(err))
			}
			i.player = i.player.WithPlaying(false)
			return
		}
		i.player = i.player.WithPlaying(true)
		i.startLocked(ctx)
	})
}

func (i *Interactor) Skip(ctx context.Context) dto.PlayerState {
	return i.apply(func() {
		i.player = i.player.Next()
		i.startLocked(ctx)
	})
}

// TrackEnded advances exactly like Skip.
func (i *Interactor) TrackEnded(ctx context.Context) dto.PlayerState {
	i.logger.Debug("track ended")
	return i.Skip(ctx)
}

func (i *Interactor) SetVolume(_ context.Context, v float64) dto.PlayerState {
	return i.apply(func() {
		i.player = i.player.WithVolume(v)
		i.output.SetVolume(i.player.EffectiveVolume())
	})
}

func (i *Interactor) ToggleMute(context.Context) dto.PlayerState {
	return i.apply(func() {
		i.player = i.player.ToggleMute()
		i.output.SetVolume(i.player.EffectiveVolume())
	})
}

func (i *Interactor) PlayChime(ctx context.Context) error {
	return i.output.PlayChime(ctx, domain.ChimeURL, domain.ChimeVolume)
}

func (i *Interactor) Subscribe(fn func(dto.PlayerState)) func() {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := i.nextID
	i.nextID++
	i.subs[id] = fn
	return func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		delete(i.subs, id)
	}
}

func (i *Interactor) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.player = i.player.WithPlaying(false)
	return i.output.Close()
}

func (i *Interactor) apply(fn func()) dto.PlayerState {
	i.mu.Lock()
	fn()
	state := i.stateLocked()
	subs := make([]func(dto.PlayerState), 0, len(i.subs))
	for _, s := range i.subs {
		subs = append(subs, s)
	}
	i.mu.Unlock()

	for _, s := range subs {
		s(state)
	}
	return state
}

// startLocked loads the current track when it changed and starts it. A
// rejected start reverts to not playing.
func (i *Interactor) startLocked(ctx context.Context) {
	if len(i.tracks) == 0 {
		i.player = i.player.WithPlaying(false)
		return
	}
	track := i.tracks[i.player.Index]
	if i.loaded != i.player.Index {
		if err := i.output.Load(ctx, track); err != nil {
			i.logger.Warn("load track failed", zap.String("track", track.Title), zap.Error(err))
			i.loaded = -1
			i.player = i.player.WithPlaying(false)
			return
		}
		i.loaded = i.player.Index
	}
	if err := i.output.Play(); err != nil {
		i.logger.Warn("playback rejected", zap.String("track", track.Title), zap.Error(err))
		i.player = i.player.WithPlaying(false)
		return
	}
	i.logger.Debug("playing", zap.String("track", track.Title))
}

func (i *Interactor) stateLocked() dto.PlayerState {
	out := dto.PlayerState{
		Index:           i.player.Index,
		TrackCount:      i.player.TrackCount(),
		IsPlaying:       i.player.IsPlaying,
		Volume:          i.player.Volume,
		Muted:           i.player.Muted,
		Silent:          i.player.Silent(),
		EffectiveVolume: i.player.EffectiveVolume(),
	}
	if i.player.Index < len(i.tracks) {
		out.TrackID = i.tracks[i.player.Index].ID
		out.Title = i.tracks[i.player.Index].Title
	}
	return out
}
