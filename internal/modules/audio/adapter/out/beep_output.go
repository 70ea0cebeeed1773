package out

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"

	"lofi/internal/modules/audio/domain"
	apperrors "lofi/internal/platform/errors"
)

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
)

// BeepOutput streams MP3 tracks over HTTP into the system speaker.
type BeepOutput struct {
	client *http.Client
	logger *zap.Logger

	initOnce sync.Once
	initErr  error
	ready    atomic.Bool

	mu      sync.Mutex
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	stream  beep.StreamSeekCloser
	level   float64
	onEnded func()
	chime   *beep.Buffer
	closed  bool
}

func NewBeepOutput(logger *zap.Logger) *BeepOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BeepOutput{
		// no overall timeout: the body is the whole track
		client: &http.Client{Transport: &http.Transport{ResponseHeaderTimeout: 15 * time.Second}},
		logger: logger,
		level:  domain.DefaultVolume,
	}
}

func (o *BeepOutput) initSpeaker() error {
	o.initOnce.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			o.initErr = fmt.Errorf("init speaker: %v: %w", err, apperrors.ErrPlaybackRejected)
			return
		}
		o.ready.Store(true)
	})
	return o.initErr
}

func (o *BeepOutput) fetch(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("build audio request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("fetch audio: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, beep.Format{}, fmt.Errorf("fetch audio: unexpected status %d", resp.StatusCode)
	}
	stream, format, err := mp3.Decode(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return nil, beep.Format{}, fmt.Errorf("decode audio: %w", err)
	}
	return stream, format, nil
}

// Load replaces the current track with url's stream, paused.
func (o *BeepOutput) Load(ctx context.Context, track domain.Track) error {
	if err := o.initSpeaker(); err != nil {
		return err
	}
	stream, format, err := o.fetch(ctx, track.URL)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		_ = stream.Close()
		return errors.New("audio output closed")
	}
	o.detachLocked()

	onEnded := o.onEnded
	ctrl := &beep.Ctrl{
		Streamer: beep.Seq(resampled(format, stream), beep.Callback(func() {
			// runs on the speaker goroutine with the speaker locked
			if onEnded != nil {
				go onEnded()
			}
		})),
		Paused: true,
	}
	vol := newVolume(ctrl, o.level)
	o.ctrl, o.volume, o.stream = ctrl, vol, stream
	speaker.Play(vol)
	o.logger.Debug("track loaded", zap.String("title", track.Title), zap.Int("sample_rate", int(format.SampleRate)))
	return nil
}

func (o *BeepOutput) Play() error {
	return o.setPaused(false)
}

func (o *BeepOutput) Pause() error {
	return o.setPaused(true)
}

func (o *BeepOutput) setPaused(paused bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl == nil {
		return fmt.Errorf("no track loaded: %w", apperrors.ErrPlaybackRejected)
	}
	speaker.Lock()
	o.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

func (o *BeepOutput) SetVolume(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.level = v
	if o.volume == nil {
		return
	}
	speaker.Lock()
	applyLevel(o.volume, v)
	speaker.Unlock()
}

func (o *BeepOutput) OnEnded(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onEnded = fn
}

// PlayChime buffers the cue on first use and plays it over whatever else is
// sounding.
func (o *BeepOutput) PlayChime(ctx context.Context, url string, volume float64) error {
	if err := o.initSpeaker(); err != nil {
		return err
	}
	o.mu.Lock()
	buf := o.chime
	o.mu.Unlock()
	if buf == nil {
		stream, format, err := o.fetch(ctx, url)
		if err != nil {
			return err
		}
		buf = beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: format.NumChannels, Precision: format.Precision})
		buf.Append(resampled(format, stream))
		_ = stream.Close()
		o.mu.Lock()
		o.chime = buf
		o.mu.Unlock()
	}
	speaker.Play(newVolume(buf.Streamer(0, buf.Len()), volume))
	return nil
}

func (o *BeepOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	o.detachLocked()
	if o.ready.Load() {
		speaker.Clear()
	}
	return nil
}

// detachLocked silences and releases the current track. A Ctrl with a nil
// streamer drains out of the mixer on the next pass.
func (o *BeepOutput) detachLocked() {
	if o.ctrl == nil {
		return
	}
	speaker.Lock()
	o.ctrl.Streamer = nil
	speaker.Unlock()
	if err := o.stream.Close(); err != nil {
		o.logger.Debug("close track stream", zap.Error(err))
	}
	o.ctrl, o.volume, o.stream = nil, nil, nil
}

func resampled(format beep.Format, s beep.Streamer) beep.Streamer {
	if format.SampleRate == sampleRate {
		return s
	}
	return beep.Resample(resampleQuality, format.SampleRate, sampleRate, s)
}

func newVolume(s beep.Streamer, level float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	applyLevel(v, level)
	return v
}

// applyLevel maps a linear 0..1 level onto the exponential volume effect.
func applyLevel(v *effects.Volume, level float64) {
	if level <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(math.Min(level, 1))
}
