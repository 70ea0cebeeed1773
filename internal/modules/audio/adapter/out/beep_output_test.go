package out

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faiface/beep/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lofi/internal/modules/audio/domain"
	apperrors "lofi/internal/platform/errors"
)

func TestApplyLevelMapsLinearToBaseTwo(t *testing.T) {
	t.Parallel()
	v := &effects.Volume{Base: 2}

	applyLevel(v, 1)
	assert.False(t, v.Silent)
	assert.InDelta(t, 0, v.Volume, 1e-9)

	applyLevel(v, 0.5)
	assert.InDelta(t, -1, v.Volume, 1e-9)

	applyLevel(v, 0.25)
	assert.InDelta(t, -2, v.Volume, 1e-9)

	applyLevel(v, 0)
	assert.True(t, v.Silent)
}

func TestPlayWithoutTrackIsRejected(t *testing.T) {
	t.Parallel()
	o := NewBeepOutput(zap.NewNop())
	require.ErrorIs(t, o.Play(), apperrors.ErrPlaybackRejected)
	require.ErrorIs(t, o.Pause(), apperrors.ErrPlaybackRejected)
	o.SetVolume(0.3)
	assert.InDelta(t, 0.3, o.level, 1e-9)
	require.NoError(t, o.Close())
}

func TestFetchRejectsBadResponses(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("definitely not an mp3"))
	}))
	defer srv.Close()

	o := NewBeepOutput(zap.NewNop())
	_, _, err := o.fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	_, _, err = o.fetch(context.Background(), srv.URL+"/garbage")
	require.Error(t, err)
}

func TestSilentOutputNeverPlays(t *testing.T) {
	t.Parallel()
	var o SilentOutput
	require.NoError(t, o.Load(context.Background(), domain.Catalog()[0]))
	require.ErrorIs(t, o.Play(), apperrors.ErrPlaybackRejected)
	require.NoError(t, o.PlayChime(context.Background(), domain.ChimeURL, domain.ChimeVolume))
}
