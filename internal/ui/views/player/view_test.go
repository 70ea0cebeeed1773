package player

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audiodto "lofi/internal/modules/audio/dto"
)

type fakeAudio struct {
	state   audiodto.PlayerState
	volumes []float64
	calls   []string
}

func (f *fakeAudio) State(context.Context) audiodto.PlayerState { return f.state }

func (f *fakeAudio) TogglePlay(context.Context) audiodto.PlayerState {
	f.calls = append(f.calls, "play")
	return f.state
}

func (f *fakeAudio) Skip(context.Context) audiodto.PlayerState {
	f.calls = append(f.calls, "skip")
	return f.state
}

func (f *fakeAudio) SetVolume(_ context.Context, v float64) audiodto.PlayerState {
	f.volumes = append(f.volumes, v)
	f.state.Volume = v
	return f.state
}

func (f *fakeAudio) ToggleMute(context.Context) audiodto.PlayerState {
	f.calls = append(f.calls, "mute")
	return f.state
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func focused(port *fakeAudio) Model {
	m := New(port)
	m.SetFocused(true)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(StateMsg{State: port.state})
	return m
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func TestVolumeKeysStepAndSnap(t *testing.T) {
	port := &fakeAudio{state: audiodto.PlayerState{Volume: 0.52}}
	m := focused(port)

	m = press(t, m, runes("+"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(t, m, runes("-"))

	require.Len(t, port.volumes, 3)
	assert.InDelta(t, 0.55, port.volumes[0], 1e-9)
	assert.InDelta(t, 0.50, port.volumes[1], 1e-9)
	assert.InDelta(t, 0.45, port.volumes[2], 1e-9)
	assert.InDelta(t, 0.45, m.state.Volume, 1e-9)
}

func TestTransportKeys(t *testing.T) {
	port := &fakeAudio{state: audiodto.PlayerState{Title: "Lofi Study", TrackCount: 3}}
	m := focused(port)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = press(t, m, runes("n"))
	m = press(t, m, runes("m"))
	assert.Equal(t, []string{"play", "skip", "mute"}, port.calls)
	assert.Contains(t, m.View(), "Lofi Study")
	assert.Contains(t, m.View(), "track 1/3")
}

func TestUnfocusedPlayerIgnoresKeys(t *testing.T) {
	m := New(&fakeAudio{})
	_, cmd := m.Update(runes("+"))
	assert.Nil(t, cmd)
}

func TestVolumeBarFillsProportionally(t *testing.T) {
	assert.Equal(t, volumeBar(0.5, 20), volumeBar(0.52, 20))
	assert.NotEqual(t, volumeBar(0, 20), volumeBar(1, 20))
}
