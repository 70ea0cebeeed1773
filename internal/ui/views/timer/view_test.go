package timer

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timerdto "lofi/internal/modules/timer/dto"
)

type fakeTimer struct {
	state  timerdto.State
	calls  []string
	failOn string
}

func (f *fakeTimer) result(call string) (timerdto.State, error) {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return timerdto.State{}, errors.New(call + " failed")
	}
	return f.state, nil
}

func (f *fakeTimer) State(context.Context) (timerdto.State, error)  { return f.result("state") }
func (f *fakeTimer) Toggle(context.Context) (timerdto.State, error) { return f.result("toggle") }
func (f *fakeTimer) Reset(context.Context) (timerdto.State, error)  { return f.result("reset") }

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")} }

func TestSpaceTogglesAndRResets(t *testing.T) {
	port := &fakeTimer{state: timerdto.State{Phase: "FOCUS", Clock: "24:59", IsRunning: true}}
	m := New(port)
	m.SetFocused(true)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	_, cmd := m.Update(space())
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.True(t, m.State().IsRunning)
	assert.Contains(t, m.View(), "space: pause")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []string{"toggle", "reset"}, port.calls)
}

func TestFailedCommandKeepsLastState(t *testing.T) {
	port := &fakeTimer{failOn: "toggle"}
	m := New(port)
	m.SetFocused(true)
	m, _ = m.Update(UpdateMsg{Update: timerdto.Update{State: timerdto.State{Clock: "25:00"}}})

	_, cmd := m.Update(space())
	m, _ = m.Update(cmd())
	assert.Equal(t, "25:00", m.State().Clock)
}

func TestUnfocusedTimerIgnoresKeys(t *testing.T) {
	m := New(&fakeTimer{})
	_, cmd := m.Update(space())
	assert.Nil(t, cmd)
}
