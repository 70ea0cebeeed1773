package player

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	audiodto "lofi/internal/modules/audio/dto"
	"lofi/internal/ui/theme"
)

const volumeStep = 0.05

type AudioPort interface {
	State(ctx context.Context) audiodto.PlayerState
	TogglePlay(ctx context.Context) audiodto.PlayerState
	Skip(ctx context.Context) audiodto.PlayerState
	SetVolume(ctx context.Context, v float64) audiodto.PlayerState
	ToggleMute(ctx context.Context) audiodto.PlayerState
}

type StateMsg struct {
	State audiodto.PlayerState
}

type Model struct {
	port    AudioPort
	state   audiodto.PlayerState
	focused bool
	width   int
}

func New(port AudioPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.run(func(ctx context.Context) audiodto.PlayerState { return m.port.State(ctx) })
}

func (m *Model) SetFocused(f bool) { m.focused = f }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case StateMsg:
		m.state = msg.State
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case " ", "enter":
			return m, m.TogglePlayCmd()
		case "n":
			return m, m.SkipCmd()
		case "m":
			return m, m.ToggleMuteCmd()
		case "+", "=", "right":
			return m, m.SetVolumeCmd(m.state.Volume + volumeStep)
		case "-", "left":
			return m, m.SetVolumeCmd(m.state.Volume - volumeStep)
		}
	}
	return m, nil
}

func (m Model) TogglePlayCmd() tea.Cmd {
	return m.run(m.port.TogglePlay)
}

func (m Model) SkipCmd() tea.Cmd {
	return m.run(m.port.Skip)
}

func (m Model) ToggleMuteCmd() tea.Cmd {
	return m.run(m.port.ToggleMute)
}

func (m Model) SetVolumeCmd(v float64) tea.Cmd {
	// snap to the step grid so repeated presses land on round values
	v = math.Round(v/volumeStep) * volumeStep
	return m.run(func(ctx context.Context) audiodto.PlayerState { return m.port.SetVolume(ctx, v) })
}

func (m Model) run(fn func(context.Context) audiodto.PlayerState) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{State: fn(context.Background())}
	}
}

func (m Model) View() string {
	st := m.state
	icon := "▶"
	if st.IsPlaying {
		icon = "❚❚"
	}
	speaker := "🔊"
	if st.Silent {
		speaker = "🔇"
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Now Playing") + "\n\n")
	title := st.Title
	if title == "" {
		title = "—"
	}
	sb.WriteString(theme.Hot.Render(icon) + "  " + title + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("track %d/%d", st.Index+1, st.TrackCount)) + "\n\n")
	sb.WriteString(speaker + " " + volumeBar(st.EffectiveVolume, 20) + "\n\n")
	sb.WriteString(theme.Muted.Render("space: play/pause  n: next  -/+: volume  m: mute"))

	style := theme.Pane
	if m.focused {
		style = theme.PaneActive
	}
	return style.Width(max(m.width-2, 20)).Render(sb.String())
}

func volumeBar(v float64, width int) string {
	filled := int(math.Round(v * float64(width)))
	return theme.Hot.Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", width-filled))
}
