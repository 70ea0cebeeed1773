package timer

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "lofi/internal/modules/timer/dto"
	"lofi/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	State(ctx context.Context) (timerdto.State, error)
	Toggle(ctx context.Context) (timerdto.State, error)
	Reset(ctx context.Context) (timerdto.State, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// UpdateMsg carries a published timer update into the program.
type UpdateMsg struct {
	Update timerdto.Update
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    TimerPort
	state   timerdto.State
	bar     progress.Model
	focused bool
	width   int
}

func New(port TimerPort) Model {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Peach)),
		progress.WithoutPercentage(),
	)
	return Model{port: port, bar: bar}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		st, err := m.port.State(context.Background())
		return UpdateMsg{Update: timerdto.Update{State: st}, Err: err}
	}
}

func (m *Model) SetFocused(f bool) { m.focused = f }

func (m Model) State() timerdto.State { return m.state }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(msg.Width-6, 10)
	case UpdateMsg:
		if msg.Err == nil {
			m.state = msg.Update.State
		}
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case " ", "enter":
			return m, m.ToggleCmd()
		case "r":
			return m, m.ResetCmd()
		}
	}
	return m, nil
}

func (m Model) ToggleCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.port.Toggle(context.Background())
		return UpdateMsg{Update: timerdto.Update{State: st}, Err: err}
	}
}

func (m Model) ResetCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.port.Reset(context.Background())
		return UpdateMsg{Update: timerdto.Update{State: st}, Err: err}
	}
}

func (m Model) View() string {
	st := m.state
	label := lipgloss.NewStyle().Foreground(theme.PhaseAccent(st.Phase)).Bold(true).Render(strings.ToUpper(st.Label))
	clock := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(st.Clock)

	action := "space: start"
	if st.IsRunning {
		action = "space: pause"
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Timer") + "\n\n")
	sb.WriteString(label + "\n")
	sb.WriteString(clock + "\n\n")
	bar := m.bar
	bar.FullColor = string(theme.PhaseAccent(st.Phase))
	sb.WriteString(bar.ViewAs(st.Progress) + "\n\n")
	sb.WriteString(theme.Muted.Render(action + "  r: reset  ,: settings"))

	style := theme.Pane
	if m.focused {
		style = theme.PaneActive
	}
	return style.Width(max(m.width-2, 20)).Render(sb.String())
}
