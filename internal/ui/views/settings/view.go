package settings

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	timerdto "lofi/internal/modules/timer/dto"
	apperrors "lofi/internal/platform/errors"
	"lofi/internal/ui/theme"
)

type SettingsPort interface {
	Settings(ctx context.Context) (timerdto.SettingsOutput, error)
	SaveSettings(ctx context.Context, focusMinutes, breakMinutes int) (timerdto.State, error)
}

// SavedMsg reports the outcome of a save; the dialog closes either way
// unless the input was rejected.
type SavedMsg struct {
	State timerdto.State
	Err   error
}

type ClosedMsg struct{}

type openedMsg struct {
	settings timerdto.SettingsOutput
	err      error
}

type Model struct {
	port    SettingsPort
	inputs  [2]textinput.Model
	focus   int
	visible bool
	errText string
	width   int
}

var dialogStyle = theme.Dialog.Background(theme.Mantle).Foreground(theme.Text)

func New(port SettingsPort) Model {
	var inputs [2]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 2
		ti.Width = 4
		inputs[i] = ti
	}
	inputs[0].Prompt = "Focus (min): "
	inputs[1].Prompt = "Break (min): "
	return Model{port: port, inputs: inputs}
}

func (m Model) Visible() bool { return m.visible }

func (m *Model) SetWidth(w int) { m.width = w }

// Open loads the current durations into the form.
func (m *Model) Open() tea.Cmd {
	m.visible = true
	m.errText = ""
	port := m.port
	return func() tea.Msg {
		s, err := port.Settings(context.Background())
		return openedMsg{settings: s, err: err}
	}
}

func (m *Model) close() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	switch msg := msg.(type) {
	case openedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		m.inputs[0].SetValue(strconv.Itoa(msg.settings.FocusMinutes))
		m.inputs[1].SetValue(strconv.Itoa(msg.settings.BreakMinutes))
		m.focus = 0
		return m, m.focusInput()

	case SavedMsg:
		if errors.Is(msg.Err, apperrors.ErrInvalidInput) {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.close()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.close()
			return m, func() tea.Msg { return ClosedMsg{} }
		case "tab", "down", "shift+tab", "up":
			m.focus = 1 - m.focus
			return m, m.focusInput()
		case "enter":
			return m, m.submit()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput() tea.Cmd {
	m.inputs[1-m.focus].Blur()
	return m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	focus, err1 := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value()))
	brk, err2 := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value()))
	if err1 != nil || err2 != nil {
		m.errText = "durations must be whole minutes"
		return nil
	}
	port := m.port
	return func() tea.Msg {
		st, err := port.SaveSettings(context.Background(), focus, brk)
		return SavedMsg{State: st, Err: err}
	}
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Timer Settings") + "\n\n")
	sb.WriteString(m.inputs[0].View() + "\n")
	sb.WriteString(m.inputs[1].View() + "\n\n")
	if m.errText != "" {
		sb.WriteString(theme.Error.Render(m.errText) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("focus 1-60, break 1-30  enter: save  esc: cancel"))
	w := m.width
	if w < 30 {
		w = 48
	}
	return dialogStyle.Width(w).Render(sb.String())
}
