package onboarding

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"lofi/internal/ui/theme"
)

type OnboardingPort interface {
	Completed(ctx context.Context) bool
	Complete(ctx context.Context) error
}

// CheckedMsg carries whether the welcome screen must be shown.
type CheckedMsg struct{ Completed bool }

// CompletedMsg is emitted after the user dismissed the welcome screen.
type CompletedMsg struct{ Err error }

type Model struct {
	port     OnboardingPort
	markdown string
	rendered string
	visible  bool
	width    int
}

func New(port OnboardingPort, markdown string) Model {
	m := Model{port: port, markdown: markdown}
	m.render(60)
	return m
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return CheckedMsg{Completed: m.port.Completed(context.Background())}
	}
}

func (m Model) Visible() bool { return m.visible }

// Show reopens the welcome screen without touching the stored flag.
func (m *Model) Show() { m.visible = true }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.render(min(msg.Width-8, 72))
	case CheckedMsg:
		m.visible = !msg.Completed
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		if msg.String() == "enter" || msg.String() == " " {
			m.visible = false
			port := m.port
			return m, func() tea.Msg {
				return CompletedMsg{Err: port.Complete(context.Background())}
			}
		}
	}
	return m, nil
}

func (m *Model) render(width int) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.rendered = m.markdown
		return
	}
	out, err := r.Render(m.markdown)
	if err != nil {
		m.rendered = m.markdown
		return
	}
	m.rendered = strings.TrimSpace(out)
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	return theme.Dialog.Render(m.rendered + "\n\n" + theme.Hot.Render("[ Get Started ]"))
}
