package quote

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quotedto "lofi/internal/modules/quote/dto"
	"lofi/internal/ui/theme"
)

type QuotePort interface {
	Current(ctx context.Context) quotedto.QuoteOutput
	Refresh(ctx context.Context) quotedto.QuoteOutput
}

type LoadedMsg struct {
	Quote quotedto.QuoteOutput
}

type Model struct {
	port    QuotePort
	quote   quotedto.QuoteOutput
	spinner spinner.Model
	// pending counts refreshes in flight; they are not de-duplicated.
	pending int
	focused bool
	width   int
}

func New(port QuotePort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	// the mount fetch issued by Init is pending from the start
	return Model{
		port:    port,
		quote:   port.Current(context.Background()),
		spinner: sp,
		pending: 1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

func (m *Model) SetFocused(f bool) { m.focused = f }

// RefreshCmd starts one fetch. The pointer receiver lets callers record the
// pending request before the command runs.
func (m *Model) RefreshCmd() tea.Cmd {
	m.pending++
	if m.pending == 1 {
		return tea.Batch(m.fetch(), m.spinner.Tick)
	}
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		return LoadedMsg{Quote: port.Refresh(context.Background())}
	}
}

func (m Model) Loading() bool { return m.pending > 0 }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case LoadedMsg:
		m.quote = msg.Quote
		if m.pending > 0 {
			m.pending--
		}
	case spinner.TickMsg:
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.focused && msg.String() == "r" {
			cmd := m.RefreshCmd()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	inner := max(m.width-6, 16)
	text := lipgloss.NewStyle().Italic(true).Width(inner).Render("“" + m.quote.Content + "”")
	if m.Loading() {
		text = theme.Muted.Render(text)
	}
	var sb strings.Builder
	header := theme.Title.Render("Quote")
	if m.Loading() {
		header += " " + m.spinner.View()
	}
	sb.WriteString(header + "\n\n")
	sb.WriteString(text + "\n\n")
	sb.WriteString(theme.Muted.Render("— "+strings.ToUpper(m.quote.Author)) + "\n\n")
	sb.WriteString(theme.Muted.Render("r: new quote"))

	style := theme.Pane
	if m.focused {
		style = theme.PaneActive
	}
	return style.Width(max(m.width-2, 20)).Render(sb.String())
}
