package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	audiodto "lofi/internal/modules/audio/dto"
	checklistdto "lofi/internal/modules/checklist/dto"
	quotedto "lofi/internal/modules/quote/dto"
	timerdto "lofi/internal/modules/timer/dto"
	apperrors "lofi/internal/platform/errors"
	"lofi/internal/ui/components"
	"lofi/internal/ui/theme"
	onboardingview "lofi/internal/ui/views/onboarding"
	playerview "lofi/internal/ui/views/player"
	quoteview "lofi/internal/ui/views/quote"
	settingsview "lofi/internal/ui/views/settings"
	tasksview "lofi/internal/ui/views/tasks"
	timerview "lofi/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is what the app needs from one module's handler. Sub-views narrow
// them further in their own packages.

type TimerPort interface {
	State(ctx context.Context) (timerdto.State, error)
	Toggle(ctx context.Context) (timerdto.State, error)
	Reset(ctx context.Context) (timerdto.State, error)
	Settings(ctx context.Context) (timerdto.SettingsOutput, error)
	SaveSettings(ctx context.Context, focusMinutes, breakMinutes int) (timerdto.State, error)
}

type AudioPort interface {
	State(ctx context.Context) audiodto.PlayerState
	TogglePlay(ctx context.Context) audiodto.PlayerState
	Skip(ctx context.Context) audiodto.PlayerState
	SetVolume(ctx context.Context, v float64) audiodto.PlayerState
	ToggleMute(ctx context.Context) audiodto.PlayerState
}

type QuotePort interface {
	Current(ctx context.Context) quotedto.QuoteOutput
	Refresh(ctx context.Context) quotedto.QuoteOutput
}

type ChecklistPort interface {
	Load(ctx context.Context) (checklistdto.Snapshot, error)
	Snapshot(ctx context.Context) (checklistdto.Snapshot, error)
	Add(ctx context.Context, text string) (checklistdto.TaskOutput, error)
	Toggle(ctx context.Context, id string) (checklistdto.ToggleOutput, error)
	Delete(ctx context.Context, id string) error
}

type OnboardingPort interface {
	Completed(ctx context.Context) bool
	Complete(ctx context.Context) error
	Welcome() string
}

type Ports struct {
	Timer      TimerPort
	Audio      AudioPort
	Quote      QuotePort
	Checklist  ChecklistPort
	Onboarding OnboardingPort
}

// ─── panes ───────────────────────────────────────────────────────────────────

type paneID int

const (
	paneTimer paneID = iota
	panePlayer
	paneQuote
	paneTasks
	paneCount
)

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Help     key.Binding
	Palette  key.Binding
	Settings key.Binding
	Quit     key.Binding
	Toggle   key.Binding
	Reset    key.Binding
	Skip     key.Binding
	Volume   key.Binding
	Mute     key.Binding
	Add      key.Binding
	Delete   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "timer settings")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer / new quote")),
		Skip:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next track")),
		Volume:   key.NewBinding(key.WithKeys("-", "+"), key.WithHelp("-/+", "volume")),
		Mute:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Settings},
		{k.Toggle, k.Reset, k.Skip, k.Volume, k.Mute},
		{k.Add, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns pane focus, the overlays and
// the status bar; each pane renders and drives its own module.
type Model struct {
	ports Ports

	timerView      timerview.Model
	playerView     playerview.Model
	quoteView      quoteview.Model
	tasksView      tasksview.Model
	settingsView   settingsview.Model
	onboardingView onboardingview.Model

	focus    paneID
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

func NewModel(ports Ports) Model {
	m := Model{
		ports:          ports,
		timerView:      timerview.New(ports.Timer),
		playerView:     playerview.New(ports.Audio),
		quoteView:      quoteview.New(ports.Quote),
		tasksView:      tasksview.New(ports.Checklist),
		settingsView:   settingsview.New(ports.Timer),
		onboardingView: onboardingview.New(ports.Onboarding, ports.Onboarding.Welcome()),
		focus:          paneTimer,
		keys:           defaultKeys(),
		help:           help.New(),
		palette:        components.NewPalette(),
		status:         "ready",
	}
	m.applyFocus()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.playerView.Init(),
		m.quoteView.Init(),
		m.tasksView.Init(),
		m.onboardingView.Init(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Module updates may arrive at any time, whichever overlay is open.
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.settingsView.SetWidth(min(m.width-8, 48))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case timerview.UpdateMsg:
		if msg.Update.Completion != nil {
			m.status = completionStatus(*msg.Update.Completion)
		}
		m.timerView, _ = m.timerView.Update(msg)
		return m, nil

	case playerview.StateMsg:
		m.playerView, _ = m.playerView.Update(msg)
		return m, nil

	case quoteview.LoadedMsg:
		m.quoteView, _ = m.quoteView.Update(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.quoteView, cmd = m.quoteView.Update(msg)
		return m, cmd

	case onboardingview.CheckedMsg:
		m.onboardingView, _ = m.onboardingView.Update(msg)
		return m, nil

	case tasksview.SnapshotMsg:
		switch {
		case msg.Err != nil:
			m.status = "could not save tasks"
		case msg.Note != "":
			m.status = msg.Note
		}
		m.tasksView, _ = m.tasksView.Update(msg)
		return m, nil

	case tasksview.RolloverMsg:
		if msg.Output.Reset {
			m.status = "new day, fresh list"
		}
		m.tasksView, _ = m.tasksView.Update(msg)
		return m, nil

	case settingsview.SavedMsg:
		m.settingsView, _ = m.settingsView.Update(msg)
		switch {
		case errors.Is(msg.Err, apperrors.ErrInvalidInput):
			m.status = "settings: " + msg.Err.Error()
			return m, nil
		case msg.Err != nil:
			m.status = "settings applied but not saved"
		default:
			m.status = fmt.Sprintf("timer: focus %dm, break %dm",
				msg.State.Settings.FocusMinutes, msg.State.Settings.BreakMinutes)
		}
		m.timerView, _ = m.timerView.Update(timerview.UpdateMsg{Update: timerdto.Update{State: msg.State}})
		return m, nil

	case onboardingview.CompletedMsg:
		if msg.Err != nil {
			m.status = "welcome dismissed (not saved)"
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil
	}

	// Overlays capture all remaining input while open.
	switch {
	case m.onboardingView.Visible():
		var cmd tea.Cmd
		m.onboardingView, cmd = m.onboardingView.Update(msg)
		return m, cmd
	case m.palette.Visible():
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	case m.settingsView.Visible():
		var cmd tea.Cmd
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// The add-task input owns the keyboard while it is open.
		if !m.tasksView.Editing() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "tab":
				m.focus = (m.focus + 1) % paneCount
				m.applyFocus()
				return m, nil
			case "shift+tab":
				m.focus = (m.focus + paneCount - 1) % paneCount
				m.applyFocus()
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				cmd := m.palette.Open()
				return m, cmd
			case ",":
				cmd := m.settingsView.Open()
				return m, cmd
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	// Everything else goes to every pane; panes ignore keys unless focused.
	var cmd tea.Cmd
	m.timerView, cmd = m.timerView.Update(msg)
	cmds = append(cmds, cmd)
	m.playerView, cmd = m.playerView.Update(msg)
	cmds = append(cmds, cmd)
	m.quoteView, cmd = m.quoteView.Update(msg)
	cmds = append(cmds, cmd)
	m.tasksView, cmd = m.tasksView.Update(msg)
	cmds = append(cmds, cmd)
	m.onboardingView, cmd = m.onboardingView.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.onboardingView.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.onboardingView.View())
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.settingsView.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.settingsView.View())
	default:
		content = m.renderPanes()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderPanes() string {
	left := lipgloss.JoinVertical(lipgloss.Left, m.timerView.View(), m.playerView.View())
	right := lipgloss.JoinVertical(lipgloss.Left, m.quoteView.View(), m.tasksView.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderHeader() string {
	title := theme.Hot.Render("lofi") + theme.Muted.Render("  focus · music · tasks")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(title) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if st := m.timerView.State(); st.IsRunning {
		left = theme.Hot.Render("● "+st.Label+" "+st.Clock) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:pane  ,:settings  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "timer:toggle":
		return m, m.timerView.ToggleCmd()

	case "timer:reset":
		return m, m.timerView.ResetCmd()

	case "settings":
		cmd := m.settingsView.Open()
		return m, cmd

	case "settings:set":
		if len(parts) != 3 {
			m.status = "usage: settings:set <focus> <break>"
			return m, nil
		}
		focus, err1 := strconv.Atoi(parts[1])
		brk, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			m.status = "durations must be whole minutes"
			return m, nil
		}
		timer := m.ports.Timer
		return m, func() tea.Msg {
			st, err := timer.SaveSettings(context.Background(), focus, brk)
			return settingsview.SavedMsg{State: st, Err: err}
		}

	case "music:play":
		return m, m.playerView.TogglePlayCmd()

	case "music:next":
		return m, m.playerView.SkipCmd()

	case "music:mute":
		return m, m.playerView.ToggleMuteCmd()

	case "music:volume":
		if len(parts) != 2 {
			m.status = "usage: music:volume <0-100>"
			return m, nil
		}
		pct, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "volume must be a number"
			return m, nil
		}
		return m, m.playerView.SetVolumeCmd(float64(pct) / 100)

	case "quote:refresh":
		cmd := m.quoteView.RefreshCmd()
		return m, cmd

	case "task:add":
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if text == "" {
			m.status = "usage: task:add <text>"
			return m, nil
		}
		return m, m.tasksView.AddCmd(text)

	case "welcome":
		m.onboardingView.Show()
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) applyFocus() {
	m.timerView.SetFocused(m.focus == paneTimer)
	m.playerView.SetFocused(m.focus == panePlayer)
	m.quoteView.SetFocused(m.focus == paneQuote)
	m.tasksView.SetFocused(m.focus == paneTasks)
}

func (m *Model) propagateSize() {
	colW := m.width / 2
	sz := tea.WindowSizeMsg{Width: colW, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.playerView, _ = m.playerView.Update(sz)
	m.quoteView, _ = m.quoteView.Update(tea.WindowSizeMsg{Width: m.width - colW, Height: sz.Height})
	m.tasksView, _ = m.tasksView.Update(tea.WindowSizeMsg{Width: m.width - colW, Height: sz.Height})
	m.onboardingView, _ = m.onboardingView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
}

func completionStatus(c timerdto.Completion) string {
	if c.Finished == "FOCUS" {
		return "Focus session finished! Time for a break."
	}
	return "Break finished! Back to focus."
}
