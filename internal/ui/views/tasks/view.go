package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	checklistdto "lofi/internal/modules/checklist/dto"
	"lofi/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ChecklistPort interface {
	Load(ctx context.Context) (checklistdto.Snapshot, error)
	Snapshot(ctx context.Context) (checklistdto.Snapshot, error)
	Add(ctx context.Context, text string) (checklistdto.TaskOutput, error)
	Toggle(ctx context.Context, id string) (checklistdto.ToggleOutput, error)
	Delete(ctx context.Context, id string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

// SnapshotMsg replaces the rendered list. Note is a one-line status for the
// app bar; Err reports a failed operation whose in-memory effect may still
// be visible.
type SnapshotMsg struct {
	Snapshot checklistdto.Snapshot
	Note     string
	Err      error
}

// RolloverMsg is sent from outside the program when the day changes.
type RolloverMsg struct {
	Output checklistdto.RolloverOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ChecklistPort
	snap    checklistdto.Snapshot
	cursor  int
	input   textinput.Model
	editing bool
	focused bool
	width   int
	height  int
}

func New(port ChecklistPort) Model {
	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 200
	ti.Prompt = "+ "
	return Model{port: port, input: ti}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.port.Load(context.Background())
		return SnapshotMsg{Snapshot: snap, Err: err}
	}
}

func (m *Model) SetFocused(f bool) {
	m.focused = f
	if !f && m.editing {
		m.stopEditing()
	}
}

// Editing reports whether the add-task input owns the keyboard.
func (m Model) Editing() bool { return m.editing }

func (m Model) Snapshot() checklistdto.Snapshot { return m.snap }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-10, 10)

	case SnapshotMsg:
		m.snap = msg.Snapshot
		m.clampCursor()

	case RolloverMsg:
		m.snap = msg.Output.Snapshot
		m.clampCursor()

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.snap.Tasks)-1 {
				m.cursor++
			}
		case "a", "i":
			m.editing = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case " ", "x", "enter":
			if task, ok := m.selected(); ok {
				return m, m.ToggleCmd(task.ID)
			}
		case "d", "delete", "backspace":
			if task, ok := m.selected(); ok {
				return m, m.DeleteCmd(task.ID)
			}
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		text := m.input.Value()
		m.stopEditing()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, m.AddCmd(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) selected() (checklistdto.TaskOutput, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Tasks) {
		return checklistdto.TaskOutput{}, false
	}
	return m.snap.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.Tasks) {
		m.cursor = len(m.snap.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) AddCmd(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.Add(context.Background(), text)
		return m.refresh("", err)
	}
}

func (m Model) ToggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Toggle(context.Background(), id)
		note := ""
		if err == nil && out.StreakIncreased {
			note = fmt.Sprintf("All done for today! Streak: %d %s", out.Stats.Streak, days(out.Stats.Streak))
		}
		return m.refresh(note, err)
	}
}

func (m Model) DeleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return m.refresh("", m.port.Delete(context.Background(), id))
	}
}

func (m Model) refresh(note string, opErr error) tea.Msg {
	snap, err := m.port.Snapshot(context.Background())
	return SnapshotMsg{Snapshot: snap, Note: note, Err: errors.Join(opErr, err)}
}

// ─── view ────────────────────────────────────────────────────────────────────

var (
	doneStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0).Strikethrough(true)
	checkStyle = lipgloss.NewStyle().Foreground(theme.Green)
)

func (m Model) View() string {
	var sb strings.Builder
	header := theme.Title.Render("Daily Tasks")
	streak := theme.Hot.Render(fmt.Sprintf("🔥 %d %s", m.snap.Stats.Streak, days(m.snap.Stats.Streak)))
	sb.WriteString(header + "  " + streak + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d/%d completed", m.snap.Completed, len(m.snap.Tasks))) + "\n\n")

	if len(m.snap.Tasks) == 0 {
		sb.WriteString(theme.Muted.Render("No tasks for today. Add one to get started!") + "\n")
	}
	for i, t := range m.snap.Tasks {
		box := "[ ]"
		text := t.Text
		if t.IsCompleted {
			box = checkStyle.Render("[x]")
			text = doneStyle.Render(text)
		}
		cursor := "  "
		if m.focused && i == m.cursor {
			cursor = theme.Hot.Render("> ")
		}
		sb.WriteString(cursor + box + " " + text + "\n")
	}

	sb.WriteString("\n")
	if m.editing {
		sb.WriteString(m.input.View() + "\n")
		sb.WriteString(theme.Muted.Render("enter: add  esc: cancel"))
	} else {
		sb.WriteString(theme.Muted.Render("a: add  space: toggle  d: delete  j/k: move"))
	}

	style := theme.Pane
	if m.focused {
		style = theme.PaneActive
	}
	return style.Width(max(m.width-2, 20)).Render(sb.String())
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
