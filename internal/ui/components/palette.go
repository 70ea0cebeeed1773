package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lofi/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

const maxShownHints = 5

// Command is one palette entry. Args is the usage suffix shown after Name.
type Command struct {
	Name string
	Args string
}

func (c Command) String() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// Commands lists everything the app's palette executor understands.
var Commands = []Command{
	{Name: "timer:toggle"},
	{Name: "timer:reset"},
	{Name: "settings"},
	{Name: "settings:set", Args: "<focus> <break>"},
	{Name: "music:play"},
	{Name: "music:next"},
	{Name: "music:mute"},
	{Name: "music:volume", Args: "<0-100>"},
	{Name: "quote:refresh"},
	{Name: "task:add", Args: "<text>"},
	{Name: "welcome"},
}

// Palette is a command-palette overlay backed by bubbles/textinput.
// Tab completes the first word to the highlighted match.
type Palette struct {
	input    textinput.Model
	visible  bool
	selected int
	width    int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Value() string { return p.input.Value() }

// Matches returns the commands whose name starts with the typed command word.
// Once arguments are being typed only the exact command matches.
func (p Palette) Matches() []Command {
	value := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	word, _, hasArgs := strings.Cut(value, " ")
	var out []Command
	for _, c := range Commands {
		if hasArgs {
			if c.Name == word {
				out = append(out, c)
			}
			continue
		}
		if strings.HasPrefix(c.Name, word) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			p.complete()
			return p, nil
		case "up", "ctrl+p":
			p.move(-1)
			return p, nil
		case "down", "ctrl+n":
			p.move(1)
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

func (p *Palette) move(delta int) {
	n := min(len(p.Matches()), maxShownHints)
	if n == 0 {
		return
	}
	p.selected = (p.selected + delta + n) % n
}

func (p *Palette) complete() {
	matches := p.Matches()
	if len(matches) == 0 {
		return
	}
	c := matches[min(p.selected, len(matches)-1)]
	value := c.Name
	if c.Args != "" {
		value += " "
	}
	if _, args, ok := strings.Cut(strings.TrimLeft(p.input.Value(), " "), " "); ok {
		value = c.Name + " " + args
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matches := p.Matches()
	if len(matches) > maxShownHints {
		matches = matches[:maxShownHints]
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matches) > 0 {
		sb.WriteString("\n")
		for i, c := range matches {
			if i == p.selected {
				sb.WriteString(theme.Hot.Render("> "+c.String()) + "\n")
				continue
			}
			sb.WriteString(theme.Muted.Render("  "+c.String()) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return theme.Dialog.Padding(0, 1).Width(w - 2).Render(sb.String())
}
