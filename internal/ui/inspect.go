package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// historyLimit ограничивает число запомненных запросов в инспекторе.
const historyLimit = 200

// Lookup is what the inspector asks about a wire; *resolver.Resolver satisfies it.
type Lookup interface {
	TopLevel() string
	Translate(wire string) string
	WireType(wire string) (string, bool)
	Width(typ string) int
}

// Answer is one evaluated query.
type Answer struct {
	Wire       string
	Translated string
	Type       string // "" — провод неизвестен
	Width      int
}

// Ask evaluates a single wire against l.
func Ask(l Lookup, wire string) Answer {
	wire = strings.TrimSpace(wire)
	a := Answer{Wire: wire, Translated: l.Translate(wire), Width: -1}
	base := wire
	if i := strings.IndexByte(base, '['); i >= 0 {
		base = base[:i]
	}
	if t, ok := l.WireType(strings.TrimSpace(base)); ok {
		a.Type = t
		a.Width = l.Width(t)
	}
	return a
}

type inspectModel struct {
	lookup  Lookup
	input   textinput.Model
	history []Answer // новые в начале
	width   int
	height  int
}

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	wireStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// NewInspectModel returns an interactive wire translator over l.
func NewInspectModel(l Lookup) tea.Model {
	ti := textinput.New()
	ti.Placeholder = "head[19]$D_IN"
	ti.Prompt = "wire> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 512
	ti.Focus()
	return &inspectModel{lookup: l, input: ti, width: 80, height: 24}
}

func (m *inspectModel) Init() tea.Cmd { return textinput.Blink }

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if v := strings.TrimSpace(m.input.Value()); v != "" {
				m.history = append([]Answer{Ask(m.lookup, v)}, m.history...)
				if len(m.history) > historyLimit {
					m.history = m.history[:historyLimit]
				}
			}
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectModel) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("mslayout inspect: " + m.lookup.TopLevel()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		b.WriteString("  " + renderAnswer(Ask(m.lookup, v), m.width) + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// под историю остаётся всё, кроме заголовка, ввода и подсказки
	rows := max(m.height-7, 1)
	for i, a := range m.history {
		if i >= rows {
			break
		}
		b.WriteString("  " + renderAnswer(a, m.width) + "\n")
	}
	b.WriteString(hintStyle.Render("enter: translate  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func renderAnswer(a Answer, width int) string {
	right := unknownStyle.Render("unknown wire")
	if a.Type != "" {
		right = fieldStyle.Render(a.Translated) + hintStyle.Render(fmt.Sprintf("  %s, %d bits", a.Type, a.Width))
		if a.Width < 0 {
			right = fieldStyle.Render(a.Translated) + hintStyle.Render("  "+a.Type+", unresolved")
		}
	}
	line := wireStyle.Render(a.Wire) + " -> " + right
	// MaxWidth понимает ANSI-последовательности, runewidth — нет
	return lipgloss.NewStyle().MaxWidth(max(width-2, 20)).Render(line)
}
