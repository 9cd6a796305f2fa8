package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// batchModel renders `mslayout check` over several designs.
type batchModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	rows    []batchRow
	index   map[string]int
	width   int
	done    bool
}

type batchRow struct {
	label  string
	stage  Stage
	status Status
}

type eventMsg Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders the progress of a
// multi-design run. labels are the File values events refer to; the model
// quits when events is closed.
func NewProgressModel(title string, labels []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &batchModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		rows:    make([]batchRow, len(labels)),
		index:   make(map[string]int, len(labels)),
		width:   80,
	}
	for i, l := range labels {
		m.rows[i] = batchRow{label: l}
		m.index[l] = i
	}
	return m
}

func (m *batchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *batchModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *batchModel) apply(ev Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	if ev.Stage != StageNone {
		row.stage = ev.Stage
	}
	row.status = ev.Status
	return m.prog.SetPercent(m.fraction())
}

// fraction: завершённые строки считаются целиком, остальные — по стадии.
func (m *batchModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	total := 0.0
	for _, r := range m.rows {
		switch r.status {
		case StatusDone, StatusError:
			total++
		case StatusWorking:
			total += stageWeight(r.stage)
		}
	}
	return total / float64(len(m.rows))
}

func stageWeight(s Stage) float64 {
	switch s {
	case StageCanonicalize:
		return 0.2
	case StageCache:
		return 0.4
	case StageBuild:
		return 0.6
	}
	return 0
}

func (m *batchModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var finished, failed int
	for _, r := range m.rows {
		switch r.status {
		case StatusDone:
			finished++
		case StatusError:
			failed++
		}
	}
	header := fmt.Sprintf("%s  %d/%d", m.title, finished+failed, len(m.rows))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, r := range m.rows {
		label := rowLabel(r)
		status := statusStyle(r.status).Render(fmt.Sprintf("%*s", statusWidth, label))
		b.WriteString("  " + status + " " + truncate(r.label, nameWidth) + "\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func rowLabel(r batchRow) string {
	switch r.status {
	case StatusQueued:
		return "queued"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	switch r.stage {
	case StageCanonicalize:
		return "canonical"
	case StageCache:
		return "cache"
	case StageBuild:
		return "resolving"
	}
	return "working"
}

func statusStyle(s Status) lipgloss.Style {
	switch s {
	case StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
