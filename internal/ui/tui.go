// Package ui provides the optional terminal viewer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/SreeLakshmiGirisan/Task-manager/internal/store"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/task"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	interval time.Duration
	now      func() time.Time
}

// WithRefreshInterval sets how often the task file is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithClock sets the clock used for overdue markers.
func WithClock(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// RunTUI starts the read-only viewer over the task file at path.
func RunTUI(ctx context.Context, path string, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(path, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// filter selects which tasks the viewer lists.
type filter int

const (
	filterAll filter = iota
	filterPending
	filterDone
)

func (f filter) String() string {
	switch f {
	case filterPending:
		return string(task.StatusPending)
	case filterDone:
		return string(task.StatusDone)
	default:
		return "All"
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Faint(true)
)

type tuiModel struct {
	path         string
	loadErr      error
	entries      []store.Entry
	pending      int
	completed    int
	filter       filter
	showHelp     bool
	tickInterval time.Duration
	now          func() time.Time
}

type tickMsg time.Time

func newTUIModel(path string, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		interval: 2 * time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &tuiModel{
		path:         path,
		filter:       filterPending,
		tickInterval: c.interval,
		now:          c.now,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = filterPending
			return m, nil
		case "2":
			m.filter = filterDone
			return m, nil
		case "0":
			m.filter = filterAll
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	fmt.Fprintf(&b, "  Pending: %d  Done: %d\n\n", m.pending, m.completed)
	b.WriteString(headingStyle.Render(m.filter.String()+" Tasks") + "\n\n")
	m.writeTasks(&b)
	fmt.Fprintf(&b, "  File: %s\n\n", m.path)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads the task file. The viewer never writes.
func (m *tuiModel) refresh() {
	s, err := store.Open(m.path)
	if err != nil {
		m.loadErr = err
		m.entries = nil
		m.pending, m.completed = 0, 0
		return
	}
	m.loadErr = nil
	m.entries = s.All()
	m.pending, m.completed = s.Counts()
}

// visible returns the entries matching the current filter, keeping
// their full-list numbers.
func (m *tuiModel) visible() []store.Entry {
	if m.filter == filterAll {
		return m.entries
	}
	var out []store.Entry
	for _, e := range m.entries {
		if m.filter == filterDone && e.Task.Completed {
			out = append(out, e)
		}
		if m.filter == filterPending && !e.Task.Completed {
			out = append(out, e)
		}
	}
	return out
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	entries := m.visible()
	if len(entries) == 0 {
		switch m.filter {
		case filterPending:
			b.WriteString("  No pending tasks!\n\n")
		case filterDone:
			b.WriteString("  No completed tasks yet.\n\n")
		default:
			b.WriteString("  No tasks yet.\n\n")
		}
		return
	}
	now := m.now()
	for _, e := range entries {
		b.WriteString(formatEntry(e, now))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeTitle(b *strings.Builder) {
	title := "Task Manager"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headingStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show pending tasks\n")
	b.WriteString("  2            Show completed tasks\n")
	b.WriteString("  0            Show all tasks\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(footerStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)) + "\n")
}

func formatEntry(e store.Entry, now time.Time) string {
	mark := " "
	if e.Task.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("  [%s] %d. %s (Due: %s)", mark, e.Index, e.Task.Title, e.Task.DueText())
	switch {
	case e.Task.Completed:
		return doneStyle.Render(line)
	case e.Task.Overdue(now):
		return overdueStyle.Render(line + " overdue")
	default:
		return line
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
