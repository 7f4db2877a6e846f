package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SreeLakshmiGirisan/Task-manager/internal/task"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/todo"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

func writeTasks(t *testing.T, tasks ...task.Task) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := todo.Save(path, task.Records(tasks)); err != nil {
		t.Fatalf("todo.Save() error = %v", err)
	}
	return path
}

func newTestModel(t *testing.T, path string) *tuiModel {
	t.Helper()
	m := newTUIModel(path, WithClock(func() time.Time { return fixedNow }))
	m.refresh()
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUIModelDefaultsToPending(t *testing.T) {
	done := task.New("B", "2026-03-11")
	done.MarkCompleted()
	path := writeTasks(t, task.New("A", "2026-03-11"), done, task.New("C", "2026-03-12"))

	m := newTestModel(t, path)
	if m.pending != 2 || m.completed != 1 {
		t.Fatalf("counts = (%d, %d), want (2, 1)", m.pending, m.completed)
	}

	got := m.visible()
	if len(got) != 2 || got[0].Index != 1 || got[1].Index != 3 {
		t.Fatalf("visible() = %+v, want entries 1 and 3", got)
	}

	view := m.View()
	for _, want := range []string{"Pending: 2  Done: 1", "1. A (Due: 2026-03-11)", "3. C (Due: 2026-03-12)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "2. B") {
		t.Errorf("View() shows completed task under pending filter:\n%s", view)
	}
}

func TestTUIModelFilterKeys(t *testing.T) {
	done := task.New("B", "2026-03-11")
	done.MarkCompleted()
	path := writeTasks(t, task.New("A", "2026-03-11"), done)
	m := newTestModel(t, path)

	tests := []struct {
		key    string
		filter filter
		count  int
	}{
		{"2", filterDone, 1},
		{"0", filterAll, 2},
		{"1", filterPending, 1},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m.Update(key(tt.key))
			if m.filter != tt.filter {
				t.Fatalf("filter = %v, want %v", m.filter, tt.filter)
			}
			if got := len(m.visible()); got != tt.count {
				t.Errorf("len(visible()) = %d, want %d", got, tt.count)
			}
		})
	}
}

func TestTUIModelEmptyMessages(t *testing.T) {
	m := newTestModel(t, filepath.Join(t.TempDir(), "missing.json"))
	if m.loadErr != nil {
		t.Fatalf("loadErr = %v, want nil for missing file", m.loadErr)
	}
	if !strings.Contains(m.View(), "No pending tasks!") {
		t.Errorf("pending view missing empty message:\n%s", m.View())
	}
	m.Update(key("2"))
	if !strings.Contains(m.View(), "No completed tasks yet.") {
		t.Errorf("done view missing empty message:\n%s", m.View())
	}
}

func TestTUIModelCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, path)
	if m.loadErr == nil {
		t.Fatal("loadErr = nil, want error for corrupt file")
	}
	if !strings.Contains(m.View(), "Error loading task file") {
		t.Errorf("View() missing error banner:\n%s", m.View())
	}
}

func TestTUIModelRefreshPicksUpChanges(t *testing.T) {
	path := writeTasks(t, task.New("A", "2026-03-11"))
	m := newTestModel(t, path)

	if err := todo.Save(path, task.Records([]task.Task{task.New("A", "2026-03-11"), task.New("B", "2026-03-12")})); err != nil {
		t.Fatal(err)
	}
	m.Update(key("r"))
	if m.pending != 2 {
		t.Errorf("pending after refresh = %d, want 2", m.pending)
	}
}

func TestTUIModelHelpAndQuit(t *testing.T) {
	m := newTestModel(t, writeTasks(t))

	m.Update(key("h"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("help not shown after h")
	}
	m.Update(key("h"))
	if m.showHelp {
		t.Errorf("help still shown after second h")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned nil cmd")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q cmd did not produce QuitMsg")
	}
}

func TestFormatEntryOverdue(t *testing.T) {
	path := writeTasks(t, task.New("Late", "2026-03-01"))
	m := newTestModel(t, path)
	if !strings.Contains(m.View(), "overdue") {
		t.Errorf("View() missing overdue marker:\n%s", m.View())
	}
}

func TestIsTTYNonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("IsTTY(buffer) = true, want false")
	}
}

func TestRefreshIntervalOption(t *testing.T) {
	tests := []struct {
		name string
		opts []TUIOption
		want time.Duration
	}{
		{"default", nil, 2 * time.Second},
		{"custom", []TUIOption{WithRefreshInterval(500 * time.Millisecond)}, 500 * time.Millisecond},
		{"zero ignored", []TUIOption{WithRefreshInterval(0)}, 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTUIModel("tasks.json", tt.opts...)
			if m.tickInterval != tt.want {
				t.Errorf("tickInterval = %s, want %s", m.tickInterval, tt.want)
			}
			if !strings.Contains(m.View(), "Refreshing every "+tt.want.String()) {
				t.Errorf("footer does not show interval:\n%s", m.View())
			}
		})
	}
}
