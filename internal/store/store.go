// Package store keeps the ordered task list and persists it on every change.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SreeLakshmiGirisan/Task-manager/internal/logging"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/task"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/todo"
)

var (
	// ErrIndexOutOfRange is returned when a task number is outside 1..Len().
	ErrIndexOutOfRange = errors.New("task number out of range")
	// ErrAlreadyCompleted is returned when completing a task that is already done.
	ErrAlreadyCompleted = errors.New("task already completed")
)

// Entry pairs a task with its 1-based position in the full list.
type Entry struct {
	Index int
	Task  task.Task
}

// Status returns the listing label of the entry's task.
func (e Entry) Status() task.Status {
	return e.Task.Status()
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock sets the source of "today" for due-date checks.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for store events.
func WithLogger(logger *log.Logger) Option {
	return func(s *TaskStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// TaskStore owns the task list backed by a single JSON file. It is not
// safe for concurrent use.
type TaskStore struct {
	path   string
	tasks  []task.Task
	now    func() time.Time
	logger *log.Logger
}

// Open loads the task file at path. A missing file opens an empty store;
// an unreadable one returns an error wrapping todo.ErrCorruptStore.
func Open(path string, opts ...Option) (*TaskStore, error) {
	if path == "" {
		return nil, fmt.Errorf("task file path is empty")
	}

	s := &TaskStore{
		path:   path,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := todo.Load(path)
	if err != nil {
		return nil, err
	}
	s.tasks = task.FromRecords(records)
	s.logger.Debug("store loaded", "path", path, "tasks", len(s.tasks))

	return s, nil
}

// Path returns the task file location.
func (s *TaskStore) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Add validates title and dueText, appends a pending task, and saves.
// Date failures return task.ErrInvalidDateFormat or task.ErrDateInPast;
// the caller is expected to ask again.
func (s *TaskStore) Add(title, dueText string) (task.Task, error) {
	title, err := task.ValidateTitle(title)
	if err != nil {
		return task.Task{}, err
	}
	due, err := task.ValidateDueDate(dueText, s.now())
	if err != nil {
		return task.Task{}, err
	}

	t := task.New(title, due)
	s.tasks = append(s.tasks, t)
	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return task.Task{}, err
	}

	s.logger.Debug("task added", "index", len(s.tasks), "title", t.Title, "due_date", t.DueDate)
	return t, nil
}

// Complete marks the task at the 1-based index as completed and saves.
// The index counts every task, completed ones included.
func (s *TaskStore) Complete(index int) (task.Task, error) {
	if index < 1 || index > len(s.tasks) {
		return task.Task{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	t := &s.tasks[index-1]
	if t.Completed {
		return task.Task{}, fmt.Errorf("%w: %d", ErrAlreadyCompleted, index)
	}

	t.MarkCompleted()
	if err := s.save(); err != nil {
		t.Completed = false
		return task.Task{}, err
	}

	s.logger.Debug("task completed", "index", index, "title", t.Title)
	return *t, nil
}

// Pending returns pending tasks in list order. Each Index is the task's
// position in the full list, which is what Complete expects.
func (s *TaskStore) Pending() []Entry {
	var out []Entry
	for i, t := range s.tasks {
		if !t.Completed {
			out = append(out, Entry{Index: i + 1, Task: t})
		}
	}
	return out
}

// Completed returns completed tasks in list order.
func (s *TaskStore) Completed() []task.Task {
	var out []task.Task
	for _, t := range s.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// All returns every task with its 1-based index.
func (s *TaskStore) All() []Entry {
	out := make([]Entry, 0, len(s.tasks))
	for i, t := range s.tasks {
		out = append(out, Entry{Index: i + 1, Task: t})
	}
	return out
}

// Counts returns the number of pending and completed tasks.
func (s *TaskStore) Counts() (pending, completed int) {
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}

func (s *TaskStore) save() error {
	if err := todo.Save(s.path, task.Records(s.tasks)); err != nil {
		s.logger.Error("save failed", "path", s.path, "err", err)
		return err
	}
	s.logger.Debug("store saved", "path", s.path, "tasks", len(s.tasks))
	return nil
}
