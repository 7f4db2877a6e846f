// Package task defines the task record and its due-date rules.
package task

import (
	"errors"
	"strings"
	"time"
)

// Status is the derived listing label of a task.
type Status string

const (
	StatusPending Status = "Pending"
	StatusDone    Status = "Done"
)

// ErrTitleRequired is returned when a task title is empty or whitespace.
var ErrTitleRequired = errors.New("title required")

// Task is a single to-do item.
type Task struct {
	Title   string
	DueDate string // YYYY-MM-DD as entered or as loaded
	// NullDueDate is set when the persisted due_date was null. It keeps
	// null apart from an empty string across a load and save.
	NullDueDate bool
	Completed   bool
}

// Record is the persisted shape of a task. Field order matches the
// on-disk document.
type Record struct {
	Title     string  `json:"title"`
	DueDate   *string `json:"due_date"`
	Completed bool    `json:"completed"`
}

// ValidateTitle trims title and fails with ErrTitleRequired when nothing is left.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	return title, nil
}

// New creates a pending task. The due date is not validated here;
// callers run ValidateDueDate first.
func New(title, dueDate string) Task {
	return Task{Title: title, DueDate: dueDate}
}

// MarkCompleted sets the completed flag. Calling it twice is harmless.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// Status returns the listing label for the task.
func (t Task) Status() Status {
	if t.Completed {
		return StatusDone
	}
	return StatusPending
}

// Overdue reports whether a pending task's due date is before the
// calendar date of now. Tasks without a parseable date are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.Completed || t.NullDueDate {
		return false
	}
	due, err := ParseDueDate(t.DueDate)
	if err != nil {
		return false
	}
	return due.Before(today(now))
}

// DueText renders the due date for listings. A null date shows as None.
func (t Task) DueText() string {
	if t.NullDueDate {
		return "None"
	}
	return t.DueDate
}

// Record converts the task to its persisted shape.
func (t Task) Record() Record {
	r := Record{Title: t.Title, Completed: t.Completed}
	if !t.NullDueDate {
		due := t.DueDate
		r.DueDate = &due
	}
	return r
}

// FromRecord rebuilds a task from its persisted shape. Loaded dates are
// trusted as-is.
func FromRecord(r Record) Task {
	t := Task{Title: r.Title, Completed: r.Completed}
	if r.DueDate == nil {
		t.NullDueDate = true
	} else {
		t.DueDate = *r.DueDate
	}
	return t
}

// Records converts a task sequence to records, preserving order.
func Records(tasks []Task) []Record {
	out := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Record())
	}
	return out
}

// FromRecords converts records back to tasks, preserving order.
func FromRecords(records []Record) []Task {
	out := make([]Task, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}
