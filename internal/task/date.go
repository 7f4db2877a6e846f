package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical due-date format.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateFormat is returned when due-date text is not a YYYY-MM-DD date.
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	// ErrDateInPast is returned when a due date is before today.
	ErrDateInPast = errors.New("due date cannot be in the past")
)

// ParseDueDate parses due-date text in the strict YYYY-MM-DD layout.
// Surrounding whitespace is ignored.
func ParseDueDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	due, err := time.Parse(DateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, text)
	}
	return due, nil
}

// NotInPast fails with ErrDateInPast when due falls on a calendar day
// before the local calendar day of now. Today itself is allowed.
func NotInPast(due, now time.Time) error {
	if civil(due).Before(today(now)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, due.Format(DateLayout))
	}
	return nil
}

// ValidateDueDate runs ParseDueDate then NotInPast and returns the
// canonical date text.
func ValidateDueDate(text string, now time.Time) (string, error) {
	due, err := ParseDueDate(text)
	if err != nil {
		return "", err
	}
	if err := NotInPast(due, now); err != nil {
		return "", err
	}
	return due.Format(DateLayout), nil
}

// today truncates now to its local calendar date, expressed in UTC so it
// compares directly with dates from ParseDueDate.
func today(now time.Time) time.Time {
	y, m, d := now.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
