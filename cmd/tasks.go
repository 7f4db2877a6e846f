package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SreeLakshmiGirisan/Task-manager/internal/exitcode"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/store"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/task"
)

// addCommand adds a task. Without -due it prompts for the date and asks
// again until a usable one is entered or input ends.
func (a *app) addCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskmgr add", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return exitcode.New(exitcode.UserError, err)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(title) == "" {
		line, err := a.prompt(ctx, "Enter task title: ")
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return exitcode.New(exitcode.UserError, fmt.Errorf("reading title: %w", err))
		}
		title = line
	}
	title, err = task.ValidateTitle(title)
	if err != nil {
		return exitcode.New(exitcode.UserError, err)
	}

	dueSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "due" {
			dueSet = true
		}
	})

	var added task.Task
	if dueSet {
		added, err = s.Add(title, *due)
		if err != nil {
			return exitcode.New(exitcode.UserError, err)
		}
	} else {
		for {
			line, err := a.prompt(ctx, "Enter due date (YYYY-MM-DD): ")
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				return exitcode.New(exitcode.UserError, fmt.Errorf("reading due date: %w", err))
			}
			added, err = s.Add(title, line)
			if err == nil {
				break
			}
			switch {
			case errors.Is(err, task.ErrInvalidDateFormat):
				fmt.Fprintln(a.out, "Invalid date format. Use YYYY-MM-DD.")
			case errors.Is(err, task.ErrDateInPast):
				fmt.Fprintln(a.out, "Due date cannot be in the past.")
			default:
				return err
			}
		}
	}

	fmt.Fprintf(a.out, "Task '%s' added.\n", added.Title)
	return nil
}

// doneCommand marks a task completed. Without an argument it lists the
// pending tasks and asks for a number.
func (a *app) doneCommand(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return exitcode.New(exitcode.UserError, fmt.Errorf("done: unexpected arguments: %v", args[1:]))
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}

	var choice string
	if len(args) == 1 {
		choice = args[0]
	} else {
		writePending(a.out, s.Pending())
		line, err := a.prompt(ctx, "Enter the number of the completed task: ")
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return exitcode.New(exitcode.UserError, fmt.Errorf("reading task number: %w", err))
		}
		choice = line
	}

	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil {
		a.logger.Debug("rejected task number", "input", choice, "err", err)
		return exitcode.New(exitcode.UserError, errInvalidChoice)
	}
	done, err := s.Complete(n)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrIndexOutOfRange), errors.Is(err, store.ErrAlreadyCompleted):
		a.logger.Debug("rejected task number", "input", choice, "err", err)
		return exitcode.New(exitcode.UserError, errInvalidChoice)
	default:
		return err
	}

	fmt.Fprintf(a.out, "Task '%s' marked as completed.\n", done.Title)
	return nil
}

// pendingCommand lists pending tasks with their full-list numbers.
func (a *app) pendingCommand(args []string) error {
	if err := noArgs("pending", args); err != nil {
		return err
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	writePending(a.out, s.Pending())
	return nil
}

// completedCommand lists completed tasks.
func (a *app) completedCommand(args []string) error {
	if err := noArgs("completed", args); err != nil {
		return err
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	writeCompleted(a.out, s.Completed())
	return nil
}

// allCommand lists every task with its status.
func (a *app) allCommand(args []string) error {
	if err := noArgs("all", args); err != nil {
		return err
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	writeAll(a.out, s.All())
	return nil
}

// prompt writes label and reads one line. A final line without a
// newline is accepted; io.EOF is returned only when nothing was read.
// Cancelling ctx abandons the read and returns ctx.Err(), even when a
// line arrived at the same moment.
func (a *app) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(a.out, label)

	type readResult struct {
		line string
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := a.in.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	var r readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(a.out)
		return "", ctx.Err()
	case r = <-ch:
	}
	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.out)
		return "", err
	}

	if r.err != nil {
		if errors.Is(r.err, io.EOF) && r.line != "" {
			return strings.TrimSpace(r.line), nil
		}
		fmt.Fprintln(a.out)
		return "", r.err
	}
	return strings.TrimSpace(r.line), nil
}

func writePending(w io.Writer, entries []store.Entry) {
	fmt.Fprintln(w, "Pending Tasks:")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No pending tasks!")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%d. %s (Due: %s)\n", e.Index, e.Task.Title, e.Task.DueText())
	}
}

func writeCompleted(w io.Writer, tasks []task.Task) {
	fmt.Fprintln(w, "Completed Tasks:")
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No completed tasks yet.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "- %s\n", t.Title)
	}
}

func writeAll(w io.Writer, entries []store.Entry) {
	fmt.Fprintln(w, "All Tasks:")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No tasks yet.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%d. %s (Due: %s) - %s\n", e.Index, e.Task.Title, e.Task.DueText(), e.Status())
	}
}
