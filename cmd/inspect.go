package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/SreeLakshmiGirisan/Task-manager/internal/config"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/exitcode"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/todo"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/ui"
)

// checkCommand validates the task file against the document schema.
func (a *app) checkCommand(args []string) error {
	if err := noArgs("check", args); err != nil {
		return err
	}

	path := a.cfg.TaskFile
	fmt.Fprintf(a.out, "Task file: %s\n", path)
	result, err := todo.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(a.out, "  Error: %v\n", err)
		return exitcode.New(exitcode.StoreError, err)
	}
	if result.Valid {
		fmt.Fprintf(a.out, "  Valid (%d tasks)\n", result.Count)
		return nil
	}

	fmt.Fprintln(a.out, "  Validation failed:")
	for _, e := range result.Errors {
		fmt.Fprintf(a.out, "     - %v\n", e)
	}
	return exitcode.New(exitcode.StoreError, fmt.Errorf("%w %s", todo.ErrCorruptStore, path))
}

// configCommand prints the resolved configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("taskmgr config", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	example := fs.Bool("example", false, "Print an example config file")

	if err := fs.Parse(args); err != nil {
		return exitcode.New(exitcode.UserError, err)
	}
	if err := noArgs("config", fs.Args()); err != nil {
		return err
	}

	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}

	cfg := a.cws.Config
	rows := []struct {
		key   string
		value any
	}{
		{"task_file", cfg.TaskFile},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
	}
	for _, row := range rows {
		fmt.Fprintf(a.out, "%-15s = %-40v (%s)\n", row.key, row.value, a.cws.Sources[row.key])
	}
	if len(a.cws.Files) == 0 {
		fmt.Fprintln(a.out, "\nNo config files found.")
		return nil
	}
	fmt.Fprintln(a.out, "\nConfig files:")
	for _, f := range a.cws.Files {
		fmt.Fprintf(a.out, "  %s\n", f)
	}
	return nil
}

// tuiCommand launches the read-only terminal viewer.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskmgr tui", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	interval := fs.Duration("interval", 2*time.Second, "How often to re-read the task file")

	if err := fs.Parse(args); err != nil {
		return exitcode.New(exitcode.UserError, err)
	}
	if err := noArgs("tui", fs.Args()); err != nil {
		return err
	}
	if *interval <= 0 {
		return exitcode.New(exitcode.UserError, fmt.Errorf("tui: interval must be positive, got %s", *interval))
	}

	return ui.RunTUI(ctx, a.cfg.TaskFile, ui.WithClock(a.now), ui.WithRefreshInterval(*interval))
}
