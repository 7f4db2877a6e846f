// Package cmd implements the CLI command structure for taskmgr.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SreeLakshmiGirisan/Task-manager/internal/config"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/exitcode"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/logging"
	"github.com/SreeLakshmiGirisan/Task-manager/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// errInvalidChoice is the single message shown for any rejected task number.
var errInvalidChoice = errors.New("invalid choice or task already completed")

// Env holds the process streams and clock a command runs against.
type Env struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	Now func() time.Time
}

// DefaultEnv returns an Env wired to the process streams.
func DefaultEnv() Env {
	return Env{In: os.Stdin, Out: os.Stdout, Err: os.Stderr, Now: time.Now}
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfg    *config.Config
	cws    *config.ConfigWithSources
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
	logger *log.Logger
}

// Run executes the taskmgr CLI against the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWithEnv(ctx, args, DefaultEnv())
}

// RunWithEnv executes the taskmgr CLI against env.
func RunWithEnv(ctx context.Context, args []string, env Env) error {
	if env.In == nil {
		env.In = strings.NewReader("")
	}
	if env.Out == nil {
		env.Out = io.Discard
	}
	if env.Err == nil {
		env.Err = io.Discard
	}
	if env.Now == nil {
		env.Now = time.Now
	}

	// Create a flag set for global options
	fs := flag.NewFlagSet("taskmgr", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	fs.Usage = func() {
		printUsage(fs, env.Err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return exitcode.New(exitcode.StoreError, fmt.Errorf("loading config: %w", err))
	}
	a := &app{
		cfg:    cws.Config,
		cws:    cws,
		in:     bufio.NewReader(env.In),
		out:    env.Out,
		errOut: env.Err,
		now:    env.Now,
		logger: logging.NewFromConfig(env.Err, cws.Config.LogLevel, cws.Config.LogFormat, cws.Config.LogTimestamps),
	}
	if *help {
		printUsage(fs, env.Out)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "pending" as default
	subcommand := "pending"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}
	a.logger.Debug("dispatch", "command", subcommand, "file", a.cfg.TaskFile)

	// Execute the subcommand
	switch subcommand {
	case "add":
		return a.addCommand(ctx, remainingArgs)
	case "done", "complete":
		return a.doneCommand(ctx, remainingArgs)
	case "pending":
		return a.pendingCommand(remainingArgs)
	case "completed":
		return a.completedCommand(remainingArgs)
	case "all", "ls":
		return a.allCommand(remainingArgs)
	case "check":
		return a.checkCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, env.Out)
		return nil
	default:
		fmt.Fprintf(env.Err, "Unknown command: %s\n", subcommand)
		printUsage(fs, env.Err)
		return exitcode.New(exitcode.UserError, fmt.Errorf("unknown command: %s", subcommand))
	}
}

// openStore opens the configured task file. Any failure to read it is a
// store error.
func (a *app) openStore() (*store.TaskStore, error) {
	s, err := store.Open(a.cfg.TaskFile, store.WithClock(a.now), store.WithLogger(a.logger))
	if err != nil {
		return nil, exitcode.New(exitcode.StoreError, err)
	}
	return s, nil
}

// noArgs rejects positional arguments for commands that take none.
func noArgs(name string, args []string) error {
	if len(args) > 0 {
		return exitcode.New(exitcode.UserError, fmt.Errorf("%s: unexpected arguments: %v", name, args))
	}
	return nil
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "taskmgr version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskmgr - A simple personal task manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskmgr [global options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add [-due YYYY-MM-DD] [title...]  Add a new task")
	fmt.Fprintln(w, "  done [n]                          Mark task n as completed")
	fmt.Fprintln(w, "  pending                           List pending tasks (default command)")
	fmt.Fprintln(w, "  completed                         List completed tasks")
	fmt.Fprintln(w, "  all, ls                           List all tasks")
	fmt.Fprintln(w, "  check                             Validate the task file")
	fmt.Fprintln(w, "  config [-example]                 Show resolved configuration")
	fmt.Fprintln(w, "  tui [-interval 2s]                Launch terminal viewer")
	fmt.Fprintln(w, "  version                           Show version information")
	fmt.Fprintln(w, "  help                              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task numbers count every task in the list, completed ones included.")
}
