// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/logging"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	logger := logging.FromConfig(cfg)

	// Determine the subcommand. With no args the TUI is the default.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	store := task.Open(cfg.StorePath())
	store.Configure(cfg.DefaultCategory, cfg.Categories)
	if warn := store.LoadWarning(); warn != nil {
		logger.Warn("task file unreadable, starting with an empty list", "path", store.Path(), "err", warn)
	}
	logger.Debug("store opened", "path", store.Path(), "tasks", store.Len())

	switch subcommand {
	case "tui":
		return ui.Run(ctx, store, cfg)
	case "ls", "list":
		return lsCommand(os.Stdout, store, remainingArgs)
	case "add":
		return addCommand(os.Stdout, store, remainingArgs)
	case "edit":
		return editCommand(os.Stdout, store, remainingArgs)
	case "complete", "done":
		return completeCommand(os.Stdout, store, remainingArgs)
	case "delete", "rm":
		return deleteCommand(os.Stdout, store, remainingArgs)
	case "export":
		return exportCommand(os.Stdout, store, remainingArgs)
	case "doctor":
		return doctorCommand(os.Stdout, cfg, store, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand(os.Stdout)
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// parseTaskID reads the single positional task id argument.
func parseTaskID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one task id, got %d arguments", len(args))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskdeck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskdeck - A personal to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui             Launch the interactive task list (default command)")
	fmt.Fprintln(w, "  ls [status]     List tasks")
	fmt.Fprintln(w, "  add <title>     Add a task")
	fmt.Fprintln(w, "  edit <id>       Edit fields of a task")
	fmt.Fprintln(w, "  complete <id>   Toggle a task's completed state")
	fmt.Fprintln(w, "  delete <id>     Delete a task")
	fmt.Fprintln(w, "  export          Export tasks (json, csv, or pdf)")
	fmt.Fprintln(w, "  doctor          Check config, store file, and schema validity")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (all|completed|pending)")
	fmt.Fprintln(w, "  -category string")
	fmt.Fprintln(w, "        Filter by category (exact match)")
	fmt.Fprintln(w, "  -v    Show more details")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -description string")
	fmt.Fprintln(w, "        Task description")
	fmt.Fprintln(w, "  -category string")
	fmt.Fprintln(w, "        Task category (default General)")
	fmt.Fprintln(w, "  -due string")
	fmt.Fprintln(w, "        Due date (YYYY-MM-DD)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (json|csv|pdf, default json)")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Output file (default stdout)")
}
