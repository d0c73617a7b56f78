package cmd

import (
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/task"
)

// completeCommand toggles a task's completed state.
func completeCommand(w io.Writer, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskdeck complete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseTaskID(fs.Args())
	if err != nil {
		return err
	}

	updated, err := store.ToggleComplete(id)
	if err != nil {
		return err
	}

	if updated.Completed {
		fmt.Fprintf(w, "Completed #%d %s\n", updated.ID, updated.Title)
	} else {
		fmt.Fprintf(w, "Reopened #%d %s\n", updated.ID, updated.Title)
	}
	return nil
}
