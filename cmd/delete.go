package cmd

import (
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/task"
)

// deleteCommand removes a task by id.
func deleteCommand(w io.Writer, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskdeck delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseTaskID(fs.Args())
	if err != nil {
		return err
	}

	t := store.Get(id)
	if err := store.Delete(id); err != nil {
		return err
	}

	fmt.Fprintf(w, "Deleted #%d %s\n", id, t.Title)
	return nil
}
