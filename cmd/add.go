package cmd

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/task"
)

// addCommand creates a task from the command line.
func addCommand(w io.Writer, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskdeck add", flag.ContinueOnError)
	description := fs.String("description", "", "Task description")
	category := fs.String("category", "", "Task category")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	created, err := store.Add(title, *description, *category, *due)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Added #%d %s\n", created.ID, created.Title)
	return nil
}
