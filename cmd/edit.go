package cmd

import (
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/task"
)

// editCommand updates only the fields whose flags were given.
func editCommand(w io.Writer, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskdeck edit", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description")
	category := fs.String("category", "", "New category")
	due := fs.String("due", "", "New due date (YYYY-MM-DD, empty clears it)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseTaskID(fs.Args())
	if err != nil {
		return err
	}

	// Only flags the user actually set become part of the patch, so
	// untouched fields keep their current values.
	var patch task.Patch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "description":
			patch.Description = description
		case "category":
			patch.Category = category
		case "due":
			patch.DueDate = due
		}
	})
	if patch.IsZero() {
		return fmt.Errorf("nothing to change, pass at least one of -title, -description, -category, -due")
	}

	updated, err := store.Edit(id, patch)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Saved #%d %s\n", updated.ID, updated.Title)
	return nil
}
