package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/task"
)

// lsCommand lists tasks with deterministic ordering.
func lsCommand(w io.Writer, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskdeck ls", flag.ContinueOnError)
	statusFlag := fs.String("status", "", "Filter by status (all|completed|pending)")
	category := fs.String("category", "", "Filter by category (exact match)")
	verbose := fs.Bool("v", false, "Show more details")
	asJSON := fs.Bool("json", false, "Print tasks as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) >= 1 && *statusFlag == "" {
		*statusFlag = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	status, err := task.ParseStatusFilter(*statusFlag)
	if err != nil {
		return err
	}

	tasks := store.Filter(status, *category)
	task.SortForDisplay(tasks)

	if *asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return nil
	}

	printTaskList(w, tasks, *verbose)
	return nil
}

func printTaskList(w io.Writer, tasks []task.Task, verbose bool) {
	for _, t := range tasks {
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s #%d %s (%s)", checkbox, t.ID, t.Title, t.Category)
		if t.DueDate != "" {
			line += " due " + t.DueDate
		}
		fmt.Fprintln(w, line)
		if verbose && t.Description != "" {
			fmt.Fprintf(w, "    %s\n", t.Description)
		}
	}
}
