package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"taskdeck/internal/export"
	"taskdeck/internal/task"
)

// exportCommand writes the task list in the requested format.
func exportCommand(w io.Writer, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskdeck export", flag.ContinueOnError)
	format := fs.String("format", "json", "Output format (json|csv|pdf)")
	output := fs.String("o", "", "Output file (default stdout)")
	statusFlag := fs.String("status", "", "Filter by status (all|completed|pending)")
	category := fs.String("category", "", "Filter by category (exact match)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	status, err := task.ParseStatusFilter(*statusFlag)
	if err != nil {
		return err
	}

	data, err := export.NewExporter(store).Export(*format, status, *category)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Fprintf(w, "Exported %s to %s\n", *format, *output)
	return nil
}
