package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"taskdeck/internal/config"
	"taskdeck/internal/task"
)

// doctorCommand checks config, store file, and schema validity.
func doctorCommand(w io.Writer, cfg *config.Config, store *task.Store, args []string) error {
	fs := flag.NewFlagSet("taskdeck doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	fmt.Fprintln(w, "Taskdeck Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintf(w, "Working directory: %s\n", cfg.WorkDir)
	if _, err := os.Stat(cfg.WorkDir); err != nil {
		fmt.Fprintf(w, "  FAIL %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  OK")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Store file: %s\n", store.Path())
	info, err := os.Stat(store.Path())
	switch {
	case os.IsNotExist(err):
		fmt.Fprintln(w, "  WARN not found (will be created on first add)")
	case err != nil:
		fmt.Fprintf(w, "  FAIL %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  FAIL path is a directory")
		allOK = false
	default:
		fmt.Fprintln(w, "  OK")
		if warn := store.LoadWarning(); warn != nil {
			fmt.Fprintf(w, "  WARN unreadable, treated as empty: %v\n", warn)
		} else {
			result := store.File().Validate(task.ValidationOptions{SchemaPath: cfg.SchemaPath()})
			for _, warning := range result.Warnings {
				fmt.Fprintf(w, "  WARN %s\n", warning)
			}
			if result.Valid {
				fmt.Fprintln(w, "  Valid")
			} else {
				fmt.Fprintln(w, "  FAIL validation errors:")
				for _, e := range result.Errors {
					fmt.Fprintf(w, "     - %v\n", e)
				}
				allOK = false
			}
			if *verbose {
				fmt.Fprintf(w, "  Tasks: %d\n", store.Len())
				for _, t := range store.List() {
					fmt.Fprintf(w, "    - [#%d] %s (%s)\n", t.ID, t.Title, t.Category)
				}
			}
		}
	}
	fmt.Fprintln(w)

	schemaPath := cfg.SchemaPath()
	fmt.Fprintf(w, "Schema file: %s\n", schemaPath)
	if schemaPath == "" {
		fmt.Fprintln(w, "  WARN not configured, minimal checks only")
	} else if info, err := os.Stat(schemaPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  WARN not found, minimal checks only")
		} else {
			fmt.Fprintf(w, "  FAIL %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Fprintln(w, "  FAIL path is a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  OK")
	}
	fmt.Fprintln(w)

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}
