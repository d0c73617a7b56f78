// Package export renders the task list to json, csv, or pdf.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskdeck/internal/task"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

type Exporter struct{ store *task.Store }

func NewExporter(store *task.Store) *Exporter { return &Exporter{store: store} }

// Export renders the tasks matching status and category in the given
// format. Tasks come out in display order.
func (e *Exporter) Export(format string, status task.StatusFilter, category string) ([]byte, error) {
	tasks := e.store.Filter(status, category)
	task.SortForDisplay(tasks)

	switch strings.ToLower(format) {
	case "json":
		out, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "csv":
		var b strings.Builder
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "description", "category", "completed", "due_date"})
		for _, t := range tasks {
			_ = w.Write([]string{
				strconv.FormatInt(t.ID, 10),
				t.Title,
				t.Description,
				t.Category,
				strconv.FormatBool(t.Completed),
				t.DueDate,
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Task List")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for _, t := range tasks {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s #%d %s (%s)", mark, t.ID, t.Title, t.Category)
			if t.DueDate != "" {
				line += " due " + t.DueDate
			}
			pdf.MultiCell(0, 6, line, "0", "L", false)
			if t.Description != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.MultiCell(0, 5, "    "+t.Description, "0", "L", false)
				pdf.SetFont("Arial", "", 10)
			}
		}
		var buf strings.Builder
		if err := pdf.Output(io.Writer(&buf)); err != nil {
			return nil, err
		}
		return []byte(buf.String()), nil
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}
