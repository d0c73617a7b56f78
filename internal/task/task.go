package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// Task represents a single to-do item.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	DueDate     string     `json:"due_date,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// StatusFilter narrows a task list by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// ParseStatusFilter maps user input to a StatusFilter.
// An empty string means "all".
func ParseStatusFilter(raw string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return StatusAll, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "pending", "open":
		return StatusPending, nil
	}
	return "", fmt.Errorf("invalid status %q, must be one of: all, completed, pending", raw)
}

// Matches reports whether the task passes the status filter.
func (f StatusFilter) Matches(t *Task) bool {
	switch f {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	default:
		return true
	}
}

// ParseDueDate normalizes a user-entered due date. Empty input yields an
// empty string (no due date); anything else must be YYYY-MM-DD.
func ParseDueDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", ErrBadDueDate
	}
	return d.Format(DateLayout), nil
}

// DaysUntil returns the number of whole days from today until the due
// date. The second return value is false when the task has no parseable
// due date.
func DaysUntil(due string, now time.Time) (int, bool) {
	if due == "" {
		return 0, false
	}
	d, err := time.Parse(DateLayout, due)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(today).Hours() / 24), true
}

// DueHint renders the short urgency hint shown next to a pending task:
// "OVERDUE Nd", "TODAY", or "in Nd" for tasks due within three days.
// Completed tasks and tasks without a due date get no hint.
func DueHint(t *Task, now time.Time) string {
	if t.Completed {
		return ""
	}
	eta, ok := DaysUntil(t.DueDate, now)
	if !ok {
		return ""
	}
	switch {
	case eta < 0:
		return fmt.Sprintf("OVERDUE %dd", -eta)
	case eta == 0:
		return "TODAY"
	case eta <= 3:
		return fmt.Sprintf("in %dd", eta)
	}
	return ""
}

// SortForDisplay orders tasks the way the list view shows them: pending
// before completed, then by due date (tasks without one last), then
// category, then title. The sort is stable so equal tasks keep file order.
func SortForDisplay(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ka, kb := dueSortKey(a.DueDate), dueSortKey(b.DueDate); ka != kb {
			return ka < kb
		}
		if ca, cb := strings.ToLower(a.Category), strings.ToLower(b.Category); ca != cb {
			return ca < cb
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

// dueSortKey maps a due date to a sortable string; missing or malformed
// dates sort after every real date.
func dueSortKey(due string) string {
	if due == "" {
		return "9999-99-99"
	}
	if _, err := time.Parse(DateLayout, due); err != nil {
		return "9999-99-99"
	}
	return due
}
