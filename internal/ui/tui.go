// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/config"
	"taskdeck/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeForm
)

// Model is the bubbletea model for the task list screen.
type Model struct {
	store *task.Store
	cfg   *config.Config

	tasks  []task.Task
	cursor int
	mode   mode

	input textinput.Model
	form  *formState

	statusFilter   task.StatusFilter
	categoryFilter string

	confirmDel bool
	pendingDel *task.Task

	showHelp bool
	status   string

	// now is replaceable so due hints are stable in tests.
	now func() time.Time
}

// Run starts the interactive task list.
func Run(ctx context.Context, store *task.Store, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("interactive mode requires a TTY")
	}

	m := NewModel(store, cfg)
	if warn := store.LoadWarning(); warn != nil {
		m.status = fmt.Sprintf("task file was unreadable, starting empty (%v)", warn)
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// NewModel builds the initial model over an opened store.
func NewModel(store *task.Store, cfg *config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:        store,
		cfg:          cfg,
		input:        ti,
		statusFilter: task.StatusAll,
		status:       "Press a to add, space to toggle, d to delete, ? for help.",
		now:          time.Now,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode == modeForm {
			return m.updateFormMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "a":
		return m.startAdd()
	case "e":
		if len(m.tasks) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(m.tasks[m.cursor])
	case " ", "enter":
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		updated, err := m.store.ToggleComplete(t.ID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.refresh()
		m.focusTask(updated.ID)
		if updated.Completed {
			m.status = fmt.Sprintf("Completed %q", updated.Title)
		} else {
			m.status = fmt.Sprintf("Reopened %q", updated.Title)
		}
	case "d":
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		if !m.cfg.ConfirmDelete {
			return m.deleteTask(t.ID, t.Title)
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	case "1":
		m.statusFilter = task.StatusAll
		m.refresh()
		m.status = "Showing all tasks"
	case "2":
		m.statusFilter = task.StatusPending
		m.refresh()
		m.status = "Showing pending tasks"
	case "3":
		m.statusFilter = task.StatusCompleted
		m.refresh()
		m.status = "Showing completed tasks"
	case "c":
		m.cycleCategory()
	case "0":
		m.statusFilter = task.StatusAll
		m.categoryFilter = ""
		m.refresh()
		m.status = "Filters cleared"
	case "r", "f5":
		m.store.Reload()
		m.refresh()
		m.status = "Reloaded from disk"
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.pendingDel == nil {
			m.confirmDel = false
			return m, nil
		}
		id, title := m.pendingDel.ID, m.pendingDel.Title
		m.confirmDel = false
		m.pendingDel = nil
		return m.deleteTask(id, title)
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
	}
	return m, nil
}

func (m Model) deleteTask(id int64, title string) (tea.Model, tea.Cmd) {
	if err := m.store.Delete(id); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return m, nil
	}
	m.refresh()
	m.status = fmt.Sprintf("Deleted %q", title)
	return m, nil
}

// cycleCategory steps the category filter through the known categories
// and back to no filter.
func (m *Model) cycleCategory() {
	categories := m.store.Categories()
	if len(categories) == 0 {
		return
	}
	next := 0
	if m.categoryFilter != "" {
		for i, c := range categories {
			if c == m.categoryFilter {
				next = i + 1
				break
			}
		}
	}
	if next >= len(categories) {
		m.categoryFilter = ""
		m.status = "Category filter cleared"
	} else {
		m.categoryFilter = categories[next]
		m.status = fmt.Sprintf("Showing category %q", m.categoryFilter)
	}
	m.refresh()
}

// refresh rebuilds the visible task slice from the store.
func (m *Model) refresh() {
	m.tasks = m.store.Filter(m.statusFilter, m.categoryFilter)
	task.SortForDisplay(m.tasks)
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

// focusTask moves the cursor to the task with the given id, if visible.
func (m *Model) focusTask(id int64) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
