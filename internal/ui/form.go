package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/task"
)

// formState carries the add/edit form. taskID is 0 for a new task.
type formState struct {
	taskID      int64
	title       string
	description string
	category    string
	due         string
	index       int
}

func formFields() []string {
	return []string{"title", "description", "category", "due date (YYYY-MM-DD)"}
}

func (fs formState) currentLabel() string {
	return formFields()[fs.index]
}

func (fs formState) currentValue() string {
	switch fs.index {
	case 0:
		return fs.title
	case 1:
		return fs.description
	case 2:
		return fs.category
	case 3:
		return fs.due
	default:
		return ""
	}
}

func (fs *formState) setCurrentValue(v string) {
	switch fs.index {
	case 0:
		fs.title = v
	case 1:
		fs.description = v
	case 2:
		fs.category = v
	case 3:
		fs.due = v
	}
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	m.form = &formState{category: m.store.DefaultCategory()}
	return m.enterForm("New task: enter to advance, esc to cancel")
}

func (m Model) startEdit(t task.Task) (tea.Model, tea.Cmd) {
	m.form = &formState{
		taskID:      t.ID,
		title:       t.Title,
		description: t.Description,
		category:    t.Category,
		due:         t.DueDate,
	}
	return m.enterForm(fmt.Sprintf("Editing #%d: enter to advance, esc to cancel", t.ID))
}

func (m Model) enterForm(status string) (tea.Model, tea.Cmd) {
	m.mode = modeForm
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = status
	return m, textinput.Blink
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		return m.leaveForm("Cancelled"), nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.syncInput()
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.syncInput()
		return m, nil
	case "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index < len(formFields())-1 {
			m.form.index++
			m.syncInput()
			return m, nil
		}
		return m.saveForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncInput() {
	m.input.SetValue(m.form.currentValue())
	m.input.Placeholder = m.form.currentLabel()
	m.input.CursorEnd()
	m.status = fmt.Sprintf("Field %d of %d: %s", m.form.index+1, len(formFields()), m.form.currentLabel())
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	f := m.form

	if f.taskID == 0 {
		created, err := m.store.Add(f.title, f.description, f.category, strings.TrimSpace(f.due))
		if err != nil {
			m.status = fmt.Sprintf("add failed: %v", err)
			return m, nil
		}
		m = m.leaveForm(fmt.Sprintf("Added %q", created.Title))
		m.focusTask(created.ID)
		return m, nil
	}

	title := strings.TrimSpace(f.title)
	description := f.description
	category := strings.TrimSpace(f.category)
	due := strings.TrimSpace(f.due)
	updated, err := m.store.Edit(f.taskID, task.Patch{
		Title:       &title,
		Description: &description,
		Category:    &category,
		DueDate:     &due,
	})
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m = m.leaveForm(fmt.Sprintf("Saved %q", updated.Title))
	m.focusTask(updated.ID)
	return m, nil
}

func (m Model) leaveForm(status string) Model {
	m.form = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.status = status
	m.refresh()
	return m
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
