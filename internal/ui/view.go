package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/task"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	completedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dueSoonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	categoryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusStyle    = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Taskdeck"))
	b.WriteString("\n\n")

	if m.showHelp {
		writeHelp(&b)
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
		return b.String()
	}

	if filter := m.filterLine(); filter != "" {
		b.WriteString(filter)
		b.WriteString("\n\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString("No tasks. Press a to add one.\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	if m.mode == modeForm && m.form != nil {
		b.WriteString(m.renderForm())
	} else {
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("a add | e edit | space toggle | d delete | 1/2/3 status | c category | 0 clear | ? help | q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) filterLine() string {
	var parts []string
	if m.statusFilter != task.StatusAll {
		parts = append(parts, "status: "+string(m.statusFilter))
	}
	if m.categoryFilter != "" {
		parts = append(parts, "category: "+m.categoryFilter)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filter " + strings.Join(parts, ", ") + " (0 to clear)"
}

func (m Model) renderTaskList() string {
	now := m.now()
	var b strings.Builder
	for i, t := range m.tasks {
		cursor := " "
		if m.cursor == i && m.mode == modeList && !m.confirmDel {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		line := fmt.Sprintf("%s %s #%-3d %s", cursor, checkbox, t.ID, t.Title)
		if t.Category != "" {
			line += " " + categoryStyle.Render("("+t.Category+")")
		}
		if hint := task.DueHint(&t, now); hint != "" {
			style := dueSoonStyle
			if strings.HasPrefix(hint, "OVERDUE") {
				style = overdueStyle
			}
			line += " " + style.Render(hint)
		}

		switch {
		case t.Completed:
			line = completedStyle.Render(line)
		case m.cursor == i && m.mode == modeList:
			line = selectedStyle.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	if len(m.tasks) == 0 {
		return ""
	}
	t := m.tasks[clampCursor(m.cursor, len(m.tasks))]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Title       : %s\n", t.Title))
	b.WriteString(fmt.Sprintf("Status      : %s\n", humanStatus(t.Completed)))
	b.WriteString(fmt.Sprintf("Category    : %s\n", t.Category))
	if t.Description != "" {
		b.WriteString(fmt.Sprintf("Description : %s\n", t.Description))
	}
	if t.DueDate != "" {
		b.WriteString(fmt.Sprintf("Due         : %s\n", t.DueDate))
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	heading := "New task"
	if m.form.taskID != 0 {
		heading = fmt.Sprintf("Edit task #%d", m.form.taskID)
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	fields := formFields()
	values := []string{m.form.title, m.form.description, m.form.category, m.form.due}
	for i, name := range fields {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		val := values[i]
		if i == m.form.index {
			val = m.input.View()
		} else if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-22s : %s\n", prefix, name, val))
	}
	return b.String()
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j    Move cursor\n")
	b.WriteString("  a               Add a task\n")
	b.WriteString("  e               Edit the selected task\n")
	b.WriteString("  space, enter    Toggle completed\n")
	b.WriteString("  d               Delete the selected task\n")
	b.WriteString("  1               Show all tasks\n")
	b.WriteString("  2               Show pending tasks\n")
	b.WriteString("  3               Show completed tasks\n")
	b.WriteString("  c               Cycle category filter\n")
	b.WriteString("  0               Clear all filters\n")
	b.WriteString("  r, F5           Reload from disk\n")
	b.WriteString("  h, ?            Toggle this help screen\n")
	b.WriteString("  q, ctrl+c       Quit\n\n")
}

func humanStatus(completed bool) string {
	if completed {
		return "completed"
	}
	return "pending"
}
