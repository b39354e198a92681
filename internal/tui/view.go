package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/streak"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case tabToday:
		content = m.viewToday()
	case tabRoutines:
		content = m.viewRoutines()
	case tabStreaks:
		content = m.viewStreaks()
	}

	var banner string
	if m.err != nil {
		banner = dangerStyle.Render(fmt.Sprintf("error: %v", m.err))
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m.keys),
	))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if tab(i) == m.state {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "  " + subtleStyle.Render(m.today)
}

func (m Model) viewToday() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Pending (%d)", len(m.part.Pending))))
	b.WriteString("\n")
	if len(m.part.Pending) == 0 {
		b.WriteString(subtleStyle.Render("  nothing left, nice work"))
		b.WriteString("\n")
	}
	rowIdx := 0
	for _, task := range m.part.Pending {
		b.WriteString(m.renderTaskLine(task, false, rowIdx))
		rowIdx++
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Completed (%d)", len(m.part.Completed))))
	b.WriteString("\n")
	for _, task := range m.part.Completed {
		b.WriteString(m.renderTaskLine(task, true, rowIdx))
		rowIdx++
	}

	return b.String()
}

func (m Model) renderTaskLine(task models.Task, done bool, rowIdx int) string {
	mark := "[ ]"
	if done {
		mark = "[x]"
	}
	line := fmt.Sprintf("  %s %s %s", mark, task.Emoji, task.Title)
	if rowIdx == m.cursor {
		return selectedStyle.Render(line) + "\n"
	}
	if done {
		return doneStyle.Render(line) + "\n"
	}
	return line + "\n"
}

func (m Model) viewRoutines() string {
	if len(m.routines) == 0 {
		return subtleStyle.Render("No routines scheduled today.")
	}

	var b strings.Builder
	rowIdx := 0
	for _, routine := range m.routines {
		done := 0
		for _, item := range routine.Tasks {
			if item.Done {
				done++
			}
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d/%d)", routine.Name, done, len(routine.Tasks))))
		b.WriteString("\n")
		rowIdx++ // header row

		for _, item := range routine.Tasks {
			mark := "[ ]"
			if item.Done {
				mark = "[x]"
			}
			line := fmt.Sprintf("  %s %s (%dm)", mark, item.Title, item.DurationMin)
			if rowIdx == m.cursor {
				b.WriteString(selectedStyle.Render(line))
			} else if item.Done {
				b.WriteString(doneStyle.Render(line))
			} else {
				b.WriteString(line)
			}
			b.WriteString("\n")
			rowIdx++
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStreaks() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Streaks"))
	b.WriteString("\n")

	printed := false
	for _, part := range [][]models.Task{m.part.Pending, m.part.Completed} {
		for _, task := range part {
			if !task.Recurrence.IsRecurring() {
				continue
			}
			printed = true

			length, err := streak.Length(task.CompletedDates, m.today)
			if err != nil {
				continue
			}
			alive, err := streak.IsAlive(task.LastCompletionKey(), m.today)
			if err != nil {
				continue
			}

			flame := "  "
			if alive && length > 0 {
				flame = "🔥"
			}
			line := fmt.Sprintf("  %s %s %s: %d day(s)", flame, task.Emoji, task.Title, length)
			if alive {
				b.WriteString(line)
			} else {
				b.WriteString(doneStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	if !printed {
		b.WriteString(subtleStyle.Render("  No recurring tasks yet."))
		b.WriteString("\n")
	}
	return b.String()
}
