package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routina/internal/planner"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tab(len(tabNames))
			m.cursor = 0
			m.buildRows()
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.err = m.toggleCurrent()
			return m, nil
		}
	}

	return m, nil
}

// moveCursor skips routine headers so the cursor only lands on toggleable rows.
func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	next := m.cursor
	for {
		next += delta
		if next < 0 || next >= len(m.rows) {
			return
		}
		if !m.rows[next].header {
			m.cursor = next
			return
		}
	}
}

func (m *Model) toggleCurrent() error {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	target := m.rows[m.cursor]

	switch {
	case target.taskID != "":
		task, ok := m.tasks[target.taskID]
		if !ok {
			return nil
		}
		toggled, err := planner.Toggle(task, m.today)
		if err != nil {
			return err
		}
		if err := m.store.UpdateTask(toggled); err != nil {
			return err
		}

	case target.itemID != "":
		routine, err := m.store.GetRoutine(target.routineID)
		if err != nil {
			return err
		}
		toggled, err := planner.ToggleRoutineTask(routine, target.itemID, m.today)
		if err != nil {
			return err
		}
		if err := m.store.UpdateRoutine(toggled); err != nil {
			return err
		}
	}

	return m.reload()
}
