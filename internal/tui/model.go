// Package tui renders the interactive today view: pending and completed
// tasks, scheduled routines, and streaks, with single-key toggling.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/planner"
	"github.com/julianstephens/routina/internal/storage"
	"github.com/julianstephens/routina/internal/utils"
)

type tab int

const (
	tabToday tab = iota
	tabRoutines
	tabStreaks
)

var tabNames = []string{"Today", "Routines", "Streaks"}

// row is a flat cursor target: either a task on the today tab or a
// checklist item on the routines tab.
type row struct {
	taskID    string
	routineID string
	itemID    string
	header    bool
}

type Model struct {
	store storage.Provider
	loc   *time.Location
	today string

	state    tab
	cursor   int
	rows     []row
	tasks    map[string]models.Task
	part     planner.Partition
	routines []models.Routine

	keys     keyMap
	help     help.Model
	err      error
	quitting bool
	width    int
	height   int
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Tab    key.Binding
	Quit   key.Binding
	Help   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Tab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Tab, k.Help, k.Quit},
	}
}

func New(store storage.Provider, loc *time.Location) Model {
	m := Model{
		store: store,
		loc:   loc,
		today: utils.TodayKey(loc),
		keys:  defaultKeyMap(),
		help:  help.New(),
		tasks: make(map[string]models.Task),
	}
	m.err = m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload re-reads storage and rebuilds the cursor rows for the active tab.
func (m *Model) reload() error {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		return err
	}
	part, err := planner.PartitionTasks(tasks, m.today)
	if err != nil {
		return err
	}
	routines, err := m.store.GetAllRoutines()
	if err != nil {
		return err
	}

	m.tasks = make(map[string]models.Task, len(tasks))
	for _, task := range tasks {
		m.tasks[task.ID] = task
	}
	m.part = part

	m.routines = m.routines[:0]
	for _, routine := range routines {
		scheduled, err := planner.RoutineScheduledOn(routine, m.today)
		if err != nil {
			return err
		}
		if !scheduled {
			continue
		}
		rolled, changed, err := planner.RollCycle(routine, m.today)
		if err != nil {
			return err
		}
		if changed {
			if err := m.store.UpdateRoutine(rolled); err != nil {
				return err
			}
		}
		m.routines = append(m.routines, rolled)
	}

	m.buildRows()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return nil
}

func (m *Model) buildRows() {
	m.rows = m.rows[:0]
	switch m.state {
	case tabToday:
		for _, task := range m.part.Pending {
			m.rows = append(m.rows, row{taskID: task.ID})
		}
		for _, task := range m.part.Completed {
			m.rows = append(m.rows, row{taskID: task.ID})
		}
	case tabRoutines:
		for _, routine := range m.routines {
			m.rows = append(m.rows, row{routineID: routine.ID, header: true})
			for _, item := range routine.Tasks {
				m.rows = append(m.rows, row{routineID: routine.ID, itemID: item.ID})
			}
		}
	}
}
