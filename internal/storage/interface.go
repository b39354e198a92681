package storage

import "github.com/julianstephens/routina/internal/models"

// Provider is the persistence collaborator. All mutations flow through a
// Provider held by one cli.Context, which keeps the single-writer discipline:
// a toggle reads, computes, and persists against one authoritative copy.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Routines
	AddRoutine(models.Routine) error
	GetRoutine(id string) (models.Routine, error)
	GetAllRoutines() ([]models.Routine, error)
	UpdateRoutine(models.Routine) error
	DeleteRoutine(id string) error
	RestoreRoutine(id string) error

	// Utils
	GetConfigPath() string
}
