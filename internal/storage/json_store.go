package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/julianstephens/routina/internal/errors"
	"github.com/julianstephens/routina/internal/models"
)

// Store is the on-disk shape of the JSON blob: one mapping per entity kind.
type Store struct {
	Version  int                       `json:"version"`
	Settings models.Settings           `json:"settings"`
	Tasks    map[string]models.Task    `json:"tasks"`
	Routines map[string]models.Routine `json:"routines"`
}

// JSONStore keeps everything in one JSON file, loaded whole and saved whole.
// The in-memory Store is the single authoritative copy between saves.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %v", apperrors.ErrPersistenceFailure, err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: models.Settings{
			Timezone:             "Local",
			NotificationsEnabled: true,
		},
		Tasks:    make(map[string]models.Task),
		Routines: make(map[string]models.Routine),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'routina init' first")
		}
		return fmt.Errorf("%w: failed to read storage: %v", apperrors.ErrPersistenceFailure, err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("%w: failed to parse storage: %v", apperrors.ErrPersistenceFailure, err)
	}

	// Files written before an entity kind existed omit its map entirely.
	if s.store.Tasks == nil {
		s.store.Tasks = make(map[string]models.Task)
	}
	if s.store.Routines == nil {
		s.store.Routines = make(map[string]models.Routine)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to serialize storage: %v", apperrors.ErrPersistenceFailure, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write storage: %v", apperrors.ErrPersistenceFailure, err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if s.store == nil {
		return models.Task{}, fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok || task.DeletedAt != nil {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}

	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	tasks := make([]models.Task, 0, len(s.store.Tasks))
	for _, task := range s.store.Tasks {
		if task.DeletedAt == nil {
			tasks = append(tasks, task)
		}
	}

	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Tasks[task.ID]; !ok {
		return fmt.Errorf("task not found: %s", task.ID)
	}

	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) DeleteTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}

	// Soft delete: set deleted_at timestamp
	now := time.Now().UTC().Format(time.RFC3339)
	task.DeletedAt = &now
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) RestoreTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}

	if task.DeletedAt == nil {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}

	task.DeletedAt = nil
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) AddRoutine(routine models.Routine) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Routines[routine.ID] = routine
	return s.save()
}

func (s *JSONStore) GetRoutine(id string) (models.Routine, error) {
	if s.store == nil {
		return models.Routine{}, fmt.Errorf("storage not loaded")
	}

	routine, ok := s.store.Routines[id]
	if !ok || routine.DeletedAt != nil {
		return models.Routine{}, fmt.Errorf("routine not found: %s", id)
	}

	return routine, nil
}

func (s *JSONStore) GetAllRoutines() ([]models.Routine, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	routines := make([]models.Routine, 0, len(s.store.Routines))
	for _, routine := range s.store.Routines {
		if routine.DeletedAt == nil {
			routines = append(routines, routine)
		}
	}

	return routines, nil
}

func (s *JSONStore) UpdateRoutine(routine models.Routine) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Routines[routine.ID]; !ok {
		return fmt.Errorf("routine not found: %s", routine.ID)
	}

	s.store.Routines[routine.ID] = routine
	return s.save()
}

func (s *JSONStore) DeleteRoutine(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	routine, ok := s.store.Routines[id]
	if !ok {
		return fmt.Errorf("routine not found: %s", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	routine.DeletedAt = &now
	s.store.Routines[id] = routine
	return s.save()
}

func (s *JSONStore) RestoreRoutine(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	routine, ok := s.store.Routines[id]
	if !ok {
		return fmt.Errorf("routine not found: %s", id)
	}

	if routine.DeletedAt == nil {
		return fmt.Errorf("cannot restore a routine that is not deleted: %s", id)
	}

	routine.DeletedAt = nil
	s.store.Routines[id] = routine
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
