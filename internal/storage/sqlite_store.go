package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/routina/internal/constants"
	apperrors "github.com/julianstephens/routina/internal/errors"
	"github.com/julianstephens/routina/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	timezone TEXT NOT NULL DEFAULT 'Local',
	notifications_enabled INTEGER NOT NULL DEFAULT 1,
	splitter_base_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	emoji TEXT NOT NULL DEFAULT '',
	subtasks TEXT NOT NULL DEFAULT '[]',
	recurrence_type TEXT NOT NULL,
	recurrence_weekdays TEXT NOT NULL DEFAULT '[]',
	completed INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	deleted_at TEXT
);

CREATE TABLE IF NOT EXISTS task_completions (
	task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	day TEXT NOT NULL,
	PRIMARY KEY (task_id, day)
);

CREATE TABLE IF NOT EXISTS routines (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	days TEXT NOT NULL DEFAULT '[]',
	tasks TEXT NOT NULL DEFAULT '[]',
	reminder_enabled INTEGER NOT NULL DEFAULT 0,
	reminder_time TEXT NOT NULL DEFAULT '',
	last_cycle_day TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	deleted_at TEXT
);
`

// SQLiteStore persists entities in a local SQLite database. Completion day
// keys get their own table so the set semantics (unique membership per
// task+day) are enforced by the schema.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %v", apperrors.ErrPersistenceFailure, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", apperrors.ErrPersistenceFailure, err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: failed to create schema: %v", apperrors.ErrPersistenceFailure, err)
	}

	// Seed default settings if absent
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&count); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if count == 0 {
		if err := s.SaveSettings(models.Settings{Timezone: "Local", NotificationsEnabled: true}); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'routina init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", apperrors.ErrPersistenceFailure, err)
	}
	s.db = db

	// Schema creation is idempotent; running it on load covers databases
	// created by older builds that predate a table.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("%w: failed to verify schema: %v", apperrors.ErrPersistenceFailure, err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	var settings models.Settings
	var enabled int
	err := s.db.QueryRow(`SELECT timezone, notifications_enabled, splitter_base_url FROM settings WHERE id = 1`).
		Scan(&settings.Timezone, &enabled, &settings.SplitterBaseURL)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	settings.NotificationsEnabled = enabled != 0
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	enabled := 0
	if settings.NotificationsEnabled {
		enabled = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone, notifications_enabled, splitter_base_url)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			timezone = excluded.timezone,
			notifications_enabled = excluded.notifications_enabled,
			splitter_base_url = excluded.splitter_base_url`,
		settings.Timezone, enabled, settings.SplitterBaseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	return s.upsertTask(task)
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE id = ?`, task.ID).Scan(&exists); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if exists == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	return s.upsertTask(task)
}

func (s *SQLiteStore) upsertTask(task models.Task) error {
	subtasks, err := json.Marshal(task.Subtasks)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	weekdays, err := json.Marshal(task.Recurrence.WeekdayMask)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	completed := 0
	if task.Completed {
		completed = 1
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO tasks (id, title, emoji, subtasks, recurrence_type, recurrence_weekdays, completed, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			emoji = excluded.emoji,
			subtasks = excluded.subtasks,
			recurrence_type = excluded.recurrence_type,
			recurrence_weekdays = excluded.recurrence_weekdays,
			completed = excluded.completed,
			deleted_at = excluded.deleted_at`,
		task.ID, task.Title, task.Emoji, string(subtasks),
		string(task.Recurrence.Type), string(weekdays), completed,
		task.CreatedAt.UTC().Format(time.RFC3339), task.DeletedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}

	// Rewrite the completion set wholesale; it is authoritative in memory.
	if _, err := tx.Exec(`DELETE FROM task_completions WHERE task_id = ?`, task.ID); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	for _, day := range task.CompletedDates {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO task_completions (task_id, day) VALUES (?, ?)`, task.ID, day); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

func (s *SQLiteStore) scanTask(scan func(dest ...interface{}) error) (models.Task, error) {
	var t models.Task
	var subtasks, weekdays, recType, createdAt string
	var completed int
	var deletedAt sql.NullString

	if err := scan(&t.ID, &t.Title, &t.Emoji, &subtasks, &recType, &weekdays, &completed, &createdAt, &deletedAt); err != nil {
		return models.Task{}, err
	}

	t.Recurrence.Type = constants.RecurrenceType(recType)
	t.Completed = completed != 0
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if err := json.Unmarshal([]byte(subtasks), &t.Subtasks); err != nil {
		return models.Task{}, fmt.Errorf("%w: corrupt subtasks for %s: %v", apperrors.ErrPersistenceFailure, t.ID, err)
	}
	if err := json.Unmarshal([]byte(weekdays), &t.Recurrence.WeekdayMask); err != nil {
		return models.Task{}, fmt.Errorf("%w: corrupt weekday mask for %s: %v", apperrors.ErrPersistenceFailure, t.ID, err)
	}

	return t, nil
}

func (s *SQLiteStore) loadCompletions(t *models.Task) error {
	rows, err := s.db.Query(`SELECT day FROM task_completions WHERE task_id = ? ORDER BY day`, t.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
		}
		t.CompletedDates = append(t.CompletedDates, day)
	}
	return rows.Err()
}

const taskColumns = `id, title, emoji, subtasks, recurrence_type, recurrence_weekdays, completed, created_at, deleted_at`

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND deleted_at IS NULL`, id)
	t, err := s.scanTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, fmt.Errorf("task not found: %s", id)
		}
		return models.Task{}, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if err := s.loadCompletions(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := s.scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}

	for i := range tasks {
		if err := s.loadCompletions(&tasks[i]); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (s *SQLiteStore) DeleteTask(id string) error {
	return s.softDelete("tasks", "task", id)
}

func (s *SQLiteStore) RestoreTask(id string) error {
	return s.restore("tasks", "task", id)
}

func (s *SQLiteStore) AddRoutine(routine models.Routine) error {
	return s.upsertRoutine(routine)
}

func (s *SQLiteStore) UpdateRoutine(routine models.Routine) error {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM routines WHERE id = ?`, routine.ID).Scan(&exists); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	if exists == 0 {
		return fmt.Errorf("routine not found: %s", routine.ID)
	}
	return s.upsertRoutine(routine)
}

func (s *SQLiteStore) upsertRoutine(routine models.Routine) error {
	days, err := json.Marshal(routine.Days)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	tasks, err := json.Marshal(routine.Tasks)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	enabled := 0
	if routine.Reminder.Enabled {
		enabled = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO routines (id, name, days, tasks, reminder_enabled, reminder_time, last_cycle_day, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			days = excluded.days,
			tasks = excluded.tasks,
			reminder_enabled = excluded.reminder_enabled,
			reminder_time = excluded.reminder_time,
			last_cycle_day = excluded.last_cycle_day,
			deleted_at = excluded.deleted_at`,
		routine.ID, routine.Name, string(days), string(tasks),
		enabled, routine.Reminder.Time, routine.LastCycleDay,
		routine.CreatedAt.UTC().Format(time.RFC3339), routine.DeletedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

func (s *SQLiteStore) scanRoutine(scan func(dest ...interface{}) error) (models.Routine, error) {
	var r models.Routine
	var days, tasks, createdAt string
	var enabled int
	var deletedAt sql.NullString

	if err := scan(&r.ID, &r.Name, &days, &tasks, &enabled, &r.Reminder.Time, &r.LastCycleDay, &createdAt, &deletedAt); err != nil {
		return models.Routine{}, err
	}

	r.Reminder.Enabled = enabled != 0
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.String
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = ts
	}
	if err := json.Unmarshal([]byte(days), &r.Days); err != nil {
		return models.Routine{}, fmt.Errorf("%w: corrupt day set for %s: %v", apperrors.ErrPersistenceFailure, r.ID, err)
	}
	if err := json.Unmarshal([]byte(tasks), &r.Tasks); err != nil {
		return models.Routine{}, fmt.Errorf("%w: corrupt checklist for %s: %v", apperrors.ErrPersistenceFailure, r.ID, err)
	}

	return r, nil
}

const routineColumns = `id, name, days, tasks, reminder_enabled, reminder_time, last_cycle_day, created_at, deleted_at`

func (s *SQLiteStore) GetRoutine(id string) (models.Routine, error) {
	row := s.db.QueryRow(`SELECT `+routineColumns+` FROM routines WHERE id = ? AND deleted_at IS NULL`, id)
	r, err := s.scanRoutine(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Routine{}, fmt.Errorf("routine not found: %s", id)
		}
		return models.Routine{}, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return r, nil
}

func (s *SQLiteStore) GetAllRoutines() ([]models.Routine, error) {
	rows, err := s.db.Query(`SELECT ` + routineColumns + ` FROM routines WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		r, err := s.scanRoutine(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
		}
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *SQLiteStore) DeleteRoutine(id string) error {
	return s.softDelete("routines", "routine", id)
}

func (s *SQLiteStore) RestoreRoutine(id string) error {
	return s.restore("routines", "routine", id)
}

func (s *SQLiteStore) softDelete(table, kind, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`UPDATE `+table+` SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%s not found: %s", kind, id)
	}
	return nil
}

func (s *SQLiteStore) restore(table, kind, id string) error {
	res, err := s.db.Exec(`UPDATE `+table+` SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("cannot restore a %s that is not deleted: %s", kind, id)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
