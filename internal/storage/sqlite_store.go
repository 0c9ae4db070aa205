package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kdrews/cadence/internal/migration"
	"github.com/kdrews/cadence/internal/models"
	_ "modernc.org/sqlite"
)

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
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := openSQLite(s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, MigrationsFS())
	if _, err := runner.Apply(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'cadence init' first")
	}

	db, err := openSQLite(s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, MigrationsFS())
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	// Pick up any migrations added since the database was initialized.
	if _, err := runner.Apply(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Cascading deletes from habits to completions require foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	if strings.TrimSpace(habit.Name) == "" {
		return ErrEmptyHabitName
	}

	_, err := s.db.Exec(
		"INSERT INTO habits (id, name, description, periodicity, created_at) VALUES (?, ?, ?, ?, ?)",
		habit.ID, habit.Name, habit.Description, string(habit.Periodicity),
		habit.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateHabit, habit.Name)
		}
		return err
	}
	return nil
}

func (s *SQLiteStore) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(
		"SELECT id, name, description, periodicity, created_at FROM habits WHERE name = ? COLLATE NOCASE",
		name,
	)
	return scanHabit(row)
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(
		"SELECT id, name, description, periodicity, created_at FROM habits ORDER BY created_at, name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	// Hard delete; the schema cascades to the habit's completions.
	res, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %s", ErrHabitNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) AddCompletion(c models.Completion) error {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", c.HabitID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: id %s", ErrHabitNotFound, c.HabitID)
	}

	_, err = s.db.Exec(
		"INSERT INTO completions (id, habit_id, completed_at) VALUES (?, ?, ?)",
		c.ID, c.HabitID, c.CompletedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) GetCompletions(habitID string) ([]models.Completion, error) {
	rows, err := s.db.Query(
		"SELECT id, habit_id, completed_at FROM completions WHERE habit_id = ? ORDER BY completed_at",
		habitID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		var completedAt string
		if err := rows.Scan(&c.ID, &c.HabitID, &completedAt); err != nil {
			return nil, err
		}
		c.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid completed_at for completion %s: %w", c.ID, err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var periodicity, createdAt string

	err := row.Scan(&h.ID, &h.Name, &h.Description, &periodicity, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, ErrHabitNotFound
		}
		return models.Habit{}, err
	}

	h.Periodicity = models.Periodicity(periodicity)
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("invalid created_at for habit %s: %w", h.Name, err)
	}
	return h, nil
}
