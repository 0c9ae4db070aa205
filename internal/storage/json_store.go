package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/kdrews/cadence/internal/models"
)

// Store is the on-disk JSON document.
type Store struct {
	Version     int                            `json:"version"`
	Habits      map[string]models.Habit        `json:"habits"`
	Completions map[string][]models.Completion `json:"completions"`
}

// JSONStore keeps the whole tracker in a single JSON file. It fingerprints
// the document on load and refuses to save over a file that another
// process modified in the meantime; concurrent access is otherwise
// unsupported.
type JSONStore struct {
	path       string
	store      *Store
	loadedHash uint64
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:     1,
		Habits:      make(map[string]models.Habit),
		Completions: make(map[string][]models.Completion),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'cadence init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Completions == nil {
		s.store.Completions = make(map[string][]models.Completion)
	}

	s.loadedHash, err = hashOnDisk(s.path)
	if err != nil {
		return err
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	// Detect a write from another process since our Load. The stale copy
	// in memory would silently clobber it otherwise.
	if s.loadedHash != 0 {
		current, err := hashOnDisk(s.path)
		if err != nil {
			return err
		}
		if current != 0 && current != s.loadedHash {
			return fmt.Errorf("storage file %s was modified by another process; refusing to overwrite", s.path)
		}
	}

	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	s.loadedHash, err = hashOnDisk(s.path)
	return err
}

// hashOnDisk fingerprints the parsed contents of the storage file.
// Returns 0 when the file does not exist.
func hashOnDisk(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read storage for fingerprint: %w", err)
	}

	var st Store
	if err := json.Unmarshal(data, &st); err != nil {
		return 0, fmt.Errorf("failed to parse storage for fingerprint: %w", err)
	}

	hash, err := hashstructure.Hash(st, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fingerprint storage: %w", err)
	}
	return hash, nil
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if strings.TrimSpace(habit.Name) == "" {
		return ErrEmptyHabitName
	}

	for _, h := range s.store.Habits {
		if equalFoldASCII(h.Name, habit.Name) {
			return fmt.Errorf("%w: %s", ErrDuplicateHabit, habit.Name)
		}
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	for _, h := range s.store.Habits {
		if equalFoldASCII(h.Name, name) {
			return h, nil
		}
	}
	return models.Habit{}, ErrHabitNotFound
}

// equalFoldASCII compares names ignoring ASCII case only, matching the
// NOCASE collation on the habits.name column so both stores agree on
// which names collide.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, h := range s.store.Habits {
		habits = append(habits, h)
	}
	sortHabits(habits)
	return habits, nil
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("%w: id %s", ErrHabitNotFound, id)
	}

	delete(s.store.Habits, id)
	delete(s.store.Completions, id)
	return s.save()
}

func (s *JSONStore) AddCompletion(c models.Completion) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[c.HabitID]; !ok {
		return fmt.Errorf("%w: id %s", ErrHabitNotFound, c.HabitID)
	}

	s.store.Completions[c.HabitID] = append(s.store.Completions[c.HabitID], c)
	return s.save()
}

func (s *JSONStore) GetCompletions(habitID string) ([]models.Completion, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	completions := make([]models.Completion, len(s.store.Completions[habitID]))
	copy(completions, s.store.Completions[habitID])
	sortCompletions(completions)
	return completions, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
