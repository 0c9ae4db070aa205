package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kdrews/cadence/internal/models"
	"github.com/kdrews/cadence/internal/storage"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "cadence.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return store
}

// addHabit stores a habit created n intervals ago with completions in the
// most recent `runs` intervals.
func addHabit(t *testing.T, store storage.Provider, name string, p models.Periodicity, n, runs int) models.Habit {
	t.Helper()

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Periodicity: p,
		CreatedAt:   now.AddDate(0, 0, -(n-1)*p.Days()),
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit(%s) error: %v", name, err)
	}

	for i := 0; i < runs; i++ {
		c := models.Completion{
			ID:          uuid.New().String(),
			HabitID:     habit.ID,
			CompletedAt: now.AddDate(0, 0, -i*p.Days()),
		}
		if err := store.AddCompletion(c); err != nil {
			t.Fatalf("AddCompletion(%s) error: %v", name, err)
		}
	}
	return habit
}

func TestForHabit(t *testing.T) {
	store := newTestStore(t)
	habit := addHabit(t, store, "exercise", models.PeriodicityDaily, 10, 4)

	stats, err := ForHabit(store, habit, now)
	if err != nil {
		t.Fatalf("ForHabit() error: %v", err)
	}
	if stats.Current != 4 {
		t.Errorf("Current = %d, want 4", stats.Current)
	}
	if stats.Longest != 4 {
		t.Errorf("Longest = %d, want 4", stats.Longest)
	}
	if stats.Broken {
		t.Error("Broken = true, want false")
	}
}

func TestAll(t *testing.T) {
	store := newTestStore(t)
	addHabit(t, store, "exercise", models.PeriodicityDaily, 10, 4)
	addHabit(t, store, "meeting", models.PeriodicityWeekly, 6, 2)
	addHabit(t, store, "read", models.PeriodicityDaily, 5, 0)

	stats, err := All(store, now)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d stats, want 3", len(stats))
	}
	for _, s := range stats {
		if s.Habit.Name == "read" && (s.Current != 0 || s.Longest != 0 || s.Broken) {
			t.Errorf("habit with no completions: %+v, want zero streaks and not broken", s.Result)
		}
	}
}

func TestByPeriodicity(t *testing.T) {
	store := newTestStore(t)
	addHabit(t, store, "exercise", models.PeriodicityDaily, 10, 4)
	addHabit(t, store, "read", models.PeriodicityDaily, 5, 2)
	addHabit(t, store, "meeting", models.PeriodicityWeekly, 6, 2)

	stats, err := All(store, now)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}

	daily := ByPeriodicity(stats, models.PeriodicityDaily)
	if len(daily) != 2 {
		t.Errorf("got %d daily habits, want 2", len(daily))
	}
	weekly := ByPeriodicity(stats, models.PeriodicityWeekly)
	if len(weekly) != 1 {
		t.Errorf("got %d weekly habits, want 1", len(weekly))
	}
}

func TestLongestAcross(t *testing.T) {
	t.Run("weekly streak compared in days", func(t *testing.T) {
		store := newTestStore(t)
		// 5 daily completions beat nothing; 2 weekly completions are 14 days.
		addHabit(t, store, "exercise", models.PeriodicityDaily, 10, 5)
		addHabit(t, store, "meeting", models.PeriodicityWeekly, 6, 2)

		stats, err := All(store, now)
		if err != nil {
			t.Fatalf("All() error: %v", err)
		}

		best, ok := LongestAcross(stats)
		if !ok {
			t.Fatal("LongestAcross() ok = false, want true")
		}
		if best.Habit.Name != "meeting" {
			t.Errorf("best habit = %s, want meeting", best.Habit.Name)
		}
	})

	t.Run("no streaks anywhere", func(t *testing.T) {
		store := newTestStore(t)
		addHabit(t, store, "read", models.PeriodicityDaily, 5, 0)

		stats, err := All(store, now)
		if err != nil {
			t.Fatalf("All() error: %v", err)
		}
		if _, ok := LongestAcross(stats); ok {
			t.Error("LongestAcross() ok = true, want false")
		}
	})
}
