package fixture

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kdrews/cadence/internal/models"
	"github.com/kdrews/cadence/internal/storage"
	"github.com/kdrews/cadence/internal/streak"
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

func TestCompletionTimes(t *testing.T) {
	times := CompletionTimes(models.PeriodicityWeekly, 3, now)
	if len(times) != 3 {
		t.Fatalf("got %d times, want 3", len(times))
	}
	if !times[0].Equal(now) {
		t.Errorf("times[0] = %v, want %v", times[0], now)
	}
	for i := 1; i < len(times); i++ {
		if got := times[i-1].Sub(times[i]); got != 7*24*time.Hour {
			t.Errorf("gap between times[%d] and times[%d] = %v, want 168h", i-1, i, got)
		}
	}
}

func TestSeed(t *testing.T) {
	store := newTestStore(t)
	created, err := Seed(store, rand.New(rand.NewSource(1)), now)
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if len(created) != len(templates) {
		t.Fatalf("seeded %d habits, want %d", len(created), len(templates))
	}

	for _, habit := range created {
		completions, err := store.GetCompletions(habit.ID)
		if err != nil {
			t.Fatalf("GetCompletions(%s) error: %v", habit.Name, err)
		}
		n := len(completions)
		if n < minIntervals || n > maxIntervals {
			t.Errorf("%s has %d completions, want %d..%d", habit.Name, n, minIntervals, maxIntervals)
		}

		times := make([]time.Time, n)
		for i, c := range completions {
			times[i] = c.CompletedAt
		}
		res, err := streak.Compute(habit.Periodicity, habit.CreatedAt, times, now)
		if err != nil {
			t.Fatalf("Compute(%s) error: %v", habit.Name, err)
		}
		if res.Current != n || res.Broken {
			t.Errorf("%s: current %d broken %v, want an unbroken run of %d", habit.Name, res.Current, res.Broken, n)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	counts := func(t *testing.T) map[string]int {
		store := newTestStore(t)
		created, err := Seed(store, rand.New(rand.NewSource(42)), now)
		if err != nil {
			t.Fatalf("Seed() error: %v", err)
		}
		out := make(map[string]int)
		for _, h := range created {
			completions, err := store.GetCompletions(h.ID)
			if err != nil {
				t.Fatalf("GetCompletions() error: %v", err)
			}
			out[h.Name] = len(completions)
		}
		return out
	}

	first := counts(t)
	second := counts(t)
	for name, n := range first {
		if second[name] != n {
			t.Errorf("%s seeded %d then %d completions with the same seed", name, n, second[name])
		}
	}
}

func TestSeedSkipsExistingHabits(t *testing.T) {
	store := newTestStore(t)
	existing := models.Habit{
		ID:          uuid.New().String(),
		Name:        "exercise",
		Periodicity: models.PeriodicityDaily,
		CreatedAt:   now,
	}
	if err := store.AddHabit(existing); err != nil {
		t.Fatalf("AddHabit() error: %v", err)
	}

	created, err := Seed(store, rand.New(rand.NewSource(1)), now)
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if len(created) != len(templates)-1 {
		t.Fatalf("seeded %d habits, want %d", len(created), len(templates)-1)
	}
	for _, h := range created {
		if h.Name == "exercise" {
			t.Error("existing habit was reseeded")
		}
	}

	completions, err := store.GetCompletions(existing.ID)
	if err != nil {
		t.Fatalf("GetCompletions() error: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("existing habit gained %d completions", len(completions))
	}
}
