// Package fixture generates reproducible demo habits with pseudo-random
// completion histories. It is used by the seed command and by tests that
// need populated stores; the same seed always yields the same data.
package fixture

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kdrews/cadence/internal/models"
	"github.com/kdrews/cadence/internal/storage"
)

const (
	minIntervals = 4
	maxIntervals = 10
)

type template struct {
	name        string
	description string
	periodicity models.Periodicity
}

var templates = []template{
	{"exercise", "Exercise daily", models.PeriodicityDaily},
	{"read", "Read daily", models.PeriodicityDaily},
	{"meeting", "Attend weekly meeting", models.PeriodicityWeekly},
	{"clean", "Weekly house cleaning", models.PeriodicityWeekly},
}

// CompletionTimes returns n completion timestamps walking backward from
// now, one per interval of the given periodicity, newest first.
func CompletionTimes(p models.Periodicity, n int, now time.Time) []time.Time {
	times := make([]time.Time, n)
	for i := 0; i < n; i++ {
		times[i] = now.AddDate(0, 0, -i*p.Days())
	}
	return times
}

// Seed populates the store with the predefined demo habits. Each habit
// gets an unbroken run of completions ending at now, with the run length
// drawn from rng. Habits whose names are already taken are skipped.
func Seed(store storage.Provider, rng *rand.Rand, now time.Time) ([]models.Habit, error) {
	var created []models.Habit

	for _, tpl := range templates {
		n := minIntervals + rng.Intn(maxIntervals-minIntervals+1)

		if _, err := store.GetHabitByName(tpl.name); err == nil {
			// Keep existing data; draw from rng anyway so the remaining
			// habits are unaffected by which names already exist.
			continue
		}

		habit := models.Habit{
			ID:          uuid.New().String(),
			Name:        tpl.name,
			Description: tpl.description,
			Periodicity: tpl.periodicity,
			// Created when its oldest completion happened, so the whole
			// history lies inside the habit's lifetime.
			CreatedAt: now.AddDate(0, 0, -(n-1)*tpl.periodicity.Days()),
		}

		if err := store.AddHabit(habit); err != nil {
			return created, fmt.Errorf("seeding habit %q: %w", tpl.name, err)
		}

		for _, ts := range CompletionTimes(tpl.periodicity, n, now) {
			completion := models.Completion{
				ID:          uuid.New().String(),
				HabitID:     habit.ID,
				CompletedAt: ts,
			}
			if err := store.AddCompletion(completion); err != nil {
				return created, fmt.Errorf("seeding completions for %q: %w", tpl.name, err)
			}
		}

		created = append(created, habit)
	}

	return created, nil
}
