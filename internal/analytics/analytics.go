// Package analytics produces cross-habit streak reports on top of the
// storage provider and the streak calculator.
package analytics

import (
	"fmt"
	"time"

	"github.com/kdrews/cadence/internal/models"
	"github.com/kdrews/cadence/internal/storage"
	"github.com/kdrews/cadence/internal/streak"
)

// HabitStats pairs a habit with its computed streak statistics.
type HabitStats struct {
	Habit models.Habit
	streak.Result
}

// ForHabit computes streak statistics for a single stored habit.
func ForHabit(store storage.Provider, habit models.Habit, now time.Time) (HabitStats, error) {
	completions, err := store.GetCompletions(habit.ID)
	if err != nil {
		return HabitStats{}, fmt.Errorf("loading completions for %q: %w", habit.Name, err)
	}

	times := make([]time.Time, len(completions))
	for i, c := range completions {
		times[i] = c.CompletedAt
	}

	res, err := streak.Compute(habit.Periodicity, habit.CreatedAt, times, now)
	if err != nil {
		return HabitStats{}, fmt.Errorf("computing streak for %q: %w", habit.Name, err)
	}

	return HabitStats{Habit: habit, Result: res}, nil
}

// All computes streak statistics for every stored habit.
func All(store storage.Provider, now time.Time) ([]HabitStats, error) {
	habits, err := store.GetAllHabits()
	if err != nil {
		return nil, err
	}

	stats := make([]HabitStats, 0, len(habits))
	for _, h := range habits {
		s, err := ForHabit(store, h, now)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}

// ByPeriodicity filters stats down to habits with the given periodicity.
func ByPeriodicity(stats []HabitStats, p models.Periodicity) []HabitStats {
	var out []HabitStats
	for _, s := range stats {
		if s.Habit.Periodicity == p {
			out = append(out, s)
		}
	}
	return out
}

// LongestAcross returns the habit with the longest streak overall.
// Streaks are compared in days, so a 2-week streak beats a 10-day one.
// The second return value is false when no habit has a streak.
func LongestAcross(stats []HabitStats) (HabitStats, bool) {
	var best HabitStats
	bestDays := 0
	for _, s := range stats {
		days := s.Longest * s.Habit.Periodicity.Days()
		if days > bestDays {
			best = s
			bestDays = days
		}
	}
	return best, bestDays > 0
}
