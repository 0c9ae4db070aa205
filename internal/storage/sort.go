package storage

import (
	"sort"

	"github.com/kdrews/cadence/internal/models"
)

// sortHabits orders habits by creation time, matching the SQLite store.
func sortHabits(habits []models.Habit) {
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].Name < habits[j].Name
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
}

func sortCompletions(completions []models.Completion) {
	sort.Slice(completions, func(i, j int) bool {
		return completions[i].CompletedAt.Before(completions[j].CompletedAt)
	})
}
