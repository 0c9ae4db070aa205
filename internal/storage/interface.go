package storage

import (
	"github.com/kdrews/cadence/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	DeleteHabit(id string) error

	// Completions
	AddCompletion(models.Completion) error
	GetCompletions(habitID string) ([]models.Completion, error)

	// Utils
	GetConfigPath() string
}
