package storage

import "errors"

var (
	// ErrHabitNotFound is returned when a habit lookup matches nothing.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrDuplicateHabit is returned when a habit name is already taken.
	ErrDuplicateHabit = errors.New("habit already exists")
	// ErrEmptyHabitName is returned when a habit is added without a name.
	ErrEmptyHabitName = errors.New("habit name cannot be empty")
)
