package models

import (
	"fmt"
	"strings"
	"time"
)

// Periodicity is the fixed recurrence interval of a habit.
type Periodicity string

const (
	PeriodicityDaily  Periodicity = "daily"
	PeriodicityWeekly Periodicity = "weekly"
)

// ParsePeriodicity converts user input to a Periodicity.
func ParsePeriodicity(s string) (Periodicity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return PeriodicityDaily, nil
	case "weekly":
		return PeriodicityWeekly, nil
	default:
		return "", fmt.Errorf("invalid periodicity: %q (expected daily or weekly)", s)
	}
}

// Days returns the interval length in days.
func (p Periodicity) Days() int {
	switch p {
	case PeriodicityDaily:
		return 1
	case PeriodicityWeekly:
		return 7
	default:
		return 0
	}
}

// Unit returns the singular interval noun for display ("day", "week").
func (p Periodicity) Unit() string {
	switch p {
	case PeriodicityDaily:
		return "day"
	case PeriodicityWeekly:
		return "week"
	default:
		return "period"
	}
}

func (p Periodicity) String() string { return string(p) }

// Habit represents a recurring practice to track. Name, description and
// periodicity are fixed at creation; only the completion log grows.
type Habit struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Periodicity Periodicity `json:"periodicity"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Completion is a single timestamped record that a habit was performed.
// Completions are append-only and owned by exactly one habit.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}
