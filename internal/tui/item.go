package tui

import (
	"fmt"

	"github.com/kdrews/cadence/internal/analytics"
)

// Item adapts a habit's stats to the bubbles list.
type Item struct {
	Stats analytics.HabitStats
	// DoneNow reports a completion inside the current interval.
	DoneNow bool
}

func (i Item) Title() string {
	marker := "○"
	if i.DoneNow {
		marker = "✓"
	}
	return fmt.Sprintf("%s %s", marker, i.Stats.Habit.Name)
}

func (i Item) Description() string {
	unit := i.Stats.Habit.Periodicity.Unit()
	desc := fmt.Sprintf("%s · current %d, longest %d %s(s)",
		i.Stats.Habit.Periodicity, i.Stats.Current, i.Stats.Longest, unit)
	if i.Stats.Broken {
		desc += " · not yet this " + unit
	}
	return desc
}

func (i Item) FilterValue() string { return i.Stats.Habit.Name }
