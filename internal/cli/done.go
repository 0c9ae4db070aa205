package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kdrews/cadence/internal/analytics"
	"github.com/kdrews/cadence/internal/models"
	"github.com/kdrews/cadence/internal/streak"
)

type DoneCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Completion date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	completedAt, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}
	if completedAt.Before(habit.CreatedAt) && !sameDay(completedAt, habit.CreatedAt) {
		return fmt.Errorf("completion date precedes creation of habit %q", habit.Name)
	}

	already, err := completedInInterval(ctx, habit, completedAt)
	if err != nil {
		return err
	}
	if already {
		fmt.Printf("Habit %q is already completed for this %s.\n", habit.Name, habit.Periodicity.Unit())
		return nil
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		CompletedAt: completedAt,
	}
	if err := ctx.Store.AddCompletion(completion); err != nil {
		return err
	}

	stats, err := analytics.ForHabit(ctx.Store, habit, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Recorded completion for %q. Current streak: %d %s(s).\n",
		habit.Name, stats.Current, habit.Periodicity.Unit())
	return nil
}

// completedInInterval reports whether the habit already has a completion
// in the interval the timestamp falls into.
func completedInInterval(ctx *Context, habit models.Habit, ts time.Time) (bool, error) {
	target, err := streak.IntervalOf(habit.Periodicity, habit.CreatedAt, ts)
	if err != nil {
		return false, err
	}

	completions, err := ctx.Store.GetCompletions(habit.ID)
	if err != nil {
		return false, err
	}

	for _, c := range completions {
		idx, err := streak.IntervalOf(habit.Periodicity, habit.CreatedAt, c.CompletedAt)
		if err != nil {
			return false, err
		}
		if idx == target {
			return true, nil
		}
	}
	return false, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
