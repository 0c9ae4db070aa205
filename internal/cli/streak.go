package cli

import (
	"fmt"
	"time"

	"github.com/kdrews/cadence/internal/analytics"
)

type StreakCmd struct {
	Name string `arg:"" optional:"" help:"Habit name. Without it, shows the longest streak across all habits."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()

	if c.Name != "" {
		habit, err := ctx.Store.GetHabitByName(c.Name)
		if err != nil {
			return fmt.Errorf("habit %q not found", c.Name)
		}

		stats, err := analytics.ForHabit(ctx.Store, habit, now)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s): %s\n", habit.Name, habit.Periodicity, formatStats(stats))
		return nil
	}

	stats, err := analytics.All(ctx.Store, now)
	if err != nil {
		return err
	}

	best, ok := analytics.LongestAcross(stats)
	if !ok {
		fmt.Println("No streaks yet")
		return nil
	}

	fmt.Printf("Longest streak: %d %s(s) for habit %q\n",
		best.Longest, best.Habit.Periodicity.Unit(), best.Habit.Name)
	return nil
}
