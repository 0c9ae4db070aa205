package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kdrews/cadence/internal/analytics"
	"github.com/kdrews/cadence/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with their streaks."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion log."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Habit description."`
	Periodicity string `short:"p" help:"Periodicity (daily|weekly)." default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	periodicity, err := models.ParsePeriodicity(c.Periodicity)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		Name:        name,
		Description: c.Description,
		Periodicity: periodicity,
		CreatedAt:   time.Now(),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added %s habit: %s\n", periodicity, name)
	return nil
}

type HabitListCmd struct {
	Periodicity string `short:"p" help:"Only show habits with this periodicity (daily|weekly)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	stats, err := analytics.All(ctx.Store, time.Now())
	if err != nil {
		return err
	}

	if c.Periodicity != "" {
		p, err := models.ParsePeriodicity(c.Periodicity)
		if err != nil {
			return err
		}
		stats = analytics.ByPeriodicity(stats, p)
	}

	if len(stats) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	fmt.Println("Habits:")
	for _, s := range stats {
		fmt.Printf("  %s (%s) - %s\n", s.Habit.Name, s.Habit.Periodicity, formatStats(s))
		if s.Habit.Description != "" {
			fmt.Printf("      %s\n", s.Habit.Description)
		}
	}

	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s (including its completion log)\n", habit.Name)
	return nil
}
