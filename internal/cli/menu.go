package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

type MenuCmd struct{}

// menu choices, dispatched by number like the habitual "press 1 to ..."
// trackers. 0 exits.
const (
	menuExit = iota
	menuCreate
	menuComplete
	menuListAll
	menuListByPeriodicity
	menuHabitStreak
	menuLongestStreak
	menuDelete
	menuSeed
)

func (c *MenuCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	for {
		choice := menuExit
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title("Habit Tracker").
					Options(
						huh.NewOption("1. Create a habit", menuCreate),
						huh.NewOption("2. Record a completion", menuComplete),
						huh.NewOption("3. List all habits", menuListAll),
						huh.NewOption("4. List habits by periodicity", menuListByPeriodicity),
						huh.NewOption("5. Show streaks for a habit", menuHabitStreak),
						huh.NewOption("6. Show the longest streak overall", menuLongestStreak),
						huh.NewOption("7. Delete a habit", menuDelete),
						huh.NewOption("8. Seed demo habits", menuSeed),
						huh.NewOption("0. Exit", menuExit),
					).
					Value(&choice),
			),
		)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		if choice == menuExit {
			fmt.Println("Goodbye!")
			return nil
		}

		if err := c.dispatch(ctx, choice); err != nil {
			// Menu actions report and continue; only storage-level
			// failures would end the session, and those surface on the
			// next action anyway.
			fmt.Printf("Error: %v\n", err)
		}
		fmt.Println()
	}
}

func (c *MenuCmd) dispatch(ctx *Context, choice int) error {
	switch choice {
	case menuCreate:
		var name, description, periodicity string
		if err := promptHabitForm(&name, &description, &periodicity); err != nil {
			return err
		}
		cmd := HabitAddCmd{Name: name, Description: description, Periodicity: periodicity}
		return cmd.Run(ctx)

	case menuComplete:
		name, err := promptHabitName("Which habit did you complete?")
		if err != nil {
			return err
		}
		cmd := DoneCmd{Name: name}
		return cmd.Run(ctx)

	case menuListAll:
		cmd := HabitListCmd{}
		return cmd.Run(ctx)

	case menuListByPeriodicity:
		var periodicity string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Periodicity").
					Options(
						huh.NewOption("daily", "daily"),
						huh.NewOption("weekly", "weekly"),
					).
					Value(&periodicity),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		cmd := HabitListCmd{Periodicity: periodicity}
		return cmd.Run(ctx)

	case menuHabitStreak:
		name, err := promptHabitName("Which habit?")
		if err != nil {
			return err
		}
		cmd := StreakCmd{Name: name}
		return cmd.Run(ctx)

	case menuLongestStreak:
		cmd := StreakCmd{}
		return cmd.Run(ctx)

	case menuDelete:
		name, err := promptHabitName("Which habit should be deleted?")
		if err != nil {
			return err
		}
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %q and all of its completions?", name)).
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
		cmd := HabitDeleteCmd{Name: name}
		return cmd.Run(ctx)

	case menuSeed:
		cmd := SeedCmd{Seed: 1}
		return cmd.Run(ctx)

	default:
		return fmt.Errorf("invalid option: %d", choice)
	}
}

func promptHabitForm(name, description, periodicity *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(description),
			huh.NewSelect[string]().
				Title("Periodicity").
				Options(
					huh.NewOption("daily", "daily"),
					huh.NewOption("weekly", "weekly"),
				).
				Value(periodicity),
		),
	).Run()
}

func promptHabitName(title string) (string, error) {
	var name string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
		),
	).Run()
	return name, err
}
