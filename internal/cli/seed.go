package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kdrews/cadence/internal/analytics"
	"github.com/kdrews/cadence/internal/fixture"
)

type SeedCmd struct {
	Seed int64 `help:"Random seed for the generated completion histories." default:"1"`
}

func (c *SeedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	rng := rand.New(rand.NewSource(c.Seed))

	habits, err := fixture.Seed(ctx.Store, rng, now)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("All demo habits already exist; nothing seeded")
		return nil
	}

	fmt.Printf("Seeded %d demo habit(s):\n", len(habits))
	for _, habit := range habits {
		stats, err := analytics.ForHabit(ctx.Store, habit, now)
		if err != nil {
			return err
		}
		fmt.Printf("  %s (%s) - streak %d %s(s)\n",
			habit.Name, habit.Periodicity, stats.Current, habit.Periodicity.Unit())
	}
	return nil
}
