package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/kdrews/cadence/internal/cli"
	"github.com/kdrews/cadence/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/cadence/cadence.db"`

	Init   cli.InitCmd   `cmd:"" help:"Initialize cadence storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Menu   cli.MenuCmd   `cmd:"" help:"Run the numbered menu loop."`
	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits."`
	Done   cli.DoneCmd   `cmd:"" help:"Record a habit completion."`
	Streak cli.StreakCmd `cmd:"" help:"Show streak analytics."`
	Seed   cli.SeedCmd   `cmd:"" help:"Load demo habits with generated histories."`
	Backup cli.BackupCmd `cmd:"" help:"Manage database backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cadence"),
		kong.Description("Habit tracker with streak analytics"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Storage backend follows the config file extension.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	appCtx := &cli.Context{Store: store}

	// os.Exit skips deferred calls, so close the store explicitly.
	err := ctx.Run(appCtx)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
