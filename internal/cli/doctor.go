package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/kdrews/cadence/internal/backup"
	"github.com/kdrews/cadence/internal/migration"
	"github.com/kdrews/cadence/internal/storage"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	// The schema and backup checks need an open handle; a failed Load
	// above leaves it nil.
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok && sqliteStore.GetDB() != nil {
		if err := checkSchemaVersion(sqliteStore); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}

		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	}

	if err := checkSingleProcess(); err != nil {
		fmt.Printf("⚠ Single process: WARNING\n   %v\n", err)
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.GetAllHabits()
	return err
}

func checkSchemaVersion(store *storage.SQLiteStore) error {
	runner := migration.NewRunner(store.GetDB(), storage.MigrationsFS())
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	current, err := runner.CurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d behind latest %d; run any command to migrate", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; consider running 'cadence backup'")
	}
	return nil
}

// checkSingleProcess warns when another cadence process is running.
// Storage access is single-process; a second writer risks data loss.
func checkSingleProcess() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("unable to list processes: %v", err)
	}

	self := os.Getpid()
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), "cadence") {
			return fmt.Errorf("another cadence process is running (pid %d); concurrent access is unsupported", p.Pid())
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock appears wrong: %s", now.Format(time.RFC3339))
	}
	if _, err := time.LoadLocation(now.Location().String()); err != nil {
		return fmt.Errorf("invalid timezone %q: %v", now.Location(), err)
	}
	return nil
}
