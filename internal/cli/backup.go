package cli

import (
	"fmt"
	"path/filepath"

	"github.com/kdrews/cadence/internal/backup"
	"github.com/kdrews/cadence/internal/storage"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a new backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
}

// backups only make sense for the SQLite store; the JSON file can be
// copied by hand.
func requireSQLite(ctx *Context) (*backup.Manager, error) {
	if _, ok := ctx.Store.(*storage.SQLiteStore); !ok {
		return nil, fmt.Errorf("backups are only supported with SQLite storage")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := requireSQLite(ctx)
	if err != nil {
		return err
	}

	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := requireSQLite(ctx)
	if err != nil {
		return err
	}

	backups, err := mgr.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.BackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n",
			filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04:05"), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Backup file to restore (name or full path)."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := requireSQLite(ctx)
	if err != nil {
		return err
	}

	path := c.File
	if filepath.Dir(path) == "." {
		path = filepath.Join(mgr.BackupDir(), path)
	}

	if err := mgr.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored database from: %s\n", filepath.Base(path))
	return nil
}
