package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestDB creates a small SQLite database and returns its path.
func newTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cadence.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE habits (id TEXT PRIMARY KEY, name TEXT)"); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits VALUES ('1', 'exercise')"); err != nil {
		t.Fatalf("inserting row: %v", err)
	}
	return path
}

func countHabits(t *testing.T, path string) int {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("counting habits: %v", err)
	}
	return count
}

func TestCreateAndList(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	backupPath, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), filePrefix) {
		t.Errorf("backup name %s missing prefix %s", filepath.Base(backupPath), filePrefix)
	}
	if got := countHabits(t, backupPath); got != 1 {
		t.Errorf("backup has %d habits, want 1", got)
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("List() returned %d backups, want 1", len(backups))
	}
	if backups[0].Path != backupPath {
		t.Errorf("List()[0].Path = %s, want %s", backups[0].Path, backupPath)
	}
	if backups[0].Size == 0 {
		t.Error("List()[0].Size = 0, want nonzero")
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := manager.Create(); err == nil {
		t.Fatal("Create() without a database should fail")
	}
}

func TestListEmpty(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "cadence.db"))
	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() returned %d backups, want 0", len(backups))
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)
	if _, err := manager.Create(); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for _, name := range []string{"notes.txt", "cadence-garbage.db", "other-20250101-000000.db"} {
		if err := os.WriteFile(filepath.Join(manager.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("List() returned %d backups, want 1", len(backups))
	}
}

func TestCreateRotatesOldBackups(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)
	if err := os.MkdirAll(manager.BackupDir(), 0700); err != nil {
		t.Fatalf("creating backup dir: %v", err)
	}

	// Pre-seed more old backups than the rotation keeps.
	for i := 0; i < MaxBackups+5; i++ {
		name := fmt.Sprintf("%s20240101-%06d%s", filePrefix, i, fileSuffix)
		if err := os.WriteFile(filepath.Join(manager.BackupDir(), name), []byte("old"), 0600); err != nil {
			t.Fatalf("writing fake backup: %v", err)
		}
	}

	if _, err := manager.Create(); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("List() returned %d backups after rotation, want %d", len(backups), MaxBackups)
	}
}

func TestRestore(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	backupPath, err := manager.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Change the live database after the backup was taken.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits VALUES ('2', 'read')"); err != nil {
		t.Fatalf("inserting row: %v", err)
	}
	db.Close()
	if got := countHabits(t, dbPath); got != 2 {
		t.Fatalf("live database has %d habits, want 2", got)
	}

	if err := manager.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if got := countHabits(t, dbPath); got != 1 {
		t.Errorf("restored database has %d habits, want 1", got)
	}

	// Restoring backs up the replaced database first.
	backups, err := manager.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("List() returned %d backups, want at least 2", len(backups))
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dbPath := newTestDB(t)
	manager := NewManager(dbPath)

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("not a database"), 0600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if err := manager.Restore(corrupt); err == nil {
		t.Fatal("Restore() of corrupt file should fail")
	}
	if got := countHabits(t, dbPath); got != 1 {
		t.Errorf("database changed after failed restore: %d habits, want 1", got)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	manager := NewManager(newTestDB(t))
	if err := manager.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Fatal("Restore() of missing file should fail")
	}
}
