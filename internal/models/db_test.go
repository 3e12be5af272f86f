package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDBCreatesSQLiteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	dsn := filepath.Join(dir, "blindbox.db")

	db, err := OpenDB("sqlite", dsn, false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("sqlite dir should be created: %v", err)
	}
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
}

func TestEnsureSQLiteDirSkipsMemory(t *testing.T) {
	for _, dsn := range []string{":memory:", "file::memory:?cache=shared", "file:x?mode=memory&cache=shared", "local.db"} {
		if err := ensureSQLiteDir(dsn); err != nil {
			t.Fatalf("ensureSQLiteDir(%s) failed: %v", dsn, err)
		}
	}
	if _, err := os.Stat("x"); err == nil {
		t.Fatalf("memory dsn must not create directories")
	}
}

func TestOpenDBUnsupportedDriver(t *testing.T) {
	if _, err := OpenDB("mysql", "dsn", false); err == nil {
		t.Fatalf("unsupported driver should fail")
	}
}
