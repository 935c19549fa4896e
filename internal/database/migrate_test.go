package database

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestMigrate_Success(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("querying migrations: %v", err)
	}
	want, err := migrationFileCount("migrations")
	if err != nil {
		t.Fatalf("counting migration files: %v", err)
	}

	if count != want {
		t.Errorf("expected %d migrations, got %d", want, count)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("first migration: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("second migration should not fail: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	want, err := migrationFileCount("migrations")
	if err != nil {
		t.Fatalf("counting migration files: %v", err)
	}
	if count != want {
		t.Errorf("expected %d migrations after double run, got %d", want, count)
	}
}

func migrationFileCount(directory string) (int, error) {
	_, thisFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(thisFile), directory)
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return 0, err
	}
	want := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			want++
		}
	}
	return want, nil
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	expectedTables := []string{"orchids", "calendars"}
	for _, table := range expectedTables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table '%s' not found: %v", table, err)
		}
	}
}

func TestMigrate_SchemasStayInStep(t *testing.T) {
	sqliteCount, err := migrationFileCount("migrations")
	if err != nil {
		t.Fatalf("counting sqlite migrations: %v", err)
	}
	postgresCount, err := migrationFileCount("postgres")
	if err != nil {
		t.Fatalf("counting postgres migrations: %v", err)
	}
	if sqliteCount != postgresCount {
		t.Errorf("expected matching migration counts, sqlite=%d postgres=%d", sqliteCount, postgresCount)
	}
}

func TestMigrate_CascadesCalendarsWithOrchid(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO orchids (id, genus, growth_stage, created_at, updated_at)
		VALUES ('orchid-1', 'Vanda', 'seedling', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("inserting orchid: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO calendars (id, orchid_id, start_date, end_date, payload, created_at, updated_at)
		VALUES ('calendar-1', 'orchid-1', '2025-06-01', '2025-06-30', '{}', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("inserting calendar: %v", err)
	}
	if _, err := db.Exec("DELETE FROM orchids WHERE id = 'orchid-1'"); err != nil {
		t.Fatalf("deleting orchid: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM calendars").Scan(&count); err != nil {
		t.Fatalf("counting calendars: %v", err)
	}
	if count != 0 {
		t.Errorf("expected calendars removed with orchid, got %d", count)
	}
}
