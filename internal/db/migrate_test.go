package db_test

import (
	"context"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/incollege/db"
	"github.com/garnizeh/incollege/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	// Run again to ensure idempotency
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count < 1 {
		t.Fatalf("expected at least 1 migration recorded, got %d", count)
	}

	for _, table := range []string{"accounts", "settings", "profiles", "friend_requests", "friendships", "jobs", "job_applications", "saved_jobs", "messages", "notifications", "new_job_notifs", "deleted_job_notifs", "skills"} {
		var name string
		r := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		if err := r.Scan(&name); err != nil {
			t.Fatalf("expected %s table exists: %v", table, err)
		}
	}
}

func TestMigrate_AppliesInOrderAndSkipsNonSQL(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	mfs := fstest.MapFS{
		"migrations/0002_add.sql":  {Data: []byte(`INSERT INTO things (name) VALUES ('second')`)},
		"migrations/0001_init.sql": {Data: []byte(`CREATE TABLE things (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`)},
		"migrations/README.md":     {Data: []byte(`not a migration`)},
	}

	if err := db.Migrate(ctx, d, mfs); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 migrations recorded, got %d", count)
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	d := openTemp(t)
	if err := db.Migrate(context.Background(), d, fstest.MapFS{}); err == nil {
		t.Fatalf("expected error when migrations dir is missing")
	}
}
