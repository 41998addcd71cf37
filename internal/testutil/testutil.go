// Package testutil opens a migrated store and a credential service for
// service-level tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	dbfs "github.com/garnizeh/incollege/db"
	"github.com/garnizeh/incollege/internal/auth"
	dbpkg "github.com/garnizeh/incollege/internal/db"
	"github.com/garnizeh/incollege/internal/repository/sqlite"
)

const (
	Secret   = "testsecret"
	Password = "!!!Goodpswd0"
)

// OpenRepo returns a repository over a fresh, migrated SQLite file that is
// closed when the test ends.
func OpenRepo(t *testing.T) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return sqlite.New(d, nil)
}

// NewAuth returns an uncapped credential service with a cheap hash cost.
func NewAuth(repo *sqlite.SQLiteRepo, opts ...auth.Option) *auth.Service {
	opts = append([]auth.Option{auth.WithCost(bcrypt.MinCost)}, opts...)
	return auth.NewService(repo, Secret, time.Hour, 0, nil, opts...)
}

// SignUp creates an account named username and returns its session.
func SignUp(t *testing.T, svc *auth.Service, username string, plus bool) *auth.Session {
	t.Helper()
	sess, err := svc.CreateAccount(context.Background(), auth.NewAccount{
		Username:   username,
		Password:   Password,
		FirstName:  "First" + username,
		LastName:   "Last" + username,
		University: "USF",
		Major:      "CS",
		IsPlus:     plus,
	})
	if err != nil {
		t.Fatalf("sign up %s: %v", username, err)
	}
	return sess
}
