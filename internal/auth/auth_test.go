package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/pkg/repository"
	"github.com/garnizeh/incollege/pkg/repository/mock"
)

const secret = "testsecret"

func newService(m *mock.Mocks, maxAccounts int, opts ...auth.Option) *auth.Service {
	opts = append([]auth.Option{auth.WithCost(bcrypt.MinCost)}, opts...)
	return auth.NewService(m.Accounts, secret, time.Hour, maxAccounts, nil, opts...)
}

func newAccount(username, password string) auth.NewAccount {
	return auth.NewAccount{
		Username:   username,
		Password:   password,
		FirstName:  "First" + username,
		LastName:   "Last" + username,
		University: "USF",
		Major:      "CS",
	}
}

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		prepare func(t *testing.T, svc *auth.Service, m *mock.Mocks)
		in      auth.NewAccount
		wantErr error
	}{
		{
			name:    "Success",
			in:      newAccount("u1", "!!!Goodpswd0"),
			prepare: func(t *testing.T, svc *auth.Service, m *mock.Mocks) {},
		},
		{
			name:    "NoSpecialChar",
			in:      newAccount("u1", "GoBulls24"),
			prepare: func(t *testing.T, svc *auth.Service, m *mock.Mocks) {},
			wantErr: domain.ErrWeakPassword,
		},
		{
			name:    "TooShort",
			in:      newAccount("u1", "Abcde1!"),
			prepare: func(t *testing.T, svc *auth.Service, m *mock.Mocks) {},
			wantErr: domain.ErrWeakPassword,
		},
		{
			name:    "MissingField",
			in:      auth.NewAccount{Username: "u1", Password: "!!!Goodpswd0"},
			prepare: func(t *testing.T, svc *auth.Service, m *mock.Mocks) {},
			wantErr: domain.ErrValidation,
		},
		{
			name: "Duplicate",
			in:   newAccount("u1", "!!!Goodpswd0"),
			prepare: func(t *testing.T, svc *auth.Service, m *mock.Mocks) {
				if _, err := svc.CreateAccount(context.Background(), newAccount("u1", "Other#Pass1")); err != nil {
					t.Fatalf("seed account: %v", err)
				}
			},
			wantErr: domain.ErrDuplicateUsername,
		},
		{
			name: "CapacityBeforeDuplicate",
			max:  1,
			in:   newAccount("u1", "!!!Goodpswd0"),
			prepare: func(t *testing.T, svc *auth.Service, m *mock.Mocks) {
				if _, err := svc.CreateAccount(context.Background(), newAccount("u1", "Other#Pass1")); err != nil {
					t.Fatalf("seed account: %v", err)
				}
			},
			wantErr: domain.ErrCapacityExceeded,
		},
		{
			name: "StoreFailure",
			in:   newAccount("u1", "!!!Goodpswd0"),
			prepare: func(t *testing.T, svc *auth.Service, m *mock.Mocks) {
				m.Accounts.CreateErr = fmt.Errorf("disk full")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := mock.NewMocks()
			svc := newService(m, tc.max)
			tc.prepare(t, svc, m)

			sess, err := svc.CreateAccount(context.Background(), tc.in)
			if m.Accounts.CreateErr != nil {
				if err == nil || domain.IsDomain(err) {
					t.Fatalf("expected store failure, got %v", err)
				}
				return
			}
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if sess != nil {
					t.Fatalf("expected nil session on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			u := sess.User()
			if u == nil || u.Username != tc.in.Username || u.ID == 0 {
				t.Fatalf("session not logged in as new account: %#v", u)
			}
			if u.PasswordHash == tc.in.Password {
				t.Fatalf("password stored in clear")
			}
			if u.LastJobApplicationAt == nil {
				t.Fatalf("expected last application time set at creation")
			}
			if len(m.Accounts.Notices) != 1 || m.Accounts.Notices[0] != "New User! Firstu1 Lastu1 created an account!" {
				t.Fatalf("unexpected notices: %v", m.Accounts.Notices)
			}
		})
	}
}

func TestCapacity_DeleteFreesSlot(t *testing.T) {
	ctx := context.Background()
	m := mock.NewMocks()
	svc := newService(m, 2)

	s1, err := svc.CreateAccount(ctx, newAccount("a", "!!!Goodpswd0"))
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := svc.CreateAccount(ctx, newAccount("b", "!!!Goodpswd0")); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if _, err := svc.CreateAccount(ctx, newAccount("c", "!!!Goodpswd0")); !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected capacity exceeded, got %v", err)
	}

	if err := svc.DeleteAccount(ctx, s1); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if s1.User() != nil {
		t.Fatalf("expected session logged out after deletion")
	}
	if _, err := svc.CreateAccount(ctx, newAccount("c", "!!!Goodpswd0")); err != nil {
		t.Fatalf("expected freed slot, got %v", err)
	}
}

func TestUncapped(t *testing.T) {
	m := mock.NewMocks()
	svc := newService(m, 0)
	for i := 0; i < 15; i++ {
		if _, err := svc.CreateAccount(context.Background(), newAccount(fmt.Sprintf("u%d", i), "!!!Goodpswd0")); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
}

func TestAuthenticateAndLogin(t *testing.T) {
	ctx := context.Background()
	m := mock.NewMocks()
	svc := newService(m, 0)
	if _, err := svc.CreateAccount(ctx, newAccount("u1", "!!!Goodpswd0")); err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err := svc.Authenticate(ctx, "u1", "!!!Goodpswd0")
	if err != nil || a == nil || a.Username != "u1" {
		t.Fatalf("Authenticate: %#v, %v", a, err)
	}
	for _, tc := range []struct{ user, pass string }{{"u1", "wrong"}, {"nobody", "!!!Goodpswd0"}} {
		a, err := svc.Authenticate(ctx, tc.user, tc.pass)
		if err != nil || a != nil {
			t.Fatalf("Authenticate(%s,%s) = %#v, %v; want nil, nil", tc.user, tc.pass, a, err)
		}
		if _, err := svc.Login(ctx, tc.user, tc.pass); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("Login(%s,%s) = %v; want invalid credentials", tc.user, tc.pass, err)
		}
	}

	sess, err := svc.Login(ctx, "u1", "!!!Goodpswd0")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := jwt.Parse(sess.Token(), func(token *jwt.Token) (any, error) { return []byte(secret), nil }); err != nil {
		t.Fatalf("invalid token: %v", err)
	}
	if got, err := svc.Require(sess); err != nil || got.Username != "u1" {
		t.Fatalf("Require: %#v, %v", got, err)
	}

	svc.Logout(sess)
	if sess.User() != nil || sess.Token() != "" {
		t.Fatalf("expected cleared session")
	}
	if _, err := svc.Require(sess); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("Require after logout = %v", err)
	}
	svc.Logout(nil)

	m.Accounts.GetErr = fmt.Errorf("store down")
	if _, err := svc.Login(ctx, "u1", "!!!Goodpswd0"); err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected store failure, got %v", err)
	}
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	m := mock.NewMocks()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newService(m, 0, auth.WithClock(func() time.Time { return clock }))

	if _, err := svc.Require(nil); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("nil session: %v", err)
	}
	if _, err := svc.Require(&auth.Session{}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("zero session: %v", err)
	}

	sess, err := svc.CreateAccount(ctx, newAccount("u1", "!!!Goodpswd0"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// a service with another secret rejects the token
	other := auth.NewService(m.Accounts, "another-secret", time.Hour, 0, nil, auth.WithClock(func() time.Time { return clock }))
	if _, err := other.Require(sess); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("forged token: %v", err)
	}

	clock = clock.Add(2 * time.Hour)
	if _, err := svc.Require(sess); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expired token: %v", err)
	}
	if sess.User() != nil {
		t.Fatalf("expired session should be cleared")
	}
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	m := mock.NewMocks()
	svc := newService(m, 0)
	for _, u := range []string{"a", "b"} {
		if _, err := svc.CreateAccount(ctx, newAccount(u, "!!!Goodpswd0")); err != nil {
			t.Fatalf("create %s: %v", u, err)
		}
	}

	a, err := svc.FindByName(ctx, "Firsta", "Lasta")
	if err != nil || a == nil || a.Username != "a" {
		t.Fatalf("FindByName: %#v, %v", a, err)
	}
	if a, _ := svc.FindByName(ctx, "No", "One"); a != nil {
		t.Fatalf("expected nil for unknown name")
	}

	got, err := svc.FindBy(ctx, repository.ByMajor, "CS")
	if err != nil || len(got) != 2 {
		t.Fatalf("FindBy major: %d, %v", len(got), err)
	}
	if _, err := svc.FindBy(ctx, repository.AccountField("username"), "a"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unsupported field, got %v", err)
	}

	m.Accounts.FindErr = fmt.Errorf("boom")
	if _, err := svc.FindByName(ctx, "Firsta", "Lasta"); err == nil {
		t.Fatalf("expected store error")
	}
}
