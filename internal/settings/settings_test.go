package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/settings"
	"github.com/garnizeh/incollege/internal/testutil"
	"github.com/garnizeh/incollege/pkg/models"
)

func ptr[T any](v T) *T { return &v }

func TestGuestControls(t *testing.T) {
	ctx := context.Background()
	repo := testutil.OpenRepo(t)
	svc := settings.NewService(testutil.NewAuth(repo), repo, nil)

	got, err := svc.Get(ctx, nil)
	if err != nil {
		t.Fatalf("guest Get: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Fatalf("guest settings = %#v, want defaults", got)
	}
	if _, err := svc.Update(ctx, nil, settings.Update{TargetedAds: ptr(false)}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("guest Update: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := testutil.OpenRepo(t)
	a := testutil.NewAuth(repo)
	svc := settings.NewService(a, repo, nil)
	sess := testutil.SignUp(t, a, "u1", false)

	got, err := svc.Get(ctx, sess)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.EmailNotifications || !got.SMSNotifications || !got.TargetedAds || got.Language != models.English {
		t.Fatalf("new account settings = %#v", got)
	}

	updated, err := svc.Update(ctx, sess, settings.Update{SMSNotifications: ptr(false), Language: ptr(models.Spanish)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.SMSNotifications || !updated.EmailNotifications || updated.Language != models.Spanish {
		t.Fatalf("Update result = %#v", updated)
	}

	got, err = svc.Get(ctx, sess)
	if err != nil || got != updated {
		t.Fatalf("persisted settings = %#v, %v; want %#v", got, err, updated)
	}

	if _, err := svc.Update(ctx, sess, settings.Update{Language: ptr(models.Language("Klingon"))}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown language: %v", err)
	}
}
