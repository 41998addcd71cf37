// Package notify assembles the banners shown on login and on entering the job
// menu. Reading a digest consumes the notifications it reports.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

const (
	UnreadMessagesText      = "You have a message waiting for you in the message menu!"
	ProfileMissingText      = "Don't forget to create a profile"
	ApplicationReminderText = "It seems like you haven't applied to a job in the last seven days."
)

// Repo is the slice of the store the digests read.
type Repo interface {
	repository.AccountRepo
	repository.ProfileRepo
	repository.MessageRepo
	repository.ApplicationRepo
	repository.NotificationRepo
}

type LoginDigest struct {
	Notifications       []string
	HasUnreadMessages   bool
	ProfileMissing      bool
	ApplicationReminder bool
}

// Lines renders the digest in display order.
func (d LoginDigest) Lines() []string {
	out := append([]string(nil), d.Notifications...)
	if d.ApplicationReminder {
		out = append(out, ApplicationReminderText)
	}
	if d.ProfileMissing {
		out = append(out, ProfileMissingText)
	}
	if d.HasUnreadMessages {
		out = append(out, UnreadMessagesText)
	}
	return out
}

type JobDigest struct {
	NewJobs      []string
	DeletedJobs  []string
	AppliedCount int64
}

func (d JobDigest) Lines() []string {
	var out []string
	for _, title := range d.NewJobs {
		out = append(out, fmt.Sprintf("A new job %q has been posted.", title))
	}
	for _, title := range d.DeletedJobs {
		out = append(out, fmt.Sprintf("The job %q that you applied for was deleted.", title))
	}
	out = append(out, fmt.Sprintf("You have currently applied for %d jobs", d.AppliedCount))
	return out
}

type Service struct {
	auth     auth.Authorizer
	repo     Repo
	reminder time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the digest builder. reminder is how long an account may
// go without applying before the login digest nags; zero disables it.
func NewService(a auth.Authorizer, repo Repo, reminder time.Duration, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Service{auth: a, repo: repo, reminder: reminder, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginDigest consumes the session user's general notifications and reports
// the standing reminders.
func (s *Service) LoginDigest(ctx context.Context, sess *auth.Session) (LoginDigest, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return LoginDigest{}, err
	}

	var d LoginDigest
	notes, err := s.repo.ConsumeNotifications(ctx, me.ID, models.NotifyGeneral)
	if err != nil {
		return LoginDigest{}, s.storeErr("consume notifications", err)
	}
	for _, n := range notes {
		d.Notifications = append(d.Notifications, n.Text)
	}

	unread, err := s.repo.CountInbox(ctx, me.ID)
	if err != nil {
		return LoginDigest{}, s.storeErr("count inbox", err)
	}
	d.HasUnreadMessages = unread > 0

	p, err := s.repo.GetProfile(ctx, me.ID)
	if err != nil {
		return LoginDigest{}, s.storeErr("get profile", err)
	}
	d.ProfileMissing = p == nil || !p.Posted

	if s.reminder > 0 {
		acc, err := s.repo.GetAccountByID(ctx, me.ID)
		if err != nil {
			return LoginDigest{}, s.storeErr("get account", err)
		}
		if acc != nil {
			last := acc.Created
			if acc.LastJobApplicationAt != nil {
				last = *acc.LastJobApplicationAt
			}
			d.ApplicationReminder = s.now().Sub(last) >= s.reminder
		}
	}

	return d, nil
}

// JobDigest consumes the session user's new-job and deleted-job notices and
// reports how many jobs they have applied for.
func (s *Service) JobDigest(ctx context.Context, sess *auth.Session) (JobDigest, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return JobDigest{}, err
	}

	var d JobDigest
	created, err := s.repo.ConsumeNotifications(ctx, me.ID, models.NotifyNewJob)
	if err != nil {
		return JobDigest{}, s.storeErr("consume new job notifications", err)
	}
	for _, n := range created {
		d.NewJobs = append(d.NewJobs, n.Text)
	}

	deleted, err := s.repo.ConsumeNotifications(ctx, me.ID, models.NotifyDeletedJob)
	if err != nil {
		return JobDigest{}, s.storeErr("consume deleted job notifications", err)
	}
	for _, n := range deleted {
		d.DeletedJobs = append(d.DeletedJobs, n.Text)
	}

	if d.AppliedCount, err = s.repo.CountApplications(ctx, me.ID); err != nil {
		return JobDigest{}, s.storeErr("count applications", err)
	}
	return d, nil
}

func (s *Service) storeErr(op string, err error) error {
	s.logger.Error(op, slog.Any("err", err))
	return fmt.Errorf("%s: %w", op, err)
}
