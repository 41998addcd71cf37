package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/internal/validate"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

const MaxPastJobs = 3

// Draft is the editable part of a profile. Saving a draft never changes
// whether the profile is posted.
type Draft struct {
	Title      string           `json:"title" validate:"required"`
	Major      string           `json:"major" validate:"required"`
	University string           `json:"university" validate:"required"`
	About      string           `json:"about"`
	PastJobs   []models.PastJob `json:"past_jobs" validate:"dive"`
	Education  models.Education `json:"education"`
}

type Service struct {
	auth     auth.Authorizer
	profiles repository.ProfileRepo
	title    cases.Caser
	logger   *slog.Logger
}

func NewService(a auth.Authorizer, profiles repository.ProfileRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{auth: a, profiles: profiles, title: cases.Title(language.English), logger: logger}
}

// SaveDraft overwrites the session user's profile fields. Major and
// university are stored title-cased.
func (s *Service) SaveDraft(ctx context.Context, sess *auth.Session, d Draft) (*models.Profile, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	if len(d.PastJobs) > MaxPastJobs {
		return nil, fmt.Errorf("%w: got %d", domain.ErrTooManyPastJobs, len(d.PastJobs))
	}

	d = s.normalize(d)
	if err := validate.Struct(d); err != nil {
		return nil, err
	}

	current, err := s.own(ctx, me.ID)
	if err != nil {
		return nil, err
	}
	p := &models.Profile{
		AccountID:  me.ID,
		Title:      d.Title,
		Major:      d.Major,
		University: d.University,
		About:      d.About,
		PastJobs:   d.PastJobs,
		Education:  d.Education,
		Posted:     current.Posted,
	}
	if err := s.profiles.UpdateProfile(ctx, p); err != nil {
		return nil, s.storeErr("update profile", err)
	}

	s.logger.Debug("profile saved", slog.Int64("account_id", me.ID))
	return p, nil
}

// Publish makes the session user's profile visible to others.
func (s *Service) Publish(ctx context.Context, sess *auth.Session) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}
	current, err := s.own(ctx, me.ID)
	if err != nil {
		return err
	}
	if current.Title == "" {
		return fmt.Errorf("%w: save a profile before posting it", domain.ErrValidation)
	}
	if err := s.profiles.SetPosted(ctx, me.ID, true); err != nil {
		return s.storeErr("publish profile", err)
	}
	s.logger.Info("profile posted", slog.Int64("account_id", me.ID))
	return nil
}

// View returns the profile of accountID if it is posted. Unposted profiles
// yield domain.ErrNoProfile, including the viewer's own.
func (s *Service) View(ctx context.Context, sess *auth.Session, accountID int64) (*models.Profile, error) {
	if _, err := s.auth.Require(sess); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetProfile(ctx, accountID)
	if err != nil {
		return nil, s.storeErr("get profile", err)
	}
	if p == nil || !p.Posted {
		return nil, domain.ErrNoProfile
	}
	return p, nil
}

// Own returns the session user's profile whether or not it is posted, for
// editing.
func (s *Service) Own(ctx context.Context, sess *auth.Session) (*models.Profile, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	return s.own(ctx, me.ID)
}

func (s *Service) own(ctx context.Context, accountID int64) (*models.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, accountID)
	if err != nil {
		return nil, s.storeErr("get profile", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: profile of account %d", domain.ErrNotFound, accountID)
	}
	return p, nil
}

func (s *Service) normalize(d Draft) Draft {
	out := Draft{
		Title:      strings.TrimSpace(d.Title),
		Major:      s.title.String(strings.TrimSpace(d.Major)),
		University: s.title.String(strings.TrimSpace(d.University)),
		About:      strings.TrimSpace(d.About),
		Education: models.Education{
			School:        strings.TrimSpace(d.Education.School),
			Degree:        strings.TrimSpace(d.Education.Degree),
			YearsAttended: strings.TrimSpace(d.Education.YearsAttended),
		},
	}
	for _, j := range d.PastJobs {
		out.PastJobs = append(out.PastJobs, models.PastJob{
			Title:       strings.TrimSpace(j.Title),
			Employer:    strings.TrimSpace(j.Employer),
			DateStarted: strings.TrimSpace(j.DateStarted),
			DateEnded:   strings.TrimSpace(j.DateEnded),
			Location:    strings.TrimSpace(j.Location),
			Description: strings.TrimSpace(j.Description),
		})
	}
	return out
}

func (s *Service) storeErr(op string, err error) error {
	s.logger.Error(op, slog.Any("err", err))
	return fmt.Errorf("%s: %w", op, err)
}
