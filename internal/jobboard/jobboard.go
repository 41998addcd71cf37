package jobboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/internal/validate"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

// Repo is the slice of the store the job board needs.
type Repo interface {
	repository.JobRepo
	repository.ApplicationRepo
	repository.SavedJobRepo
}

// Posting is the input of Post. Salary is kept as typed so a non-numeric
// value is reported as a validation error instead of a parse failure.
type Posting struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"required"`
	RequiredSkill    string `json:"required_skill" validate:"required"`
	SkillDescription string `json:"skill_description" validate:"required"`
	Employer         string `json:"employer" validate:"required"`
	Location         string `json:"location" validate:"required"`
	Salary           string `json:"salary" validate:"required,numeric"`
}

// Application is the input of Apply.
type Application struct {
	GraduationDate string `json:"graduation_date" validate:"required,ddmmyyyy"`
	StartDate      string `json:"start_date" validate:"required,ddmmyyyy"`
	Qualifications string `json:"qualifications" validate:"required"`
}

type Service struct {
	auth    auth.Authorizer
	repo    Repo
	maxJobs int
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the job board. maxJobs <= 0 disables the posting cap.
func NewService(a auth.Authorizer, repo Repo, maxJobs int, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Service{auth: a, repo: repo, maxJobs: maxJobs, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post publishes a job for the session user and notifies every other account.
func (s *Service) Post(ctx context.Context, sess *auth.Session, p Posting) (*models.Job, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}

	if s.maxJobs > 0 {
		cnt, err := s.repo.CountJobs(ctx)
		if err != nil {
			return nil, s.storeErr("count jobs", err)
		}
		if cnt >= int64(s.maxJobs) {
			return nil, fmt.Errorf("%w: %d job postings", domain.ErrCapacityExceeded, s.maxJobs)
		}
	}

	p = trimPosting(p)
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	salary, err := strconv.ParseFloat(p.Salary, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: salary must be numeric", domain.ErrValidation)
	}

	j := &models.Job{
		Title:            p.Title,
		Description:      p.Description,
		RequiredSkill:    p.RequiredSkill,
		SkillDescription: p.SkillDescription,
		Employer:         p.Employer,
		Location:         p.Location,
		Salary:           salary,
		PostedBy:         me.ID,
		PosterFirstName:  me.FirstName,
		PosterLastName:   me.LastName,
	}
	if _, err := s.repo.CreateJob(ctx, j); err != nil {
		return nil, s.storeErr("create job", err)
	}

	s.logger.Info("job posted", slog.Int64("job_id", j.ID), slog.Int64("posted_by", me.ID))
	return j, nil
}

// Delete removes a job posted by the session user. Applicants are told on
// their next visit to the job menu.
func (s *Service) Delete(ctx context.Context, sess *auth.Session, jobID int64) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}

	j, err := s.job(ctx, jobID)
	if err != nil {
		return err
	}
	if j.PostedBy != me.ID {
		return fmt.Errorf("%w: job %d", domain.ErrNotOwner, jobID)
	}

	if err := s.repo.DeleteJob(ctx, jobID); err != nil {
		return s.storeErr("delete job", err)
	}
	s.logger.Info("job deleted", slog.Int64("job_id", jobID), slog.Int64("posted_by", me.ID))
	return nil
}

// Apply records the session user's application to jobID and stamps their last
// application time.
func (s *Service) Apply(ctx context.Context, sess *auth.Session, jobID int64, in Application) (*models.JobApplication, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}

	j, err := s.job(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.PostedBy == me.ID {
		return nil, domain.ErrOwnPosting
	}

	existing, err := s.repo.GetApplication(ctx, me.ID, jobID)
	if err != nil {
		return nil, s.storeErr("lookup application", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateApplication
	}

	in = Application{
		GraduationDate: strings.TrimSpace(in.GraduationDate),
		StartDate:      strings.TrimSpace(in.StartDate),
		Qualifications: strings.TrimSpace(in.Qualifications),
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	app := &models.JobApplication{
		ApplicantID:    me.ID,
		JobID:          jobID,
		GraduationDate: in.GraduationDate,
		StartDate:      in.StartDate,
		Qualifications: in.Qualifications,
	}
	at := s.now().UTC()
	if _, err := s.repo.CreateApplication(ctx, app, at); err != nil {
		return nil, s.storeErr("create application", err)
	}
	me.LastJobApplicationAt = &at

	s.logger.Debug("job applied", slog.Int64("job_id", jobID), slog.Int64("applicant", me.ID))
	return app, nil
}

// Save bookmarks a job the session user neither posted nor applied to.
func (s *Service) Save(ctx context.Context, sess *auth.Session, jobID int64) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}

	j, err := s.job(ctx, jobID)
	if err != nil {
		return err
	}
	if j.PostedBy == me.ID {
		return domain.ErrOwnPosting
	}

	app, err := s.repo.GetApplication(ctx, me.ID, jobID)
	if err != nil {
		return s.storeErr("lookup application", err)
	}
	if app != nil {
		return domain.ErrAlreadyApplied
	}

	saved, err := s.repo.GetSavedJob(ctx, me.ID, jobID)
	if err != nil {
		return s.storeErr("lookup saved job", err)
	}
	if saved != nil {
		return domain.ErrAlreadySaved
	}

	if _, err := s.repo.CreateSavedJob(ctx, me.ID, jobID); err != nil {
		return s.storeErr("save job", err)
	}
	return nil
}

// Unsave removes the bookmark if there is one.
func (s *Service) Unsave(ctx context.Context, sess *auth.Session, jobID int64) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}
	if _, err := s.repo.DeleteSavedJob(ctx, me.ID, jobID); err != nil {
		return s.storeErr("unsave job", err)
	}
	return nil
}

// Search lists jobs whose title contains title, case-insensitively, narrowed
// by filter relative to the session user.
func (s *Service) Search(ctx context.Context, sess *auth.Session, title string, filter repository.JobFilter) ([]models.JobListing, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	switch filter {
	case repository.AllJobs, repository.AppliedJobs, repository.NotAppliedJobs:
	default:
		return nil, fmt.Errorf("%w: unknown job filter", domain.ErrValidation)
	}

	out, err := s.repo.SearchJobs(ctx, me.ID, strings.TrimSpace(title), filter)
	if err != nil {
		return nil, s.storeErr("search jobs", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, sess *auth.Session, jobID int64) (*models.Job, error) {
	if _, err := s.auth.Require(sess); err != nil {
		return nil, err
	}
	return s.job(ctx, jobID)
}

func (s *Service) ListApplications(ctx context.Context, sess *auth.Session) ([]models.AppliedJob, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListApplications(ctx, me.ID)
	if err != nil {
		return nil, s.storeErr("list applications", err)
	}
	return out, nil
}

func (s *Service) ListSaved(ctx context.Context, sess *auth.Session) ([]models.Job, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListSavedJobs(ctx, me.ID)
	if err != nil {
		return nil, s.storeErr("list saved jobs", err)
	}
	return out, nil
}

// ListPosted lists the session user's own live postings.
func (s *Service) ListPosted(ctx context.Context, sess *auth.Session) ([]models.Job, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListJobsByPoster(ctx, me.ID)
	if err != nil {
		return nil, s.storeErr("list posted jobs", err)
	}
	return out, nil
}

func (s *Service) CountApplications(ctx context.Context, sess *auth.Session) (int64, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.CountApplications(ctx, me.ID)
	if err != nil {
		return 0, s.storeErr("count applications", err)
	}
	return n, nil
}

func (s *Service) job(ctx context.Context, id int64) (*models.Job, error) {
	j, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, s.storeErr("lookup job", err)
	}
	if j == nil {
		return nil, fmt.Errorf("%w: job %d", domain.ErrNotFound, id)
	}
	return j, nil
}

func (s *Service) storeErr(op string, err error) error {
	s.logger.Error(op, slog.Any("err", err))
	return fmt.Errorf("%s: %w", op, err)
}

func trimPosting(p Posting) Posting {
	return Posting{
		Title:            strings.TrimSpace(p.Title),
		Description:      strings.TrimSpace(p.Description),
		RequiredSkill:    strings.TrimSpace(p.RequiredSkill),
		SkillDescription: strings.TrimSpace(p.SkillDescription),
		Employer:         strings.TrimSpace(p.Employer),
		Location:         strings.TrimSpace(p.Location),
		Salary:           strings.TrimSpace(p.Salary),
	}
}
