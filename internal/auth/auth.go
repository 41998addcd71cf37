package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/internal/validate"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

// Authorizer resolves the account behind a session. Services that scope work
// to the logged-in user depend on it.
type Authorizer interface {
	Require(sess *Session) (*models.Account, error)
}

// NewAccount carries the fields collected by the sign-up flow.
type NewAccount struct {
	Username   string `json:"username" validate:"required,max=64"`
	Password   string `json:"password" validate:"required"`
	FirstName  string `json:"first_name" validate:"required,max=64"`
	LastName   string `json:"last_name" validate:"required,max=64"`
	University string `json:"university" validate:"required,max=128"`
	Major      string `json:"major" validate:"required,max=128"`
	IsPlus     bool   `json:"is_plus"`
}

type Service struct {
	accounts      repository.AccountRepo
	jwtSecret     string
	tokenDuration time.Duration
	maxAccounts   int
	cost          int
	dummyHash     []byte
	compare       func(hash, password []byte) error
	now           func() time.Time
	logger        *slog.Logger
}

var _ Authorizer = (*Service)(nil)

type Option func(*Service)

// WithClock replaces the time source used for token issue and checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService creates the credential store. maxAccounts <= 0 disables the cap.
func NewService(accounts repository.AccountRepo, jwtSecret string, tokenDuration time.Duration, maxAccounts int, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Service{
		accounts:      accounts,
		jwtSecret:     jwtSecret,
		tokenDuration: tokenDuration,
		maxAccounts:   maxAccounts,
		cost:          bcrypt.DefaultCost,
		compare:       bcrypt.CompareHashAndPassword,
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	// unknown usernames are checked against this so they cost a real compare
	h, err := bcrypt.GenerateFromPassword([]byte("incollege-unknown-user"), s.cost)
	if err != nil {
		logger.Error("generate dummy hash", slog.Int("cost", s.cost), slog.Any("err", err))
	}
	s.dummyHash = h
	return s
}

// CreateAccount registers a new account and returns a session already logged
// in as it. Checks run in order: required fields, password policy, capacity,
// then username uniqueness.
func (s *Service) CreateAccount(ctx context.Context, in NewAccount) (*Session, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := validate.Password(in.Password); err != nil {
		s.logger.Debug("create account rejected", slog.String("username", in.Username), slog.Any("err", err))
		return nil, err
	}

	if s.maxAccounts > 0 {
		cnt, err := s.accounts.CountAccounts(ctx)
		if err != nil {
			s.logger.Error("count accounts", slog.Any("err", err))
			return nil, fmt.Errorf("count accounts: %w", err)
		}
		if cnt >= int64(s.maxAccounts) {
			return nil, fmt.Errorf("%w: %d accounts", domain.ErrCapacityExceeded, s.maxAccounts)
		}
	}

	existing, err := s.accounts.GetAccountByUsername(ctx, in.Username)
	if err != nil {
		s.logger.Error("lookup username", slog.Any("err", err))
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created := s.now().UTC()
	a := &models.Account{
		Username:             in.Username,
		PasswordHash:         string(hash),
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		University:           in.University,
		Major:                in.Major,
		IsPlus:               in.IsPlus,
		LastJobApplicationAt: &created,
		Created:              created,
	}
	notice := fmt.Sprintf("New User! %s created an account!", a.FullName())
	if _, err := s.accounts.CreateAccount(ctx, a, notice); err != nil {
		s.logger.Error("create account", slog.String("username", in.Username), slog.Any("err", err))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account created", slog.Int64("account_id", a.ID), slog.Bool("plus", a.IsPlus))
	return s.open(a)
}

// Authenticate returns the account matching the credentials, or nil when the
// username is unknown or the password does not match. An error is returned only
// when the store fails.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	a, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		s.logger.Error("lookup username", slog.Any("err", err))
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if a == nil {
		_ = s.compare(s.dummyHash, []byte(password))
		return nil, nil
	}
	if s.compare([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return a, nil
}

// Login authenticates and opens a session. Bad credentials yield
// domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	a, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if a == nil {
		s.logger.Debug("login rejected", slog.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info("login", slog.Int64("account_id", a.ID))
	return s.open(a)
}

// Logout clears the session. A nil session is a no-op.
func (s *Service) Logout(sess *Session) {
	if sess == nil || sess.user == nil {
		return
	}
	s.logger.Info("logout", slog.Int64("account_id", sess.user.ID))
	sess.clear()
}

// DeleteAccount removes the session's account with everything it owns and
// logs the session out.
func (s *Service) DeleteAccount(ctx context.Context, sess *Session) error {
	a, err := s.Require(sess)
	if err != nil {
		return err
	}
	if err := s.accounts.DeleteAccount(ctx, a.ID); err != nil {
		s.logger.Error("delete account", slog.Int64("account_id", a.ID), slog.Any("err", err))
		return fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info("account deleted", slog.Int64("account_id", a.ID))
	sess.clear()
	return nil
}

// FindByName returns the first account with the exact first and last name, or
// nil when none matches.
func (s *Service) FindByName(ctx context.Context, first, last string) (*models.Account, error) {
	a, err := s.accounts.FindAccountByName(ctx, first, last)
	if err != nil {
		s.logger.Error("find by name", slog.Any("err", err))
		return nil, fmt.Errorf("find by name: %w", err)
	}
	return a, nil
}

func (s *Service) FindBy(ctx context.Context, field repository.AccountField, value string) ([]models.Account, error) {
	switch field {
	case repository.ByLastName, repository.ByUniversity, repository.ByMajor:
	default:
		return nil, fmt.Errorf("%w: cannot search by %q", domain.ErrValidation, field)
	}

	out, err := s.accounts.FindAccounts(ctx, field, value)
	if err != nil {
		s.logger.Error("find accounts", slog.String("field", string(field)), slog.Any("err", err))
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	return out, nil
}

// Require returns the session's account. It fails with
// domain.ErrNotAuthenticated when nobody is logged in and with
// domain.ErrSessionExpired when the session token is expired, forged or issued
// for another account.
func (s *Service) Require(sess *Session) (*models.Account, error) {
	if sess == nil || sess.user == nil {
		return nil, domain.ErrNotAuthenticated
	}

	var c claims
	_, err := jwt.ParseWithClaims(sess.token, &c, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		s.logger.Debug("session rejected", slog.Int64("account_id", sess.user.ID), slog.Any("err", err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			sess.clear()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	if c.AccountID != sess.user.ID {
		return nil, fmt.Errorf("%w: token issued for another account", domain.ErrSessionExpired)
	}

	return sess.user, nil
}

func (s *Service) open(a *models.Account) (*Session, error) {
	tok, err := s.issue(a)
	if err != nil {
		return nil, err
	}
	return &Session{user: a, token: tok}, nil
}
