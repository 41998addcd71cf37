package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/internal/validate"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

// Update holds the settings to change; nil fields are left as they are.
type Update struct {
	EmailNotifications *bool            `json:"email_notifications"`
	SMSNotifications   *bool            `json:"sms_notifications"`
	TargetedAds        *bool            `json:"targeted_ads"`
	Language           *models.Language `json:"language" validate:"omitnil,oneof=English Spanish"`
}

type Service struct {
	auth     auth.Authorizer
	settings repository.SettingsRepo
	logger   *slog.Logger
}

func NewService(a auth.Authorizer, settings repository.SettingsRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{auth: a, settings: settings, logger: logger}
}

// Get returns the session user's settings. Guests (a nil or logged-out
// session) get the defaults.
func (s *Service) Get(ctx context.Context, sess *auth.Session) (models.Settings, error) {
	if sess.User() == nil {
		return models.DefaultSettings(), nil
	}
	me, err := s.auth.Require(sess)
	if err != nil {
		return models.Settings{}, err
	}

	cur, err := s.settings.GetSettings(ctx, me.ID)
	if err != nil {
		s.logger.Error("get settings", slog.Any("err", err))
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if cur == nil {
		def := models.DefaultSettings()
		def.AccountID = me.ID
		return def, nil
	}
	return *cur, nil
}

// Update applies u to the session user's settings. Guests may look but not
// change anything.
func (s *Service) Update(ctx context.Context, sess *auth.Session, u Update) (models.Settings, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return models.Settings{}, err
	}
	if err := validate.Struct(u); err != nil {
		return models.Settings{}, err
	}

	cur, err := s.Get(ctx, sess)
	if err != nil {
		return models.Settings{}, err
	}
	if u.EmailNotifications != nil {
		cur.EmailNotifications = *u.EmailNotifications
	}
	if u.SMSNotifications != nil {
		cur.SMSNotifications = *u.SMSNotifications
	}
	if u.TargetedAds != nil {
		cur.TargetedAds = *u.TargetedAds
	}
	if u.Language != nil {
		cur.Language = *u.Language
	}
	cur.AccountID = me.ID

	if err := s.settings.UpdateSettings(ctx, &cur); err != nil {
		s.logger.Error("update settings", slog.Any("err", err))
		return models.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	s.logger.Debug("settings updated", slog.Int64("account_id", me.ID))
	return cur, nil
}

