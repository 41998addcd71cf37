package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
)

func (r *SQLiteRepo) GetSettings(ctx context.Context, accountID int64) (*models.Settings, error) {
	row := r.conn.QueryRow(ctx, `SELECT account_id, email_notifications, sms_notifications, targeted_ads, language FROM settings WHERE account_id = ?`, accountID)
	var s models.Settings
	var lang string
	if err := row.Scan(&s.AccountID, &s.EmailNotifications, &s.SMSNotifications, &s.TargetedAds, &lang); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.Language = models.Language(lang)

	return &s, nil
}

func (r *SQLiteRepo) UpdateSettings(ctx context.Context, s *models.Settings) error {
	if s == nil {
		return fmt.Errorf("settings is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE settings SET email_notifications = ?, sms_notifications = ?, targeted_ads = ?, language = ? WHERE account_id = ?`,
		boolInt(s.EmailNotifications), boolInt(s.SMSNotifications), boolInt(s.TargetedAds), string(s.Language), s.AccountID)
	return err
}
