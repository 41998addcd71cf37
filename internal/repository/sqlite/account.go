package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

const accountColumns = `id, username, password_hash, first_name, last_name, university, major, is_plus, last_job_application_at, created`

func scanAccount(s scanner) (*models.Account, error) {
	var a models.Account
	var lastApplied sql.NullInt64
	var created int64
	if err := s.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.FirstName, &a.LastName, &a.University, &a.Major, &a.IsPlus, &lastApplied, &created); err != nil {
		return nil, err
	}

	a.Created = fromMillis(created)
	if lastApplied.Valid {
		t := fromMillis(lastApplied.Int64)
		a.LastJobApplicationAt = &t
	}

	return &a, nil
}

func (r *SQLiteRepo) queryAccount(ctx context.Context, where string, args ...any) (*models.Account, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE `+where, args...)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteRepo) queryAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CreateAccount(ctx context.Context, a *models.Account, notice string) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("account is nil")
	}

	created := now()
	if !a.Created.IsZero() {
		created = a.Created.UnixMilli()
	}
	var lastApplied any
	if a.LastJobApplicationAt != nil {
		lastApplied = a.LastJobApplicationAt.UnixMilli()
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO accounts (username, password_hash, first_name, last_name, university, major, is_plus, last_job_application_at, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Username, a.PasswordHash, a.FirstName, a.LastName, a.University, a.Major, boolInt(a.IsPlus), lastApplied, created)
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		def := models.DefaultSettings()
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (account_id, email_notifications, sms_notifications, targeted_ads, language) VALUES (?, ?, ?, ?, ?)`,
			id, boolInt(def.EmailNotifications), boolInt(def.SMSNotifications), boolInt(def.TargetedAds), string(def.Language)); err != nil {
			return fmt.Errorf("insert settings: %w", err)
		}

		// placeholder profile stays unposted until the owner publishes it
		if _, err := tx.ExecContext(ctx, `INSERT INTO profiles (account_id, major, university, updated) VALUES (?, ?, ?, ?)`, id, a.Major, a.University, created); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}

		if notice != "" {
			if _, err := tx.ExecContext(ctx, `INSERT INTO notifications (account_id, message, created) SELECT id, ?, ? FROM accounts WHERE id != ?`, notice, created, id); err != nil {
				return fmt.Errorf("insert notifications: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	a.ID = id
	a.Created = fromMillis(created)
	r.logger.Debug("account row created", "account_id", id)
	return id, nil
}

func (r *SQLiteRepo) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.queryAccount(ctx, `id = ?`, id)
}

func (r *SQLiteRepo) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.queryAccount(ctx, `username = ?`, username)
}

func (r *SQLiteRepo) FindAccountByName(ctx context.Context, first, last string) (*models.Account, error) {
	return r.queryAccount(ctx, `first_name = ? AND last_name = ? ORDER BY id LIMIT 1`, first, last)
}

// FindAccounts returns every account whose field equals value. Only the
// columns named by repository.AccountField are searchable.
func (r *SQLiteRepo) FindAccounts(ctx context.Context, field repository.AccountField, value string) ([]models.Account, error) {
	switch field {
	case repository.ByLastName, repository.ByUniversity, repository.ByMajor:
	default:
		return nil, fmt.Errorf("unsupported search field %q", field)
	}

	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE `+string(field)+` = ? ORDER BY id`, value)
}

func (r *SQLiteRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
}

func (r *SQLiteRepo) CountAccounts(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

// DeleteAccount removes the account; dependent rows go with it through
// ON DELETE CASCADE. Applicants of the jobs it posted get a deleted-job
// notice first.
func (r *SQLiteRepo) DeleteAccount(ctx context.Context, id int64) error {
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO deleted_job_notifs (account_id, job_title, created) SELECT a.applicant_id, j.title, ? FROM job_applications a JOIN jobs j ON j.id = a.job_id WHERE j.posted_by = ? AND a.applicant_id != ?`, now(), id, id); err != nil {
			return fmt.Errorf("insert deleted job notifications: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.logger.Debug("account row deleted", "account_id", id)
	return nil
}
