package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
)

func (r *SQLiteRepo) GetProfile(ctx context.Context, accountID int64) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx, `SELECT account_id, title, major, university, about, past_jobs, education, posted, updated FROM profiles WHERE account_id = ?`, accountID)
	var p models.Profile
	var pastJobs, education string
	if err := row.Scan(&p.AccountID, &p.Title, &p.Major, &p.University, &p.About, &pastJobs, &education, &p.Posted, &p.Updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(pastJobs), &p.PastJobs); err != nil {
		return nil, fmt.Errorf("decode past jobs: %w", err)
	}
	if err := json.Unmarshal([]byte(education), &p.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}

	return &p, nil
}

// UpdateProfile overwrites every editable field; the posted flag is left alone.
func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	jobs := p.PastJobs
	if jobs == nil {
		jobs = []models.PastJob{}
	}
	pastJobs, err := json.Marshal(jobs)
	if err != nil {
		return fmt.Errorf("encode past jobs: %w", err)
	}
	education, err := json.Marshal(p.Education)
	if err != nil {
		return fmt.Errorf("encode education: %w", err)
	}

	_, err = r.conn.Exec(ctx, `UPDATE profiles SET title = ?, major = ?, university = ?, about = ?, past_jobs = ?, education = ?, updated = ? WHERE account_id = ?`,
		p.Title, p.Major, p.University, p.About, string(pastJobs), string(education), now(), p.AccountID)
	return err
}

func (r *SQLiteRepo) SetPosted(ctx context.Context, accountID int64, posted bool) error {
	_, err := r.conn.Exec(ctx, `UPDATE profiles SET posted = ?, updated = ? WHERE account_id = ?`, boolInt(posted), now(), accountID)
	return err
}
