package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/garnizeh/incollege/pkg/models"
)

func (r *SQLiteRepo) GetSavedJob(ctx context.Context, applicantID, jobID int64) (*models.SavedJob, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, applicant_id, job_id, saved, created FROM saved_jobs WHERE applicant_id = ? AND job_id = ?`, applicantID, jobID)
	var s models.SavedJob
	if err := row.Scan(&s.ID, &s.ApplicantID, &s.JobID, &s.Saved, &s.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepo) CreateSavedJob(ctx context.Context, applicantID, jobID int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `INSERT INTO saved_jobs (applicant_id, job_id, saved, created) VALUES (?, ?, 1, ?)`, applicantID, jobID, now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) DeleteSavedJob(ctx context.Context, applicantID, jobID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM saved_jobs WHERE applicant_id = ? AND job_id = ?`, applicantID, jobID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *SQLiteRepo) ListSavedJobs(ctx context.Context, applicantID int64) ([]models.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM saved_jobs s JOIN jobs j ON j.id = s.job_id WHERE s.applicant_id = ? AND s.saved = 1 ORDER BY s.created, s.id`, applicantID)
}
