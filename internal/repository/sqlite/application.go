package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garnizeh/incollege/pkg/models"
)

func (r *SQLiteRepo) GetApplication(ctx context.Context, applicantID, jobID int64) (*models.JobApplication, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, applicant_id, job_id, graduation_date, start_date, qualifications, created FROM job_applications WHERE applicant_id = ? AND job_id = ?`, applicantID, jobID)
	var a models.JobApplication
	if err := row.Scan(&a.ID, &a.ApplicantID, &a.JobID, &a.GraduationDate, &a.StartDate, &a.Qualifications, &a.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteRepo) CreateApplication(ctx context.Context, app *models.JobApplication, at time.Time) (int64, error) {
	if app == nil {
		return 0, fmt.Errorf("application is nil")
	}

	created := at.UTC().UnixMilli()
	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO job_applications (applicant_id, job_id, graduation_date, start_date, qualifications, created) VALUES (?, ?, ?, ?, ?, ?)`,
			app.ApplicantID, app.JobID, app.GraduationDate, app.StartDate, app.Qualifications, created)
		if err != nil {
			return fmt.Errorf("insert application: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		// an applied job leaves the saved list
		if _, err := tx.ExecContext(ctx, `DELETE FROM saved_jobs WHERE applicant_id = ? AND job_id = ?`, app.ApplicantID, app.JobID); err != nil {
			return fmt.Errorf("drop saved job: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE accounts SET last_job_application_at = ? WHERE id = ?`, created, app.ApplicantID); err != nil {
			return fmt.Errorf("stamp last application: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	app.ID = id
	app.Created = created
	return id, nil
}

func (r *SQLiteRepo) ListApplications(ctx context.Context, applicantID int64) ([]models.AppliedJob, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.id, a.applicant_id, a.job_id, a.graduation_date, a.start_date, a.qualifications, a.created, `+jobColumns+`
		FROM job_applications a JOIN jobs j ON j.id = a.job_id
		WHERE a.applicant_id = ? ORDER BY a.created, a.id`, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AppliedJob
	for rows.Next() {
		var aj models.AppliedJob
		a := &aj.Application
		dest := append([]any{&a.ID, &a.ApplicantID, &a.JobID, &a.GraduationDate, &a.StartDate, &a.Qualifications, &a.Created}, jobFields(&aj.Job)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, aj)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountApplications(ctx context.Context, applicantID int64) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE applicant_id = ?`, applicantID).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}
