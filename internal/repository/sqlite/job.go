package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

const jobColumns = `j.id, j.title, j.description, j.required_skill, j.skill_description, j.employer, j.location, j.salary, j.posted_by, j.poster_first_name, j.poster_last_name, j.created`

func jobFields(j *models.Job) []any {
	return []any{&j.ID, &j.Title, &j.Description, &j.RequiredSkill, &j.SkillDescription, &j.Employer, &j.Location, &j.Salary, &j.PostedBy, &j.PosterFirstName, &j.PosterLastName, &j.Created}
}

func (r *SQLiteRepo) CountJobs(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	created := now()
	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO jobs (title, description, required_skill, skill_description, employer, location, salary, posted_by, poster_first_name, poster_last_name, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			j.Title, j.Description, j.RequiredSkill, j.SkillDescription, j.Employer, j.Location, j.Salary, j.PostedBy, j.PosterFirstName, j.PosterLastName, created)
		if err != nil {
			return fmt.Errorf("insert job: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO new_job_notifs (account_id, job_title, created) SELECT id, ?, ? FROM accounts WHERE id != ?`, j.Title, created, j.PostedBy); err != nil {
			return fmt.Errorf("insert new job notifications: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	j.ID = id
	j.Created = created
	return id, nil
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = ?`, id)
	var j models.Job
	if err := row.Scan(jobFields(&j)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &j, nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id int64) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO deleted_job_notifs (account_id, job_title, created) SELECT a.applicant_id, j.title, ? FROM job_applications a JOIN jobs j ON j.id = a.job_id WHERE a.job_id = ?`, now(), id); err != nil {
			return fmt.Errorf("insert deleted job notifications: %w", err)
		}

		// applications and bookmarks cascade
		if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		return nil
	})
}

// SearchJobs matches title as a case-insensitive substring; an empty title
// lists every job.
func (r *SQLiteRepo) SearchJobs(ctx context.Context, accountID int64, title string, filter repository.JobFilter) ([]models.JobListing, error) {
	q := `SELECT ` + jobColumns + `,
		EXISTS (SELECT 1 FROM job_applications a WHERE a.job_id = j.id AND a.applicant_id = ?),
		EXISTS (SELECT 1 FROM saved_jobs s WHERE s.job_id = j.id AND s.applicant_id = ? AND s.saved = 1)
		FROM jobs j WHERE j.title LIKE '%' || ? || '%' ESCAPE '\'`
	args := []any{accountID, accountID, escapeLike(title)}
	switch filter {
	case repository.AllJobs:
	case repository.AppliedJobs:
		q += ` AND EXISTS (SELECT 1 FROM job_applications a WHERE a.job_id = j.id AND a.applicant_id = ?)`
		args = append(args, accountID)
	case repository.NotAppliedJobs:
		q += ` AND NOT EXISTS (SELECT 1 FROM job_applications a WHERE a.job_id = j.id AND a.applicant_id = ?)`
		args = append(args, accountID)
	default:
		return nil, fmt.Errorf("unknown job filter %d", filter)
	}
	q += ` ORDER BY j.id`

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JobListing
	for rows.Next() {
		var l models.JobListing
		dest := append(jobFields(&l.Job), &l.Applied, &l.Saved)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ListJobsByPoster(ctx context.Context, posterID int64) ([]models.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.posted_by = ? ORDER BY j.id`, posterID)
}

func (r *SQLiteRepo) queryJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(jobFields(&j)...); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
