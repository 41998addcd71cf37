package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
)

func (r *SQLiteRepo) CountSkills(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

// CreateSkills inserts the catalog in one transaction; names already present
// are kept as they are.
func (r *SQLiteRepo) CreateSkills(ctx context.Context, skills []models.Skill) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		for _, s := range skills {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO skills (name, description) VALUES (?, ?)`, s.Name, s.Description); err != nil {
				return fmt.Errorf("insert skill %q: %w", s.Name, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepo) ListSkills(ctx context.Context) ([]models.Skill, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, name, description FROM skills ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
