package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
)

// notificationTables maps each kind to its table and text column.
var notificationTables = map[models.NotificationKind][2]string{
	models.NotifyGeneral:    {"notifications", "message"},
	models.NotifyNewJob:     {"new_job_notifs", "job_title"},
	models.NotifyDeletedJob: {"deleted_job_notifs", "job_title"},
}

func (r *SQLiteRepo) ConsumeNotifications(ctx context.Context, accountID int64, kind models.NotificationKind) ([]models.Notification, error) {
	t, ok := notificationTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown notification kind %q", kind)
	}
	table, column := t[0], t[1]

	var out []models.Notification
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT id, account_id, `+column+`, created FROM `+table+` WHERE account_id = ? ORDER BY created, id`, accountID)
		if err != nil {
			return fmt.Errorf("select %s: %w", table, err)
		}
		for rows.Next() {
			n := models.Notification{Kind: kind}
			if err := rows.Scan(&n.ID, &n.AccountID, &n.Text, &n.Created); err != nil {
				rows.Close()
				return err
			}
			out = append(out, n)
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE account_id = ?`, accountID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
