package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
)

func (r *SQLiteRepo) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	if m == nil {
		return 0, fmt.Errorf("message is nil")
	}

	created := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO messages (recipient_id, sender_id, body, created) VALUES (?, ?, ?, ?)`, m.RecipientID, m.SenderID, m.Body, created)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	m.ID = id
	m.Created = created
	return id, nil
}

func (r *SQLiteRepo) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, recipient_id, sender_id, body, created FROM messages WHERE id = ?`, id)
	var m models.Message
	if err := row.Scan(&m.ID, &m.RecipientID, &m.SenderID, &m.Body, &m.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *SQLiteRepo) ListInbox(ctx context.Context, recipientID int64) ([]models.InboxMessage, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT m.id, m.recipient_id, m.sender_id, m.body, m.created, a.username
		FROM messages m JOIN accounts a ON a.id = m.sender_id
		WHERE m.recipient_id = ? ORDER BY m.created, m.id`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InboxMessage
	for rows.Next() {
		var m models.InboxMessage
		if err := rows.Scan(&m.ID, &m.RecipientID, &m.SenderID, &m.Body, &m.Created, &m.SenderUsername); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountInbox(ctx context.Context, recipientID int64) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE recipient_id = ?`, recipientID).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) DeleteMessage(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return err
}
