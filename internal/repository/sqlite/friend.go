package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/incollege/pkg/models"
)

func (r *SQLiteRepo) GetFriendRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, sender_id, receiver_id, created FROM friend_requests WHERE sender_id = ? AND receiver_id = ?`, senderID, receiverID)
	var fr models.FriendRequest
	if err := row.Scan(&fr.ID, &fr.SenderID, &fr.ReceiverID, &fr.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &fr, nil
}

func (r *SQLiteRepo) CreateFriendRequest(ctx context.Context, senderID, receiverID int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `INSERT INTO friend_requests (sender_id, receiver_id, created) VALUES (?, ?, ?)`, senderID, receiverID, now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) DeleteFriendRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM friend_requests WHERE sender_id = ? AND receiver_id = ?`, senderID, receiverID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// ListPendingRequests returns requests received by receiverID, oldest first.
func (r *SQLiteRepo) ListPendingRequests(ctx context.Context, receiverID int64) ([]models.PendingRequest, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT fr.id, fr.sender_id, fr.receiver_id, fr.created, a.id, a.username, a.first_name, a.last_name, a.university, a.major, a.is_plus
		FROM friend_requests fr JOIN accounts a ON a.id = fr.sender_id
		WHERE fr.receiver_id = ? ORDER BY fr.created, fr.id`, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PendingRequest
	for rows.Next() {
		var p models.PendingRequest
		s := &p.Sender
		if err := rows.Scan(&p.ID, &p.SenderID, &p.ReceiverID, &p.Created, &s.ID, &s.Username, &s.FirstName, &s.LastName, &s.University, &s.Major, &s.IsPlus); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CreateFriendship(ctx context.Context, userOne, userTwo int64) (int64, error) {
	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO friendships (user_one, user_two, created) VALUES (?, ?, ?)`, userOne, userTwo, now())
		if err != nil {
			return fmt.Errorf("insert friendship: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM friend_requests WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)`, userOne, userTwo, userTwo, userOne); err != nil {
			return fmt.Errorf("clear friend requests: %w", err)
		}
		return nil
	})
	return id, err
}

func (r *SQLiteRepo) DeleteFriendship(ctx context.Context, userA, userB int64) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM friendships WHERE (user_one = ? AND user_two = ?) OR (user_one = ? AND user_two = ?)`, userA, userB, userB, userA)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *SQLiteRepo) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	var cnt int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM friendships WHERE (user_one = ? AND user_two = ?) OR (user_one = ? AND user_two = ?)`, userA, userB, userB, userA)
	if err := row.Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListFriends unions both orientations of the friendship table and flags
// friends with a posted profile.
func (r *SQLiteRepo) ListFriends(ctx context.Context, accountID int64) ([]models.Friend, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.id, a.username, a.first_name, a.last_name, a.university, a.major, a.is_plus, COALESCE(p.posted, 0)
		FROM accounts a
		JOIN (
			SELECT user_two AS friend_id FROM friendships WHERE user_one = ?
			UNION
			SELECT user_one AS friend_id FROM friendships WHERE user_two = ?
		) f ON f.friend_id = a.id
		LEFT JOIN profiles p ON p.account_id = a.id
		ORDER BY a.id`, accountID, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Friend
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.Username, &f.FirstName, &f.LastName, &f.University, &f.Major, &f.IsPlus, &f.HasProfile); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
