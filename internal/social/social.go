package social

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

// RequestStatus is the outcome of SendRequest. Only RequestSent writes a row.
type RequestStatus int

const (
	RequestSent RequestStatus = iota
	// RequestAlreadyPending: the sender already has a request out to the receiver.
	RequestAlreadyPending
	// RequestReciprocalPending: the receiver already asked the sender; the
	// caller should offer Accept instead.
	RequestReciprocalPending
	RequestAlreadyFriends
)

func (s RequestStatus) String() string {
	switch s {
	case RequestSent:
		return "Friend request sent!"
	case RequestAlreadyPending:
		return "You have already sent a friend request to this user."
	case RequestReciprocalPending:
		return "This user has already sent you a friend request."
	case RequestAlreadyFriends:
		return "You are already friends with this user."
	default:
		return fmt.Sprintf("RequestStatus(%d)", int(s))
	}
}

type Service struct {
	auth     auth.Authorizer
	accounts repository.AccountRepo
	friends  repository.FriendRepo
	logger   *slog.Logger
}

func NewService(a auth.Authorizer, accounts repository.AccountRepo, friends repository.FriendRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{auth: a, accounts: accounts, friends: friends, logger: logger}
}

// SendRequest sends a friend request from the session user to receiverID.
func (s *Service) SendRequest(ctx context.Context, sess *auth.Session, receiverID int64) (RequestStatus, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return 0, err
	}
	if me.ID == receiverID {
		return 0, domain.ErrSelfAction
	}
	if err := s.mustExist(ctx, receiverID); err != nil {
		return 0, err
	}

	friends, err := s.friends.AreFriends(ctx, me.ID, receiverID)
	if err != nil {
		return 0, s.storeErr("check friendship", err)
	}
	if friends {
		return RequestAlreadyFriends, nil
	}

	out, err := s.friends.GetFriendRequest(ctx, me.ID, receiverID)
	if err != nil {
		return 0, s.storeErr("lookup friend request", err)
	}
	if out != nil {
		return RequestAlreadyPending, nil
	}

	in, err := s.friends.GetFriendRequest(ctx, receiverID, me.ID)
	if err != nil {
		return 0, s.storeErr("lookup friend request", err)
	}
	if in != nil {
		return RequestReciprocalPending, nil
	}

	if _, err := s.friends.CreateFriendRequest(ctx, me.ID, receiverID); err != nil {
		return 0, s.storeErr("create friend request", err)
	}
	s.logger.Debug("friend request sent", slog.Int64("sender", me.ID), slog.Int64("receiver", receiverID))
	return RequestSent, nil
}

// Accept turns the pending request from senderID to the session user into a
// friendship and clears requests in both directions.
func (s *Service) Accept(ctx context.Context, sess *auth.Session, senderID int64) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}

	req, err := s.friends.GetFriendRequest(ctx, senderID, me.ID)
	if err != nil {
		return s.storeErr("lookup friend request", err)
	}
	if req == nil {
		return fmt.Errorf("%w: no pending request from account %d", domain.ErrNotFound, senderID)
	}

	friends, err := s.friends.AreFriends(ctx, senderID, me.ID)
	if err != nil {
		return s.storeErr("check friendship", err)
	}
	if friends {
		// stale requests; drop both directions
		for _, pair := range [][2]int64{{senderID, me.ID}, {me.ID, senderID}} {
			if _, err := s.friends.DeleteFriendRequest(ctx, pair[0], pair[1]); err != nil {
				return s.storeErr("delete friend request", err)
			}
		}
		return nil
	}

	if _, err := s.friends.CreateFriendship(ctx, senderID, me.ID); err != nil {
		return s.storeErr("create friendship", err)
	}
	s.logger.Debug("friend request accepted", slog.Int64("sender", senderID), slog.Int64("receiver", me.ID))
	return nil
}

// Reject drops the pending request from senderID to the session user.
func (s *Service) Reject(ctx context.Context, sess *auth.Session, senderID int64) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}

	deleted, err := s.friends.DeleteFriendRequest(ctx, senderID, me.ID)
	if err != nil {
		return s.storeErr("delete friend request", err)
	}
	if !deleted {
		return fmt.Errorf("%w: no pending request from account %d", domain.ErrNotFound, senderID)
	}
	return nil
}

// RemoveFriend ends the friendship regardless of which side accepted it.
func (s *Service) RemoveFriend(ctx context.Context, sess *auth.Session, friendID int64) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}

	removed, err := s.friends.DeleteFriendship(ctx, me.ID, friendID)
	if err != nil {
		return s.storeErr("delete friendship", err)
	}
	if !removed {
		return fmt.Errorf("%w: not friends with account %d", domain.ErrNotFound, friendID)
	}
	s.logger.Debug("friend removed", slog.Int64("account_id", me.ID), slog.Int64("friend", friendID))
	return nil
}

// ListFriends returns the session user's friends, each flagged with whether
// they have a posted profile.
func (s *Service) ListFriends(ctx context.Context, sess *auth.Session) ([]models.Friend, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}

	out, err := s.friends.ListFriends(ctx, me.ID)
	if err != nil {
		return nil, s.storeErr("list friends", err)
	}
	return out, nil
}

func (s *Service) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	ok, err := s.friends.AreFriends(ctx, a, b)
	if err != nil {
		return false, s.storeErr("check friendship", err)
	}
	return ok, nil
}

// PendingRequests lists requests the session user has received.
func (s *Service) PendingRequests(ctx context.Context, sess *auth.Session) ([]models.PendingRequest, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}

	out, err := s.friends.ListPendingRequests(ctx, me.ID)
	if err != nil {
		return nil, s.storeErr("list pending requests", err)
	}
	return out, nil
}

func (s *Service) mustExist(ctx context.Context, id int64) error {
	a, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		return s.storeErr("lookup account", err)
	}
	if a == nil {
		return fmt.Errorf("%w: account %d", domain.ErrNotFound, id)
	}
	return nil
}

func (s *Service) storeErr(op string, err error) error {
	s.logger.Error(op, slog.Any("err", err))
	return fmt.Errorf("%s: %w", op, err)
}
