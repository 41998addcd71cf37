package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

// Repo is the slice of the store messaging needs.
type Repo interface {
	repository.AccountRepo
	repository.FriendRepo
	repository.MessageRepo
}

type Service struct {
	auth   auth.Authorizer
	repo   Repo
	logger *slog.Logger
}

func NewService(a auth.Authorizer, repo Repo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{auth: a, repo: repo, logger: logger}
}

// Send delivers body to recipientID. Standard members may only message their
// friends; plus members may message anyone.
func (s *Service) Send(ctx context.Context, sess *auth.Session, recipientID int64, body string) (*models.Message, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, me, recipientID, body)
}

// Reply answers a message in the session user's inbox. The new body carries
// the original below it as a quoted trailer.
func (s *Service) Reply(ctx context.Context, sess *auth.Session, messageID int64, body string) (*models.Message, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}

	orig, err := s.received(ctx, me.ID, messageID)
	if err != nil {
		return nil, err
	}
	from, err := s.repo.GetAccountByID(ctx, orig.SenderID)
	if err != nil {
		return nil, s.storeErr("lookup sender", err)
	}
	if from == nil {
		return nil, fmt.Errorf("%w: sender of message %d", domain.ErrNotFound, messageID)
	}

	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body is required", domain.ErrValidation)
	}
	return s.send(ctx, me, from.ID, quote(body, from.Username, orig.Body))
}

// Inbox lists messages received by the session user, oldest first.
func (s *Service) Inbox(ctx context.Context, sess *auth.Session) ([]models.InboxMessage, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListInbox(ctx, me.ID)
	if err != nil {
		return nil, s.storeErr("list inbox", err)
	}
	return out, nil
}

// Delete removes a message from the session user's inbox. This is the only
// way a message stops counting as unread.
func (s *Service) Delete(ctx context.Context, sess *auth.Session, messageID int64) error {
	me, err := s.auth.Require(sess)
	if err != nil {
		return err
	}
	if _, err := s.received(ctx, me.ID, messageID); err != nil {
		return err
	}
	if err := s.repo.DeleteMessage(ctx, messageID); err != nil {
		return s.storeErr("delete message", err)
	}
	return nil
}

// HasUnread reports whether the session user's inbox holds any message.
func (s *Service) HasUnread(ctx context.Context, sess *auth.Session) (bool, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return false, err
	}
	n, err := s.repo.CountInbox(ctx, me.ID)
	if err != nil {
		return false, s.storeErr("count inbox", err)
	}
	return n > 0, nil
}

// Directory lists every other account; it is a plus member feature.
func (s *Service) Directory(ctx context.Context, sess *auth.Session) ([]models.Account, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	if !me.IsPlus {
		return nil, fmt.Errorf("%w: directory requires a plus membership", domain.ErrPermissionDenied)
	}

	all, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, s.storeErr("list accounts", err)
	}
	out := make([]models.Account, 0, len(all))
	for _, a := range all {
		if a.ID != me.ID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Contacts lists the accounts the session user can message as a standard
// member: their friends.
func (s *Service) Contacts(ctx context.Context, sess *auth.Session) ([]models.Friend, error) {
	me, err := s.auth.Require(sess)
	if err != nil {
		return nil, err
	}
	out, err := s.repo.ListFriends(ctx, me.ID)
	if err != nil {
		return nil, s.storeErr("list friends", err)
	}
	return out, nil
}

func (s *Service) send(ctx context.Context, me *models.Account, recipientID int64, body string) (*models.Message, error) {
	if recipientID == me.ID {
		return nil, domain.ErrSelfAction
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message body is required", domain.ErrValidation)
	}

	to, err := s.repo.GetAccountByID(ctx, recipientID)
	if err != nil {
		return nil, s.storeErr("lookup recipient", err)
	}
	if to == nil {
		return nil, fmt.Errorf("%w: account %d", domain.ErrNotFound, recipientID)
	}

	if !me.IsPlus {
		friends, err := s.repo.AreFriends(ctx, me.ID, recipientID)
		if err != nil {
			return nil, s.storeErr("check friendship", err)
		}
		if !friends {
			s.logger.Debug("message refused", slog.Int64("sender", me.ID), slog.Int64("recipient", recipientID))
			return nil, fmt.Errorf("%w: not friends with %s", domain.ErrPermissionDenied, to.Username)
		}
	}

	m := &models.Message{RecipientID: recipientID, SenderID: me.ID, Body: body}
	if _, err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, s.storeErr("create message", err)
	}
	s.logger.Debug("message sent", slog.Int64("message_id", m.ID), slog.Int64("sender", me.ID))
	return m, nil
}

// received loads a message and checks it was sent to accountID.
func (s *Service) received(ctx context.Context, accountID, messageID int64) (*models.Message, error) {
	m, err := s.repo.GetMessage(ctx, messageID)
	if err != nil {
		return nil, s.storeErr("lookup message", err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: message %d", domain.ErrNotFound, messageID)
	}
	if m.RecipientID != accountID {
		return nil, fmt.Errorf("%w: message %d", domain.ErrNotOwner, messageID)
	}
	return m, nil
}

func (s *Service) storeErr(op string, err error) error {
	s.logger.Error(op, slog.Any("err", err))
	return fmt.Errorf("%s: %w", op, err)
}

func quote(body, author, original string) string {
	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(author)
	b.WriteString(" wrote:\n")
	for _, line := range strings.Split(original, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
