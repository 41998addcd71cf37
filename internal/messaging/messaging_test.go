package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/messaging"
	"github.com/garnizeh/incollege/internal/repository/sqlite"
	"github.com/garnizeh/incollege/internal/testutil"
)

func setup(t *testing.T) (*messaging.Service, *auth.Service, *sqlite.SQLiteRepo) {
	t.Helper()
	repo := testutil.OpenRepo(t)
	a := testutil.NewAuth(repo)
	return messaging.NewService(a, repo, nil), a, repo
}

func befriend(t *testing.T, repo *sqlite.SQLiteRepo, a, b int64) {
	t.Helper()
	if _, err := repo.CreateFriendship(context.Background(), a, b); err != nil {
		t.Fatalf("befriend: %v", err)
	}
}

func TestSendGating(t *testing.T) {
	ctx := context.Background()
	svc, a, repo := setup(t)
	plus := testutil.SignUp(t, a, "plus", true)
	std := testutil.SignUp(t, a, "std", false)
	friend := testutil.SignUp(t, a, "friend", false)
	stranger := testutil.SignUp(t, a, "stranger", false)
	befriend(t, repo, friend.User().ID, std.User().ID)

	tests := []struct {
		name    string
		from    *auth.Session
		to      *auth.Session
		wantErr error
	}{
		{"plus to stranger", plus, stranger, nil},
		{"plus to standard", plus, std, nil},
		{"standard to friend", std, friend, nil},
		{"friend to standard, stored the other way", friend, std, nil},
		{"standard to stranger", std, stranger, domain.ErrPermissionDenied},
		{"standard to plus non-friend", std, plus, domain.ErrPermissionDenied},
		{"stranger to friend", stranger, friend, domain.ErrPermissionDenied},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := svc.Send(ctx, tc.from, tc.to.User().ID, "hello")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Send: %v", err)
			}
			if m.ID == 0 || m.SenderID != tc.from.User().ID {
				t.Fatalf("unexpected message %#v", m)
			}
		})
	}

	if _, err := svc.Send(ctx, nil, std.User().ID, "x"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("guest send: %v", err)
	}
	if _, err := svc.Send(ctx, plus, 999, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing recipient: %v", err)
	}
	if _, err := svc.Send(ctx, plus, plus.User().ID, "x"); !errors.Is(err, domain.ErrSelfAction) {
		t.Fatalf("self message: %v", err)
	}
	if _, err := svc.Send(ctx, plus, std.User().ID, "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank body: %v", err)
	}
}

func TestInboxReplyDelete(t *testing.T) {
	ctx := context.Background()
	svc, a, _ := setup(t)
	alice := testutil.SignUp(t, a, "alice", true)
	bob := testutil.SignUp(t, a, "bob", false)

	if unread, err := svc.HasUnread(ctx, bob); err != nil || unread {
		t.Fatalf("HasUnread on empty inbox: %v, %v", unread, err)
	}

	sent, err := svc.Send(ctx, alice, bob.User().ID, "Want to grab coffee?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	inbox, err := svc.Inbox(ctx, bob)
	if err != nil || len(inbox) != 1 || inbox[0].SenderUsername != "alice" {
		t.Fatalf("Inbox: %#v, %v", inbox, err)
	}
	if unread, _ := svc.HasUnread(ctx, bob); !unread {
		t.Fatalf("expected unread message")
	}

	// viewing does not clear the unread banner
	if _, err := svc.Inbox(ctx, bob); err != nil {
		t.Fatalf("Inbox: %v", err)
	}
	if unread, _ := svc.HasUnread(ctx, bob); !unread {
		t.Fatalf("viewing should not clear unread")
	}

	// replies are gated like Send; bob is neither plus nor alice's friend
	if _, err := svc.Reply(ctx, bob, sent.ID, "Sure"); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("standard reply to non-friend: %v", err)
	}

	if _, err := svc.Reply(ctx, alice, sent.ID, "x"); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("reply to own sent message: %v", err)
	}
	if err := svc.Delete(ctx, alice, sent.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("sender delete: %v", err)
	}
	if err := svc.Delete(ctx, bob, sent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if unread, _ := svc.HasUnread(ctx, bob); unread {
		t.Fatalf("deleting should clear unread")
	}
	if err := svc.Delete(ctx, bob, sent.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete twice: %v", err)
	}
}

func TestReplyQuotesOriginal(t *testing.T) {
	ctx := context.Background()
	svc, a, repo := setup(t)
	alice := testutil.SignUp(t, a, "alice", false)
	bob := testutil.SignUp(t, a, "bob", false)
	befriend(t, repo, alice.User().ID, bob.User().ID)

	sent, err := svc.Send(ctx, alice, bob.User().ID, "line one\nline two")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	reply, err := svc.Reply(ctx, bob, sent.ID, "Got it")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}

	want := "Got it\n\nalice wrote:\n> line one\n> line two"
	if reply.Body != want {
		t.Fatalf("reply body = %q, want %q", reply.Body, want)
	}
	if reply.RecipientID != alice.User().ID {
		t.Fatalf("reply should go to the original sender")
	}
	if _, err := svc.Reply(ctx, bob, sent.ID, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank reply: %v", err)
	}
}

func TestDirectoryAndContacts(t *testing.T) {
	ctx := context.Background()
	svc, a, repo := setup(t)
	plus := testutil.SignUp(t, a, "plus", true)
	std := testutil.SignUp(t, a, "std", false)
	testutil.SignUp(t, a, "other", false)
	befriend(t, repo, std.User().ID, plus.User().ID)

	dir, err := svc.Directory(ctx, plus)
	if err != nil || len(dir) != 2 {
		t.Fatalf("Directory: %#v, %v", dir, err)
	}
	for _, acc := range dir {
		if acc.ID == plus.User().ID {
			t.Fatalf("directory should not list the caller")
		}
	}
	if _, err := svc.Directory(ctx, std); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("standard directory: %v", err)
	}

	contacts, err := svc.Contacts(ctx, std)
	if err != nil || len(contacts) != 1 || contacts[0].Username != "plus" {
		t.Fatalf("Contacts: %#v, %v", contacts, err)
	}
}
