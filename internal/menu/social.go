package menu

import (
	"context"

	"github.com/garnizeh/incollege/internal/social"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

func (a *App) searchPeople(ctx context.Context) error {
	choice, err := a.ask("Search by:\n1. Last name\n2. University\n3. Major\nChoice: ")
	if err != nil {
		return err
	}
	fields := map[string]repository.AccountField{
		"1": repository.ByLastName,
		"2": repository.ByUniversity,
		"3": repository.ByMajor,
	}
	field, ok := fields[choice]
	if !ok {
		a.println("Invalid choice. Please try again.")
		return nil
	}
	value, err := a.ask("Search for: ")
	if err != nil {
		return err
	}

	found, err := a.svc.Auth.FindBy(ctx, field, value)
	if err != nil {
		return err
	}
	me := a.sess.User()
	n := 0
	for _, acc := range found {
		if me != nil && acc.ID == me.ID {
			continue
		}
		a.printAccount(acc)
		n++
	}
	if n == 0 {
		a.println("No students matched your search.")
		return nil
	}

	id, ok, err := a.askID("Enter a student ID to send a friend request (0 to skip): ")
	if err != nil || !ok {
		return err
	}
	status, err := a.svc.Social.SendRequest(ctx, a.sess, id)
	if err != nil {
		return err
	}
	a.println(status.String())
	if status != social.RequestReciprocalPending {
		return nil
	}

	accept, err := a.confirm("Accept their request now?")
	if err != nil || !accept {
		return err
	}
	if err := a.svc.Social.Accept(ctx, a.sess, id); err != nil {
		return err
	}
	a.println("You are now friends!")
	return nil
}

func (a *App) friendRequests(ctx context.Context) error {
	pending, err := a.svc.Social.PendingRequests(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		a.println("You have no pending friend requests.")
		return nil
	}
	for _, p := range pending {
		a.printf("[%d] %s (%s)\n", p.Sender.ID, p.Sender.FullName(), p.Sender.Username)
	}
	return a.loop(ctx, "requests")
}

func (a *App) answerRequest(ctx context.Context, accept bool) error {
	id, ok, err := a.askID("Sender ID: ")
	if err != nil || !ok {
		return err
	}
	if accept {
		if err := a.svc.Social.Accept(ctx, a.sess, id); err != nil {
			return err
		}
		a.println("Friend request accepted.")
		return nil
	}
	if err := a.svc.Social.Reject(ctx, a.sess, id); err != nil {
		return err
	}
	a.println("Friend request rejected.")
	return nil
}

func (a *App) listFriends(ctx context.Context) error {
	friends, err := a.svc.Social.ListFriends(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		a.println("You have no friends in your network yet.")
		return nil
	}
	for _, f := range friends {
		mark := ""
		if f.HasProfile {
			mark = " - profile available"
		}
		a.printf("[%d] %s (%s)%s\n", f.ID, f.FullName(), f.Username, mark)
	}
	return nil
}

func (a *App) removeFriend(ctx context.Context) error {
	id, ok, err := a.askID("Friend ID: ")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Social.RemoveFriend(ctx, a.sess, id); err != nil {
		return err
	}
	a.println("Friend removed.")
	return nil
}

func (a *App) viewFriendProfile(ctx context.Context) error {
	id, ok, err := a.askID("Friend ID: ")
	if err != nil || !ok {
		return err
	}
	p, err := a.svc.Profiles.View(ctx, a.sess, id)
	if err != nil {
		return err
	}
	a.printProfile(p)
	return nil
}

func (a *App) printAccount(acc models.Account) {
	a.printf("[%d] %s - %s, %s\n", acc.ID, acc.FullName(), acc.University, acc.Major)
}
