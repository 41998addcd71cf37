package menu

import (
	"context"
	"strings"
)

func (a *App) sendMessage(ctx context.Context) error {
	if me := a.sess.User(); me != nil && !me.IsPlus {
		friends, err := a.svc.Messages.Contacts(ctx, a.sess)
		if err != nil {
			return err
		}
		if len(friends) == 0 {
			a.println("You can only message friends. Add some friends first.")
			return nil
		}
		for _, f := range friends {
			a.printf("[%d] %s (%s)\n", f.ID, f.FullName(), f.Username)
		}
	}

	id, ok, err := a.askID("Recipient ID: ")
	if err != nil || !ok {
		return err
	}
	body, err := a.ask("Message: ")
	if err != nil {
		return err
	}
	if _, err := a.svc.Messages.Send(ctx, a.sess, id, body); err != nil {
		return err
	}
	a.println("Message sent.")
	return nil
}

func (a *App) directory(ctx context.Context) error {
	list, err := a.svc.Messages.Directory(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("There are no other students yet.")
		return nil
	}
	for _, acc := range list {
		a.printAccount(acc)
	}
	return nil
}

func (a *App) readInbox(ctx context.Context) error {
	inbox, err := a.svc.Messages.Inbox(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(inbox) == 0 {
		a.println("Your inbox is empty.")
		return nil
	}
	for _, m := range inbox {
		a.printf("[%d] From %s:\n", m.ID, m.SenderUsername)
		for _, line := range strings.Split(m.Body, "\n") {
			a.println("    " + line)
		}
	}
	return nil
}

func (a *App) reply(ctx context.Context) error {
	id, ok, err := a.askID("Message ID: ")
	if err != nil || !ok {
		return err
	}
	body, err := a.ask("Reply: ")
	if err != nil {
		return err
	}
	if _, err := a.svc.Messages.Reply(ctx, a.sess, id, body); err != nil {
		return err
	}
	a.println("Reply sent.")
	return nil
}

func (a *App) deleteMessage(ctx context.Context) error {
	id, ok, err := a.askID("Message ID: ")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Messages.Delete(ctx, a.sess, id); err != nil {
		return err
	}
	a.println("Message deleted.")
	return nil
}
