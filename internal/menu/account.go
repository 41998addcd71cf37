package menu

import (
	"context"
	"errors"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/settings"
	"github.com/garnizeh/incollege/pkg/models"
)

func (a *App) login(ctx context.Context) error {
	username, err := a.ask("Username: ")
	if err != nil {
		return err
	}
	password, err := a.ask("Password: ")
	if err != nil {
		return err
	}

	sess, err := a.svc.Auth.Login(ctx, username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		a.println("Incorrect username / password, please try again.")
		return nil
	}
	if err != nil {
		return err
	}

	a.println("You have successfully logged in.")
	return a.session(ctx, sess)
}

func (a *App) createAccount(ctx context.Context) error {
	var in auth.NewAccount
	fields := []prompt{
		{"Username: ", &in.Username},
		{"Password (8-12 characters, one uppercase letter, one digit, one special character): ", &in.Password},
		{"First name: ", &in.FirstName},
		{"Last name: ", &in.LastName},
		{"University: ", &in.University},
		{"Major: ", &in.Major},
	}
	if err := a.fill(fields); err != nil {
		return err
	}
	plus, err := a.confirm("Sign up for InCollege Plus ($10/month)?")
	if err != nil {
		return err
	}
	in.IsPlus = plus

	sess, err := a.svc.Auth.CreateAccount(ctx, in)
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		a.println("All permitted accounts have been created, please come back later.")
		return nil
	case errors.Is(err, domain.ErrDuplicateUsername):
		a.println("That username is already taken.")
		return nil
	case err != nil:
		return err
	}

	a.println("You have successfully created an account!")
	return a.session(ctx, sess)
}

// session runs the logged-in screens and always ends logged out.
func (a *App) session(ctx context.Context, sess *auth.Session) error {
	a.sess = sess
	defer func() {
		a.svc.Auth.Logout(a.sess)
		a.sess = nil
	}()

	digest, err := a.svc.Notify.LoginDigest(ctx, sess)
	if err != nil {
		a.report(err)
	}
	for _, line := range digest.Lines() {
		a.println(line)
	}

	err = a.loop(ctx, "main")
	if errors.Is(err, errLeave) {
		return nil
	}
	return err
}

func (a *App) findSomeone(ctx context.Context) error {
	first, err := a.ask("First name: ")
	if err != nil {
		return err
	}
	last, err := a.ask("Last name: ")
	if err != nil {
		return err
	}

	found, err := a.svc.Auth.FindByName(ctx, first, last)
	if err != nil {
		return err
	}
	if found == nil {
		a.println("They are not yet a part of the InCollege system.")
		return nil
	}

	a.println("They are a part of the InCollege system.")
	join, err := a.confirm("Would you like to join InCollege to connect with them?")
	if err != nil || !join {
		return err
	}
	return a.createAccount(ctx)
}

func (a *App) deleteAccount(ctx context.Context) error {
	for _, q := range []string{"Are you sure you want to delete your account?", "This cannot be undone. Delete it anyway?"} {
		ok, err := a.confirm(q)
		if err != nil {
			return err
		}
		if !ok {
			a.println("Account kept.")
			return nil
		}
	}

	if err := a.svc.Auth.DeleteAccount(ctx, a.sess); err != nil {
		return err
	}
	a.println("Your account has been deleted.")
	return errLeave
}

func (a *App) settings(ctx context.Context) error {
	cur, err := a.svc.Settings.Get(ctx, a.sess)
	if err != nil {
		return err
	}
	a.printSettings(cur)
	if a.sess.User() == nil {
		a.println("Log in to change these settings.")
	}
	return a.loop(ctx, "settings")
}

func (a *App) changeSetting(ctx context.Context, cmd Command) error {
	cur, err := a.svc.Settings.Get(ctx, a.sess)
	if err != nil {
		return err
	}

	var u settings.Update
	switch cmd {
	case CmdToggleEmail:
		u.EmailNotifications = flip(cur.EmailNotifications)
	case CmdToggleSMS:
		u.SMSNotifications = flip(cur.SMSNotifications)
	case CmdToggleAds:
		u.TargetedAds = flip(cur.TargetedAds)
	case CmdChangeLanguage:
		choice, err := a.ask("1. English\n2. Spanish\nLanguage: ")
		if err != nil {
			return err
		}
		lang := models.English
		if choice == "2" {
			lang = models.Spanish
		}
		u.Language = &lang
	}

	updated, err := a.svc.Settings.Update(ctx, a.sess, u)
	if err != nil {
		return err
	}
	a.printSettings(updated)
	return nil
}

func (a *App) printSettings(s models.Settings) {
	a.printf("Email notifications: %s\n", onOff(s.EmailNotifications))
	a.printf("SMS notifications: %s\n", onOff(s.SMSNotifications))
	a.printf("Targeted advertising: %s\n", onOff(s.TargetedAds))
	a.printf("Language: %s\n", s.Language)
}

func (a *App) learnSkill(ctx context.Context) error {
	if err := a.page("skills"); err != nil {
		return err
	}
	list, err := a.svc.Skills.List(ctx)
	if err != nil {
		return err
	}
	for i, s := range list {
		a.printf("%d. %s: %s\n", i+1, s.Name, s.Description)
	}
	return nil
}

func flip(b bool) *bool {
	v := !b
	return &v
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
