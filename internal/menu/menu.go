// Package menu is the text front end. It renders screens from the content
// document, reads choices line by line and dispatches them to the services.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/garnizeh/incollege/internal/auth"
	"github.com/garnizeh/incollege/internal/content"
	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/jobboard"
	"github.com/garnizeh/incollege/internal/logging"
	"github.com/garnizeh/incollege/internal/messaging"
	"github.com/garnizeh/incollege/internal/notify"
	"github.com/garnizeh/incollege/internal/profile"
	"github.com/garnizeh/incollege/internal/settings"
	"github.com/garnizeh/incollege/internal/skills"
	"github.com/garnizeh/incollege/internal/social"
)

// Services bundles the core the menu drives.
type Services struct {
	Auth     *auth.Service
	Social   *social.Service
	Jobs     *jobboard.Service
	Messages *messaging.Service
	Profiles *profile.Service
	Settings *settings.Service
	Notify   *notify.Service
	Skills   *skills.Service
}

// errLeave unwinds the logged-in screens back to home.
var errLeave = errors.New("leave session")

type App struct {
	svc    Services
	doc    *content.Document
	in     *bufio.Scanner
	out    io.Writer
	sess   *auth.Session
	logger *slog.Logger
}

func New(svc Services, doc *content.Document, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{svc: svc, doc: doc, in: bufio.NewScanner(in), out: out, logger: logger}
}

// Run shows the home screen until the user quits or input ends. Both are a
// normal exit.
func (a *App) Run(ctx context.Context) error {
	err := a.loop(ctx, "home")
	if err == nil || errors.Is(err, io.EOF) {
		a.println("Goodbye!")
		return nil
	}
	return err
}

// loop renders screen key and runs the chosen commands until "q".
func (a *App) loop(ctx context.Context, key string) error {
	cmds := screens[key]
	for {
		a.println("")
		a.println(a.doc.Title(key))
		for i, opt := range a.doc.Options(key) {
			if i < len(cmds) {
				a.printf("%d. %s\n", i+1, opt)
			}
		}
		a.println("q. Back")

		choice, err := a.ask("Choose an option: ")
		if err != nil {
			return err
		}
		if strings.EqualFold(choice, "q") {
			return nil
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(cmds) {
			a.println("Invalid choice. Please try again.")
			continue
		}

		cmd := cmds[n-1]
		a.logger.Debug("command", slog.String("screen", key), slog.String("cmd", cmd.String()))
		if err := a.exec(ctx, cmd); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, errLeave) {
				return err
			}
			if errors.Is(err, domain.ErrSessionExpired) {
				a.println("Your session has expired. Please log in again.")
				return errLeave
			}
			a.report(err)
		}
	}
}

func (a *App) exec(ctx context.Context, cmd Command) error {
	switch cmd {
	case CmdLogin:
		return a.login(ctx)
	case CmdCreateAccount:
		return a.createAccount(ctx)
	case CmdFindSomeone:
		return a.findSomeone(ctx)
	case CmdGuestControls, CmdSettings:
		return a.settings(ctx)
	case CmdPrivacyPolicy:
		return a.page("privacy_policy")
	case CmdCopyright:
		return a.page("copyright")

	case CmdJobs:
		return a.jobs(ctx)
	case CmdSearchPeople:
		return a.searchPeople(ctx)
	case CmdLearnSkill:
		return a.learnSkill(ctx)
	case CmdFriends:
		return a.loop(ctx, "friends")
	case CmdProfile:
		return a.loop(ctx, "profile")
	case CmdFriendRequests:
		return a.friendRequests(ctx)
	case CmdMessages:
		return a.loop(ctx, "messages")
	case CmdDeleteAccount:
		return a.deleteAccount(ctx)

	case CmdSearchJobs:
		return a.searchJobs(ctx)
	case CmdPostJob:
		return a.postJob(ctx)
	case CmdApplyJob:
		return a.applyJob(ctx)
	case CmdSaveJob:
		return a.saveJob(ctx)
	case CmdUnsaveJob:
		return a.unsaveJob(ctx)
	case CmdAppliedJobs:
		return a.appliedJobs(ctx)
	case CmdSavedJobs:
		return a.savedJobs(ctx)
	case CmdDeleteJob:
		return a.deleteJob(ctx)

	case CmdListFriends:
		return a.listFriends(ctx)
	case CmdRemoveFriend:
		return a.removeFriend(ctx)
	case CmdViewFriendProfile:
		return a.viewFriendProfile(ctx)

	case CmdAcceptRequest:
		return a.answerRequest(ctx, true)
	case CmdRejectRequest:
		return a.answerRequest(ctx, false)

	case CmdSendMessage:
		return a.sendMessage(ctx)
	case CmdDirectory:
		return a.directory(ctx)
	case CmdReadInbox:
		return a.readInbox(ctx)
	case CmdReply:
		return a.reply(ctx)
	case CmdDeleteMessage:
		return a.deleteMessage(ctx)

	case CmdEditProfile:
		return a.editProfile(ctx)
	case CmdPublishProfile:
		return a.publishProfile(ctx)
	case CmdViewProfile:
		return a.viewOwnProfile(ctx)

	case CmdToggleEmail, CmdToggleSMS, CmdToggleAds, CmdChangeLanguage:
		return a.changeSetting(ctx, cmd)
	}
	return fmt.Errorf("unhandled command %v", cmd)
}

// report prints a failed command. Store failures are logged and shown
// generically; the menu keeps running either way.
func (a *App) report(err error) {
	if domain.IsDomain(err) {
		a.println(userText(err))
		return
	}
	a.logger.Error("operation failed", slog.Any("err", err))
	a.println("Something went wrong. Please try again.")
}

func userText(err error) string {
	msg := err.Error()
	if msg == "" {
		return "Request failed."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func (a *App) page(key string) error {
	a.println("")
	a.println(a.doc.Title(key))
	a.println(a.doc.Body(key))
	return nil
}

// ask prints label and returns the next trimmed input line.
func (a *App) ask(label string) (string, error) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *App) askID(label string) (int64, bool, error) {
	s, err := a.ask(label)
	if err != nil {
		return 0, false, err
	}
	if s == "" || s == "0" {
		return 0, false, nil
	}
	id, perr := strconv.ParseInt(s, 10, 64)
	if perr != nil || id < 0 {
		a.println("Please enter a valid number.")
		return 0, false, nil
	}
	return id, true, nil
}

type prompt struct {
	label string
	dst   *string
}

// fill asks each prompt in turn and stores the answers.
func (a *App) fill(ps []prompt) error {
	for _, p := range ps {
		v, err := a.ask(p.label)
		if err != nil {
			return err
		}
		*p.dst = v
	}
	return nil
}

func (a *App) confirm(label string) (bool, error) {
	s, err := a.ask(label + " (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, "y") || strings.EqualFold(s, "yes"), nil
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
