package menu

import (
	"context"
	"errors"
	"strconv"

	"github.com/garnizeh/incollege/internal/domain"
	"github.com/garnizeh/incollege/internal/profile"
	"github.com/garnizeh/incollege/pkg/models"
)

func (a *App) editProfile(ctx context.Context) error {
	var d profile.Draft
	fields := []prompt{
		{"Title: ", &d.Title},
		{"Major: ", &d.Major},
		{"University: ", &d.University},
		{"About: ", &d.About},
		{"Education - school: ", &d.Education.School},
		{"Education - degree: ", &d.Education.Degree},
		{"Education - years attended: ", &d.Education.YearsAttended},
	}
	if err := a.fill(fields); err != nil {
		return err
	}

	s, err := a.ask("Number of past jobs (0-" + strconv.Itoa(profile.MaxPastJobs) + "): ")
	if err != nil {
		return err
	}
	n, perr := strconv.Atoi(s)
	if perr != nil || n < 0 {
		n = 0
	}
	for i := 0; i < n; i++ {
		var j models.PastJob
		a.printf("Past job %d\n", i+1)
		err := a.fill([]prompt{
			{"Title: ", &j.Title},
			{"Employer: ", &j.Employer},
			{"Date started: ", &j.DateStarted},
			{"Date ended: ", &j.DateEnded},
			{"Location: ", &j.Location},
			{"Description: ", &j.Description},
		})
		if err != nil {
			return err
		}
		d.PastJobs = append(d.PastJobs, j)
	}

	if _, err := a.svc.Profiles.SaveDraft(ctx, a.sess, d); err != nil {
		return err
	}
	a.println("Profile saved. Publish it to make it visible to your friends.")
	return nil
}

func (a *App) publishProfile(ctx context.Context) error {
	if err := a.svc.Profiles.Publish(ctx, a.sess); err != nil {
		return err
	}
	a.println("Your profile is now visible to your friends.")
	return nil
}

func (a *App) viewOwnProfile(ctx context.Context) error {
	p, err := a.svc.Profiles.Own(ctx, a.sess)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	// accounts start with an untitled placeholder row
	if p == nil || p.Title == "" {
		a.println("You have not created a profile yet.")
		return nil
	}
	a.printProfile(p)
	if !p.Posted {
		a.println("(not published)")
	}
	return nil
}

func (a *App) printProfile(p *models.Profile) {
	a.println(p.Title)
	a.printf("Major: %s\n", p.Major)
	a.printf("University: %s\n", p.University)
	if p.About != "" {
		a.printf("About: %s\n", p.About)
	}
	for i, j := range p.PastJobs {
		a.printf("Experience %d: %s at %s", i+1, j.Title, j.Employer)
		if j.DateStarted != "" || j.DateEnded != "" {
			a.printf(" (%s - %s)", j.DateStarted, j.DateEnded)
		}
		a.println("")
		if j.Location != "" {
			a.printf("  Location: %s\n", j.Location)
		}
		if j.Description != "" {
			a.printf("  %s\n", j.Description)
		}
	}
	if e := p.Education; e.School != "" {
		a.printf("Education: %s, %s (%s)\n", e.School, e.Degree, e.YearsAttended)
	}
}
