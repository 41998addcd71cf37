package menu

import (
	"context"

	"github.com/garnizeh/incollege/internal/jobboard"
	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

func (a *App) jobs(ctx context.Context) error {
	digest, err := a.svc.Notify.JobDigest(ctx, a.sess)
	if err != nil {
		return err
	}
	for _, line := range digest.Lines() {
		a.println(line)
	}
	return a.loop(ctx, "jobs")
}

func (a *App) searchJobs(ctx context.Context) error {
	title, err := a.ask("Title contains (blank for all): ")
	if err != nil {
		return err
	}
	choice, err := a.ask("Show:\n1. All jobs\n2. Jobs I applied for\n3. Jobs I have not applied for\nChoice: ")
	if err != nil {
		return err
	}
	filter := repository.AllJobs
	switch choice {
	case "2":
		filter = repository.AppliedJobs
	case "3":
		filter = repository.NotAppliedJobs
	}

	hits, err := a.svc.Jobs.Search(ctx, a.sess, title, filter)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		a.println("No jobs found.")
		return nil
	}
	for _, h := range hits {
		mark := ""
		switch {
		case h.Applied:
			mark = " (applied)"
		case h.Saved:
			mark = " (saved)"
		}
		a.printf("[%d] %s at %s%s\n", h.ID, h.Title, h.Employer, mark)
	}

	id, ok, err := a.askID("Enter a job ID for details (0 to skip): ")
	if err != nil || !ok {
		return err
	}
	j, err := a.svc.Jobs.Get(ctx, a.sess, id)
	if err != nil {
		return err
	}
	a.printJob(*j)
	return nil
}

func (a *App) postJob(ctx context.Context) error {
	var p jobboard.Posting
	fields := []prompt{
		{"Title: ", &p.Title},
		{"Description: ", &p.Description},
		{"Required skill: ", &p.RequiredSkill},
		{"Skill description: ", &p.SkillDescription},
		{"Employer: ", &p.Employer},
		{"Location: ", &p.Location},
		{"Salary: ", &p.Salary},
	}
	if err := a.fill(fields); err != nil {
		return err
	}

	j, err := a.svc.Jobs.Post(ctx, a.sess, p)
	if err != nil {
		return err
	}
	a.printf("Job %q has been posted.\n", j.Title)
	return nil
}

func (a *App) applyJob(ctx context.Context) error {
	id, ok, err := a.askID("Job ID: ")
	if err != nil || !ok {
		return err
	}
	var in jobboard.Application
	fields := []prompt{
		{"Graduation date (dd/mm/yyyy): ", &in.GraduationDate},
		{"Date you can start working (dd/mm/yyyy): ", &in.StartDate},
		{"Why are you a good fit for this job? ", &in.Qualifications},
	}
	if err := a.fill(fields); err != nil {
		return err
	}

	if _, err := a.svc.Jobs.Apply(ctx, a.sess, id, in); err != nil {
		return err
	}
	a.println("Your application has been submitted.")
	return nil
}

func (a *App) saveJob(ctx context.Context) error {
	id, ok, err := a.askID("Job ID: ")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Jobs.Save(ctx, a.sess, id); err != nil {
		return err
	}
	a.println("Job saved.")
	return nil
}

func (a *App) unsaveJob(ctx context.Context) error {
	id, ok, err := a.askID("Job ID: ")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Jobs.Unsave(ctx, a.sess, id); err != nil {
		return err
	}
	a.println("Job removed from your saved list.")
	return nil
}

func (a *App) appliedJobs(ctx context.Context) error {
	list, err := a.svc.Jobs.ListApplications(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("You have not applied for any jobs.")
		return nil
	}
	for _, aj := range list {
		a.printf("[%d] %s at %s - start %s\n", aj.Job.ID, aj.Job.Title, aj.Job.Employer, aj.Application.StartDate)
	}
	return nil
}

func (a *App) savedJobs(ctx context.Context) error {
	list, err := a.svc.Jobs.ListSaved(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("You have no saved jobs.")
		return nil
	}
	for _, j := range list {
		a.printf("[%d] %s at %s\n", j.ID, j.Title, j.Employer)
	}
	return nil
}

func (a *App) deleteJob(ctx context.Context) error {
	posted, err := a.svc.Jobs.ListPosted(ctx, a.sess)
	if err != nil {
		return err
	}
	if len(posted) == 0 {
		a.println("You have not posted any jobs.")
		return nil
	}
	for _, j := range posted {
		a.printf("[%d] %s\n", j.ID, j.Title)
	}

	id, ok, err := a.askID("Job ID to delete: ")
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Jobs.Delete(ctx, a.sess, id); err != nil {
		return err
	}
	a.println("Job deleted.")
	return nil
}

func (a *App) printJob(j models.Job) {
	a.printf("Title: %s\n", j.Title)
	a.printf("Description: %s\n", j.Description)
	a.printf("Required skill: %s (%s)\n", j.RequiredSkill, j.SkillDescription)
	a.printf("Employer: %s\n", j.Employer)
	a.printf("Location: %s\n", j.Location)
	a.printf("Salary: %.2f\n", j.Salary)
	a.printf("Posted by: %s %s\n", j.PosterFirstName, j.PosterLastName)
}
