package repository

import (
	"context"
	"time"

	"github.com/garnizeh/incollege/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookups of a single row return (nil, nil) when the row does not exist.

// AccountField is a column accounts may be searched by.
type AccountField string

const (
	ByLastName   AccountField = "last_name"
	ByUniversity AccountField = "university"
	ByMajor      AccountField = "major"
)

// JobFilter narrows a job search relative to the searching account.
type JobFilter int

const (
	AllJobs JobFilter = iota
	AppliedJobs
	NotAppliedJobs
)

type AccountRepo interface {
	// CreateAccount inserts the account with default settings and a placeholder
	// profile, and leaves notice as a notification for every other account.
	CreateAccount(ctx context.Context, a *models.Account, notice string) (int64, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	FindAccountByName(ctx context.Context, first, last string) (*models.Account, error)
	FindAccounts(ctx context.Context, field AccountField, value string) ([]models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	CountAccounts(ctx context.Context) (int64, error)
	DeleteAccount(ctx context.Context, id int64) error
}

type SettingsRepo interface {
	GetSettings(ctx context.Context, accountID int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s *models.Settings) error
}

type ProfileRepo interface {
	GetProfile(ctx context.Context, accountID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	SetPosted(ctx context.Context, accountID int64, posted bool) error
}

type FriendRepo interface {
	GetFriendRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error)
	CreateFriendRequest(ctx context.Context, senderID, receiverID int64) (int64, error)
	DeleteFriendRequest(ctx context.Context, senderID, receiverID int64) (bool, error)
	ListPendingRequests(ctx context.Context, receiverID int64) ([]models.PendingRequest, error)
	// CreateFriendship records the pair and clears pending requests in both
	// directions.
	CreateFriendship(ctx context.Context, userOne, userTwo int64) (int64, error)
	DeleteFriendship(ctx context.Context, userA, userB int64) (bool, error)
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
	ListFriends(ctx context.Context, accountID int64) ([]models.Friend, error)
}

type JobRepo interface {
	CountJobs(ctx context.Context) (int64, error)
	// CreateJob inserts the job and a new-job notification for every account
	// other than the poster.
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	// DeleteJob notifies every applicant and removes the job with its
	// applications and bookmarks.
	DeleteJob(ctx context.Context, id int64) error
	SearchJobs(ctx context.Context, accountID int64, title string, filter JobFilter) ([]models.JobListing, error)
	ListJobsByPoster(ctx context.Context, posterID int64) ([]models.Job, error)
}

type ApplicationRepo interface {
	GetApplication(ctx context.Context, applicantID, jobID int64) (*models.JobApplication, error)
	// CreateApplication inserts the application and stamps the applicant's
	// last application time with at.
	CreateApplication(ctx context.Context, app *models.JobApplication, at time.Time) (int64, error)
	ListApplications(ctx context.Context, applicantID int64) ([]models.AppliedJob, error)
	CountApplications(ctx context.Context, applicantID int64) (int64, error)
}

type SavedJobRepo interface {
	GetSavedJob(ctx context.Context, applicantID, jobID int64) (*models.SavedJob, error)
	CreateSavedJob(ctx context.Context, applicantID, jobID int64) (int64, error)
	DeleteSavedJob(ctx context.Context, applicantID, jobID int64) (bool, error)
	ListSavedJobs(ctx context.Context, applicantID int64) ([]models.Job, error)
}

type MessageRepo interface {
	CreateMessage(ctx context.Context, m *models.Message) (int64, error)
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	ListInbox(ctx context.Context, recipientID int64) ([]models.InboxMessage, error)
	CountInbox(ctx context.Context, recipientID int64) (int64, error)
	DeleteMessage(ctx context.Context, id int64) error
}

type NotificationRepo interface {
	// ConsumeNotifications returns and deletes every notification of kind for
	// the account.
	ConsumeNotifications(ctx context.Context, accountID int64, kind models.NotificationKind) ([]models.Notification, error)
}

type SkillRepo interface {
	CountSkills(ctx context.Context) (int64, error)
	CreateSkills(ctx context.Context, skills []models.Skill) error
	ListSkills(ctx context.Context) ([]models.Skill, error)
}
