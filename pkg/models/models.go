package models

import "time"

// Domain models matching the database schema in db/migrations/0001_init.sql

type Account struct {
	ID                   int64      `json:"id" db:"id"`
	Username             string     `json:"username" db:"username"`
	PasswordHash         string     `json:"-" db:"password_hash"`
	FirstName            string     `json:"first_name" db:"first_name"`
	LastName             string     `json:"last_name" db:"last_name"`
	University           string     `json:"university" db:"university"`
	Major                string     `json:"major" db:"major"`
	IsPlus               bool       `json:"is_plus" db:"is_plus"`
	LastJobApplicationAt *time.Time `json:"last_job_application_at,omitempty" db:"last_job_application_at"`
	Created              time.Time  `json:"created" db:"created"`
}

// FullName is the display name used in notifications and listings.
func (a Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Language is a user interface language preference.
type Language string

const (
	English Language = "English"
	Spanish Language = "Spanish"
)

type Settings struct {
	AccountID          int64    `json:"account_id" db:"account_id"`
	EmailNotifications bool     `json:"email_notifications" db:"email_notifications"`
	SMSNotifications   bool     `json:"sms_notifications" db:"sms_notifications"`
	TargetedAds        bool     `json:"targeted_ads" db:"targeted_ads"`
	Language           Language `json:"language" db:"language"`
}

// DefaultSettings are applied to new accounts and shown to guests.
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: true,
		SMSNotifications:   true,
		TargetedAds:        true,
		Language:           English,
	}
}

type PastJob struct {
	Title       string `json:"title" validate:"required"`
	Employer    string `json:"employer" validate:"required"`
	DateStarted string `json:"date_started"`
	DateEnded   string `json:"date_ended"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type Education struct {
	School        string `json:"school"`
	Degree        string `json:"degree"`
	YearsAttended string `json:"years_attended"`
}

type Profile struct {
	AccountID  int64     `json:"account_id" db:"account_id"`
	Title      string    `json:"title" db:"title"`
	Major      string    `json:"major" db:"major"`
	University string    `json:"university" db:"university"`
	About      string    `json:"about" db:"about"`
	PastJobs   []PastJob `json:"past_jobs" db:"past_jobs"`
	Education  Education `json:"education" db:"education"`
	Posted     bool      `json:"posted" db:"posted"`
	Updated    int64     `json:"updated" db:"updated"`
}

type FriendRequest struct {
	ID         int64 `json:"id" db:"id"`
	SenderID   int64 `json:"sender_id" db:"sender_id"`
	ReceiverID int64 `json:"receiver_id" db:"receiver_id"`
	Created    int64 `json:"created" db:"created"`
}

// PendingRequest is a received friend request joined with its sender.
type PendingRequest struct {
	FriendRequest
	Sender Account `json:"sender"`
}

// Friendship is stored as the pair (UserOne, UserTwo) in the orientation it
// was accepted; lookups match either orientation.
type Friendship struct {
	ID      int64 `json:"id" db:"id"`
	UserOne int64 `json:"user_one" db:"user_one"`
	UserTwo int64 `json:"user_two" db:"user_two"`
	Created int64 `json:"created" db:"created"`
}

// Friend is an account on the other side of a friendship.
type Friend struct {
	Account
	HasProfile bool `json:"has_profile"`
}

type Job struct {
	ID               int64   `json:"id" db:"id"`
	Title            string  `json:"title" db:"title"`
	Description      string  `json:"description" db:"description"`
	RequiredSkill    string  `json:"required_skill" db:"required_skill"`
	SkillDescription string  `json:"skill_description" db:"skill_description"`
	Employer         string  `json:"employer" db:"employer"`
	Location         string  `json:"location" db:"location"`
	Salary           float64 `json:"salary" db:"salary"`
	PostedBy         int64   `json:"posted_by" db:"posted_by"`
	PosterFirstName  string  `json:"poster_first_name" db:"poster_first_name"`
	PosterLastName   string  `json:"poster_last_name" db:"poster_last_name"`
	Created          int64   `json:"created" db:"created"`
}

// JobListing is a search hit annotated for the searching account.
type JobListing struct {
	Job
	Applied bool `json:"applied"`
	Saved   bool `json:"saved"`
}

type JobApplication struct {
	ID             int64  `json:"id" db:"id"`
	ApplicantID    int64  `json:"applicant_id" db:"applicant_id"`
	JobID          int64  `json:"job_id" db:"job_id"`
	GraduationDate string `json:"graduation_date" db:"graduation_date"`
	StartDate      string `json:"start_date" db:"start_date"`
	Qualifications string `json:"qualifications" db:"qualifications"`
	Created        int64  `json:"created" db:"created"`
}

// AppliedJob pairs an application with the job it targets.
type AppliedJob struct {
	Application JobApplication `json:"application"`
	Job         Job            `json:"job"`
}

type SavedJob struct {
	ID          int64 `json:"id" db:"id"`
	ApplicantID int64 `json:"applicant_id" db:"applicant_id"`
	JobID       int64 `json:"job_id" db:"job_id"`
	Saved       bool  `json:"saved" db:"saved"`
	Created     int64 `json:"created" db:"created"`
}

type Message struct {
	ID          int64  `json:"id" db:"id"`
	RecipientID int64  `json:"recipient_id" db:"recipient_id"`
	SenderID    int64  `json:"sender_id" db:"sender_id"`
	Body        string `json:"body" db:"body"`
	Created     int64  `json:"created" db:"created"`
}

// InboxMessage is a received message with the sender's username attached.
type InboxMessage struct {
	Message
	SenderUsername string `json:"sender_username"`
}

// NotificationKind selects one of the transient notification tables.
type NotificationKind string

const (
	NotifyGeneral    NotificationKind = "general"
	NotifyNewJob     NotificationKind = "new_job"
	NotifyDeletedJob NotificationKind = "deleted_job"
)

// Notification is a read-once row. Text holds the message for general
// notifications and the job title for job notifications.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	Kind      NotificationKind `json:"kind"`
	AccountID int64            `json:"account_id" db:"account_id"`
	Text      string           `json:"text" db:"text"`
	Created   int64            `json:"created" db:"created"`
}

type Skill struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}
