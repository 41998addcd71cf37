package menu

// Command is one selectable action. Each screen lists its commands in the
// order its options appear in the content document.
type Command int

const (
	CmdLogin Command = iota + 1
	CmdCreateAccount
	CmdFindSomeone
	CmdGuestControls
	CmdPrivacyPolicy
	CmdCopyright

	CmdJobs
	CmdSearchPeople
	CmdLearnSkill
	CmdFriends
	CmdProfile
	CmdFriendRequests
	CmdSettings
	CmdMessages
	CmdDeleteAccount

	CmdSearchJobs
	CmdPostJob
	CmdApplyJob
	CmdSaveJob
	CmdUnsaveJob
	CmdAppliedJobs
	CmdSavedJobs
	CmdDeleteJob

	CmdListFriends
	CmdRemoveFriend
	CmdViewFriendProfile

	CmdAcceptRequest
	CmdRejectRequest

	CmdSendMessage
	CmdDirectory
	CmdReadInbox
	CmdReply
	CmdDeleteMessage

	CmdEditProfile
	CmdPublishProfile
	CmdViewProfile

	CmdToggleEmail
	CmdToggleSMS
	CmdToggleAds
	CmdChangeLanguage
)

var commandNames = map[Command]string{
	CmdLogin:             "login",
	CmdCreateAccount:     "create_account",
	CmdFindSomeone:       "find_someone",
	CmdGuestControls:     "guest_controls",
	CmdPrivacyPolicy:     "privacy_policy",
	CmdCopyright:         "copyright",
	CmdJobs:              "jobs",
	CmdSearchPeople:      "search_people",
	CmdLearnSkill:        "learn_skill",
	CmdFriends:           "friends",
	CmdProfile:           "profile",
	CmdFriendRequests:    "friend_requests",
	CmdSettings:          "settings",
	CmdMessages:          "messages",
	CmdDeleteAccount:     "delete_account",
	CmdSearchJobs:        "search_jobs",
	CmdPostJob:           "post_job",
	CmdApplyJob:          "apply_job",
	CmdSaveJob:           "save_job",
	CmdUnsaveJob:         "unsave_job",
	CmdAppliedJobs:       "applied_jobs",
	CmdSavedJobs:         "saved_jobs",
	CmdDeleteJob:         "delete_job",
	CmdListFriends:       "list_friends",
	CmdRemoveFriend:      "remove_friend",
	CmdViewFriendProfile: "view_friend_profile",
	CmdAcceptRequest:     "accept_request",
	CmdRejectRequest:     "reject_request",
	CmdSendMessage:       "send_message",
	CmdDirectory:         "directory",
	CmdReadInbox:         "read_inbox",
	CmdReply:             "reply",
	CmdDeleteMessage:     "delete_message",
	CmdEditProfile:       "edit_profile",
	CmdPublishProfile:    "publish_profile",
	CmdViewProfile:       "view_profile",
	CmdToggleEmail:       "toggle_email",
	CmdToggleSMS:         "toggle_sms",
	CmdToggleAds:         "toggle_ads",
	CmdChangeLanguage:    "change_language",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// screens maps a content key to the commands behind its numbered options.
var screens = map[string][]Command{
	"home":     {CmdLogin, CmdCreateAccount, CmdFindSomeone, CmdGuestControls, CmdPrivacyPolicy, CmdCopyright},
	"main":     {CmdJobs, CmdSearchPeople, CmdLearnSkill, CmdFriends, CmdProfile, CmdFriendRequests, CmdSettings, CmdMessages, CmdDeleteAccount},
	"jobs":     {CmdSearchJobs, CmdPostJob, CmdApplyJob, CmdSaveJob, CmdUnsaveJob, CmdAppliedJobs, CmdSavedJobs, CmdDeleteJob},
	"friends":  {CmdListFriends, CmdRemoveFriend, CmdViewFriendProfile},
	"requests": {CmdAcceptRequest, CmdRejectRequest},
	"messages": {CmdSendMessage, CmdDirectory, CmdReadInbox, CmdReply, CmdDeleteMessage},
	"profile":  {CmdEditProfile, CmdPublishProfile, CmdViewProfile},
	"settings": {CmdToggleEmail, CmdToggleSMS, CmdToggleAds, CmdChangeLanguage},
}
