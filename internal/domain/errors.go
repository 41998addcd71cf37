package domain

import "errors"

// Expected outcomes of domain rules. Callers branch on these with errors.Is
// and re-prompt; they never indicate a broken store.
var (
	ErrWeakPassword         = errors.New("password does not meet requirements")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrSessionExpired       = errors.New("session expired")
	ErrNotFound             = errors.New("not found")
	ErrNotOwner             = errors.New("not owner")
	ErrOwnPosting           = errors.New("own posting")
	ErrDuplicateApplication = errors.New("already applied to this job")
	ErrAlreadyApplied       = errors.New("job already applied to")
	ErrAlreadySaved         = errors.New("job already saved")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNoProfile            = errors.New("no profile posted")
	ErrSelfAction           = errors.New("cannot target own account")
	ErrTooManyPastJobs      = errors.New("at most 3 past jobs")

	// ErrValidation wraps input-format violations (salary, dates, blank fields).
	ErrValidation = errors.New("validation failed")
)

var expected = []error{
	ErrWeakPassword, ErrCapacityExceeded, ErrDuplicateUsername, ErrInvalidCredentials,
	ErrNotAuthenticated, ErrSessionExpired, ErrNotFound, ErrNotOwner, ErrOwnPosting,
	ErrDuplicateApplication, ErrAlreadyApplied, ErrAlreadySaved, ErrPermissionDenied,
	ErrNoProfile, ErrSelfAction, ErrTooManyPastJobs, ErrValidation,
}

// IsDomain reports whether err is a recoverable domain or input outcome rather
// than a persistence failure.
func IsDomain(err error) bool {
	if err == nil {
		return false
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
