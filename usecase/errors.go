package usecase

import "errors"

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskInactive        = errors.New("task is inactive")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrTaskNotComplete     = errors.New("task is not completed")

	// ErrTransitionInFlight rejects a second transition for a task whose
	// previous transition has not settled yet.
	ErrTransitionInFlight = errors.New("transition already in flight for task")

	ErrInvalidRecurrence = errors.New("invalid recurrence rule")

	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// IsStaleState reports whether an error means the caller's view of a task's
// bucket no longer matches store truth. Recovered by resyncing the task from
// the next successful list fetch, not surfaced as a hard failure.
func IsStaleState(err error) bool {
	return errors.Is(err, ErrTaskAlreadyComplete) || errors.Is(err, ErrTaskNotComplete)
}
