package game

import "fmt"

// ValidationError rejects bad input before any state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an action against a stale or deleted id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// AuthError aborts an action when there is no active session.
type AuthError struct{}

func (AuthError) Error() string {
	return "no active session"
}

// SyncError reports a remote write that failed after the local state was
// already committed. The local mutation stands; the entity is marked
// pending-sync and the caller should surface a non-fatal warning.
type SyncError struct {
	Op  string
	Err error
}

func (e SyncError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.Op, e.Err)
}

func (e SyncError) Unwrap() error { return e.Err }

// InsufficientCreditsError rejects a purchase the player cannot afford.
type InsufficientCreditsError struct {
	Cost    int
	Credits int
}

func (e InsufficientCreditsError) Error() string {
	return fmt.Sprintf("not enough credits: need %d, have %d", e.Cost, e.Credits)
}
