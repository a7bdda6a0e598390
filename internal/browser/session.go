package browser

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable indicates the browser-automation dependency is missing or
// cannot start at all. It is distinct from an ordinary launch failure so
// the orchestrator can abort immediately instead of retrying a phase that
// can never succeed.
var ErrUnavailable = errors.New("browser automation is not available")

// Session is a single live browser session bound to the persistent
// profile, already navigated to the sign-in origin.
type Session interface {
	// StorageValue returns the raw value stored at the given local-storage
	// key, or "" when the key is unset.
	StorageValue(key string) (string, error)

	// Close tears the session down. It must be safe to call exactly once
	// per opened session.
	Close() error
}

// Launcher opens browser sessions. Implementations navigate to the
// sign-in origin before returning. A missing automation dependency is
// reported as an error wrapping ErrUnavailable.
type Launcher interface {
	Launch(ctx context.Context, headless bool) (Session, error)
}

// AuthError indicates browser-based token acquisition failed: either the
// automation dependency is missing, or both phases were exhausted without
// a token appearing.
type AuthError struct {
	// Message is the human-readable failure description.
	Message string

	// Suggestion is a remediation hint for the user.
	Suggestion string

	// Timeout is the headed-phase deadline that was exhausted, when the
	// failure was a timeout. Zero otherwise.
	Timeout time.Duration

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// manualFallbackSuggestion points users at the non-browser path.
const manualFallbackSuggestion = "Try again, or use manual token auth: scouts auth login --token <TOKEN>"
