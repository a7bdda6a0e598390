package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"scouts/pkg/logging"
)

// StorageKey is the local-storage key the sign-in page writes its session
// payload to.
const StorageKey = "LOGIN_DATA"

// tokenPrefix is the fixed prefix of a well-formed compact token.
const tokenPrefix = "eyJ"

// OrchestratorConfig bounds the two acquisition phases.
type OrchestratorConfig struct {
	// HeadlessTimeout bounds the silent phase.
	HeadlessTimeout time.Duration

	// HeadedTimeout bounds the interactive phase. This is minutes, not
	// seconds: a human has to complete third-party sign-in.
	HeadedTimeout time.Duration

	// PollInterval separates consecutive local-storage reads.
	PollInterval time.Duration

	// StorageKey overrides the polled key. Defaults to StorageKey.
	StorageKey string

	// Now and Sleep are swappable in tests.
	Now   func() time.Time
	Sleep func(time.Duration)

	// Notify delivers operator-facing progress messages. Defaults to
	// stderr.
	Notify func(string)
}

// Orchestrator runs the headless-then-headed acquisition state machine.
type Orchestrator struct {
	launcher Launcher
	cfg      OrchestratorConfig
}

// NewOrchestrator creates an orchestrator over the given launcher,
// filling in defaults for any unset config fields.
func NewOrchestrator(launcher Launcher, cfg OrchestratorConfig) *Orchestrator {
	if cfg.HeadlessTimeout <= 0 {
		cfg.HeadlessTimeout = 15 * time.Second
	}
	if cfg.HeadedTimeout <= 0 {
		cfg.HeadedTimeout = 5 * time.Minute
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = StorageKey
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	if cfg.Notify == nil {
		cfg.Notify = func(msg string) { fmt.Fprintln(os.Stderr, msg) }
	}
	return &Orchestrator{launcher: launcher, cfg: cfg}
}

// AcquireToken runs both phases and returns the captured token. The silent
// phase is strictly best-effort: any failure there degrades to the headed
// phase, except a missing automation dependency, which no amount of
// falling through can fix and is surfaced immediately.
func (o *Orchestrator) AcquireToken(ctx context.Context, verbose bool) (string, error) {
	if verbose {
		o.cfg.Notify("Attempting headless token refresh...")
	}

	token, err := o.attempt(ctx, true, o.cfg.HeadlessTimeout)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return "", &AuthError{
				Message:    fmt.Sprintf("browser automation is not installed: %v", err),
				Suggestion: "Install the Playwright browsers, or use manual token auth: scouts auth login --token <TOKEN>",
				Err:        err,
			}
		}
		logging.Warn("BrowserAuth", "Headless attempt failed: %v", err)
	}
	if token != "" {
		if verbose {
			o.cfg.Notify("Token obtained via headless refresh.")
		}
		return token, nil
	}

	o.cfg.Notify("Opening browser for sign-in. Please complete login...")

	token, err = o.attempt(ctx, false, o.cfg.HeadedTimeout)
	if err != nil {
		logging.Warn("BrowserAuth", "Headed attempt failed: %v", err)
	}
	if token != "" {
		o.cfg.Notify("Login successful. Token captured.")
		return token, nil
	}

	return "", &AuthError{
		Message:    fmt.Sprintf("timed out waiting for login after %s", o.cfg.HeadedTimeout),
		Suggestion: manualFallbackSuggestion,
		Timeout:    o.cfg.HeadedTimeout,
		Err:        err,
	}
}

// attempt runs a single phase: launch, poll until the deadline, tear down.
// It returns "" without error when the deadline elapses with no token.
func (o *Orchestrator) attempt(ctx context.Context, headless bool, timeout time.Duration) (string, error) {
	sess, err := o.launcher.Launch(ctx, headless)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			logging.Warn("BrowserAuth", "Session close failed: %v", closeErr)
		}
	}()

	deadline := o.cfg.Now().Add(timeout)
	for {
		raw, err := sess.StorageValue(o.cfg.StorageKey)
		if err == nil {
			if token := tokenFromStorage(raw); token != "" {
				return token, nil
			}
		}

		if !o.cfg.Now().Before(deadline) {
			return "", nil
		}
		o.cfg.Sleep(o.cfg.PollInterval)
	}
}

// tokenFromStorage extracts a token from the raw local-storage value. The
// value qualifies only if it decodes as JSON and its token field is
// non-empty with the compact-token prefix.
func tokenFromStorage(raw string) string {
	if raw == "" {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return ""
	}
	if !strings.HasPrefix(payload.Token, tokenPrefix) {
		return ""
	}
	return payload.Token
}
