// Package cli renders command results and errors. Machine-readable JSON is
// the default; --human switches list-shaped payloads to tables.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"scouts/internal/auth"
	"scouts/internal/browser"
	"scouts/internal/cache"
	"scouts/internal/client"
)

// PrintResult writes v to stdout. JSON by default; table output for the
// payload shapes that have a human rendering.
func PrintResult(v interface{}, human bool) error {
	if human {
		switch payload := v.(type) {
		case *auth.TokenInfo:
			printTokenInfo(payload)
			return nil
		case *cache.Summary:
			printContextSummary(payload)
			return nil
		case []cache.Organization:
			printOrganizations(payload)
			return nil
		case []cache.Scout:
			printScouts(payload)
			return nil
		case *client.RosterRecord:
			printRoster(payload)
			return nil
		}
		// No table shape for this payload; fall through to JSON.
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// errorEnvelope is the JSON error shape: type name, message, and the
// remediation suggestion when the error carries one.
type errorEnvelope struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintError writes err to stderr as an error envelope.
func PrintError(err error, human bool) {
	envelope := classifyError(err)

	if human {
		fmt.Fprintf(os.Stderr, "Error: %s\n", envelope.Message)
		if envelope.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", envelope.Suggestion)
		}
		return
	}

	data, jsonErr := json.MarshalIndent(envelope, "", "  ")
	if jsonErr != nil {
		fmt.Fprintln(os.Stderr, envelope.Message)
		return
	}
	fmt.Fprintln(os.Stderr, string(data))
}

func classifyError(err error) errorEnvelope {
	var authErr *auth.AuthenticationError
	if errors.As(err, &authErr) {
		return errorEnvelope{Error: "AuthenticationError", Message: authErr.Message, Suggestion: authErr.Suggestion}
	}

	var browserErr *browser.AuthError
	if errors.As(err, &browserErr) {
		return errorEnvelope{Error: "BrowserAuthError", Message: browserErr.Message, Suggestion: browserErr.Suggestion}
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return errorEnvelope{Error: "APIError", Message: apiErr.Message, Suggestion: apiErr.Suggestion}
	}

	return errorEnvelope{Error: "Error", Message: err.Error()}
}

// StartSpinner shows a progress spinner on stderr and returns its stop
// function. Used around long interactive waits.
func StartSpinner(message string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
