package auth

// DefaultSuggestion is the remediation hint attached to authentication
// errors that have no more specific advice.
const DefaultSuggestion = "Run 'scouts auth login' to authenticate via browser, " +
	"or 'scouts auth login --token <TOKEN>' for manual token auth."

// AuthenticationError indicates that no usable credential exists: missing
// token, expired token, or a malformed manually-supplied token.
type AuthenticationError struct {
	// Message is the human-readable failure description.
	Message string

	// Suggestion is a remediation hint for the user.
	Suggestion string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// NewAuthenticationError creates an AuthenticationError with the default
// remediation suggestion.
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{
		Message:    message,
		Suggestion: DefaultSuggestion,
	}
}

// DecodeError indicates a malformed token: wrong segment count or an
// undecodable claims segment. It is only ever encountered during
// credential ingestion, where the Manager wraps it as an
// AuthenticationError.
type DecodeError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
