package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scouts/pkg/logging"
)

// Acquirer obtains a fresh token interactively. It is implemented by the
// browser orchestrator and by fakes in tests.
type Acquirer interface {
	AcquireToken(ctx context.Context, verbose bool) (string, error)
}

// TokenInfo is the read-only metadata view of the cached credential,
// annotated with an expiry flag computed at read time.
type TokenInfo struct {
	Record
	IsExpired bool `json:"is_expired"`
}

// ManagerConfig configures the credential manager.
type ManagerConfig struct {
	// Store persists the credential record. Required.
	Store *Store

	// Acquirer drives interactive acquisition. May be nil when
	// acquisition is disabled.
	Acquirer Acquirer

	// DisableAcquisition makes GetToken fail immediately instead of
	// launching a browser when no usable credential exists.
	DisableAcquisition bool
}

// Manager owns the token state machine: validity check, expiry check,
// acquisition dispatch and manual ingestion. It is the sole writer of the
// credential store.
type Manager struct {
	store              *Store
	acquirer           Acquirer
	disableAcquisition bool

	// now is swappable in tests.
	now func() time.Time
}

// NewManager creates a credential manager.
func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{
		store:              cfg.Store,
		acquirer:           cfg.Acquirer,
		disableAcquisition: cfg.DisableAcquisition,
		now:                time.Now,
	}
}

// GetToken returns a usable bearer token. A valid cached token is returned
// directly. Otherwise, unless acquisition is disabled, the interactive
// flow is attempted and its result ingested. When everything fails the
// returned AuthenticationError distinguishes "token expired at T" from
// "no token ever obtained".
func (m *Manager) GetToken(ctx context.Context) (string, error) {
	cached := m.store.Load()
	if cached != nil && !m.isExpired(cached) {
		return cached.Token, nil
	}

	if !m.disableAcquisition && m.acquirer != nil {
		// Acquisition failures fall through to the explicit error below;
		// the caller decides whether to suggest the manual path.
		token, err := m.acquirer.AcquireToken(ctx, false)
		if err != nil {
			logging.Warn("CredentialManager", "Interactive acquisition failed: %v", err)
		} else if ingestErr := m.IngestToken(token); ingestErr != nil {
			logging.Warn("CredentialManager", "Acquired token failed ingestion: %v", ingestErr)
		} else {
			return token, nil
		}
	}

	if cached != nil {
		return "", NewAuthenticationError(
			fmt.Sprintf("token expired at %s", cached.ExpiresAt.Format(time.RFC3339)))
	}
	return "", NewAuthenticationError("no authentication token found")
}

// GetTokenInfo returns cached token metadata with a computed is_expired
// flag, or nil if no record exists. It never triggers acquisition.
func (m *Manager) GetTokenInfo() *TokenInfo {
	cached := m.store.Load()
	if cached == nil {
		return nil
	}
	return &TokenInfo{
		Record:    *cached,
		IsExpired: m.isExpired(cached),
	}
}

// IngestToken validates and persists a manually supplied token. The token
// must carry the compact-format prefix and a decodable expiry claim;
// violations surface as AuthenticationError and nothing is written.
func (m *Manager) IngestToken(token string) error {
	if !strings.HasPrefix(token, TokenPrefix) {
		return NewAuthenticationError(
			"invalid token format: compact tokens start with '" + TokenPrefix + "'")
	}

	claims, err := DecodeUnverified(token)
	if err != nil {
		return &AuthenticationError{
			Message:    fmt.Sprintf("failed to decode token: %v", err),
			Suggestion: DefaultSuggestion,
			Err:        err,
		}
	}

	expiresAt, ok := claims.ExpiresAt()
	if !ok {
		return NewAuthenticationError("token has no expiration claim")
	}

	rec := &Record{
		Token:      token,
		ObtainedAt: m.now().UTC(),
		ExpiresAt:  expiresAt,
		User:       claims.StringClaim("user"),
		UID:        claims.IntClaim("uid"),
		MID:        claims.IntClaim("mid"),
		PGU:        claims.StringClaim("pgu"),
		Scope:      claims.StringListClaim("scope"),
	}

	return m.store.Save(rec)
}

// LoginInteractive runs the interactive acquisition flow unconditionally,
// bypassing the cache-first short-circuit, and returns the resulting token
// metadata. Used by the explicit login command.
func (m *Manager) LoginInteractive(ctx context.Context, verbose bool) (*TokenInfo, error) {
	if m.acquirer == nil {
		return nil, NewAuthenticationError("interactive login is not available")
	}

	token, err := m.acquirer.AcquireToken(ctx, verbose)
	if err != nil {
		return nil, err
	}

	if err := m.IngestToken(token); err != nil {
		return nil, err
	}
	return m.GetTokenInfo(), nil
}

// Logout removes the cached credential. Logging out twice is a no-op.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// isExpired reports whether the record's expiry has passed. A record
// without a usable expiry is expired, never valid indefinitely.
func (m *Manager) isExpired(rec *Record) bool {
	if rec.ExpiresAt.IsZero() {
		return true
	}
	return !m.now().UTC().Before(rec.ExpiresAt)
}
