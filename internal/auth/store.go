package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scouts/pkg/logging"
)

// Record is the cached credential as persisted to disk.
//
// SECURITY: this record holds a live bearer token. Files are created with
// 0600 permissions and the containing directory with 0700. The token value
// itself is never logged.
type Record struct {
	// Token is the raw compact token (three dot-separated segments).
	Token string `json:"token"`

	// ObtainedAt is when the token was ingested, UTC.
	ObtainedAt time.Time `json:"obtained_at"`

	// ExpiresAt is the expiry instant from the token's exp claim, UTC.
	ExpiresAt time.Time `json:"expires_at"`

	// User is the login name from the token claims.
	User string `json:"user"`

	// UID is the numeric user identifier.
	UID int64 `json:"uid,omitempty"`

	// MID is the numeric member identifier.
	MID int64 `json:"mid,omitempty"`

	// PGU is the person GUID used as a secondary key for role and
	// training lookups.
	PGU string `json:"pgu,omitempty"`

	// Scope lists the granted scopes.
	Scope []string `json:"scope,omitempty"`
}

// Store persists the credential record to a single JSON file. It is pure
// storage: no network, no expiry logic. The Manager is its sole writer.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path. The parent
// directory is created on first save, not here.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the cached record. It fails soft: a missing or corrupt file
// yields nil, never an error. A corrupt cache is equivalent to no cache.
func (s *Store) Load() *Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logging.Warn("CredentialStore", "Ignoring corrupt credential file %s: %v", s.path, err)
		return nil
	}

	return &rec
}

// Save writes the record as a single complete operation with permissions
// restricted to the owning user.
func (s *Store) Save(rec *Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential record: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}

	logging.Info("CredentialStore", "Credential stored, expires %s", rec.ExpiresAt.Format(time.RFC3339))
	return nil
}

// Clear removes the cached record. Clearing a non-existent record is not
// an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
