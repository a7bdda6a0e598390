package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scouts/pkg/logging"
)

// MaxAge is the staleness threshold: a snapshot older than this should be
// refreshed before being relied on.
const MaxAge = 7 * 24 * time.Hour

// Cache serves and persists the context snapshot. Reads are purely local;
// only Refresh touches the network (through the injected fetcher).
type Cache struct {
	path string
	data *Snapshot

	// now is swappable in tests.
	now func() time.Time
}

// New creates a cache backed by the given snapshot file path.
func New(path string) *Cache {
	return &Cache{path: path, now: time.Now}
}

// Path returns the backing file path.
func (c *Cache) Path() string {
	return c.path
}

// load reads and memoizes the snapshot. It fails soft: missing or corrupt
// files yield nil.
func (c *Cache) load() *Snapshot {
	if c.data != nil {
		return c.data
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		logging.Warn("ContextCache", "Ignoring corrupt context file %s: %v", c.path, err)
		return nil
	}

	c.data = &snap
	return c.data
}

// save persists the snapshot as a single complete write, stamping the
// schema version and refresh time.
func (c *Cache) save(snap *Snapshot) error {
	snap.Version = SnapshotVersion
	snap.LastRefreshed = c.now().UTC()

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create context directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal context snapshot: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write context file: %w", err)
	}

	c.data = snap
	return nil
}

// Exists reports whether a snapshot with the current schema version has
// been persisted.
func (c *Cache) Exists() bool {
	snap := c.load()
	return snap != nil && snap.Version == SnapshotVersion
}

// IsStale reports whether the snapshot is older than MaxAge. A missing
// snapshot or one without a refresh stamp is stale.
func (c *Cache) IsStale() bool {
	snap := c.load()
	if snap == nil || snap.LastRefreshed.IsZero() {
		return true
	}
	return c.now().UTC().Sub(snap.LastRefreshed) > MaxAge
}

// User returns the cached identity, or nil if no snapshot exists.
func (c *Cache) User() *User {
	snap := c.load()
	if snap == nil {
		return nil
	}
	return &snap.User
}

// Organizations returns the cached organization list. Never nil for a
// populated snapshot; nil when none exists.
func (c *Cache) Organizations() []Organization {
	snap := c.load()
	if snap == nil {
		return nil
	}
	return snap.Organizations
}

// Scouts returns the cached scout list.
func (c *Cache) Scouts() []Scout {
	snap := c.load()
	if snap == nil {
		return nil
	}
	return snap.Scouts
}

// ResolveScout finds cached scouts whose full, first or last name contains
// the query, case-insensitively. Purely local, no network.
func (c *Cache) ResolveScout(query string) []Scout {
	return MatchScouts(c.Scouts(), query)
}

// MatchScouts filters scouts whose full, first or last name contains the
// query, case-insensitively.
func MatchScouts(scouts []Scout, query string) []Scout {
	q := strings.ToLower(query)
	var matches []Scout
	for _, scout := range scouts {
		if strings.Contains(strings.ToLower(scout.FullName), q) ||
			strings.Contains(strings.ToLower(scout.FirstName), q) ||
			strings.Contains(strings.ToLower(scout.LastName), q) {
			matches = append(matches, scout)
		}
	}
	return matches
}

// Summary is the display form of the snapshot returned by Show.
type Summary struct {
	Status            string         `json:"status"`
	Message           string         `json:"message,omitempty"`
	LastRefreshed     time.Time      `json:"lastRefreshed,omitempty"`
	Path              string         `json:"path"`
	User              User           `json:"user,omitempty"`
	OrganizationCount int            `json:"organizationCount"`
	Organizations     []Organization `json:"organizations,omitempty"`
	ScoutCount        int            `json:"scoutCount"`
	Scouts            []Scout        `json:"scouts,omitempty"`
}

// Show returns the snapshot summary, or a not-populated marker when no
// snapshot has ever been persisted.
func (c *Cache) Show() *Summary {
	snap := c.load()
	if snap == nil {
		return &Summary{
			Status:  "not_populated",
			Message: "No context file found. Run 'scouts context refresh' to populate.",
			Path:    c.path,
		}
	}

	status := "current"
	if c.IsStale() {
		status = "stale"
	}

	return &Summary{
		Status:            status,
		LastRefreshed:     snap.LastRefreshed,
		Path:              c.path,
		User:              snap.User,
		OrganizationCount: len(snap.Organizations),
		Organizations:     snap.Organizations,
		ScoutCount:        len(snap.Scouts),
		Scouts:            snap.Scouts,
	}
}
