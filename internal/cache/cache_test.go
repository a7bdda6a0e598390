package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "context.json"))
}

func TestCache_ExistsFalseWithoutSnapshot(t *testing.T) {
	c := newTestCache(t)
	assert.False(t, c.Exists())
	assert.Nil(t, c.User())
	assert.Nil(t, c.Organizations())
	assert.Nil(t, c.Scouts())
}

func TestCache_ExistsRejectsOtherSchemaVersions(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, os.WriteFile(c.Path(), []byte(`{"version": 99}`), 0600))
	assert.False(t, c.Exists())
}

func TestCache_LoadFailsSoftOnCorruptFile(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, os.WriteFile(c.Path(), []byte("{broken"), 0600))
	assert.False(t, c.Exists())
	assert.True(t, c.IsStale())
}

func TestCache_Staleness(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.save(&Snapshot{}))

	// One minute old: fresh.
	saved := c.data.LastRefreshed
	c.now = func() time.Time { return saved.Add(time.Minute) }
	assert.False(t, c.IsStale())

	// Past the threshold: stale.
	c.now = func() time.Time { return saved.Add(MaxAge + time.Hour) }
	assert.True(t, c.IsStale())
}

func TestCache_IsStaleWithoutRefreshStamp(t *testing.T) {
	c := newTestCache(t)
	assert.True(t, c.IsStale())
}

func TestCache_ResolveScout(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.save(&Snapshot{
		Scouts: []Scout{
			{FirstName: "Sam", LastName: "Smith", FullName: "Sam Smith"},
			{FirstName: "Alex", LastName: "Smith", FullName: "Alex Smith"},
			{FirstName: "Robin", LastName: "Jones", FullName: "Robin Jones"},
		},
	}))

	matches := c.ResolveScout("smith")
	require.Len(t, matches, 2)

	matches = c.ResolveScout("ROBIN")
	require.Len(t, matches, 1)
	assert.Equal(t, "Robin Jones", matches[0].FullName)

	// Substring of a first name.
	matches = c.ResolveScout("le")
	require.Len(t, matches, 1)
	assert.Equal(t, "Alex Smith", matches[0].FullName)

	assert.Empty(t, c.ResolveScout("nobody"))
}

func TestCache_ShowNotPopulated(t *testing.T) {
	c := newTestCache(t)

	summary := c.Show()
	assert.Equal(t, "not_populated", summary.Status)
	assert.NotEmpty(t, summary.Message)
	assert.Equal(t, c.Path(), summary.Path)
}

func TestCache_ShowPopulated(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.save(&Snapshot{
		User:          User{FullName: "Jane Smith"},
		Organizations: []Organization{{OrgGUID: "org-1"}},
		Scouts:        []Scout{{PersonGUID: "pg-1"}, {PersonGUID: "pg-2"}},
	}))

	summary := c.Show()
	assert.Equal(t, "current", summary.Status)
	assert.Equal(t, 1, summary.OrganizationCount)
	assert.Equal(t, 2, summary.ScoutCount)
	assert.Equal(t, "Jane Smith", summary.User.FullName)
}

func TestCache_SaveStampsVersionAndTime(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.save(&Snapshot{}))

	// Re-read from disk through a fresh cache.
	reloaded := New(c.Path())
	require.True(t, reloaded.Exists())
	snap := reloaded.load()
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.WithinDuration(t, time.Now().UTC(), snap.LastRefreshed, time.Minute)
}
