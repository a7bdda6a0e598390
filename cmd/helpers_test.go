package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"scouts/internal/auth"
)

// seedApp points the app at a temp home with a valid cached credential
// and browser acquisition disabled, optionally overriding the API base
// URL through config.yaml. Returns the app directory.
func seedApp(t *testing.T, apiURL string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SCOUTS_NO_BROWSER", "1")

	appDir := filepath.Join(home, ".scouts-cli")
	require.NoError(t, os.MkdirAll(appDir, 0700))
	if apiURL != "" {
		require.NoError(t, os.WriteFile(
			filepath.Join(appDir, "config.yaml"),
			[]byte("apiBaseUrl: "+apiURL+"\n"), 0600))
	}

	store := auth.NewStore(filepath.Join(appDir, "token.json"))
	require.NoError(t, store.Save(&auth.Record{
		Token:      "eyJhbGciOiJIUzI1NiJ9.payload.signature",
		ObtainedAt: time.Now().UTC(),
		ExpiresAt:  time.Now().Add(time.Hour).UTC(),
		User:       "jane.smith",
		UID:        10000001,
		PGU:        "pg-me",
	}))
	return appDir
}

func testCommand() *cobra.Command {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}
