package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	original := osUserHomeDir
	osUserHomeDir = func() (string, error) { return tempDir, nil }
	t.Cleanup(func() { osUserHomeDir = original })
	return tempDir
}

func TestLoad_Defaults(t *testing.T) {
	home := withTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultAuthBaseURL, cfg.AuthBaseURL)
	assert.Equal(t, DefaultWebBaseURL, cfg.WebBaseURL)
	assert.Equal(t, filepath.Join(home, ".scouts-cli"), cfg.AppDir)
	assert.Equal(t, filepath.Join(home, ".scouts-cli", "token.json"), cfg.TokenFile())
	assert.Equal(t, filepath.Join(home, ".scouts-cli", "context.json"), cfg.ContextFile())
	assert.Equal(t, filepath.Join(home, ".scouts-cli", "browser-profile"), cfg.BrowserProfileDir())
	assert.False(t, cfg.NoBrowser)
	assert.False(t, cfg.ForceConfirm)
}

func TestLoad_FileOverrides(t *testing.T) {
	home := withTempHome(t)

	appDir := filepath.Join(home, ".scouts-cli")
	require.NoError(t, os.MkdirAll(appDir, 0700))
	yamlBody := "apiBaseUrl: https://api.example.org\nwebBaseUrl: https://web.example.org\n"
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte(yamlBody), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org", cfg.APIBaseURL)
	assert.Equal(t, "https://web.example.org", cfg.WebBaseURL)
	assert.Equal(t, DefaultAuthBaseURL, cfg.AuthBaseURL, "unset fields keep defaults")
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	home := withTempHome(t)

	appDir := filepath.Join(home, ".scouts-cli")
	require.NoError(t, os.MkdirAll(appDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte("{broken yaml"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvFlags(t *testing.T) {
	withTempHome(t)

	for _, truthy := range []string{"1", "true", "yes", "TRUE", "Yes"} {
		t.Setenv("SCOUTS_NO_BROWSER", truthy)
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.NoBrowser, "value %q should disable the browser", truthy)
	}

	for _, falsy := range []string{"", "0", "no", "nope"} {
		t.Setenv("SCOUTS_NO_BROWSER", falsy)
		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.NoBrowser, "value %q should not disable the browser", falsy)
	}

	t.Setenv("SCOUTS_FORCE_CONFIRM", "yes")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.ForceConfirm)
}
