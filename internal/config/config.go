package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// API endpoints for the upstream Scouting services.
const (
	DefaultAPIBaseURL  = "https://api.scouting.org"
	DefaultAuthBaseURL = "https://auth.scouting.org"
	DefaultWebBaseURL  = "https://advancements.scouting.org"
)

// HTTP client configuration.
const (
	RequestTimeout = 30 * time.Second
	MaxRetries     = 3
)

// Browser acquisition configuration. The headless attempt is a quick
// best-effort refresh; the headed window is long enough for a human to
// complete the third-party sign-in.
const (
	HeadlessTimeout = 15 * time.Second
	HeadedTimeout   = 5 * time.Minute
	PollInterval    = 2 * time.Second
)

const (
	appDirName      = ".scouts-cli"
	tokenFileName   = "token.json"
	contextFileName = "context.json"
	profileDirName  = "browser-profile"
	configFileName  = "config.yaml"
)

// Config holds the resolved runtime configuration: storage paths, upstream
// endpoints and the environment toggles consumed by the core.
type Config struct {
	// AppDir is the user-private state directory (~/.scouts-cli).
	AppDir string

	APIBaseURL  string
	AuthBaseURL string
	WebBaseURL  string

	// NoBrowser disables interactive token acquisition entirely. When set,
	// a missing or expired credential fails immediately instead of
	// launching a browser. Driven by SCOUTS_NO_BROWSER.
	NoBrowser bool

	// ForceConfirm forces non-terminal confirmation prompts instead of
	// interactive ones. Driven by SCOUTS_FORCE_CONFIRM.
	ForceConfirm bool
}

// TokenFile returns the path of the cached credential record.
func (c *Config) TokenFile() string {
	return filepath.Join(c.AppDir, tokenFileName)
}

// ContextFile returns the path of the cached context snapshot.
func (c *Config) ContextFile() string {
	return filepath.Join(c.AppDir, contextFileName)
}

// BrowserProfileDir returns the persistent browser profile directory. The
// directory itself is opaque to us; it exists so third-party session
// cookies survive between runs.
func (c *Config) BrowserProfileDir() string {
	return filepath.Join(c.AppDir, profileDirName)
}

// osUserHomeDir is swappable in tests.
var osUserHomeDir = os.UserHomeDir

// Load resolves the configuration from defaults, the optional
// ~/.scouts-cli/config.yaml override, and environment variables (which win
// over the file).
func Load() (*Config, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppDir:      filepath.Join(homeDir, appDirName),
		APIBaseURL:  DefaultAPIBaseURL,
		AuthBaseURL: DefaultAuthBaseURL,
		WebBaseURL:  DefaultWebBaseURL,
	}

	if err := applyFileOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.NoBrowser = envFlag("SCOUTS_NO_BROWSER")
	cfg.ForceConfirm = envFlag("SCOUTS_FORCE_CONFIRM")

	return cfg, nil
}

// envFlag reports whether the named environment variable is set to a
// truthy value (1/true/yes, case-insensitive).
func envFlag(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
