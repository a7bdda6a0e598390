package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"scouts/pkg/logging"
)

// navigationTimeoutMs bounds the initial page load, in Playwright's
// millisecond convention.
const navigationTimeoutMs = 30000

// PlaywrightLauncher opens real browser sessions through Playwright using
// the system Chrome channel and a persistent profile directory, so
// third-party session cookies survive between runs.
type PlaywrightLauncher struct {
	profileDir string
	originURL  string
}

// NewPlaywrightLauncher creates a launcher bound to the given persistent
// profile directory and sign-in origin.
func NewPlaywrightLauncher(profileDir, originURL string) *PlaywrightLauncher {
	return &PlaywrightLauncher{profileDir: profileDir, originURL: originURL}
}

// Launch starts a persistent-context session and navigates it to the
// sign-in origin. A Playwright driver that cannot start is reported as
// ErrUnavailable so the caller can suggest the manual path.
func (l *PlaywrightLauncher) Launch(ctx context.Context, headless bool) (Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	browserCtx, err := pw.Chromium.LaunchPersistentContext(l.profileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		Channel:  playwright.String("chrome"),
		Headless: playwright.Bool(headless),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		if stopErr := pw.Stop(); stopErr != nil {
			logging.Warn("BrowserAuth", "Playwright stop failed: %v", stopErr)
		}
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	sess := &playwrightSession{pw: pw, browserCtx: browserCtx}

	page, err := sess.page()
	if err == nil {
		_, err = page.Goto(l.originURL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   playwright.Float(navigationTimeoutMs),
		})
	}
	if err != nil {
		if closeErr := sess.Close(); closeErr != nil {
			logging.Warn("BrowserAuth", "Session close failed: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to open %s: %w", l.originURL, err)
	}

	logging.Debug("BrowserAuth", "Navigated to %s (headless=%v)", l.originURL, headless)
	return sess, nil
}

type playwrightSession struct {
	pw         *playwright.Playwright
	browserCtx playwright.BrowserContext
}

// page returns the context's first page, creating one if the persistent
// context came up empty.
func (s *playwrightSession) page() (playwright.Page, error) {
	if pages := s.browserCtx.Pages(); len(pages) > 0 {
		return pages[0], nil
	}
	return s.browserCtx.NewPage()
}

// StorageValue reads the given localStorage key from the live page.
func (s *playwrightSession) StorageValue(key string) (string, error) {
	page, err := s.page()
	if err != nil {
		return "", err
	}

	value, err := page.Evaluate(fmt.Sprintf("() => localStorage.getItem(%q)", key))
	if err != nil {
		return "", err
	}
	if str, ok := value.(string); ok {
		return str, nil
	}
	return "", nil
}

// Close tears down the browser context and stops the Playwright driver.
func (s *playwrightSession) Close() error {
	err := s.browserCtx.Close()
	if stopErr := s.pw.Stop(); err == nil {
		err = stopErr
	}
	return err
}
