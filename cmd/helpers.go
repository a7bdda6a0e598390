package cmd

import (
	"context"
	"fmt"

	"scouts/internal/auth"
	"scouts/internal/browser"
	"scouts/internal/cache"
	"scouts/internal/client"
	"scouts/internal/config"
)

// app bundles the wired-up components a command needs.
type app struct {
	cfg     *config.Config
	manager *auth.Manager
	client  *client.Client
	cache   *cache.Cache
}

// newApp loads configuration and wires the credential manager, API client
// and context cache together. The browser acquirer is omitted entirely
// when interactive acquisition is disabled.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var acquirer auth.Acquirer
	if !cfg.NoBrowser {
		launcher := browser.NewPlaywrightLauncher(cfg.BrowserProfileDir(), cfg.WebBaseURL)
		acquirer = browser.NewOrchestrator(launcher, browser.OrchestratorConfig{
			HeadlessTimeout: config.HeadlessTimeout,
			HeadedTimeout:   config.HeadedTimeout,
			PollInterval:    config.PollInterval,
		})
	}

	manager := auth.NewManager(auth.ManagerConfig{
		Store:              auth.NewStore(cfg.TokenFile()),
		Acquirer:           acquirer,
		DisableAcquisition: cfg.NoBrowser,
	})

	return &app{
		cfg:     cfg,
		manager: manager,
		client:  client.New(cfg, manager),
		cache:   cache.New(cfg.ContextFile()),
	}, nil
}

// tokenInfoOrErr returns the cached token metadata, ensuring a usable
// credential exists first (acquiring one if permitted).
func (a *app) tokenInfoOrErr(ctx context.Context) (*auth.TokenInfo, error) {
	if _, err := a.manager.GetToken(ctx); err != nil {
		return nil, err
	}

	info := a.manager.GetTokenInfo()
	if info == nil {
		return nil, auth.NewAuthenticationError("no authentication token found")
	}
	return info, nil
}

// personGUIDOrErr returns the person GUID from the credential claims.
// Older tokens predate the pgu claim; re-authenticating fixes that.
func (a *app) personGUIDOrErr(ctx context.Context) (string, error) {
	info, err := a.tokenInfoOrErr(ctx)
	if err != nil {
		return "", err
	}
	if info.PGU == "" {
		return "", auth.NewAuthenticationError("no person identifier in token claims")
	}
	return info.PGU, nil
}
