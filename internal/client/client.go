package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"scouts/internal/auth"
	"scouts/internal/config"
	"scouts/pkg/logging"
)

// TokenProvider supplies the bearer token for outbound requests. It is
// implemented by auth.Manager.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// Client calls the upstream API with bearer auth and retries.
type Client struct {
	apiBaseURL  string
	authBaseURL string
	webBaseURL  string
	tokens      TokenProvider
	http        *retryablehttp.Client
}

// New creates an API client. The retry policy matches the upstream's
// documented limits: up to MaxRetries attempts with backoff on 429 and
// 5xx responses, 30 second request timeout.
func New(cfg *config.Config, tokens TokenProvider) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = config.MaxRetries
	rc.HTTPClient.Timeout = config.RequestTimeout
	rc.Logger = nil

	return &Client{
		apiBaseURL:  cfg.APIBaseURL,
		authBaseURL: cfg.AuthBaseURL,
		webBaseURL:  cfg.WebBaseURL,
		tokens:      tokens,
		http:        rc,
	}
}

// FetchProfile returns the caller's full person profile.
func (c *Client) FetchProfile(ctx context.Context, userID int64) (*ProfileRecord, error) {
	var out ProfileRecord
	path := fmt.Sprintf("/persons/v2/%d/personprofile", userID)
	if err := c.get(ctx, c.apiBaseURL, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchDependents returns the dependents associated with a guardian. One
// record per (person, position) pair; de-duplication is the caller's job.
func (c *Client) FetchDependents(ctx context.Context, userID int64) ([]DependentRecord, error) {
	var out []DependentRecord
	path := fmt.Sprintf("/persons/%d/myScout", userID)
	if err := c.get(ctx, c.apiBaseURL, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchRoles returns the caller's role and permission entries.
func (c *Client) FetchRoles(ctx context.Context, personGUID string) ([]RoleRecord, error) {
	var out []RoleRecord
	path := fmt.Sprintf("/persons/%s/roleTypes", url.PathEscape(personGUID))
	params := url.Values{
		"includeParentRoles":    {"true"},
		"includeScoutbookRoles": {"true"},
	}
	if err := c.get(ctx, c.apiBaseURL, path, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchRoster returns the youth roster of a unit.
func (c *Client) FetchRoster(ctx context.Context, orgGUID string) (*RosterRecord, error) {
	var out RosterRecord
	path := fmt.Sprintf("/organizations/v2/units/%s/youths", url.PathEscape(orgGUID))
	if err := c.get(ctx, c.apiBaseURL, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchAdults returns the adult leader roster of a unit. Same response
// shape as the youth roster.
func (c *Client) FetchAdults(ctx context.Context, orgGUID string) (*RosterRecord, error) {
	var out RosterRecord
	path := fmt.Sprintf("/organizations/v2/units/%s/adults", url.PathEscape(orgGUID))
	if err := c.get(ctx, c.apiBaseURL, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTraining returns the caller's Youth Protection Training status.
func (c *Client) FetchTraining(ctx context.Context, personGUID string) (*TrainingRecord, error) {
	var out TrainingRecord
	path := fmt.Sprintf("/persons/v2/%s/trainings/ypt", url.PathEscape(personGUID))
	if err := c.get(ctx, c.apiBaseURL, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchOrgProfile returns an organization's profile details.
func (c *Client) FetchOrgProfile(ctx context.Context, orgGUID string) (*OrgProfileRecord, error) {
	var out OrgProfileRecord
	path := fmt.Sprintf("/organizations/v2/%s/profile", url.PathEscape(orgGUID))
	if err := c.get(ctx, c.apiBaseURL, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, base, path string, params url.Values, out interface{}) error {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return err
	}

	fullURL := base + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	// The upstream expects the originating web URL, base64-encoded.
	req.Header.Set("x-esb-url", base64.StdEncoding.EncodeToString([]byte(c.webBaseURL+"/roster")))
	req.Header.Set("x-request-id", uuid.NewString())

	logging.Debug("APIClient", "GET %s", fullURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	logging.Debug("APIClient", "%d %s", resp.StatusCode, path)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp.StatusCode, body)
	}

	if len(body) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// responseError maps a non-2xx response to a typed error. 401 surfaces as
// an AuthenticationError so callers get the login remediation hint.
func (c *Client) responseError(statusCode int, body []byte) error {
	message := http.StatusText(statusCode)

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			message = envelope.Message
		} else if envelope.Error != "" {
			message = envelope.Error
		}
	}

	if statusCode == http.StatusUnauthorized {
		return auth.NewAuthenticationError(fmt.Sprintf("%d: %s", statusCode, message))
	}
	return newAPIError(statusCode, message)
}
