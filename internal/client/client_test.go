package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scouts/internal/auth"
	"scouts/internal/config"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) GetToken(ctx context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(serverURL string) *Client {
	cfg := &config.Config{
		APIBaseURL:  serverURL,
		AuthBaseURL: serverURL,
		WebBaseURL:  "https://advancements.example.org",
	}
	return New(cfg, &staticTokens{token: "eyJ.test.token"})
}

func TestClient_FetchProfile(t *testing.T) {
	var gotPath, gotAuth, gotESB, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotESB = r.Header.Get("x-esb-url")
		gotRequestID = r.Header.Get("x-request-id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"profile": {"memberId": 100000001, "firstName": "Jane", "lastName": "Smith", "fullName": "Jane Smith"},
			"emails": [{"email": "jane@example.com"}],
			"organizationPositions": [{"organizationGuid": "org-1", "organizationName": "Pack 1234", "positions": [{"name": "Den Leader"}]}]
		}`))
	}))
	defer server.Close()

	profile, err := newTestClient(server.URL).FetchProfile(context.Background(), 10000001)
	require.NoError(t, err)

	assert.Equal(t, "/persons/v2/10000001/personprofile", gotPath)
	assert.Equal(t, "Bearer eyJ.test.token", gotAuth)
	assert.NotEmpty(t, gotRequestID)

	wantESB := base64.StdEncoding.EncodeToString([]byte("https://advancements.example.org/roster"))
	assert.Equal(t, wantESB, gotESB)

	assert.Equal(t, "Jane Smith", profile.Profile.FullName)
	require.Len(t, profile.OrganizationPositions, 1)
	assert.Equal(t, "Den Leader", profile.OrganizationPositions[0].Positions[0].Label())
}

func TestClient_FetchDependentsAndRoles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/persons/10000001/myScout":
			_, _ = w.Write([]byte(`[{"personGuid": "pg-sam", "firstName": "Sam", "position": "Scout"}]`))
		case "/persons/pg-me/roleTypes":
			assert.Equal(t, "true", r.URL.Query().Get("includeParentRoles"))
			assert.Equal(t, "true", r.URL.Query().Get("includeScoutbookRoles"))
			_, _ = w.Write([]byte(`[{"organizationGuid": "org-1", "programType": "Cub Scouting"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	dependents, err := c.FetchDependents(context.Background(), 10000001)
	require.NoError(t, err)
	require.Len(t, dependents, 1)
	assert.Equal(t, "pg-sam", dependents[0].PersonGUID)

	roles, err := c.FetchRoles(context.Background(), "pg-me")
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Cub Scouting", roles[0].ProgramType)
}

func TestClient_FetchAdults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organizations/v2/units/org-1/adults", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"organizationName": "Pack 1234",
			"users": [{"userId": 20000001, "firstName": "Pat", "lastName": "Jones", "personFullName": "Pat Jones"}]
		}`))
	}))
	defer server.Close()

	roster, err := newTestClient(server.URL).FetchAdults(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, "Pack 1234", roster.OrganizationName)
	require.Len(t, roster.Users, 1)
	assert.Equal(t, "Pat Jones", roster.Users[0].PersonFullName)
}

func TestClient_FetchTraining(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/persons/v2/pg-me/trainings/ypt", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"personFullName": "Jane Smith",
			"yptStatus": "ACTIVE",
			"yptCompletionDate": "2025-03-01",
			"yptExpireDate": "2027-03-01"
		}`))
	}))
	defer server.Close()

	training, err := newTestClient(server.URL).FetchTraining(context.Background(), "pg-me")
	require.NoError(t, err)

	assert.Equal(t, "ACTIVE", training.YPTStatus)
	assert.Equal(t, "2027-03-01", training.YPTExpireDate)
}

func TestRoleRecord_LabelAndPermissions(t *testing.T) {
	named := RoleRecord{Role: "Den Leader", RoleTypes: []RoleType{{RoleType: "Internet Advancement"}}}
	assert.Equal(t, "Den Leader", named.Label())
	assert.Equal(t, []string{"Internet Advancement"}, named.Permissions())

	// Parent-role entries come back with an empty role field.
	parent := RoleRecord{RoleTypes: []RoleType{{RoleType: "Parent Portal"}}}
	assert.Equal(t, "Parent Portal", parent.Label())
}

func TestClient_NotFoundMapsToAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "no such organization"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchOrgProfile(context.Background(), "nope")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "no such organization", apiErr.Message)
	assert.NotEmpty(t, apiErr.Suggestion)
}

func TestClient_UnauthorizedMapsToAuthenticationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "token validation failed"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchProfile(context.Background(), 1)

	var authErr *auth.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "token validation failed")
	assert.NotEmpty(t, authErr.Suggestion)
}

func TestClient_ForbiddenCarriesRoleSuggestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRoster(context.Background(), "org-1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsAuthorization())
	assert.Contains(t, apiErr.Suggestion, "role")
}

func TestClient_TokenFailurePropagates(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://localhost:1", WebBaseURL: "http://localhost:1"}
	c := New(cfg, &staticTokens{err: auth.NewAuthenticationError("no authentication token found")})

	_, err := c.FetchProfile(context.Background(), 1)

	var authErr *auth.AuthenticationError
	require.ErrorAs(t, err, &authErr)
}
