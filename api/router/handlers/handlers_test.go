package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"parley/api"
	"parley/config"
	"parley/database"
	"parley/logger"
	"parley/models"

	"github.com/stretchr/testify/require"
)

// newTestServer boots the full router against a throwaway database. The
// mutate hook adjusts configuration before the router (and with it the
// upstream completion client) is built.
func newTestServer(t *testing.T, mutate func(conf *config.Configuration)) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, logger.InitGlobalLoggers(
		filepath.Join(dir, "app.log"), filepath.Join(dir, "access.log"), "error"))
	t.Cleanup(logger.CloseLogFiles)

	config.AppConfig = config.Configuration{}
	config.AppConfig.RateLimit.RequestsPerSecond = 1000
	config.AppConfig.RateLimit.Burst = 1000
	config.AppConfig.Auth.SessionTTLHours = 24
	if mutate != nil {
		mutate(&config.AppConfig)
	}

	require.NoError(t, database.InitDB(filepath.Join(dir, "test.db")))
	t.Cleanup(func() { database.CloseDB() })

	srv := httptest.NewServer(api.NewRouter())
	t.Cleanup(srv.Close)
	return srv
}

// loginTestUser creates a user directly in the database and issues a session
// token for it, bypassing the OAuth callbacks.
func loginTestUser(t *testing.T, providerUserID string) (models.User, string) {
	t.Helper()
	user, err := database.UpsertOAuthUser(models.OAuthUserInfo{
		Provider:       "github",
		ProviderUserID: providerUserID,
		Username:       "user-" + providerUserID,
	})
	require.NoError(t, err)
	session, err := database.CreateSession(user.ID, time.Hour)
	require.NoError(t, err)
	return user, session.Token
}

// doJSON issues a request with an optional JSON body and bearer token. The
// caller owns the response body.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals the response body into out and closes it.
func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// decodeError parses the response body through the strict error contract so
// every test also verifies the error wire shape.
func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed, err := models.ParseErrorResponse(raw)
	require.NoError(t, err, "error body %q must satisfy the error contract", raw)
	return parsed
}
