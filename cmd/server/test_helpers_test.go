package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/taskflow-api/internal/config"
	"github.com/phrazzld/taskflow-api/internal/testdb"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-that-is-at-least-32-chars-long"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            0,
			LogLevel:        "debug",
			LogFormat:       "json",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			URL:    testdb.SQLiteDSN,
		},
		Auth: config.AuthConfig{
			JWTSecret:            testJWTSecret,
			TokenLifetimeMinutes: 60,
			BcryptCost:           4,
		},
		Telemetry: config.TelemetryConfig{ServiceName: "taskflow-api-test"},
	}
}

// newTestServer wires the full application against a migrated in-memory
// SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := newApplication(testConfig(), logger, testdb.OpenSQLite(t))
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv
}

type apiResponse struct {
	Status  int
	Header  http.Header
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := apiResponse{Status: resp.StatusCode, Header: resp.Header}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func registerUser(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()

	res := call(t, srv, http.MethodPost, "/api/auth/register", "",
		`{"username":"`+username+`","password":"password123"}`)
	require.Equal(t, http.StatusCreated, res.Status)

	var auth struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}
