package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithSuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithSuccess(w, req, http.StatusCreated, map[string]string{"id": "1"}, "Created")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"1"},"message":"Created"}`, w.Body.String())
}

func TestRespondWithSuccess_OmitsEmptyFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithSuccess(w, req, http.StatusOK, nil, "Task deleted successfully")

	assert.JSONEq(t, `{"success":true,"message":"Task deleted successfully"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, CodeTaskNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"TASK_NOT_FOUND","message":"Task not found"}}`,
		w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, opts: []ResponseOption{WithElevatedLogLevel()}, wantLevel: "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf, _ := logger.SetupTestLogger(t)

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			req = req.WithContext(WithTraceID(req.Context(), "trace-1"))
			w := httptest.NewRecorder()

			cause := errors.New(`query failed: postgres://admin:hunter2@db:5432/app`)
			RespondWithErrorAndLog(w, req, tc.status, CodeInternal, "An unexpected error occurred", cause, tc.opts...)

			var env Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.Equal(t, "An unexpected error occurred", env.Error.Message)
			assert.NotContains(t, w.Body.String(), "hunter2")

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			last := entries[len(entries)-1]
			assert.Equal(t, tc.wantLevel, last["level"])
			assert.Equal(t, "trace-1", last["trace_id"])
			assert.False(t, strings.Contains(last["error"].(string), "hunter2"))
		})
	}
}
