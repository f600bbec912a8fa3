package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

// withPrincipal stands in for the auth middleware.
func withPrincipal(p shared.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.WithPrincipal(r.Context(), p)))
		})
	}
}

func newTaskRouter(h *TaskHandler, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(withPrincipal(shared.Principal{UserID: userID, Username: "alice"}))
	r.Get("/api/tasks", h.ListTasks)
	r.Get("/api/tasks/stats", h.GetStats)
	r.Get("/api/tasks/{id}", h.GetTask)
	r.Post("/api/tasks", h.CreateTask)
	r.Put("/api/tasks/{id}", h.UpdateTask)
	r.Patch("/api/tasks/{id}/status", h.UpdateTaskStatus)
	r.Delete("/api/tasks/{id}", h.DeleteTask)
	return r
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   *shared.ErrorBody `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}
