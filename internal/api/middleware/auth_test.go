package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/api/shared"
	"github.com/phrazzld/taskflow-api/internal/mocks"
	"github.com/phrazzld/taskflow-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name            string
		authHeader      string
		validateErr     error
		claims          *auth.Claims
		expectedStatus  int
		expectedCode    string
		expectedMessage string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			claims:         &auth.Claims{UserID: userID, Username: "alice"},
			expectedStatus: http.StatusOK,
		},
		{
			name:            "missing auth header",
			expectedStatus:  http.StatusUnauthorized,
			expectedCode:    shared.CodeUnauthorized,
			expectedMessage: "Authorization header required",
		},
		{
			name:            "invalid auth format",
			authHeader:      "Token abc",
			expectedStatus:  http.StatusUnauthorized,
			expectedCode:    shared.CodeUnauthorized,
			expectedMessage: "Invalid authorization format",
		},
		{
			name:            "empty bearer",
			authHeader:      "Bearer ",
			expectedStatus:  http.StatusUnauthorized,
			expectedCode:    shared.CodeUnauthorized,
			expectedMessage: "Invalid authorization format",
		},
		{
			name:            "expired token",
			authHeader:      "Bearer expired-token",
			validateErr:     auth.ErrExpiredToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedCode:    shared.CodeUnauthorized,
			expectedMessage: "Token expired",
		},
		{
			name:            "invalid token",
			authHeader:      "Bearer invalid-token",
			validateErr:     auth.ErrInvalidToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedCode:    shared.CodeUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:            "unexpected validation failure",
			authHeader:      "Bearer some-token",
			validateErr:     errors.New("key store unavailable"),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    shared.CodeInternal,
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(_ context.Context, _ string) (*auth.Claims, error) {
					return tc.claims, tc.validateErr
				},
			}
			mw := NewAuthMiddleware(jwtService, nil)

			var gotPrincipal shared.Principal
			handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPrincipal, _ = shared.GetPrincipal(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, gotPrincipal.UserID)
				assert.Equal(t, "alice", gotPrincipal.Username)
				return
			}

			var env shared.Envelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.expectedCode, env.Error.Code)
			assert.Equal(t, tc.expectedMessage, env.Error.Message)
		})
	}
}

func TestAuthMiddleware_PassesTokenToValidator(t *testing.T) {
	var seen string
	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			seen = token
			return &auth.Claims{UserID: uuid.New(), Username: "bob"}, nil
		},
	}

	handler := NewAuthMiddleware(jwtService, nil).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc.def.ghi", seen)
}
