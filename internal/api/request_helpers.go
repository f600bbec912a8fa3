package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/api/shared"
	"github.com/phrazzld/taskflow-api/internal/domain"
)

// getPrincipal extracts the authenticated user placed in the context by the
// authentication middleware. A missing principal means the route was wired
// without the middleware and is answered with 401.
func getPrincipal(w http.ResponseWriter, r *http.Request, log *slog.Logger) (shared.Principal, bool) {
	principal, ok := shared.GetPrincipal(r.Context())
	if !ok {
		log.Warn("principal not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authentication required")
		return shared.Principal{}, false
	}
	return principal, true
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, paramName+" is required")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "Invalid "+paramName+" format")
	}
	return id, nil
}

// handlePrincipalAndPathUUID extracts both the principal and a UUID path
// parameter, writing an error response if either is missing or invalid.
func handlePrincipalAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (shared.Principal, uuid.UUID, bool) {
	principal, ok := getPrincipal(w, r, log)
	if !ok {
		return shared.Principal{}, uuid.Nil, false
	}

	id, err := getPathUUID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err)
		return shared.Principal{}, uuid.Nil, false
	}

	return principal, id, true
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, writing a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := shared.DecodeJSON(w, r, dst); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			shared.CodeValidation, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(dst); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			shared.CodeValidation, shared.ValidationMessage(err), err)
		return false
	}
	return true
}
