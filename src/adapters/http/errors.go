package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"storeadmin/src/domain"
)

type notFoundResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

type conflictResponse struct {
	StatusCode int `json:"statusCode"`
}

type badRequestResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    []string `json:"message"`
	Error      string   `json:"error"`
}

type internalErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// writeError traduz os erros de domínio para o corpo e status HTTP.
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(logger, w, http.StatusBadRequest, badRequestResponse{
			StatusCode: http.StatusBadRequest,
			Message:    validationErr.Issues,
			Error:      "Bad Request",
		})

	case errors.As(err, &notFoundErr):
		writeJSON(logger, w, http.StatusNotFound, notFoundResponse{
			StatusCode: http.StatusNotFound,
			Message:    notFoundErr.Error(),
			Error:      "Not Found",
		})

	case errors.Is(err, domain.ErrNotFound):
		writeJSON(logger, w, http.StatusNotFound, notFoundResponse{
			StatusCode: http.StatusNotFound,
			Message:    domain.ErrNotFound.Error(),
			Error:      "Not Found",
		})

	case errors.Is(err, domain.ErrConflict):
		writeJSON(logger, w, http.StatusConflict, conflictResponse{StatusCode: http.StatusConflict})

	default:
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(logger, w, http.StatusInternalServerError, internalErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
		})
	}
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to write JSON response", "error", err)
	}
}
