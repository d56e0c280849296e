package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/daily-diet-api/internal/api/validators"
	"github.com/dom/daily-diet-api/internal/domain"
	"github.com/dom/daily-diet-api/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageResponse struct {
	Msg string `json:"msg"`
}

type ValidationErrorResponse struct {
	Msg    string             `json:"msg"`
	Issues []validators.Issue `json:"issues"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("encoding response", zap.Error(err))
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageResponse{Msg: msg})
}

func writeValidationError(w http.ResponseWriter, issues []validators.Issue) {
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Msg:    "Validation error",
		Issues: issues,
	})
}

// writeServiceError maps service errors onto responses. notFound is the
// message sent for a missing user or meal.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrMealNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, domain.ErrAuthorNotFound):
		writeValidationError(w, []validators.Issue{{Field: "author", Message: "must reference an existing user"}})
	default:
		logger.L().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// It writes the 400 response itself and reports whether dst is usable.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeValidationError(w, []validators.Issue{{Message: "Invalid request body"}})
		return false
	}
	if err := validators.New().Struct(dst); err != nil {
		writeValidationError(w, validators.Issues(err))
		return false
	}
	return true
}

// parseID reads the {id} path parameter. It writes the 400 response itself.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, []validators.Issue{{Field: "id", Message: "must be a valid uuid"}})
		return uuid.Nil, false
	}
	return id, true
}
