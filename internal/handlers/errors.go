package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"learnquest/internal/service"
	"learnquest/internal/validation"
)

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as JSON with the given status
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondWithError logs the underlying error and writes a JSON error body
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondServiceError maps service errors to HTTP statuses: validation
// problems are 400s for the user to correct, lookups are 404s, and
// anything else is the generic try-again storage failure.
func respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case validation.IsValidationError(err):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrLessonNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNoQuestions),
		errors.Is(err, service.ErrQuestionIndex),
		errors.Is(err, service.ErrOptionIndex),
		errors.Is(err, service.ErrSessionFinished):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotSessionOwner):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		respondWithError(w, http.StatusInternalServerError, "Something went wrong, please try again", logMsg, err)
	}
}

// decodeBody decodes a JSON request body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
