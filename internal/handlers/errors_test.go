package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"learnquest/internal/service"
	"learnquest/internal/validation"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Error != "Teapot" {
		t.Fatalf("expected error 'Teapot', got %q", body.Error)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondWithError(recorder, 500, "Internal server error", "", err)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Internal server error") {
		t.Fatalf("expected log to include user message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to include error, got %q", logOutput)
	}
}

func TestRespondServiceErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", &validation.ValidationError{Field: "title", Message: "required"}, 400},
		{"lesson not found", service.ErrLessonNotFound, 404},
		{"quiz not found", service.ErrQuizNotFound, 404},
		{"session not found", service.ErrSessionNotFound, 404},
		{"no questions", service.ErrNoQuestions, 409},
		{"session finished", service.ErrSessionFinished, 409},
		{"email taken", service.ErrEmailTaken, 409},
		{"not session owner", service.ErrNotSessionOwner, 403},
		{"invalid credentials", service.ErrInvalidCredentials, 401},
		{"unknown error", errors.New("disk on fire"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondServiceError(recorder, tt.err, "test")

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	respondServiceError(recorder, errors.New("dsn: secret"), "storage read")

	var body errorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body.Error, "dsn") {
		t.Errorf("internal detail leaked to client: %q", body.Error)
	}
}
