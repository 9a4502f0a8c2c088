package handlers

import (
	"net/http"

	"learnquest/internal/service"
)

// QuizHandler runs quiz sessions for kids. Sessions are ephemeral:
// leaving one before submit discards all answers.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type answerRequest struct {
	QuestionIndex int `json:"questionIndex"`
	OptionIndex   int `json:"optionIndex"`
}

// Start opens a session for the quiz in the path
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	quizID := r.PathValue("id")

	session, err := h.quizService.Start(r.Context(), user.ID, user.Name, quizID)
	if err != nil {
		respondServiceError(w, err, "Failed to start quiz session")
		return
	}

	respondJSON(w, http.StatusCreated, sessionView(session))
}

// Show returns the current session state
func (h *QuizHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessionID := r.PathValue("id")

	session, err := h.quizService.Get(sessionID, user.ID)
	if err != nil {
		respondServiceError(w, err, "Failed to load quiz session")
		return
	}

	respondJSON(w, http.StatusOK, sessionView(session))
}

// Answer records a choice for one question, replacing any prior choice
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessionID := r.PathValue("id")

	var req answerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.quizService.ChooseOption(sessionID, user.ID, req.QuestionIndex, req.OptionIndex)
	if err != nil {
		respondServiceError(w, err, "Failed to record answer")
		return
	}

	respondJSON(w, http.StatusOK, sessionView(session))
}

// Submit scores the session and persists the result
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessionID := r.PathValue("id")

	session, err := h.quizService.Submit(r.Context(), sessionID, user.ID)
	if err != nil {
		respondServiceError(w, err, "Failed to submit quiz")
		return
	}

	respondJSON(w, http.StatusOK, sessionView(session))
}

// Abandon discards the session without recording anything
func (h *QuizHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sessionID := r.PathValue("id")

	if err := h.quizService.Abandon(sessionID, user.ID); err != nil {
		respondServiceError(w, err, "Failed to abandon quiz session")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
