package handlers

import (
	"net/http"

	"learnquest/internal/service"
)

// KidHandler serves the kid dashboard: content consumption and
// progress marking
type KidHandler struct {
	contentService  *service.ContentService
	progressService *service.ProgressService
}

// NewKidHandler creates a new kid handler
func NewKidHandler(contentService *service.ContentService, progressService *service.ProgressService) *KidHandler {
	return &KidHandler{
		contentService:  contentService,
		progressService: progressService,
	}
}

// Dashboard returns all content plus the kid's own progress in one payload
func (h *KidHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	search := r.URL.Query().Get("q")

	lessons, err := h.contentService.ListLessons(r.Context(), search)
	if err != nil {
		respondServiceError(w, err, "Failed to load lessons")
		return
	}
	videos, err := h.contentService.ListVideos(r.Context(), search)
	if err != nil {
		respondServiceError(w, err, "Failed to load videos")
		return
	}
	quizzes, err := h.contentService.ListQuizzes(r.Context(), search)
	if err != nil {
		respondServiceError(w, err, "Failed to load quizzes")
		return
	}
	progress, err := h.progressService.GetProgress(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err, "Failed to load progress")
		return
	}

	respondJSON(w, http.StatusOK, DashboardView{
		Lessons:  lessons,
		Videos:   videos,
		Quizzes:  kidQuizViews(quizzes),
		Progress: progress,
	})
}

// CompleteLesson marks a lesson as completed for the kid. Safe to call
// again for an already-completed lesson.
func (h *KidHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	lessonID := r.PathValue("id")

	if err := h.progressService.MarkLessonComplete(r.Context(), user.ID, user.Name, lessonID); err != nil {
		respondServiceError(w, err, "Failed to mark lesson complete")
		return
	}

	progress, err := h.progressService.GetProgress(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err, "Failed to load progress")
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// CompleteVideo marks a video as completed for the kid
func (h *KidHandler) CompleteVideo(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	videoID := r.PathValue("id")

	if err := h.progressService.MarkVideoComplete(r.Context(), user.ID, user.Name, videoID); err != nil {
		respondServiceError(w, err, "Failed to mark video complete")
		return
	}

	progress, err := h.progressService.GetProgress(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err, "Failed to load progress")
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// Progress returns the kid's own progress record
func (h *KidHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	progress, err := h.progressService.GetProgress(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err, "Failed to load progress")
		return
	}
	respondJSON(w, http.StatusOK, progress)
}
