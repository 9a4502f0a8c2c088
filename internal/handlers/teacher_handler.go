package handlers

import (
	"net/http"

	"learnquest/internal/models"
	"learnquest/internal/service"
)

// TeacherHandler serves the teacher dashboard: content authoring and
// class-wide progress views
type TeacherHandler struct {
	contentService  *service.ContentService
	progressService *service.ProgressService
	reportService   *service.ReportService
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(contentService *service.ContentService, progressService *service.ProgressService, reportService *service.ReportService) *TeacherHandler {
	return &TeacherHandler{
		contentService:  contentService,
		progressService: progressService,
		reportService:   reportService,
	}
}

// ---------- Lessons ----------

// ListLessons returns all lessons, most recent first
func (h *TeacherHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.contentService.ListLessons(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, err, "Failed to load lessons")
		return
	}
	respondJSON(w, http.StatusOK, lessons)
}

// CreateLesson adds a new lesson
func (h *TeacherHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var draft models.LessonDraft
	if !decodeBody(w, r, &draft) {
		return
	}

	lesson, err := h.contentService.AddLesson(r.Context(), draft)
	if err != nil {
		respondServiceError(w, err, "Failed to create lesson")
		return
	}
	respondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson patches an existing lesson
func (h *TeacherHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var patch models.LessonPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	lesson, err := h.contentService.UpdateLesson(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondServiceError(w, err, "Failed to update lesson")
		return
	}
	respondJSON(w, http.StatusOK, lesson)
}

// DeleteLesson removes a lesson. Completion entries referencing it are
// left in place.
func (h *TeacherHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := h.contentService.DeleteLesson(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err, "Failed to delete lesson")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ---------- Videos ----------

// ListVideos returns all videos, most recent first
func (h *TeacherHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.contentService.ListVideos(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, err, "Failed to load videos")
		return
	}
	respondJSON(w, http.StatusOK, videos)
}

// CreateVideo adds a new video
func (h *TeacherHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var draft models.VideoDraft
	if !decodeBody(w, r, &draft) {
		return
	}

	video, err := h.contentService.AddVideo(r.Context(), draft)
	if err != nil {
		respondServiceError(w, err, "Failed to create video")
		return
	}
	respondJSON(w, http.StatusCreated, video)
}

// UpdateVideo patches an existing video
func (h *TeacherHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	var patch models.VideoPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	video, err := h.contentService.UpdateVideo(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondServiceError(w, err, "Failed to update video")
		return
	}
	respondJSON(w, http.StatusOK, video)
}

// DeleteVideo removes a video
func (h *TeacherHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.contentService.DeleteVideo(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err, "Failed to delete video")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ---------- Quizzes ----------

type quizRequest struct {
	Title     string                 `json:"title"`
	Questions []models.QuestionDraft `json:"questions"`
}

// ListQuizzes returns all quizzes with their full question sets and
// result logs. Teachers see the answers; kids never hit this route.
func (h *TeacherHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.contentService.ListQuizzes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, err, "Failed to load quizzes")
		return
	}
	respondJSON(w, http.StatusOK, quizzes)
}

// CreateQuiz stores a new quiz
func (h *TeacherHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quiz, err := h.contentService.CreateQuiz(r.Context(), req.Title, req.Questions)
	if err != nil {
		respondServiceError(w, err, "Failed to create quiz")
		return
	}
	respondJSON(w, http.StatusCreated, quiz)
}

// UpdateQuiz replaces a quiz's title and questions
func (h *TeacherHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quiz, err := h.contentService.UpdateQuiz(r.Context(), r.PathValue("id"), req.Title, req.Questions)
	if err != nil {
		respondServiceError(w, err, "Failed to update quiz")
		return
	}
	respondJSON(w, http.StatusOK, quiz)
}

// DeleteQuiz removes a quiz
func (h *TeacherHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.contentService.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		respondServiceError(w, err, "Failed to delete quiz")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// QuizResults returns a quiz's full attempt history, most recent first
func (h *TeacherHandler) QuizResults(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.contentService.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err, "Failed to load quiz")
		return
	}
	respondJSON(w, http.StatusOK, quiz.Results)
}

// ---------- Progress ----------

// ClassProgress returns every student's progress record
func (h *TeacherHandler) ClassProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progressService.AllProgress(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to load class progress")
		return
	}

	views := make([]StudentProgressView, 0, len(progress))
	for studentID, record := range progress {
		views = append(views, StudentProgressView{
			StudentID:        studentID,
			Name:             record.Name,
			LessonsCompleted: record.LessonsCompleted,
			VideosCompleted:  record.VideosCompleted,
			QuizResults:      record.QuizResults,
		})
	}
	respondJSON(w, http.StatusOK, views)
}

// StudentProgress returns one student's record. Completion entries for
// deleted content are reported as-is.
func (h *TeacherHandler) StudentProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progressService.GetProgress(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err, "Failed to load student progress")
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// EmailReport sends the class progress summary to the requesting
// teacher's email address
func (h *TeacherHandler) EmailReport(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user.Email == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "no email address on profile"})
		return
	}
	if !h.reportService.IsEnabled() {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "report emails are not configured"})
		return
	}

	progress, err := h.progressService.AllProgress(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to load class progress")
		return
	}

	if err := h.reportService.SendProgressReport(r.Context(), user.Email, progress); err != nil {
		respondServiceError(w, err, "Failed to send progress report")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
