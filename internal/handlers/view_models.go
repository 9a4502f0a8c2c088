package handlers

import (
	"learnquest/internal/models"
	"learnquest/internal/service"
)

// KidQuestionView is a question as shown to a kid: no answer index
type KidQuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// KidQuizView is a quiz summary for the kid dashboard. Question
// content and correct answers stay server-side until a session starts.
type KidQuizView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

// SessionView is a quiz session as shown to the kid taking it.
// Answers use -1 for unanswered slots.
type SessionView struct {
	ID        string            `json:"id"`
	QuizID    string            `json:"quizId"`
	QuizTitle string            `json:"quizTitle"`
	Questions []KidQuestionView `json:"questions"`
	Answers   []int             `json:"answers"`
	State     string            `json:"state"`
	Score     *int              `json:"score,omitempty"`
}

// DashboardView is the kid dashboard payload: content lists plus the
// kid's own progress
type DashboardView struct {
	Lessons  []models.Lesson        `json:"lessons"`
	Videos   []models.Video         `json:"videos"`
	Quizzes  []KidQuizView          `json:"quizzes"`
	Progress *models.ProgressRecord `json:"progress"`
}

// StudentProgressView is one row in the teacher's class progress table
type StudentProgressView struct {
	StudentID        string                     `json:"studentId"`
	Name             string                     `json:"name"`
	LessonsCompleted []string                   `json:"lessonsCompleted"`
	VideosCompleted  []string                   `json:"videosCompleted"`
	QuizResults      []models.StudentQuizResult `json:"quizResults"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// ProfileView is the profile payload: identity plus the stored photo
// reference
type ProfileView struct {
	User  *models.User `json:"user"`
	Photo string       `json:"photo,omitempty"`
}

func kidQuizViews(quizzes []models.Quiz) []KidQuizView {
	views := make([]KidQuizView, len(quizzes))
	for i, q := range quizzes {
		views[i] = KidQuizView{
			ID:            q.ID,
			Title:         q.Title,
			QuestionCount: len(q.Questions),
		}
	}
	return views
}

func sessionView(session *service.QuizSession) SessionView {
	questions := make([]KidQuestionView, len(session.Questions))
	for i, q := range session.Questions {
		questions[i] = KidQuestionView{ID: q.ID, Text: q.Text, Options: q.Options}
	}

	view := SessionView{
		ID:        session.ID,
		QuizID:    session.QuizID,
		QuizTitle: session.QuizTitle,
		Questions: questions,
		Answers:   session.Answers,
		State:     string(session.State),
	}
	if session.State == service.SessionFinished {
		score := session.Score
		view.Score = &score
	}
	return view
}
