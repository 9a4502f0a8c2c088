package models

import "time"

// QuizOptionCount is the required number of options per question
const QuizOptionCount = 4

// Question is a single multiple-choice question in a quiz
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

// QuizResult is one recorded attempt at a quiz. Entries are append-only
// in the quiz's own log, most recent first.
type QuizResult struct {
	Score       int       `json:"score"`
	Date        time.Time `json:"date"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
}

// Quiz represents a multiple-choice quiz with its full attempt history
type Quiz struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Questions []Question   `json:"questions"`
	Results   []QuizResult `json:"results"`
	CreatedAt time.Time    `json:"createdAt"`
}

// QuestionDraft holds a question as submitted by a teacher
type QuestionDraft struct {
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}
