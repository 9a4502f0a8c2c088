package models

import "time"

// StudentQuizResult is the per-student summary entry for one quiz.
// At most one entry exists per quiz in a ProgressRecord; a repeat
// attempt overwrites score and date in place.
type StudentQuizResult struct {
	QuizID    string    `json:"quizId"`
	QuizTitle string    `json:"quizTitle"`
	Score     int       `json:"score"`
	Date      time.Time `json:"date"`
}

// ProgressRecord aggregates one student's completed content and quiz
// outcomes. Completion sets only grow.
type ProgressRecord struct {
	Name             string              `json:"name"`
	LessonsCompleted []string            `json:"lessonsCompleted"`
	VideosCompleted  []string            `json:"videosCompleted"`
	QuizResults      []StudentQuizResult `json:"quizResults"`
}

// NewProgressRecord returns an empty record for a student seen for the
// first time.
func NewProgressRecord(name string) *ProgressRecord {
	return &ProgressRecord{
		Name:             name,
		LessonsCompleted: []string{},
		VideosCompleted:  []string{},
		QuizResults:      []StudentQuizResult{},
	}
}

// HasLesson reports whether the lesson id is in the completion set
func (p *ProgressRecord) HasLesson(lessonID string) bool {
	for _, id := range p.LessonsCompleted {
		if id == lessonID {
			return true
		}
	}
	return false
}

// HasVideo reports whether the video id is in the completion set
func (p *ProgressRecord) HasVideo(videoID string) bool {
	for _, id := range p.VideosCompleted {
		if id == videoID {
			return true
		}
	}
	return false
}
