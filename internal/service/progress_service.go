package service

import (
	"context"
	"time"

	"learnquest/internal/models"
	"learnquest/internal/repository"
)

// ProgressService handles per-student progress tracking. The first
// interaction for a student creates their record; completion sets only
// grow after that.
type ProgressService struct {
	progressRepo *repository.ProgressRepository
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// MarkLessonComplete adds a lesson to the student's completion set.
// Marking an already-complete lesson is a no-op for the set but the
// record is persisted either way, so redundant calls are safe.
func (s *ProgressService) MarkLessonComplete(ctx context.Context, studentID, studentName, lessonID string) error {
	progress, err := s.progressRepo.All(ctx)
	if err != nil {
		return err
	}

	record := touchRecord(progress, studentID, studentName)
	if !record.HasLesson(lessonID) {
		record.LessonsCompleted = append(record.LessonsCompleted, lessonID)
	}

	return s.progressRepo.Save(ctx, progress)
}

// MarkVideoComplete adds a video to the student's completion set
func (s *ProgressService) MarkVideoComplete(ctx context.Context, studentID, studentName, videoID string) error {
	progress, err := s.progressRepo.All(ctx)
	if err != nil {
		return err
	}

	record := touchRecord(progress, studentID, studentName)
	if !record.HasVideo(videoID) {
		record.VideosCompleted = append(record.VideosCompleted, videoID)
	}

	return s.progressRepo.Save(ctx, progress)
}

// RecordQuizResult stores the latest quiz outcome for a student. A
// repeat attempt at the same quiz overwrites score and date in place,
// so the summary holds at most one entry per quiz.
func (s *ProgressService) RecordQuizResult(ctx context.Context, studentID, studentName, quizID, quizTitle string, score int) error {
	progress, err := s.progressRepo.All(ctx)
	if err != nil {
		return err
	}

	record := touchRecord(progress, studentID, studentName)

	now := time.Now()
	updated := false
	for i := range record.QuizResults {
		if record.QuizResults[i].QuizID == quizID {
			record.QuizResults[i].Score = score
			record.QuizResults[i].Date = now
			updated = true
			break
		}
	}
	if !updated {
		record.QuizResults = append(record.QuizResults, models.StudentQuizResult{
			QuizID:    quizID,
			QuizTitle: quizTitle,
			Score:     score,
			Date:      now,
		})
	}

	return s.progressRepo.Save(ctx, progress)
}

// GetProgress returns one student's record. A student with no recorded
// activity gets an empty record; nothing is persisted by a read.
func (s *ProgressService) GetProgress(ctx context.Context, studentID string) (*models.ProgressRecord, error) {
	progress, err := s.progressRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	if record, ok := progress[studentID]; ok {
		return record, nil
	}
	return models.NewProgressRecord(""), nil
}

// AllProgress returns the progress map for teacher aggregation views
func (s *ProgressService) AllProgress(ctx context.Context) (map[string]*models.ProgressRecord, error) {
	return s.progressRepo.All(ctx)
}

// touchRecord returns the student's record, creating it on first
// interaction and refreshing the display name in case it changed.
func touchRecord(progress map[string]*models.ProgressRecord, studentID, studentName string) *models.ProgressRecord {
	record, ok := progress[studentID]
	if !ok {
		record = models.NewProgressRecord(studentName)
		progress[studentID] = record
	}
	if studentName != "" {
		record.Name = studentName
	}
	return record
}
