package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"learnquest/internal/models"
	"learnquest/internal/repository"
	"learnquest/internal/validation"
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrVideoNotFound  = errors.New("video not found")
	ErrQuizNotFound   = errors.New("quiz not found")
)

// ContentService handles teacher-authored content business logic.
// Reads always go through the repository, never through a cached copy.
type ContentService struct {
	contentRepo *repository.ContentRepository
}

// NewContentService creates a new content service
func NewContentService(contentRepo *repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// ListLessons returns all lessons, most recent first, optionally
// filtered by a case-insensitive search over title, description and
// category.
func (s *ContentService) ListLessons(ctx context.Context, search string) ([]models.Lesson, error) {
	lessons, err := s.contentRepo.Lessons(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return lessons, nil
	}

	q := normalize(search)
	filtered := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if strings.Contains(normalize(l.Title), q) ||
			strings.Contains(normalize(l.Description), q) ||
			strings.Contains(normalize(l.Category), q) {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

// AddLesson validates and stores a new lesson at the front of the collection
func (s *ContentService) AddLesson(ctx context.Context, draft models.LessonDraft) (*models.Lesson, error) {
	if err := validation.ValidateLessonDraft(draft); err != nil {
		return nil, err
	}

	lessons, err := s.contentRepo.Lessons(ctx)
	if err != nil {
		return nil, err
	}

	lesson := models.Lesson{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Category:    strings.TrimSpace(draft.Category),
		PdfURI:      draft.PdfURI,
		CreatedAt:   time.Now(),
	}

	lessons = append([]models.Lesson{lesson}, lessons...)
	if err := s.contentRepo.SaveLessons(ctx, lessons); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// UpdateLesson applies a patch to an existing lesson
func (s *ContentService) UpdateLesson(ctx context.Context, id string, patch models.LessonPatch) (*models.Lesson, error) {
	lessons, err := s.contentRepo.Lessons(ctx)
	if err != nil {
		return nil, err
	}

	for i := range lessons {
		if lessons[i].ID != id {
			continue
		}
		if patch.Title != nil {
			lessons[i].Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			lessons[i].Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Category != nil {
			lessons[i].Category = strings.TrimSpace(*patch.Category)
		}
		if patch.PdfURI != nil {
			lessons[i].PdfURI = *patch.PdfURI
		}
		if err := s.contentRepo.SaveLessons(ctx, lessons); err != nil {
			return nil, err
		}
		updated := lessons[i]
		return &updated, nil
	}

	return nil, ErrLessonNotFound
}

// DeleteLesson removes a lesson by id. Progress records that reference
// it keep their completion entries; orphaned references are tolerated.
func (s *ContentService) DeleteLesson(ctx context.Context, id string) error {
	lessons, err := s.contentRepo.Lessons(ctx)
	if err != nil {
		return err
	}

	kept := lessons[:0]
	for _, l := range lessons {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	return s.contentRepo.SaveLessons(ctx, kept)
}

// ListVideos returns all videos, most recent first, optionally filtered
func (s *ContentService) ListVideos(ctx context.Context, search string) ([]models.Video, error) {
	videos, err := s.contentRepo.Videos(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return videos, nil
	}

	q := normalize(search)
	filtered := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if strings.Contains(normalize(v.Title), q) ||
			strings.Contains(normalize(v.Description), q) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// AddVideo validates and stores a new video at the front of the collection
func (s *ContentService) AddVideo(ctx context.Context, draft models.VideoDraft) (*models.Video, error) {
	if err := validation.ValidateVideoDraft(draft); err != nil {
		return nil, err
	}

	videos, err := s.contentRepo.Videos(ctx)
	if err != nil {
		return nil, err
	}

	video := models.Video{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		URI:         draft.URI,
		CreatedAt:   time.Now(),
	}

	videos = append([]models.Video{video}, videos...)
	if err := s.contentRepo.SaveVideos(ctx, videos); err != nil {
		return nil, err
	}
	return &video, nil
}

// UpdateVideo applies a patch to an existing video
func (s *ContentService) UpdateVideo(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error) {
	videos, err := s.contentRepo.Videos(ctx)
	if err != nil {
		return nil, err
	}

	for i := range videos {
		if videos[i].ID != id {
			continue
		}
		if patch.Title != nil {
			videos[i].Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			videos[i].Description = strings.TrimSpace(*patch.Description)
		}
		if patch.URI != nil {
			videos[i].URI = *patch.URI
		}
		if err := s.contentRepo.SaveVideos(ctx, videos); err != nil {
			return nil, err
		}
		updated := videos[i]
		return &updated, nil
	}

	return nil, ErrVideoNotFound
}

// DeleteVideo removes a video by id
func (s *ContentService) DeleteVideo(ctx context.Context, id string) error {
	videos, err := s.contentRepo.Videos(ctx)
	if err != nil {
		return err
	}

	kept := videos[:0]
	for _, v := range videos {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	return s.contentRepo.SaveVideos(ctx, kept)
}

// ListQuizzes returns all quizzes, most recent first, optionally
// filtered by title
func (s *ContentService) ListQuizzes(ctx context.Context, search string) ([]models.Quiz, error) {
	quizzes, err := s.contentRepo.Quizzes(ctx)
	if err != nil {
		return nil, err
	}

	q := normalize(search)
	list := make([]models.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if q != "" && !strings.Contains(normalize(quiz.Title), q) {
			continue
		}
		list = append(list, quiz)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// GetQuiz returns one quiz by id
func (s *ContentService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	quizzes, err := s.contentRepo.Quizzes(ctx)
	if err != nil {
		return nil, err
	}

	quiz, ok := quizzes[id]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return &quiz, nil
}

// CreateQuiz validates and stores a new quiz with an empty results log
func (s *ContentService) CreateQuiz(ctx context.Context, title string, drafts []models.QuestionDraft) (*models.Quiz, error) {
	if err := validation.ValidateQuizDraft(title, drafts); err != nil {
		return nil, err
	}

	quizzes, err := s.contentRepo.Quizzes(ctx)
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Questions: questionsFromDrafts(drafts),
		Results:   []models.QuizResult{},
		CreatedAt: time.Now(),
	}

	quizzes[quiz.ID] = quiz
	if err := s.contentRepo.SaveQuizzes(ctx, quizzes); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// UpdateQuiz replaces a quiz's title and questions, keeping its
// results log and creation time
func (s *ContentService) UpdateQuiz(ctx context.Context, id, title string, drafts []models.QuestionDraft) (*models.Quiz, error) {
	if err := validation.ValidateQuizDraft(title, drafts); err != nil {
		return nil, err
	}

	quizzes, err := s.contentRepo.Quizzes(ctx)
	if err != nil {
		return nil, err
	}

	quiz, ok := quizzes[id]
	if !ok {
		return nil, ErrQuizNotFound
	}

	quiz.Title = strings.TrimSpace(title)
	quiz.Questions = questionsFromDrafts(drafts)
	quizzes[id] = quiz

	if err := s.contentRepo.SaveQuizzes(ctx, quizzes); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// DeleteQuiz removes a quiz by id
func (s *ContentService) DeleteQuiz(ctx context.Context, id string) error {
	quizzes, err := s.contentRepo.Quizzes(ctx)
	if err != nil {
		return err
	}

	delete(quizzes, id)
	return s.contentRepo.SaveQuizzes(ctx, quizzes)
}

// AppendQuizResult prepends an attempt to a quiz's append-only results
// log. The log keeps every attempt, most recent first.
func (s *ContentService) AppendQuizResult(ctx context.Context, quizID string, result models.QuizResult) error {
	quizzes, err := s.contentRepo.Quizzes(ctx)
	if err != nil {
		return err
	}

	quiz, ok := quizzes[quizID]
	if !ok {
		return ErrQuizNotFound
	}

	quiz.Results = append([]models.QuizResult{result}, quiz.Results...)
	quizzes[quizID] = quiz
	return s.contentRepo.SaveQuizzes(ctx, quizzes)
}

func questionsFromDrafts(drafts []models.QuestionDraft) []models.Question {
	questions := make([]models.Question, len(drafts))
	for i, d := range drafts {
		options := make([]string, len(d.Options))
		for j, opt := range d.Options {
			options[j] = strings.TrimSpace(opt)
		}
		questions[i] = models.Question{
			ID:          uuid.NewString(),
			Text:        strings.TrimSpace(d.Text),
			Options:     options,
			AnswerIndex: d.AnswerIndex,
		}
	}
	return questions
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
