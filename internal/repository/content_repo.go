package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"learnquest/internal/models"
	"learnquest/internal/storage"
)

// ContentRepository persists the teacher-authored collections. Each
// collection is one JSON blob in the store; every mutation rewrites the
// whole blob so the persisted view never lags a completed call.
type ContentRepository struct {
	store storage.Store
}

// NewContentRepository creates a new content repository
func NewContentRepository(store storage.Store) *ContentRepository {
	return &ContentRepository{store: store}
}

// Lessons returns all stored lessons. A missing or malformed blob is
// an empty collection, never an error.
func (r *ContentRepository) Lessons(ctx context.Context) ([]models.Lesson, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyLessons)
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons: %w", err)
	}
	if !ok {
		return []models.Lesson{}, nil
	}

	var lessons []models.Lesson
	if err := json.Unmarshal([]byte(raw), &lessons); err != nil {
		log.Printf("Malformed lessons data, treating as empty: %v", err)
		return []models.Lesson{}, nil
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return lessons, nil
}

// SaveLessons persists the full lesson collection
func (r *ContentRepository) SaveLessons(ctx context.Context, lessons []models.Lesson) error {
	data, err := json.Marshal(lessons)
	if err != nil {
		return fmt.Errorf("failed to encode lessons: %w", err)
	}
	return r.store.Set(ctx, storage.KeyLessons, string(data))
}

// Videos returns all stored videos
func (r *ContentRepository) Videos(ctx context.Context) ([]models.Video, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyVideos)
	if err != nil {
		return nil, fmt.Errorf("failed to load videos: %w", err)
	}
	if !ok {
		return []models.Video{}, nil
	}

	var videos []models.Video
	if err := json.Unmarshal([]byte(raw), &videos); err != nil {
		log.Printf("Malformed videos data, treating as empty: %v", err)
		return []models.Video{}, nil
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}

// SaveVideos persists the full video collection
func (r *ContentRepository) SaveVideos(ctx context.Context, videos []models.Video) error {
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("failed to encode videos: %w", err)
	}
	return r.store.Set(ctx, storage.KeyVideos, string(data))
}

// Quizzes returns all stored quizzes keyed by quiz id
func (r *ContentRepository) Quizzes(ctx context.Context) (map[string]models.Quiz, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyQuizzes)
	if err != nil {
		return nil, fmt.Errorf("failed to load quizzes: %w", err)
	}
	if !ok {
		return map[string]models.Quiz{}, nil
	}

	var quizzes map[string]models.Quiz
	if err := json.Unmarshal([]byte(raw), &quizzes); err != nil {
		log.Printf("Malformed quizzes data, treating as empty: %v", err)
		return map[string]models.Quiz{}, nil
	}
	if quizzes == nil {
		quizzes = map[string]models.Quiz{}
	}
	return quizzes, nil
}

// SaveQuizzes persists the full quiz collection
func (r *ContentRepository) SaveQuizzes(ctx context.Context, quizzes map[string]models.Quiz) error {
	data, err := json.Marshal(quizzes)
	if err != nil {
		return fmt.Errorf("failed to encode quizzes: %w", err)
	}
	return r.store.Set(ctx, storage.KeyQuizzes, string(data))
}
