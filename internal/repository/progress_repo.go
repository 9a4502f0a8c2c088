package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"learnquest/internal/models"
	"learnquest/internal/storage"
)

// ProgressRepository persists the per-student progress map as a single
// JSON blob keyed by student id.
type ProgressRepository struct {
	store storage.Store
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(store storage.Store) *ProgressRepository {
	return &ProgressRepository{store: store}
}

// All returns the full student progress map. A missing or malformed
// blob is an empty map, never an error.
func (r *ProgressRepository) All(ctx context.Context) (map[string]*models.ProgressRecord, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyStudentProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to load student progress: %w", err)
	}
	if !ok {
		return map[string]*models.ProgressRecord{}, nil
	}

	var progress map[string]*models.ProgressRecord
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		log.Printf("Malformed student progress data, treating as empty: %v", err)
		return map[string]*models.ProgressRecord{}, nil
	}
	if progress == nil {
		progress = map[string]*models.ProgressRecord{}
	}
	return progress, nil
}

// Save persists the full student progress map
func (r *ProgressRepository) Save(ctx context.Context, progress map[string]*models.ProgressRecord) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode student progress: %w", err)
	}
	return r.store.Set(ctx, storage.KeyStudentProgress, string(data))
}
