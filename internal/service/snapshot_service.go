package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"learnquest/internal/models"
	"learnquest/internal/repository"
)

// SnapshotVersion is the snapshot format version
const SnapshotVersion = "1"

// Snapshot is a complete export of the device store's collections
type Snapshot struct {
	Version         string                            `json:"version"`
	ExportedAt      time.Time                         `json:"exported_at"`
	Lessons         []models.Lesson                   `json:"lessons"`
	Videos          []models.Video                    `json:"videos"`
	Quizzes         map[string]models.Quiz            `json:"quizzes"`
	StudentProgress map[string]*models.ProgressRecord `json:"student_progress"`
	Users           []models.UserAccount              `json:"users"`
}

// SnapshotService exports and imports the full store contents as JSON.
// Import replaces each collection wholesale.
type SnapshotService struct {
	contentRepo  *repository.ContentRepository
	progressRepo *repository.ProgressRepository
	userRepo     *repository.UserRepository
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(contentRepo *repository.ContentRepository, progressRepo *repository.ProgressRepository, userRepo *repository.UserRepository) *SnapshotService {
	return &SnapshotService{
		contentRepo:  contentRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

// Export collects every collection into a snapshot
func (s *SnapshotService) Export(ctx context.Context) (*Snapshot, error) {
	lessons, err := s.contentRepo.Lessons(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.contentRepo.Videos(ctx)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.contentRepo.Quizzes(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Version:         SnapshotVersion,
		ExportedAt:      time.Now(),
		Lessons:         lessons,
		Videos:          videos,
		Quizzes:         quizzes,
		StudentProgress: progress,
		Users:           users,
	}, nil
}

// ExportToFile writes a snapshot as indented JSON
func (s *SnapshotService) ExportToFile(ctx context.Context, path string) error {
	snapshot, err := s.Export(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Import writes every collection from the snapshot into the store
func (s *SnapshotService) Import(ctx context.Context, snapshot *Snapshot) error {
	if snapshot.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version: %q", snapshot.Version)
	}

	if err := s.contentRepo.SaveLessons(ctx, snapshot.Lessons); err != nil {
		return err
	}
	if err := s.contentRepo.SaveVideos(ctx, snapshot.Videos); err != nil {
		return err
	}
	if err := s.contentRepo.SaveQuizzes(ctx, snapshot.Quizzes); err != nil {
		return err
	}
	if err := s.progressRepo.Save(ctx, snapshot.StudentProgress); err != nil {
		return err
	}
	return s.userRepo.SaveAccounts(ctx, snapshot.Users)
}

// ImportFromReader decodes a snapshot and imports it
func (s *SnapshotService) ImportFromReader(ctx context.Context, r io.Reader) error {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s.Import(ctx, &snapshot)
}
