package service

import (
	"context"
	"strings"
	"testing"

	"learnquest/internal/models"
	"learnquest/internal/repository"
	"learnquest/internal/storage"
)

func newSnapshotFixture(store storage.Store) *SnapshotService {
	return NewSnapshotService(
		repository.NewContentRepository(store),
		repository.NewProgressRepository(store),
		repository.NewUserRepository(store),
	)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()

	source := storage.NewMemoryStore()
	contentService := NewContentService(repository.NewContentRepository(source))
	progressService := NewProgressService(repository.NewProgressRepository(source))

	lesson, err := contentService.AddLesson(ctx, models.LessonDraft{Title: "Fractions", PdfURI: "file:///a.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	quiz, err := contentService.CreateQuiz(ctx, "Math Quiz", []models.QuestionDraft{
		{Text: "Q1", Options: []string{"a", "b", "c", "d"}, AnswerIndex: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := progressService.MarkLessonComplete(ctx, "s1", "Alex", lesson.ID); err != nil {
		t.Fatal(err)
	}

	snapshot, err := newSnapshotFixture(source).Export(ctx)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if snapshot.Version != SnapshotVersion {
		t.Errorf("Version = %q, want %q", snapshot.Version, SnapshotVersion)
	}

	// Import into a fresh store and check the collections arrived
	target := storage.NewMemoryStore()
	if err := newSnapshotFixture(target).Import(ctx, snapshot); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	restoredContent := NewContentService(repository.NewContentRepository(target))
	lessons, err := restoredContent.ListLessons(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 1 || lessons[0].ID != lesson.ID {
		t.Errorf("imported lessons = %+v, want original lesson", lessons)
	}

	restoredQuiz, err := restoredContent.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz() after import error = %v", err)
	}
	if restoredQuiz.Title != "Math Quiz" {
		t.Errorf("imported quiz title = %q, want Math Quiz", restoredQuiz.Title)
	}

	record, err := NewProgressService(repository.NewProgressRepository(target)).GetProgress(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(record.LessonsCompleted) != 1 {
		t.Errorf("imported progress = %+v, want one completed lesson", record)
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	s := newSnapshotFixture(storage.NewMemoryStore())

	err := s.Import(context.Background(), &Snapshot{Version: "99"})
	if err == nil {
		t.Fatal("Import() accepted an unknown version")
	}
	if !strings.Contains(err.Error(), "unsupported snapshot version") {
		t.Errorf("Import() error = %v, want version mismatch", err)
	}
}

func TestImportFromReaderMalformed(t *testing.T) {
	s := newSnapshotFixture(storage.NewMemoryStore())

	if err := s.ImportFromReader(context.Background(), strings.NewReader("{not json")); err == nil {
		t.Error("ImportFromReader() accepted malformed JSON")
	}
}
