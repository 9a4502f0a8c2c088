package service

import (
	"context"
	"errors"
	"testing"

	"learnquest/internal/models"
	"learnquest/internal/repository"
	"learnquest/internal/storage"
)

func newQuizFixture() (*QuizService, *ContentService, *ProgressService) {
	store := storage.NewMemoryStore()
	contentService := NewContentService(repository.NewContentRepository(store))
	progressService := NewProgressService(repository.NewProgressRepository(store))
	return NewQuizService(contentService, progressService), contentService, progressService
}

func createTwoQuestionQuiz(t *testing.T, contentService *ContentService) models.Quiz {
	t.Helper()
	quiz, err := contentService.CreateQuiz(context.Background(), "Math Quiz", []models.QuestionDraft{
		{Text: "2+2?", Options: []string{"3", "4", "5", "6"}, AnswerIndex: 1},
		{Text: "1+1?", Options: []string{"2", "3", "4", "5"}, AnswerIndex: 0},
	})
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}
	return *quiz
}

func TestScoreAnswers(t *testing.T) {
	questions := []models.Question{
		{AnswerIndex: 1},
		{AnswerIndex: 0},
		{AnswerIndex: 2},
	}

	tests := []struct {
		name      string
		answers   []int
		questions []models.Question
		want      int
	}{
		{"all correct", []int{1, 0, 2}, questions, 100},
		{"none correct", []int{0, 1, 0}, questions, 0},
		{"one of three rounds down", []int{1, 1, 0}, questions, 33},
		{"two of three rounds up", []int{1, 0, 0}, questions, 67},
		{"unanswered counts incorrect", []int{1, unanswered, unanswered}, questions, 33},
		{"half correct", []int{1, 1}, questions[:2], 50},
		{"no questions", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreAnswers(tt.answers, tt.questions); got != tt.want {
				t.Errorf("scoreAnswers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartSession(t *testing.T) {
	quizService, contentService, _ := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)

	session, err := quizService.Start(context.Background(), "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if session.State != SessionInProgress {
		t.Errorf("State = %q, want %q", session.State, SessionInProgress)
	}
	if len(session.Answers) != 2 {
		t.Fatalf("Answers = %d slots, want 2", len(session.Answers))
	}
	for i, a := range session.Answers {
		if a != unanswered {
			t.Errorf("Answers[%d] = %d, want unanswered", i, a)
		}
	}
}

func TestStartUnknownQuiz(t *testing.T) {
	quizService, _, _ := newQuizFixture()

	if _, err := quizService.Start(context.Background(), "s1", "Alex", "missing"); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("Start(missing) error = %v, want ErrQuizNotFound", err)
	}
}

func TestStartQuizWithoutQuestions(t *testing.T) {
	quizService, contentService, _ := newQuizFixture()

	// CreateQuiz rejects empty question lists, so write the quiz
	// directly the way a trimmed import might.
	empty := models.Quiz{ID: "q-empty", Title: "Empty"}
	if err := contentService.contentRepo.SaveQuizzes(context.Background(), map[string]models.Quiz{empty.ID: empty}); err != nil {
		t.Fatal(err)
	}

	if _, err := quizService.Start(context.Background(), "s1", "Alex", empty.ID); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Start(empty quiz) error = %v, want ErrNoQuestions", err)
	}
}

func TestChooseOptionBounds(t *testing.T) {
	quizService, contentService, _ := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)

	session, err := quizService.Start(context.Background(), "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		questionIndex int
		optionIndex   int
		wantErr       error
	}{
		{"valid", 0, 1, nil},
		{"question too high", 2, 0, ErrQuestionIndex},
		{"question negative", -1, 0, ErrQuestionIndex},
		{"option too high", 0, 4, ErrOptionIndex},
		{"option negative", 0, -1, ErrOptionIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quizService.ChooseOption(session.ID, "s1", tt.questionIndex, tt.optionIndex)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ChooseOption() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChooseOptionReplacesPrior(t *testing.T) {
	quizService, contentService, _ := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)

	session, err := quizService.Start(context.Background(), "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := quizService.ChooseOption(session.ID, "s1", 0, 2); err != nil {
		t.Fatal(err)
	}
	updated, err := quizService.ChooseOption(session.ID, "s1", 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Answers[0] != 1 {
		t.Errorf("Answers[0] = %d, want replaced choice 1", updated.Answers[0])
	}
}

func TestSessionOwnership(t *testing.T) {
	quizService, contentService, _ := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)

	session, err := quizService.Start(context.Background(), "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := quizService.Get(session.ID, "s2"); !errors.Is(err, ErrNotSessionOwner) {
		t.Errorf("Get(other student) error = %v, want ErrNotSessionOwner", err)
	}
	if _, err := quizService.Get("missing", "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestSubmitRecordsBothStores(t *testing.T) {
	quizService, contentService, progressService := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)
	ctx := context.Background()

	session, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(session.ID, "s1", 0, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(session.ID, "s1", 1, 0); err != nil {
		t.Fatal(err)
	}

	finished, err := quizService.Submit(ctx, session.ID, "s1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if finished.State != SessionFinished {
		t.Errorf("State = %q, want %q", finished.State, SessionFinished)
	}
	if finished.Score != 100 {
		t.Errorf("Score = %d, want 100", finished.Score)
	}

	record, err := progressService.GetProgress(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(record.QuizResults) != 1 || record.QuizResults[0].Score != 100 {
		t.Errorf("progress QuizResults = %+v, want one entry at 100", record.QuizResults)
	}
	if record.QuizResults[0].QuizTitle != "Math Quiz" {
		t.Errorf("QuizTitle = %q, want Math Quiz", record.QuizResults[0].QuizTitle)
	}

	stored, err := contentService.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Results) != 1 || stored.Results[0].Score != 100 || stored.Results[0].StudentName != "Alex" {
		t.Errorf("quiz Results = %+v, want one Alex entry at 100", stored.Results)
	}
}

func TestSubmitWithUnansweredQuestions(t *testing.T) {
	quizService, contentService, _ := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)
	ctx := context.Background()

	session, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(session.ID, "s1", 0, 1); err != nil {
		t.Fatal(err)
	}

	finished, err := quizService.Submit(ctx, session.ID, "s1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if finished.Score != 50 {
		t.Errorf("Score = %d, want 50 with one question unanswered", finished.Score)
	}
}

func TestSubmitEvictsSession(t *testing.T) {
	quizService, contentService, _ := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)
	ctx := context.Background()

	session, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.Submit(ctx, session.ID, "s1"); err != nil {
		t.Fatal(err)
	}

	// A recorded session is gone; nothing can touch it again
	if _, err := quizService.Get(session.ID, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after submit error = %v, want ErrSessionNotFound", err)
	}
	if _, err := quizService.Submit(ctx, session.ID, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Submit() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := quizService.ChooseOption(session.ID, "s1", 0, 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ChooseOption() after submit error = %v, want ErrSessionNotFound", err)
	}
}

func TestSubmitPartialWriteFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	contentService := NewContentService(repository.NewContentRepository(store))
	progressService := NewProgressService(repository.NewProgressRepository(store))
	quizService := NewQuizService(contentService, progressService)
	quiz := createTwoQuestionQuiz(t, contentService)
	ctx := context.Background()

	session, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(session.ID, "s1", 0, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(session.ID, "s1", 1, 0); err != nil {
		t.Fatal(err)
	}

	// The progress summary write lands, then the quiz-log write fails.
	store.FailWrites = errors.New("disk full")
	store.FailKey = storage.KeyQuizzes

	if _, err := quizService.Submit(ctx, session.ID, "s1"); err == nil {
		t.Fatal("Submit() succeeded with the quiz-log write failing")
	}

	store.FailWrites = nil

	// The two stores diverge: the summary has the result, the log does not.
	record, err := progressService.GetProgress(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(record.QuizResults) != 1 || record.QuizResults[0].Score != 100 {
		t.Errorf("progress QuizResults = %+v, want the recorded result", record.QuizResults)
	}

	stored, err := contentService.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Results) != 0 {
		t.Errorf("quiz Results = %+v, want empty log after failed write", stored.Results)
	}

	// The failed session is kept, marked finished
	kept, err := quizService.Get(session.ID, "s1")
	if err != nil {
		t.Fatalf("Get() after failed submit error = %v", err)
	}
	if kept.State != SessionFinished {
		t.Errorf("State = %q after failed submit, want %q", kept.State, SessionFinished)
	}
}

func TestRepeatAttemptsDiverge(t *testing.T) {
	quizService, contentService, progressService := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)
	ctx := context.Background()

	// First attempt: both questions wrong.
	first, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(first.ID, "s1", 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(first.ID, "s1", 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.Submit(ctx, first.ID, "s1"); err != nil {
		t.Fatal(err)
	}

	// Second attempt: both correct.
	second, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(second.ID, "s1", 0, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(second.ID, "s1", 1, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.Submit(ctx, second.ID, "s1"); err != nil {
		t.Fatal(err)
	}

	// The progress summary holds only the latest score per quiz.
	record, err := progressService.GetProgress(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(record.QuizResults) != 1 {
		t.Fatalf("progress QuizResults = %d entries, want 1", len(record.QuizResults))
	}
	if record.QuizResults[0].Score != 100 {
		t.Errorf("progress score = %d, want latest 100", record.QuizResults[0].Score)
	}

	// The quiz's own log keeps every attempt, most recent first.
	stored, err := contentService.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Results) != 2 {
		t.Fatalf("quiz Results = %d entries, want 2", len(stored.Results))
	}
	if stored.Results[0].Score != 100 || stored.Results[1].Score != 0 {
		t.Errorf("quiz Results order = [%d, %d], want [100, 0]", stored.Results[0].Score, stored.Results[1].Score)
	}
}

func TestAbandonDiscardsSession(t *testing.T) {
	quizService, contentService, progressService := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)
	ctx := context.Background()

	session, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.ChooseOption(session.ID, "s1", 0, 1); err != nil {
		t.Fatal(err)
	}

	if err := quizService.Abandon(session.ID, "s1"); err != nil {
		t.Fatalf("Abandon() error = %v", err)
	}
	if _, err := quizService.Get(session.ID, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after abandon error = %v, want ErrSessionNotFound", err)
	}

	record, err := progressService.GetProgress(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(record.QuizResults) != 0 {
		t.Errorf("abandon recorded a result: %+v", record.QuizResults)
	}
}

func TestDeletedQuizLeavesProgressIntact(t *testing.T) {
	quizService, contentService, progressService := newQuizFixture()
	quiz := createTwoQuestionQuiz(t, contentService)
	ctx := context.Background()

	session, err := quizService.Start(ctx, "s1", "Alex", quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := quizService.Submit(ctx, session.ID, "s1"); err != nil {
		t.Fatal(err)
	}

	if err := contentService.DeleteQuiz(ctx, quiz.ID); err != nil {
		t.Fatal(err)
	}

	record, err := progressService.GetProgress(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(record.QuizResults) != 1 {
		t.Errorf("QuizResults = %d entries after quiz delete, want orphaned entry kept", len(record.QuizResults))
	}
}
