package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"learnquest/internal/models"
)

var (
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrSessionFinished = errors.New("quiz session already submitted")
	ErrQuestionIndex   = errors.New("question index out of range")
	ErrOptionIndex     = errors.New("option index out of range")
	ErrNotSessionOwner = errors.New("session belongs to another student")
)

// SessionState is the lifecycle state of a quiz session
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionFinished   SessionState = "finished"
)

// unanswered marks an answer slot with no choice yet
const unanswered = -1

// QuizSession is the ephemeral state of one quiz attempt. It lives only
// in memory; abandoning it before submit discards all answers.
type QuizSession struct {
	ID          string            `json:"id"`
	QuizID      string            `json:"quizId"`
	QuizTitle   string            `json:"quizTitle"`
	StudentID   string            `json:"studentId"`
	StudentName string            `json:"studentName"`
	Questions   []models.Question `json:"questions"`
	Answers     []int             `json:"answers"`
	State       SessionState      `json:"state"`
	Score       int               `json:"score"`
	StartedAt   time.Time         `json:"startedAt"`
}

// QuizService manages in-memory quiz sessions and the dual write that
// happens on submit: the student's progress summary first, then the
// quiz's own append-only results log. The two writes are one logical
// operation but are not atomic; a failure between them leaves the
// stores divergent until the student retries.
type QuizService struct {
	contentService  *ContentService
	progressService *ProgressService

	mu       sync.Mutex
	sessions map[string]*QuizSession
}

// NewQuizService creates a new quiz service
func NewQuizService(contentService *ContentService, progressService *ProgressService) *QuizService {
	return &QuizService{
		contentService:  contentService,
		progressService: progressService,
		sessions:        make(map[string]*QuizSession),
	}
}

// Start loads a quiz and opens a session for the student. A quiz with
// no questions cannot be started.
func (s *QuizService) Start(ctx context.Context, studentID, studentName, quizID string) (*QuizSession, error) {
	quiz, err := s.contentService.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	answers := make([]int, len(quiz.Questions))
	for i := range answers {
		answers[i] = unanswered
	}

	session := &QuizSession{
		ID:          uuid.NewString(),
		QuizID:      quiz.ID,
		QuizTitle:   quiz.Title,
		StudentID:   studentID,
		StudentName: studentName,
		Questions:   quiz.Questions,
		Answers:     answers,
		State:       SessionInProgress,
		StartedAt:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Get returns the student's session by id
func (s *QuizService) Get(sessionID, studentID string) (*QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(sessionID, studentID)
}

// ChooseOption records the student's choice for one question,
// replacing any prior choice. Questions can be answered in any order.
func (s *QuizService) ChooseOption(sessionID, studentID string, questionIndex, optionIndex int) (*QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(sessionID, studentID)
	if err != nil {
		return nil, err
	}
	if session.State == SessionFinished {
		return nil, ErrSessionFinished
	}
	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return nil, ErrQuestionIndex
	}
	if optionIndex < 0 || optionIndex >= len(session.Questions[questionIndex].Options) {
		return nil, ErrOptionIndex
	}

	session.Answers[questionIndex] = optionIndex
	return session, nil
}

// Submit scores the session and records the outcome. Unanswered
// questions count as incorrect. No completeness precondition applies.
func (s *QuizService) Submit(ctx context.Context, sessionID, studentID string) (*QuizSession, error) {
	s.mu.Lock()
	session, err := s.lookup(sessionID, studentID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.State == SessionFinished {
		s.mu.Unlock()
		return nil, ErrSessionFinished
	}

	session.Score = scoreAnswers(session.Answers, session.Questions)
	session.State = SessionFinished
	s.mu.Unlock()

	// Progress summary first, then the quiz's own history log, matching
	// the order the client app always wrote them in.
	if err := s.progressService.RecordQuizResult(ctx, session.StudentID, session.StudentName, session.QuizID, session.QuizTitle, session.Score); err != nil {
		return nil, err
	}

	result := models.QuizResult{
		Score:       session.Score,
		Date:        time.Now(),
		StudentID:   session.StudentID,
		StudentName: session.StudentName,
	}
	if err := s.contentService.AppendQuizResult(ctx, session.QuizID, result); err != nil {
		return nil, err
	}

	// Both writes landed; drop the session. A failed write leaves it in
	// the map, marked finished.
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	return session, nil
}

// Abandon discards a session without recording anything. Quizzes are
// not resumable.
func (s *QuizService) Abandon(sessionID, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(sessionID, studentID); err != nil {
		return err
	}
	delete(s.sessions, sessionID)
	return nil
}

// lookup finds a session and checks ownership. Callers hold s.mu.
func (s *QuizService) lookup(sessionID, studentID string) (*QuizSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.StudentID != studentID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// scoreAnswers computes round(100 * correct / total)
func scoreAnswers(answers []int, questions []models.Question) int {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.AnswerIndex {
			correct++
		}
	}

	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}
