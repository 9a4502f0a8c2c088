package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"learnquest/internal/models"
)

// ValidationError marks input problems the caller can correct. It is
// raised before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ValidateEmail checks that email is a parseable address
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	return nil
}

// ValidateName checks that a display name is present and not too long
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > 100 {
		return &ValidationError{Field: "name", Message: "name must be 100 characters or fewer"}
	}
	return nil
}

// ValidatePassword checks minimum password length for the local directory
func ValidatePassword(password string) error {
	if len(password) < 4 {
		return &ValidationError{Field: "password", Message: "password must be at least 4 characters"}
	}
	return nil
}

// ValidateLessonDraft checks a lesson submission
func ValidateLessonDraft(draft models.LessonDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return &ValidationError{Field: "title", Message: "lesson title is required"}
	}
	if strings.TrimSpace(draft.PdfURI) == "" {
		return &ValidationError{Field: "pdfUri", Message: "lesson PDF is required"}
	}
	return nil
}

// ValidateVideoDraft checks a video submission
func ValidateVideoDraft(draft models.VideoDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return &ValidationError{Field: "title", Message: "video title is required"}
	}
	if strings.TrimSpace(draft.URI) == "" {
		return &ValidationError{Field: "uri", Message: "video file is required"}
	}
	return nil
}

// ValidateQuizDraft checks a quiz title and question list. Every
// question needs exactly four non-empty options and an answer index
// inside the option range.
func ValidateQuizDraft(title string, questions []models.QuestionDraft) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "quiz title is required"}
	}
	if len(questions) == 0 {
		return &ValidationError{Field: "questions", Message: "quiz must have at least one question"}
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("questions[%d]", i),
				Message: "question text is required",
			}
		}
		if len(q.Options) != models.QuizOptionCount {
			return &ValidationError{
				Field:   fmt.Sprintf("questions[%d].options", i),
				Message: fmt.Sprintf("question must have exactly %d options", models.QuizOptionCount),
			}
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("questions[%d].options[%d]", i, j),
					Message: "option text is required",
				}
			}
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= models.QuizOptionCount {
			return &ValidationError{
				Field:   fmt.Sprintf("questions[%d].answerIndex", i),
				Message: fmt.Sprintf("answer index must be between 0 and %d", models.QuizOptionCount-1),
			}
		}
	}

	return nil
}
