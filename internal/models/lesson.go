package models

import "time"

// Lesson represents a PDF-backed lesson authored by a teacher
type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PdfURI      string    `json:"pdfUri"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LessonDraft holds the fields a teacher supplies when creating a lesson
type LessonDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PdfURI      string `json:"pdfUri"`
}

// LessonPatch holds optional updates to an existing lesson. Nil fields
// are left unchanged.
type LessonPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	PdfURI      *string `json:"pdfUri"`
}
