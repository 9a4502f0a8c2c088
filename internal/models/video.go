package models

import "time"

// Video represents an uploaded video reference authored by a teacher.
// The URI is an opaque reference; the server never resolves it.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URI         string    `json:"uri"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VideoDraft holds the fields a teacher supplies when adding a video
type VideoDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URI         string `json:"uri"`
}

// VideoPatch holds optional updates to an existing video
type VideoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URI         *string `json:"uri"`
}
