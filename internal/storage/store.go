package storage

import "context"

// Storage keys for the persisted collections. The _v1 suffix is the
// on-disk shape version; a future shape change forks on key name.
const (
	KeyLessons         = "lessons_v1"
	KeyVideos          = "videos_v1"
	KeyQuizzes         = "quizzes_v1"
	KeyStudentProgress = "studentProgress_v1"
	KeyUsers           = "users_v1"
	KeyCurrentUser     = "currentUser"
	KeyCurrentRole     = "currentRole"
	KeyProfilePhoto    = "profilePhoto"
)

// Store is a string-keyed blob store. Each operation is atomic for its
// key; there are no cross-key transactions. A missing key is reported
// by ok=false, never by an error.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
