package models

import "time"

// Role is the access class of a user
type Role string

const (
	RoleKid     Role = "kid"
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleKid || r == RoleTeacher
}

// User is the identity of a signed-in person. Kids consume content and
// record progress; teachers author content and read aggregations.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           Role      `json:"role"`
	Username       string    `json:"username,omitempty"`
	Email          string    `json:"email,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserAccount is a User plus the credential material held in the local
// mock directory. The hash never leaves the repository layer.
type UserAccount struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// ProfilePatch holds optional profile updates. Nil fields are left
// unchanged.
type ProfilePatch struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	ProfilePicture *string `json:"profilePicture"`
}
