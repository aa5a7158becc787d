package account

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserSummary is the caller-facing view of a user, returned from
// registration and login together with a freshly issued token.
type UserSummary struct {
	UserID   uuid.UUID
	FullName string
	Email    string
	Token    string
}

// RegisterResult carries either a registered user or a list of
// human-readable rejection reasons. Callers must check Errors before
// using User.
type RegisterResult struct {
	User   *UserSummary
	Errors []string
}

// OK reports whether registration succeeded.
func (r *RegisterResult) OK() bool {
	return len(r.Errors) == 0
}

// LoginResult carries the outcome of a login attempt. On failure User is
// nil and the shape is identical for unknown emails and wrong passwords.
type LoginResult struct {
	User *UserSummary
}

// OK reports whether login succeeded.
func (r *LoginResult) OK() bool {
	return r.User != nil
}
