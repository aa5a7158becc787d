package team

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskman-io/taskman/internal/task"
)

// Member roles. The set is extensible; these are the two roles the
// service assigns today.
const (
	RoleOwner   = "owner"
	RoleRegular = "regular"
)

// Team represents a row in the teams table. OwnerID is the user that
// created the team and is immutable after creation.
type Team struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Members     []Member
}

// Member represents a row in the members table. The (TeamID, UserID)
// pair is unique: a user belongs to a given team at most once. Email is
// a denormalized copy kept for display without a join.
type Member struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	UserID    uuid.UUID
	Email     string
	Role      string
	CreatedAt time.Time
	Tasks     []task.Task
}
