package task

import (
	"time"

	"github.com/google/uuid"
)

// Task status values.
const (
	StatusOpen = "open"
	StatusDone = "done"
)

// Task represents a row in the tasks table. Task lifecycle is owned by a
// separate subsystem; this service only reads tasks when aggregating
// team members.
type Task struct {
	ID        uuid.UUID
	MemberID  uuid.UUID
	Title     string
	Status    string
	DueAt     *time.Time
	CreatedAt time.Time
}
