package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrMemberNotFound is returned when a member record is not found.
var ErrMemberNotFound = errors.New("member not found")

// ErrDuplicateMember is returned when a user is already a member of the team.
var ErrDuplicateMember = errors.New("user is already a member of this team")

// TeamPatch carries the mutable team fields for a partial update. Nil
// fields are left unchanged.
type TeamPatch struct {
	Name        *string
	Description *string
}

// Repository provides operations on the teams and members tables.
type Repository interface {
	// CreateWithOwner inserts a team and its owner member in a single
	// transaction. Either both rows exist afterwards or neither does.
	CreateWithOwner(ctx context.Context, t *Team, owner *Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	List(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, id uuid.UUID, patch TeamPatch) (*Team, error)
	// Delete removes a team and, via cascade, all its members. Returns
	// false if the team did not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	AddMember(ctx context.Context, m *Member) error
	GetMember(ctx context.Context, teamID, userID uuid.UUID) (*Member, error)
	MembersWithTasks(ctx context.Context, teamID uuid.UUID) ([]Member, error)
	TeamByMemberUserID(ctx context.Context, userID uuid.UUID) (*Team, error)
	MemberFullName(ctx context.Context, memberID uuid.UUID) (string, error)
}
