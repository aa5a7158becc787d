package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Service enforces the team membership invariants: every team is created
// with exactly one owner member, and a user belongs to a team at most
// once.
type Service struct {
	repo Repository
}

// NewService creates a new team Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateTeam persists a new team together with its owner membership.
// Both writes happen in one transaction, so the created team always has
// exactly one member with the owner role.
func (s *Service) CreateTeam(ctx context.Context, name, description string, ownerID uuid.UUID, ownerEmail string) (*Team, error) {
	t := &Team{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	owner := &Member{
		UserID: ownerID,
		Email:  ownerEmail,
		Role:   RoleOwner,
	}

	if err := s.repo.CreateWithOwner(ctx, t, owner); err != nil {
		return nil, fmt.Errorf("creating team: %w", err)
	}

	slog.Info("team created", "team_id", t.ID, "owner_id", ownerID)
	return t, nil
}

// GetTeam retrieves a team with its members.
func (s *Service) GetTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTeams retrieves all teams with nested member collections.
func (s *Service) ListTeams(ctx context.Context) ([]Team, error) {
	return s.repo.List(ctx)
}

// UpdateTeam applies a partial update to a team's name and description.
// Team id and owner are immutable after creation.
func (s *Service) UpdateTeam(ctx context.Context, id uuid.UUID, patch TeamPatch) (*Team, error) {
	return s.repo.Update(ctx, id, patch)
}

// DeleteTeam removes a team and all its members. Returns false if the
// team did not exist, so callers can pick their own response.
func (s *Service) DeleteTeam(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		slog.Info("team deleted", "team_id", id)
	}
	return deleted, nil
}

// AddMember adds a user to a team. Checks run in a fixed order: the
// duplicate-membership check first, then team existence. A user already
// on the team yields ErrDuplicateMember even when the team id would not
// resolve on its own. The existence check here is a fast path; the
// store's unique constraint settles concurrent calls for the same pair.
func (s *Service) AddMember(ctx context.Context, teamID, userID uuid.UUID, email, role string) (*Member, error) {
	existing, err := s.repo.GetMember(ctx, teamID, userID)
	if err != nil && !errors.Is(err, ErrMemberNotFound) {
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateMember
	}

	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	m := &Member{
		TeamID: teamID,
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	if err := s.repo.AddMember(ctx, m); err != nil {
		return nil, err
	}

	slog.Info("member added", "team_id", teamID, "user_id", userID, "role", role)
	return m, nil
}

// MembersWithTasks retrieves all members of a team together with their
// task assignments. Returns ErrTeamNotFound if the team is absent.
func (s *Service) MembersWithTasks(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.repo.MembersWithTasks(ctx, teamID)
}

// TeamOfUser retrieves the team a user belongs to, if any.
func (s *Service) TeamOfUser(ctx context.Context, userID uuid.UUID) (*Team, error) {
	return s.repo.TeamByMemberUserID(ctx, userID)
}

// MemberFullName retrieves the display name of the user behind a member.
func (s *Service) MemberFullName(ctx context.Context, memberID uuid.UUID) (string, error) {
	return s.repo.MemberFullName(ctx, memberID)
}
