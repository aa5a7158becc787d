package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskman-io/taskman/internal/task"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool  *pgxpool.Pool
	tasks task.Repository
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{
		pool:  pool,
		tasks: task.NewRepository(pool),
	}
}

// CreateWithOwner inserts a team and its owner member in one transaction.
// A failure on the member insert rolls back the team insert, so no
// ownerless team can be observed.
func (r *PostgresRepository) CreateWithOwner(ctx context.Context, t *Team, owner *Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	teamQuery := `
		INSERT INTO teams (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, teamQuery, t.Name, t.Description, t.OwnerID).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	memberQuery := `
		INSERT INTO members (team_id, user_id, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	owner.TeamID = t.ID
	err = tx.QueryRow(ctx, memberQuery, owner.TeamID, owner.UserID, owner.Email, owner.Role).Scan(&owner.ID, &owner.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting owner member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	t.Members = []Member{*owner}
	return nil
}

// GetByID retrieves a single team with its members.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM teams
		WHERE id = $1`

	var t Team
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	members, err := r.membersByTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Members = members

	return &t, nil
}

// List retrieves all teams with their nested members. Order follows the
// store default for teams (creation time) and members within each team.
func (r *PostgresRepository) List(ctx context.Context) ([]Team, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM teams
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var t Team
		err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		t.Members = []Member{}
		index[t.ID] = len(teams)
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		return []Team{}, nil
	}

	memberRows, err := r.pool.Query(ctx, `
		SELECT id, team_id, user_id, email, role, created_at
		FROM members
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var m Member
		err := memberRows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Email, &m.Role, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		if i, ok := index[m.TeamID]; ok {
			teams[i].Members = append(teams[i].Members, m)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	return teams, nil
}

// Update applies a partial update to a team's name and description.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, patch TeamPatch) (*Team, error) {
	query := `
		UPDATE teams
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, owner_id, created_at, updated_at`

	var t Team
	err := r.pool.QueryRow(ctx, query, id, patch.Name, patch.Description).Scan(
		&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("updating team: %w", err)
	}

	members, err := r.membersByTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Members = members

	return &t, nil
}

// Delete removes a team by its UUID. The members FK cascade removes all
// member rows. Returns false if the team did not exist.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting team: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// AddMember inserts a member record. The unique index on
// (team_id, user_id) is the authoritative duplicate guard; a violation
// maps to ErrDuplicateMember even when a pre-check raced.
func (r *PostgresRepository) AddMember(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (team_id, user_id, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, m.TeamID, m.UserID, m.Email, m.Role).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return ErrDuplicateMember
			}
			if pgErr.Code == "23503" && pgErr.ConstraintName == "members_team_id_fkey" {
				return ErrTeamNotFound
			}
		}
		return fmt.Errorf("inserting member: %w", err)
	}

	return nil
}

// GetMember retrieves the membership of a user in a team, if any.
func (r *PostgresRepository) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*Member, error) {
	query := `
		SELECT id, team_id, user_id, email, role, created_at
		FROM members
		WHERE team_id = $1 AND user_id = $2`

	var m Member
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Email, &m.Role, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("querying member: %w", err)
	}

	return &m, nil
}

// MembersWithTasks retrieves all members of a team together with their
// assigned tasks.
func (r *PostgresRepository) MembersWithTasks(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	members, err := r.membersByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return members, nil
	}

	memberIDs := make([]uuid.UUID, 0, len(members))
	index := make(map[uuid.UUID]int, len(members))
	for i := range members {
		members[i].Tasks = []task.Task{}
		memberIDs = append(memberIDs, members[i].ID)
		index[members[i].ID] = i
	}

	tasks, err := r.tasks.ListByMembers(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("listing member tasks: %w", err)
	}
	for _, t := range tasks {
		if i, ok := index[t.MemberID]; ok {
			members[i].Tasks = append(members[i].Tasks, t)
		}
	}

	return members, nil
}

// TeamByMemberUserID retrieves the team a user belongs to, with members.
func (r *PostgresRepository) TeamByMemberUserID(ctx context.Context, userID uuid.UUID) (*Team, error) {
	query := `
		SELECT t.id
		FROM teams t
		JOIN members m ON m.team_id = t.id
		WHERE m.user_id = $1
		LIMIT 1`

	var teamID uuid.UUID
	err := r.pool.QueryRow(ctx, query, userID).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team by member: %w", err)
	}

	return r.GetByID(ctx, teamID)
}

// MemberFullName retrieves the display name of the user behind a member.
func (r *PostgresRepository) MemberFullName(ctx context.Context, memberID uuid.UUID) (string, error) {
	query := `
		SELECT u.full_name
		FROM members m
		JOIN users u ON u.id = m.user_id
		WHERE m.id = $1`

	var name string
	err := r.pool.QueryRow(ctx, query, memberID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrMemberNotFound
		}
		return "", fmt.Errorf("querying member name: %w", err)
	}

	return name, nil
}

func (r *PostgresRepository) membersByTeam(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, team_id, user_id, email, role, created_at
		FROM members
		WHERE team_id = $1
		ORDER BY created_at ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Email, &m.Role, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	if members == nil {
		members = []Member{}
	}

	return members, nil
}
