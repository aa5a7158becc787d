package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides read access to the tasks table.
type Repository interface {
	// ListByMembers retrieves the tasks assigned to any of the given
	// members, ordered by creation time.
	ListByMembers(ctx context.Context, memberIDs []uuid.UUID) ([]Task, error)
}

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// ListByMembers retrieves all tasks assigned to the given members in one
// query.
func (r *PostgresRepository) ListByMembers(ctx context.Context, memberIDs []uuid.UUID) ([]Task, error) {
	if len(memberIDs) == 0 {
		return []Task{}, nil
	}

	query := `
		SELECT id, member_id, title, status, due_at, created_at
		FROM tasks
		WHERE member_id = ANY($1)
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		err := rows.Scan(&t.ID, &t.MemberID, &t.Title, &t.Status, &t.DueAt, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, nil
}
