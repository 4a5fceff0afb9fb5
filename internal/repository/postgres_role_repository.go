package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rouvinerh/is4302-project/internal/domain"
)

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRoleRepository creates a new PostgresRoleRepository
func NewPostgresRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

// GetRole returns the role of a participant (RoleUser if unassigned)
func (r *PostgresRoleRepository) GetRole(ctx context.Context, participantID string) (domain.Role, error) {
	query := `SELECT role FROM participant_roles WHERE participant_id = $1`

	var role domain.Role
	err := r.pool.QueryRow(ctx, query, participantID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RoleUser, nil
		}
		return domain.RoleUser, fmt.Errorf("failed to get role: %w", err)
	}

	return role, nil
}

// SetRole assigns a role to a participant
func (r *PostgresRoleRepository) SetRole(ctx context.Context, participantID string, role domain.Role) error {
	query := `
		INSERT INTO participant_roles (participant_id, role)
		VALUES ($1, $2)
		ON CONFLICT (participant_id) DO UPDATE SET role = EXCLUDED.role
	`

	if _, err := r.pool.Exec(ctx, query, participantID, role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	return nil
}
