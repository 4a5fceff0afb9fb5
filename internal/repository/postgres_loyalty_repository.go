package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLoyaltyRepository implements LoyaltyRepository using PostgreSQL
type PostgresLoyaltyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLoyaltyRepository creates a new PostgresLoyaltyRepository
func NewPostgresLoyaltyRepository(pool *pgxpool.Pool) *PostgresLoyaltyRepository {
	return &PostgresLoyaltyRepository{pool: pool}
}

// GetBalance returns the balance of a participant (zero if unknown)
func (r *PostgresLoyaltyRepository) GetBalance(ctx context.Context, participantID string) (int64, error) {
	query := `SELECT balance FROM loyalty_balances WHERE participant_id = $1`

	var balance int64
	err := r.pool.QueryRow(ctx, query, participantID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// SetBalance sets the balance of a participant
func (r *PostgresLoyaltyRepository) SetBalance(ctx context.Context, participantID string, amount int64) error {
	query := `
		INSERT INTO loyalty_balances (participant_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (participant_id) DO UPDATE SET balance = EXCLUDED.balance
	`

	if _, err := r.pool.Exec(ctx, query, participantID, amount); err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}

	return nil
}

// GetAllowance returns the allowance granted by owner to spender
func (r *PostgresLoyaltyRepository) GetAllowance(ctx context.Context, ownerID, spenderID string) (int64, error) {
	query := `SELECT allowance FROM loyalty_allowances WHERE owner_id = $1 AND spender_id = $2`

	var allowance int64
	err := r.pool.QueryRow(ctx, query, ownerID, spenderID).Scan(&allowance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get allowance: %w", err)
	}

	return allowance, nil
}

// SetAllowance sets the allowance granted by owner to spender
func (r *PostgresLoyaltyRepository) SetAllowance(ctx context.Context, ownerID, spenderID string, amount int64) error {
	query := `
		INSERT INTO loyalty_allowances (owner_id, spender_id, allowance)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, spender_id) DO UPDATE SET allowance = EXCLUDED.allowance
	`

	if _, err := r.pool.Exec(ctx, query, ownerID, spenderID, amount); err != nil {
		return fmt.Errorf("failed to set allowance: %w", err)
	}

	return nil
}

// TotalSupply returns total minted minus total burned
func (r *PostgresLoyaltyRepository) TotalSupply(ctx context.Context) (int64, error) {
	var supply int64
	err := r.pool.QueryRow(ctx, `SELECT supply FROM loyalty_supply WHERE id = 1`).Scan(&supply)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get supply: %w", err)
	}

	return supply, nil
}

// AddSupply adjusts the outstanding supply by delta
func (r *PostgresLoyaltyRepository) AddSupply(ctx context.Context, delta int64) error {
	query := `
		INSERT INTO loyalty_supply (id, supply)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET supply = loyalty_supply.supply + EXCLUDED.supply
	`

	if _, err := r.pool.Exec(ctx, query, delta); err != nil {
		return fmt.Errorf("failed to adjust supply: %w", err)
	}

	return nil
}
