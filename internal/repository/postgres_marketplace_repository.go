package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rouvinerh/is4302-project/internal/domain"
)

// PostgresMarketplaceRepository implements MarketplaceRepository using
// PostgreSQL
type PostgresMarketplaceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMarketplaceRepository creates a new
// PostgresMarketplaceRepository
func NewPostgresMarketplaceRepository(pool *pgxpool.Pool) *PostgresMarketplaceRepository {
	return &PostgresMarketplaceRepository{pool: pool}
}

// GetReserve returns the treasury reserve in payment currency
func (r *PostgresMarketplaceRepository) GetReserve(ctx context.Context) (int64, error) {
	var reserve int64
	err := r.pool.QueryRow(ctx, `SELECT reserve FROM treasury WHERE id = 1`).Scan(&reserve)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get reserve: %w", err)
	}

	return reserve, nil
}

// SetReserve sets the treasury reserve
func (r *PostgresMarketplaceRepository) SetReserve(ctx context.Context, amount int64) error {
	query := `
		INSERT INTO treasury (id, reserve)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET reserve = EXCLUDED.reserve
	`

	if _, err := r.pool.Exec(ctx, query, amount); err != nil {
		return fmt.Errorf("failed to set reserve: %w", err)
	}

	return nil
}

// PutListing records a resale listing, replacing any existing one
func (r *PostgresMarketplaceRepository) PutListing(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (ticket_id, seller_id, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticket_id) DO UPDATE SET seller_id = EXCLUDED.seller_id, price = EXCLUDED.price
	`

	if _, err := r.pool.Exec(ctx, query, listing.TicketID, listing.SellerID, listing.Price); err != nil {
		return fmt.Errorf("failed to put listing: %w", err)
	}

	return nil
}

// GetListing returns the listing for a ticket, or nil if none exists
func (r *PostgresMarketplaceRepository) GetListing(ctx context.Context, ticketID uint64) (*domain.Listing, error) {
	query := `SELECT ticket_id, seller_id, price FROM listings WHERE ticket_id = $1`

	listing := &domain.Listing{}
	err := r.pool.QueryRow(ctx, query, ticketID).Scan(&listing.TicketID, &listing.SellerID, &listing.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}

// DeleteListing removes the listing for a ticket, if any
func (r *PostgresMarketplaceRepository) DeleteListing(ctx context.Context, ticketID uint64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE ticket_id = $1`, ticketID); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return nil
}
