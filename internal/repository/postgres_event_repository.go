package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rouvinerh/is4302-project/internal/domain"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// Create appends a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, name, organiser_id, event_time, price_cat_a, price_cat_b, price_cat_c, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Name,
		event.OrganiserID,
		event.EventTime,
		event.CategoryPrices[0],
		event.CategoryPrices[1],
		event.CategoryPrices[2],
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by id
func (r *PostgresEventRepository) GetByID(ctx context.Context, id uint64) (*domain.Event, error) {
	query := `
		SELECT id, name, organiser_id, event_time, price_cat_a, price_cat_b, price_cat_c, created_at
		FROM events
		WHERE id = $1
	`

	event := &domain.Event{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.OrganiserID,
		&event.EventTime,
		&event.CategoryPrices[0],
		&event.CategoryPrices[1],
		&event.CategoryPrices[2],
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// Count returns the number of events created so far
func (r *PostgresEventRepository) Count(ctx context.Context) (uint64, error) {
	var count uint64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
