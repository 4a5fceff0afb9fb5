package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rouvinerh/is4302-project/internal/domain"
)

// PostgresTicketRepository implements TicketRepository using PostgreSQL
type PostgresTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTicketRepository creates a new PostgresTicketRepository
func NewPostgresTicketRepository(pool *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{pool: pool}
}

// previous_owner_id and approved_spender are NOT NULL with '' meaning
// "none", matching the domain zero value, so rows round-trip unchanged.
const ticketColumns = `id, event_id, category, seat_label, nominal_price, owner_id, previous_owner_id, approved_spender, state`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}
	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.Category,
		&ticket.SeatLabel,
		&ticket.NominalPrice,
		&ticket.OwnerID,
		&ticket.PreviousOwnerID,
		&ticket.ApprovedSpender,
		&ticket.State,
	)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Create appends a new ticket
func (r *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, event_id, category, seat_label, nominal_price, owner_id, previous_owner_id, approved_spender, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.EventID,
		ticket.Category,
		ticket.SeatLabel,
		ticket.NominalPrice,
		ticket.OwnerID,
		ticket.PreviousOwnerID,
		ticket.ApprovedSpender,
		ticket.State,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}

	return nil
}

// GetByID retrieves a ticket by id
func (r *PostgresTicketRepository) GetByID(ctx context.Context, id uint64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id = $1`, ticketColumns)

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return ticket, nil
}

// Update overwrites the mutable fields of an existing ticket
func (r *PostgresTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		UPDATE tickets
		SET owner_id = $2,
		    previous_owner_id = $3,
		    approved_spender = $4,
		    state = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.OwnerID,
		ticket.PreviousOwnerID,
		ticket.ApprovedSpender,
		ticket.State,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}

	return nil
}

// CountByOwnerAndEvent returns the number of tickets of the given event held
// by the given owner
func (r *PostgresTicketRepository) CountByOwnerAndEvent(ctx context.Context, ownerID string, eventID uint64) (int, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE owner_id = $1 AND event_id = $2`

	var count int
	if err := r.pool.QueryRow(ctx, query, ownerID, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return count, nil
}
