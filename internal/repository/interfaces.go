package repository

import (
	"context"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

// EventRepository defines data access for the append-only event table.
type EventRepository interface {
	// Create appends a new event. Event ids are allocated by the caller.
	Create(ctx context.Context, event *domain.Event) error

	// GetByID retrieves an event by id.
	GetByID(ctx context.Context, id uint64) (*domain.Event, error)

	// Count returns the number of events created so far.
	Count(ctx context.Context) (uint64, error)
}

// TicketRepository defines data access for the ticket table. Rows are
// append-only by id; ownership, approval and state fields are mutable.
type TicketRepository interface {
	// Create appends a new ticket.
	Create(ctx context.Context, ticket *domain.Ticket) error

	// GetByID retrieves a ticket by id.
	GetByID(ctx context.Context, id uint64) (*domain.Ticket, error)

	// Update overwrites the mutable fields of an existing ticket.
	Update(ctx context.Context, ticket *domain.Ticket) error

	// CountByOwnerAndEvent returns the number of tickets of the given event
	// held by the given owner.
	CountByOwnerAndEvent(ctx context.Context, ownerID string, eventID uint64) (int, error)
}

// LoyaltyRepository defines data access for loyalty point balances, the
// delegated-spend allowance map and the outstanding supply counters.
type LoyaltyRepository interface {
	// GetBalance returns the balance of a participant (zero if unknown).
	GetBalance(ctx context.Context, participantID string) (int64, error)

	// SetBalance sets the balance of a participant.
	SetBalance(ctx context.Context, participantID string, amount int64) error

	// GetAllowance returns the allowance granted by owner to spender.
	GetAllowance(ctx context.Context, ownerID, spenderID string) (int64, error)

	// SetAllowance sets the allowance granted by owner to spender.
	SetAllowance(ctx context.Context, ownerID, spenderID string, amount int64) error

	// TotalSupply returns total minted minus total burned.
	TotalSupply(ctx context.Context) (int64, error)

	// AddSupply adjusts the outstanding supply by delta (positive on mint,
	// negative on burn).
	AddSupply(ctx context.Context, delta int64) error
}

// RoleRepository defines data access for the participant role map.
type RoleRepository interface {
	// GetRole returns the role of a participant (RoleUser if unassigned).
	GetRole(ctx context.Context, participantID string) (domain.Role, error)

	// SetRole assigns a role to a participant.
	SetRole(ctx context.Context, participantID string, role domain.Role) error
}

// MarketplaceRepository defines data access for marketplace-owned state:
// the treasury reserve scalar and the resale listing map.
type MarketplaceRepository interface {
	// GetReserve returns the treasury reserve in payment currency.
	GetReserve(ctx context.Context) (int64, error)

	// SetReserve sets the treasury reserve.
	SetReserve(ctx context.Context, amount int64) error

	// PutListing records a resale listing, replacing any existing one.
	PutListing(ctx context.Context, listing *domain.Listing) error

	// GetListing returns the listing for a ticket, or nil if none exists.
	GetListing(ctx context.Context, ticketID uint64) (*domain.Listing, error)

	// DeleteListing removes the listing for a ticket, if any.
	DeleteListing(ctx context.Context, ticketID uint64) error
}
