package service

import (
	"context"
	"sync"

	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/repository"
)

// TicketRegistry owns ticket entities: creation, ownership, delegated
// transfer approval and the ticket lifecycle state machine. Creation and
// state transitions are privileged to the registry owner (the marketplace
// orchestrator identity, delegated at bootstrap).
type TicketRegistry struct {
	ticketRepo repository.TicketRepository
	ownerID    string

	// mu serializes check-and-set mutations so that ownership and approval
	// checks are evaluated against committed state.
	mu sync.Mutex
}

// NewTicketRegistry creates a new TicketRegistry. ownerID is the identity
// privileged to create tickets and drive state transitions.
func NewTicketRegistry(ticketRepo repository.TicketRepository, ownerID string) *TicketRegistry {
	return &TicketRegistry{
		ticketRepo: ticketRepo,
		ownerID:    ownerID,
	}
}

// Create mints a new ticket in state OWNED for initialOwner. Registry owner
// only.
func (r *TicketRegistry) Create(ctx context.Context, callerID string, ticketID, eventID uint64, category domain.Category, seatLabel string, nominalPrice int64, initialOwnerID string) (*domain.Ticket, error) {
	if callerID != r.ownerID {
		return nil, domain.ErrUnauthorized
	}
	if nominalPrice < 0 {
		return nil, domain.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ticket := &domain.Ticket{
		ID:           ticketID,
		EventID:      eventID,
		Category:     category,
		SeatLabel:    seatLabel,
		NominalPrice: nominalPrice,
		OwnerID:      initialOwnerID,
		State:        domain.TicketStateOwned,
	}

	if err := r.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

// Transfer moves a ticket to a new owner. The caller must be the current
// owner or the approved spender. Any outstanding approval is cleared and the
// previous owner is recorded.
func (r *TicketRegistry) Transfer(ctx context.Context, callerID string, ticketID uint64, toID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, err := r.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if callerID != ticket.OwnerID && callerID != ticket.ApprovedSpender {
		return domain.ErrUnauthorized
	}

	ticket.PreviousOwnerID = ticket.OwnerID
	ticket.OwnerID = toID
	ticket.ApprovedSpender = ""

	return r.ticketRepo.Update(ctx, ticket)
}

// Approve sets the approved spender for a ticket, overwriting any prior
// approval. Owner only.
func (r *TicketRegistry) Approve(ctx context.Context, callerID string, ticketID uint64, spenderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, err := r.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if callerID != ticket.OwnerID {
		return domain.ErrUnauthorized
	}

	ticket.ApprovedSpender = spenderID

	return r.ticketRepo.Update(ctx, ticket)
}

// SetState drives the ticket lifecycle state machine. Registry owner only.
// Transitions outside the table (OWNED->LISTED, LISTED->OWNED,
// OWNED->REDEEMED) fail with ErrInvalidTicketState.
func (r *TicketRegistry) SetState(ctx context.Context, callerID string, ticketID uint64, next domain.TicketState) error {
	if callerID != r.ownerID {
		return domain.ErrUnauthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, err := r.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if !ticket.State.CanTransitionTo(next) {
		return domain.ErrInvalidTicketState
	}

	ticket.State = next

	return r.ticketRepo.Update(ctx, ticket)
}

// OwnerOf returns the current owner of a ticket.
func (r *TicketRegistry) OwnerOf(ctx context.Context, ticketID uint64) (string, error) {
	ticket, err := r.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return "", err
	}
	return ticket.OwnerID, nil
}

// StateOf returns the lifecycle state of a ticket.
func (r *TicketRegistry) StateOf(ctx context.Context, ticketID uint64) (domain.TicketState, error) {
	ticket, err := r.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return 0, err
	}
	return ticket.State, nil
}

// DetailsOf returns the full ticket entity.
func (r *TicketRegistry) DetailsOf(ctx context.Context, ticketID uint64) (*domain.Ticket, error) {
	return r.ticketRepo.GetByID(ctx, ticketID)
}

// ApprovedSpenderOf returns the approved spender for a ticket, if any.
func (r *TicketRegistry) ApprovedSpenderOf(ctx context.Context, ticketID uint64) (string, error) {
	ticket, err := r.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return "", err
	}
	return ticket.ApprovedSpender, nil
}

// CountOwnedForEvent returns the number of tickets of an event held by a
// participant.
func (r *TicketRegistry) CountOwnedForEvent(ctx context.Context, ownerID string, eventID uint64) (int, error) {
	return r.ticketRepo.CountByOwnerAndEvent(ctx, ownerID, eventID)
}
