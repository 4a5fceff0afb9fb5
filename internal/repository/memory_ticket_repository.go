package repository

import (
	"context"
	"sync"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

// MemoryTicketRepository implements TicketRepository using in-memory storage.
type MemoryTicketRepository struct {
	tickets map[uint64]*domain.Ticket
	byOwner map[string]map[uint64]struct{} // ownerID -> set of ticketIDs
	mu      sync.RWMutex
}

// NewMemoryTicketRepository creates a new in-memory ticket repository
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{
		tickets: make(map[uint64]*domain.Ticket),
		byOwner: make(map[string]map[uint64]struct{}),
	}
}

// Create appends a new ticket
func (r *MemoryTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *ticket
	r.tickets[ticket.ID] = &t
	r.index(ticket.OwnerID, ticket.ID)

	return nil
}

// GetByID retrieves a ticket by id
func (r *MemoryTicketRepository) GetByID(ctx context.Context, id uint64) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, exists := r.tickets[id]
	if !exists {
		return nil, domain.ErrTicketNotFound
	}

	t := *ticket
	return &t, nil
}

// Update overwrites the mutable fields of an existing ticket
func (r *MemoryTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.tickets[ticket.ID]
	if !exists {
		return domain.ErrTicketNotFound
	}

	if prev.OwnerID != ticket.OwnerID {
		r.unindex(prev.OwnerID, ticket.ID)
		r.index(ticket.OwnerID, ticket.ID)
	}

	t := *ticket
	r.tickets[ticket.ID] = &t

	return nil
}

// CountByOwnerAndEvent returns the number of tickets of the given event held
// by the given owner
func (r *MemoryTicketRepository) CountByOwnerAndEvent(ctx context.Context, ownerID string, eventID uint64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for id := range r.byOwner[ownerID] {
		if t, exists := r.tickets[id]; exists && t.EventID == eventID {
			count++
		}
	}

	return count, nil
}

func (r *MemoryTicketRepository) index(ownerID string, ticketID uint64) {
	set, exists := r.byOwner[ownerID]
	if !exists {
		set = make(map[uint64]struct{})
		r.byOwner[ownerID] = set
	}
	set[ticketID] = struct{}{}
}

func (r *MemoryTicketRepository) unindex(ownerID string, ticketID uint64) {
	if set, exists := r.byOwner[ownerID]; exists {
		delete(set, ticketID)
	}
}
