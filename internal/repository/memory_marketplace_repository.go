package repository

import (
	"context"
	"sync"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

// MemoryMarketplaceRepository implements MarketplaceRepository using
// in-memory storage.
type MemoryMarketplaceRepository struct {
	reserve  int64
	listings map[uint64]*domain.Listing
	mu       sync.RWMutex
}

// NewMemoryMarketplaceRepository creates a new in-memory marketplace
// repository
func NewMemoryMarketplaceRepository() *MemoryMarketplaceRepository {
	return &MemoryMarketplaceRepository{
		listings: make(map[uint64]*domain.Listing),
	}
}

// GetReserve returns the treasury reserve in payment currency
func (r *MemoryMarketplaceRepository) GetReserve(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reserve, nil
}

// SetReserve sets the treasury reserve
func (r *MemoryMarketplaceRepository) SetReserve(ctx context.Context, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reserve = amount
	return nil
}

// PutListing records a resale listing, replacing any existing one
func (r *MemoryMarketplaceRepository) PutListing(ctx context.Context, listing *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := *listing
	r.listings[listing.TicketID] = &l

	return nil
}

// GetListing returns the listing for a ticket, or nil if none exists
func (r *MemoryMarketplaceRepository) GetListing(ctx context.Context, ticketID uint64) (*domain.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, exists := r.listings[ticketID]
	if !exists {
		return nil, nil
	}

	l := *listing
	return &l, nil
}

// DeleteListing removes the listing for a ticket, if any
func (r *MemoryMarketplaceRepository) DeleteListing(ctx context.Context, ticketID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listings, ticketID)
	return nil
}
