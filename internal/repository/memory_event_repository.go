package repository

import (
	"context"
	"sync"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

// MemoryEventRepository implements EventRepository using in-memory storage.
// This is the default store for development and testing.
type MemoryEventRepository struct {
	events map[uint64]*domain.Event
	count  uint64
	mu     sync.RWMutex
}

// NewMemoryEventRepository creates a new in-memory event repository
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{
		events: make(map[uint64]*domain.Event),
	}
}

// Create appends a new event
func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Clone to avoid external modifications
	e := *event
	r.events[event.ID] = &e
	r.count++

	return nil
}

// GetByID retrieves an event by id
func (r *MemoryEventRepository) GetByID(ctx context.Context, id uint64) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	e := *event
	return &e, nil
}

// Count returns the number of events created so far
func (r *MemoryEventRepository) Count(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count, nil
}
