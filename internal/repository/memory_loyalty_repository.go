package repository

import (
	"context"
	"sync"
)

type allowanceKey struct {
	owner   string
	spender string
}

// MemoryLoyaltyRepository implements LoyaltyRepository using in-memory
// storage.
type MemoryLoyaltyRepository struct {
	balances   map[string]int64
	allowances map[allowanceKey]int64
	supply     int64
	mu         sync.RWMutex
}

// NewMemoryLoyaltyRepository creates a new in-memory loyalty repository
func NewMemoryLoyaltyRepository() *MemoryLoyaltyRepository {
	return &MemoryLoyaltyRepository{
		balances:   make(map[string]int64),
		allowances: make(map[allowanceKey]int64),
	}
}

// GetBalance returns the balance of a participant (zero if unknown)
func (r *MemoryLoyaltyRepository) GetBalance(ctx context.Context, participantID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[participantID], nil
}

// SetBalance sets the balance of a participant
func (r *MemoryLoyaltyRepository) SetBalance(ctx context.Context, participantID string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[participantID] = amount
	return nil
}

// GetAllowance returns the allowance granted by owner to spender
func (r *MemoryLoyaltyRepository) GetAllowance(ctx context.Context, ownerID, spenderID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allowances[allowanceKey{ownerID, spenderID}], nil
}

// SetAllowance sets the allowance granted by owner to spender
func (r *MemoryLoyaltyRepository) SetAllowance(ctx context.Context, ownerID, spenderID string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allowances[allowanceKey{ownerID, spenderID}] = amount
	return nil
}

// TotalSupply returns total minted minus total burned
func (r *MemoryLoyaltyRepository) TotalSupply(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.supply, nil
}

// AddSupply adjusts the outstanding supply by delta
func (r *MemoryLoyaltyRepository) AddSupply(ctx context.Context, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supply += delta
	return nil
}
