package repository

import (
	"context"
	"sync"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

// MemoryRoleRepository implements RoleRepository using in-memory storage.
type MemoryRoleRepository struct {
	roles map[string]domain.Role
	mu    sync.RWMutex
}

// NewMemoryRoleRepository creates a new in-memory role repository
func NewMemoryRoleRepository() *MemoryRoleRepository {
	return &MemoryRoleRepository{
		roles: make(map[string]domain.Role),
	}
}

// GetRole returns the role of a participant (RoleUser if unassigned)
func (r *MemoryRoleRepository) GetRole(ctx context.Context, participantID string) (domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roles[participantID], nil
}

// SetRole assigns a role to a participant
func (r *MemoryRoleRepository) SetRole(ctx context.Context, participantID string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[participantID] = role
	return nil
}
