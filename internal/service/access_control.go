package service

import (
	"context"

	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/repository"
)

// AccessControl resolves participant identifiers to roles. It is the single
// capability check consulted at the start of every mutating operation.
type AccessControl struct {
	roleRepo repository.RoleRepository
	adminID  string // bootstrap admin, always ADMIN
}

// NewAccessControl creates a new AccessControl. adminID is the bootstrap
// identity that holds the admin role regardless of the role map.
func NewAccessControl(roleRepo repository.RoleRepository, adminID string) *AccessControl {
	return &AccessControl{
		roleRepo: roleRepo,
		adminID:  adminID,
	}
}

// RoleOf returns the role of a participant. Unassigned participants are
// plain users.
func (a *AccessControl) RoleOf(ctx context.Context, participantID string) (domain.Role, error) {
	if participantID == a.adminID {
		return domain.RoleAdmin, nil
	}
	return a.roleRepo.GetRole(ctx, participantID)
}

// RequireOrganiser fails with ErrNotOrganiser unless the participant holds
// the organiser role.
func (a *AccessControl) RequireOrganiser(ctx context.Context, participantID string) error {
	role, err := a.RoleOf(ctx, participantID)
	if err != nil {
		return err
	}
	if role != domain.RoleOrganiser {
		return domain.ErrNotOrganiser
	}
	return nil
}

// RequireAdmin fails with ErrNotAdmin unless the participant holds the admin
// role.
func (a *AccessControl) RequireAdmin(ctx context.Context, participantID string) error {
	role, err := a.RoleOf(ctx, participantID)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin {
		return domain.ErrNotAdmin
	}
	return nil
}

// SetRole assigns a role to a participant. Only admins may assign roles.
func (a *AccessControl) SetRole(ctx context.Context, callerID, participantID string, role domain.Role) error {
	if err := a.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	return a.roleRepo.SetRole(ctx, participantID, role)
}
