package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/repository"
)

func newTestAccessControl() *AccessControl {
	return NewAccessControl(repository.NewMemoryRoleRepository(), testAdmin)
}

func TestAccessControlDefaultRole(t *testing.T) {
	a := newTestAccessControl()

	role, err := a.RoleOf(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)
}

func TestAccessControlBootstrapAdmin(t *testing.T) {
	a := newTestAccessControl()

	role, err := a.RoleOf(context.Background(), testAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestAccessControlSetRole(t *testing.T) {
	a := newTestAccessControl()
	ctx := context.Background()

	require.NoError(t, a.SetRole(ctx, testAdmin, "olivia", domain.RoleOrganiser))

	role, err := a.RoleOf(ctx, "olivia")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrganiser, role)

	assert.NoError(t, a.RequireOrganiser(ctx, "olivia"))
	assert.ErrorIs(t, a.RequireAdmin(ctx, "olivia"), domain.ErrNotAdmin)
}

func TestAccessControlSetRoleRequiresAdmin(t *testing.T) {
	a := newTestAccessControl()

	err := a.SetRole(context.Background(), "alice", "alice", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
}

func TestAccessControlSetRoleInvalidRole(t *testing.T) {
	a := newTestAccessControl()

	err := a.SetRole(context.Background(), testAdmin, "alice", domain.Role(99))
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestAccessControlRequireOrganiser(t *testing.T) {
	a := newTestAccessControl()

	err := a.RequireOrganiser(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrNotOrganiser)
}
