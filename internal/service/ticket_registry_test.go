package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/repository"
)

const registryOwner = "marketplace"

func newTestRegistry(t *testing.T) *TicketRegistry {
	t.Helper()
	return NewTicketRegistry(repository.NewMemoryTicketRepository(), registryOwner)
}

func mustCreateTicket(t *testing.T, r *TicketRegistry, ticketID uint64, ownerID string) *domain.Ticket {
	t.Helper()
	ticket, err := r.Create(context.Background(), registryOwner, ticketID, 0, domain.CategoryA, "A1", 100, ownerID)
	require.NoError(t, err)
	return ticket
}

func TestRegistryCreate(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	ticket := mustCreateTicket(t, r, 1, "alice")
	assert.Equal(t, "alice", ticket.OwnerID)
	assert.Equal(t, domain.TicketStateOwned, ticket.State)

	owner, err := r.OwnerOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestRegistryCreateUnauthorized(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Create(context.Background(), "alice", 1, 0, domain.CategoryA, "A1", 100, "alice")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegistryCreateNegativePrice(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Create(context.Background(), registryOwner, 1, 0, domain.CategoryA, "A1", -1, "alice")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRegistryUnknownTicket(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.OwnerOf(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)

	_, err = r.StateOf(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)

	_, err = r.DetailsOf(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)

	err = r.Transfer(ctx, "alice", 42, "bob")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestRegistryTransfer(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	mustCreateTicket(t, r, 1, "alice")

	require.NoError(t, r.Transfer(ctx, "alice", 1, "bob"))

	ticket, err := r.DetailsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", ticket.OwnerID)
	assert.Equal(t, "alice", ticket.PreviousOwnerID)
}

func TestRegistryTransferUnauthorized(t *testing.T) {
	r := newTestRegistry(t)
	mustCreateTicket(t, r, 1, "alice")

	err := r.Transfer(context.Background(), "mallory", 1, "mallory")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegistryTransferByApprovedSpender(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	mustCreateTicket(t, r, 1, "alice")

	require.NoError(t, r.Approve(ctx, "alice", 1, "bob"))
	require.NoError(t, r.Transfer(ctx, "bob", 1, "carol"))

	ticket, err := r.DetailsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "carol", ticket.OwnerID)
	assert.Empty(t, ticket.ApprovedSpender, "transfer clears the approval")
}

func TestRegistryApprove(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	mustCreateTicket(t, r, 1, "alice")

	require.NoError(t, r.Approve(ctx, "alice", 1, "bob"))

	spender, err := r.ApprovedSpenderOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", spender)

	// A later approval overwrites the outstanding one.
	require.NoError(t, r.Approve(ctx, "alice", 1, "carol"))
	spender, err = r.ApprovedSpenderOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "carol", spender)
}

func TestRegistryApproveNotOwner(t *testing.T) {
	r := newTestRegistry(t)
	mustCreateTicket(t, r, 1, "alice")

	err := r.Approve(context.Background(), "bob", 1, "bob")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegistrySetState(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	mustCreateTicket(t, r, 1, "alice")

	require.NoError(t, r.SetState(ctx, registryOwner, 1, domain.TicketStateListed))

	// A listed ticket cannot be redeemed directly.
	err := r.SetState(ctx, registryOwner, 1, domain.TicketStateRedeemed)
	assert.ErrorIs(t, err, domain.ErrInvalidTicketState)

	require.NoError(t, r.SetState(ctx, registryOwner, 1, domain.TicketStateOwned))
	require.NoError(t, r.SetState(ctx, registryOwner, 1, domain.TicketStateRedeemed))

	// REDEEMED is terminal.
	err = r.SetState(ctx, registryOwner, 1, domain.TicketStateOwned)
	assert.ErrorIs(t, err, domain.ErrInvalidTicketState)
}

func TestRegistrySetStateUnauthorized(t *testing.T) {
	r := newTestRegistry(t)
	mustCreateTicket(t, r, 1, "alice")

	err := r.SetState(context.Background(), "alice", 1, domain.TicketStateListed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegistryCountOwnedForEvent(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	for i := uint64(0); i < 3; i++ {
		_, err := r.Create(ctx, registryOwner, i, 0, domain.CategoryA, "A1", 100, "alice")
		require.NoError(t, err)
	}
	_, err := r.Create(ctx, registryOwner, 200, 1, domain.CategoryA, "A1", 100, "alice")
	require.NoError(t, err)

	count, err := r.CountOwnedForEvent(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = r.CountOwnedForEvent(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = r.CountOwnedForEvent(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
