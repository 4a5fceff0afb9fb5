package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rouvinerh/is4302-project/internal/domain"
)

func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getPostgresPool connects to the test database, applies the schema and
// wipes any data left over from a previous run.
func getPostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipIfNoIntegration(t)

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("TEST_POSTGRES_USER", "postgres"),
		getEnv("TEST_POSTGRES_PASSWORD", "postgres"),
		getEnv("TEST_POSTGRES_HOST", "localhost"),
		getEnv("TEST_POSTGRES_PORT", "5432"),
		getEnv("TEST_POSTGRES_DB", "marketplace_test"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err, "Failed to create PostgreSQL pool")
	require.NoError(t, pool.Ping(ctx), "Failed to ping PostgreSQL")

	applySchema(t, pool)
	cleanupTestData(t, pool)

	t.Cleanup(pool.Close)
	return pool
}

func applySchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ddl, err := os.ReadFile(filepath.Join("..", "..", "scripts", "schema.sql"))
	require.NoError(t, err, "Failed to read schema.sql")

	_, err = pool.Exec(context.Background(), string(ddl))
	require.NoError(t, err, "Failed to apply schema")
}

func cleanupTestData(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	// Child tables first so foreign keys do not block the deletes.
	statements := []string{
		"DELETE FROM listings",
		"DELETE FROM tickets",
		"DELETE FROM events",
		"DELETE FROM loyalty_allowances",
		"DELETE FROM loyalty_balances",
		"DELETE FROM participant_roles",
		"UPDATE loyalty_supply SET supply = 0 WHERE id = 1",
		"UPDATE treasury SET reserve = 0 WHERE id = 1",
	}
	for _, stmt := range statements {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, "Failed to clean up: %s", stmt)
	}
}

func createTestEvent(t *testing.T, repo *PostgresEventRepository, id uint64) *domain.Event {
	t.Helper()

	event := &domain.Event{
		ID:             id,
		Name:           "Harbour Lights",
		OrganiserID:    "olivia",
		EventTime:      time.Now().Add(48 * time.Hour).UTC().Truncate(time.Microsecond),
		CategoryPrices: [domain.CategoryCount]int64{300, 200, 100},
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(context.Background(), event))
	return event
}

func TestPostgresEventRepository_CreateAndGet(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresEventRepository(pool)
	ctx := context.Background()

	event := createTestEvent(t, repo, 0)

	retrieved, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Name, retrieved.Name)
	assert.Equal(t, event.OrganiserID, retrieved.OrganiserID)
	assert.Equal(t, event.CategoryPrices, retrieved.CategoryPrices)
	assert.True(t, event.EventTime.Equal(retrieved.EventTime))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestPostgresEventRepository_GetByID_NotFound(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresEventRepository(pool)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

// A freshly minted ticket has no previous owner and no approved spender;
// the insert must accept the empty strings and the row must round-trip
// unchanged.
func TestPostgresTicketRepository_CreateFreshTicket(t *testing.T) {
	pool := getPostgresPool(t)
	eventRepo := NewPostgresEventRepository(pool)
	repo := NewPostgresTicketRepository(pool)
	ctx := context.Background()

	createTestEvent(t, eventRepo, 0)

	ticket := &domain.Ticket{
		ID:           0,
		EventID:      0,
		Category:     domain.CategoryA,
		SeatLabel:    "A1",
		NominalPrice: 300,
		OwnerID:      "olivia",
		State:        domain.TicketStateOwned,
	}
	require.NoError(t, repo.Create(ctx, ticket))

	retrieved, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket, retrieved)
	assert.Empty(t, retrieved.PreviousOwnerID)
	assert.Empty(t, retrieved.ApprovedSpender)
}

func TestPostgresTicketRepository_UpdateClearsApproval(t *testing.T) {
	pool := getPostgresPool(t)
	eventRepo := NewPostgresEventRepository(pool)
	repo := NewPostgresTicketRepository(pool)
	ctx := context.Background()

	createTestEvent(t, eventRepo, 0)

	ticket := &domain.Ticket{
		ID:           0,
		EventID:      0,
		Category:     domain.CategoryA,
		SeatLabel:    "A1",
		NominalPrice: 300,
		OwnerID:      "olivia",
		State:        domain.TicketStateOwned,
	}
	require.NoError(t, repo.Create(ctx, ticket))

	ticket.ApprovedSpender = "bob"
	require.NoError(t, repo.Update(ctx, ticket))

	retrieved, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", retrieved.ApprovedSpender)

	// Transfer: new owner, previous owner recorded, approval cleared.
	ticket.OwnerID = "bob"
	ticket.PreviousOwnerID = "olivia"
	ticket.ApprovedSpender = ""
	require.NoError(t, repo.Update(ctx, ticket))

	retrieved, err = repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", retrieved.OwnerID)
	assert.Equal(t, "olivia", retrieved.PreviousOwnerID)
	assert.Empty(t, retrieved.ApprovedSpender)
}

func TestPostgresTicketRepository_GetByID_NotFound(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresTicketRepository(pool)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestPostgresTicketRepository_Update_NotFound(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresTicketRepository(pool)

	err := repo.Update(context.Background(), &domain.Ticket{ID: 404, OwnerID: "bob"})
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestPostgresTicketRepository_CountByOwnerAndEvent(t *testing.T) {
	pool := getPostgresPool(t)
	eventRepo := NewPostgresEventRepository(pool)
	repo := NewPostgresTicketRepository(pool)
	ctx := context.Background()

	createTestEvent(t, eventRepo, 0)

	for slot := 0; slot < 3; slot++ {
		owner := "olivia"
		if slot == 2 {
			owner = "bob"
		}
		require.NoError(t, repo.Create(ctx, &domain.Ticket{
			ID:           uint64(slot),
			EventID:      0,
			Category:     domain.SlotCategory(slot),
			SeatLabel:    domain.SlotSeatLabel(slot),
			NominalPrice: 300,
			OwnerID:      owner,
			State:        domain.TicketStateOwned,
		}))
	}

	count, err := repo.CountByOwnerAndEvent(ctx, "olivia", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountByOwnerAndEvent(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPostgresLoyaltyRepository_Balances(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresLoyaltyRepository(pool)
	ctx := context.Background()

	// Unknown participants read as zero.
	balance, err := repo.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	require.NoError(t, repo.SetBalance(ctx, "alice", 500))
	require.NoError(t, repo.SetBalance(ctx, "alice", 350))

	balance, err = repo.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(350), balance)
}

func TestPostgresLoyaltyRepository_Allowances(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresLoyaltyRepository(pool)
	ctx := context.Background()

	allowance, err := repo.GetAllowance(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), allowance)

	require.NoError(t, repo.SetAllowance(ctx, "alice", "bob", 200))
	require.NoError(t, repo.SetAllowance(ctx, "alice", "bob", 150))

	allowance, err = repo.GetAllowance(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(150), allowance)

	// The grant is directional.
	allowance, err = repo.GetAllowance(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), allowance)
}

func TestPostgresLoyaltyRepository_Supply(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresLoyaltyRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.AddSupply(ctx, 500))
	require.NoError(t, repo.AddSupply(ctx, -200))

	supply, err := repo.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(300), supply)
}

func TestPostgresRoleRepository_DefaultAndSet(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresRoleRepository(pool)
	ctx := context.Background()

	role, err := repo.GetRole(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)

	require.NoError(t, repo.SetRole(ctx, "olivia", domain.RoleOrganiser))
	require.NoError(t, repo.SetRole(ctx, "olivia", domain.RoleAdmin))

	role, err = repo.GetRole(ctx, "olivia")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestPostgresMarketplaceRepository_Reserve(t *testing.T) {
	pool := getPostgresPool(t)
	repo := NewPostgresMarketplaceRepository(pool)
	ctx := context.Background()

	reserve, err := repo.GetReserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), reserve)

	require.NoError(t, repo.SetReserve(ctx, 1_000_000))

	reserve, err = repo.GetReserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), reserve)
}

func TestPostgresMarketplaceRepository_Listings(t *testing.T) {
	pool := getPostgresPool(t)
	eventRepo := NewPostgresEventRepository(pool)
	ticketRepo := NewPostgresTicketRepository(pool)
	repo := NewPostgresMarketplaceRepository(pool)
	ctx := context.Background()

	createTestEvent(t, eventRepo, 0)
	require.NoError(t, ticketRepo.Create(ctx, &domain.Ticket{
		ID:           0,
		EventID:      0,
		Category:     domain.CategoryA,
		SeatLabel:    "A1",
		NominalPrice: 300,
		OwnerID:      "marketplace",
		State:        domain.TicketStateListed,
	}))

	listing, err := repo.GetListing(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, listing)

	require.NoError(t, repo.PutListing(ctx, &domain.Listing{TicketID: 0, SellerID: "bob", Price: 500}))
	require.NoError(t, repo.PutListing(ctx, &domain.Listing{TicketID: 0, SellerID: "bob", Price: 450}))

	listing, err = repo.GetListing(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "bob", listing.SellerID)
	assert.Equal(t, int64(450), listing.Price)

	require.NoError(t, repo.DeleteListing(ctx, 0))

	listing, err = repo.GetListing(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, listing)
}
