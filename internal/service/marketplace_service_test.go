package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/repository"
)

const (
	testOrganiser = "olivia"
	testCustodian = "marketplace"
)

type marketFixture struct {
	mp        *Marketplace
	registry  *TicketRegistry
	ledger    *LoyaltyLedger
	access    *AccessControl
	publisher *MemoryRecordPublisher
}

func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()
	ctx := context.Background()

	access := NewAccessControl(repository.NewMemoryRoleRepository(), testAdmin)
	registry := NewTicketRegistry(repository.NewMemoryTicketRepository(), testCustodian)
	ledger := NewLoyaltyLedger(repository.NewMemoryLoyaltyRepository(), access)
	publisher := NewMemoryRecordPublisher()

	mp := NewMarketplace(
		DefaultMarketplaceConfig(),
		repository.NewMemoryEventRepository(),
		repository.NewMemoryMarketplaceRepository(),
		registry,
		ledger,
		access,
		publisher,
	)

	require.NoError(t, mp.SetUserRole(ctx, testAdmin, testOrganiser, domain.RoleOrganiser))

	return &marketFixture{
		mp:        mp,
		registry:  registry,
		ledger:    ledger,
		access:    access,
		publisher: publisher,
	}
}

// createEvent creates an event one day out with prices [300, 200, 100].
func (f *marketFixture) createEvent(t *testing.T) uint64 {
	t.Helper()
	eventID, err := f.mp.CreateEvent(
		context.Background(),
		testOrganiser,
		"Garden State Live",
		time.Now().Add(24*time.Hour),
		[domain.CategoryCount]int64{300, 200, 100},
	)
	require.NoError(t, err)
	return eventID
}

// escrow moves a ticket from the organiser into marketplace custody.
func (f *marketFixture) escrow(t *testing.T, callerID string, ticketID uint64) {
	t.Helper()
	require.NoError(t, f.mp.EscrowTicket(context.Background(), callerID, ticketID))
}

// buy purchases a custody-held ticket at its full price without points.
func (f *marketFixture) buy(t *testing.T, buyerID string, ticketID uint64, price int64) *PurchaseReceipt {
	t.Helper()
	receipt, err := f.mp.BuyTicket(context.Background(), buyerID, ticketID, 0, f.mp.NominalToWei(price))
	require.NoError(t, err)
	return receipt
}

func TestCreateEventRequiresOrganiser(t *testing.T) {
	f := newMarketFixture(t)

	_, err := f.mp.CreateEvent(context.Background(), "alice", "Show", time.Now().Add(time.Hour), [domain.CategoryCount]int64{1, 1, 1})
	assert.ErrorIs(t, err, domain.ErrNotOrganiser)
}

func TestCreateEventValidation(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	_, err := f.mp.CreateEvent(ctx, testOrganiser, "Show", time.Time{}, [domain.CategoryCount]int64{1, 1, 1})
	assert.ErrorIs(t, err, domain.ErrInvalidEventTime)

	_, err = f.mp.CreateEvent(ctx, testOrganiser, "Show", time.Now().Add(time.Hour), [domain.CategoryCount]int64{1, -1, 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateEventRejectsUnconvertiblePrice(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	// A price whose wei conversion would exceed int64 is rejected up front
	// rather than producing a negative required payment at purchase time.
	tooHigh := math.MaxInt64/f.mp.cfg.WeiPerNominal + 1
	_, err := f.mp.CreateEvent(ctx, testOrganiser, "Show", time.Now().Add(time.Hour), [domain.CategoryCount]int64{tooHigh, 1, 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	// The largest convertible price is still accepted.
	_, err = f.mp.CreateEvent(ctx, testOrganiser, "Show", time.Now().Add(time.Hour), [domain.CategoryCount]int64{tooHigh - 1, 1, 1})
	assert.NoError(t, err)
}

func TestCreateEventMintsTicketBlock(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	eventID := f.createEvent(t)
	assert.Equal(t, uint64(0), eventID)

	// Second event gets the next contiguous block.
	secondID := f.createEvent(t)
	assert.Equal(t, uint64(1), secondID)

	tests := []struct {
		ticketID  uint64
		category  domain.Category
		seatLabel string
		price     int64
	}{
		{0, domain.CategoryA, "A1", 300},
		{49, domain.CategoryA, "A50", 300},
		{50, domain.CategoryB, "B1", 200},
		{119, domain.CategoryB, "B70", 200},
		{120, domain.CategoryC, "C1", 100},
		{199, domain.CategoryC, "C80", 100},
		{200, domain.CategoryA, "A1", 300}, // first ticket of event 1
	}

	for _, tt := range tests {
		ticket, err := f.mp.Ticket(ctx, tt.ticketID)
		require.NoError(t, err, "ticket %d", tt.ticketID)
		assert.Equal(t, tt.category, ticket.Category, "ticket %d", tt.ticketID)
		assert.Equal(t, tt.seatLabel, ticket.SeatLabel, "ticket %d", tt.ticketID)
		assert.Equal(t, tt.price, ticket.NominalPrice, "ticket %d", tt.ticketID)
		assert.Equal(t, testOrganiser, ticket.OwnerID, "ticket %d", tt.ticketID)
		assert.Equal(t, domain.TicketStateOwned, ticket.State, "ticket %d", tt.ticketID)
	}
}

func TestBuyTicketPrimarySale(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)

	receipt := f.buy(t, "bob", 0, 300)
	assert.Equal(t, uint64(0), receipt.TicketID)
	assert.Equal(t, "bob", receipt.BuyerID)
	assert.Equal(t, int64(300), receipt.Price)
	assert.Equal(t, int64(0), receipt.PointsUsed)
	assert.Equal(t, f.mp.NominalToWei(300), receipt.PaymentAmount)

	ticket, err := f.mp.Ticket(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "bob", ticket.OwnerID)
	assert.Equal(t, domain.TicketStateOwned, ticket.State)

	reserve, err := f.mp.Reserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.mp.NominalToWei(300), reserve)
}

func TestBuyTicketNotInCustody(t *testing.T) {
	f := newMarketFixture(t)

	f.createEvent(t)

	_, err := f.mp.BuyTicket(context.Background(), "bob", 0, 0, f.mp.NominalToWei(300))
	assert.ErrorIs(t, err, domain.ErrNotInCustody)
}

func TestBuyTicketPaymentMustBeExact(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)

	required := f.mp.NominalToWei(300)

	_, err := f.mp.BuyTicket(ctx, "bob", 0, 0, required-1)
	assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

	_, err = f.mp.BuyTicket(ctx, "bob", 0, 0, required+1)
	assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

	// A failed purchase leaves no partial state.
	ticket, err := f.mp.Ticket(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, testCustodian, ticket.OwnerID)

	reserve, err := f.mp.Reserve(ctx)
	require.NoError(t, err)
	assert.Zero(t, reserve)
}

func TestBuyTicketLoyaltyDiscount(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)

	// 1000 points buy a 10 nominal unit discount at 100 points per unit.
	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "bob", 1000))

	receipt, err := f.mp.BuyTicket(ctx, "bob", 0, 1000, f.mp.NominalToWei(290))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), receipt.PointsUsed)
	assert.Equal(t, f.mp.NominalToWei(290), receipt.PaymentAmount)

	balance, err := f.ledger.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestBuyTicketFullPointsOnCheapTicket(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 120) // category C, price 100

	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "bob", 1000))

	receipt, err := f.mp.BuyTicket(ctx, "bob", 120, 1000, f.mp.NominalToWei(90))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), receipt.PointsUsed)
	assert.Equal(t, f.mp.NominalToWei(90), receipt.PaymentAmount)

	balance, err := f.ledger.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestBuyTicketPartialPointsNotConsumed(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)

	// 1050 points still buy only a 10 unit discount; the odd 50 stay put.
	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "bob", 1050))

	receipt, err := f.mp.BuyTicket(ctx, "bob", 0, 1050, f.mp.NominalToWei(290))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), receipt.PointsUsed)

	balance, err := f.ledger.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance)
}

func TestBuyTicketInsufficientPoints(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)

	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "bob", 500))

	_, err := f.mp.BuyTicket(ctx, "bob", 0, 600, f.mp.NominalToWei(294))
	assert.ErrorIs(t, err, domain.ErrInsufficientLoyaltyPoints)
}

func TestBuyTicketDiscountCannotExceedPrice(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 120) // category C, price 100

	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "bob", 20000))

	_, err := f.mp.BuyTicket(ctx, "bob", 120, 20000, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestBuyTicketPurchaseLimit(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	for ticketID := uint64(0); ticketID < 5; ticketID++ {
		f.escrow(t, testOrganiser, ticketID)
	}

	for ticketID := uint64(0); ticketID < 4; ticketID++ {
		f.buy(t, "bob", ticketID, 300)
	}

	_, err := f.mp.BuyTicket(ctx, "bob", 4, 0, f.mp.NominalToWei(300))
	assert.ErrorIs(t, err, domain.ErrPurchaseLimitExceeded)

	// A different buyer is unaffected.
	f.buy(t, "carol", 4, 300)
}

func TestBuyTicketExpiredEvent(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	_, err := f.mp.CreateEvent(ctx, testOrganiser, "Yesterday's Show", time.Now().Add(-time.Hour), [domain.CategoryCount]int64{300, 200, 100})
	require.NoError(t, err)
	f.escrow(t, testOrganiser, 0)

	_, err = f.mp.BuyTicket(ctx, "bob", 0, 0, f.mp.NominalToWei(300))
	assert.ErrorIs(t, err, domain.ErrEventExpired)
}

func TestListTicket(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)

	// Bob escrows his ticket back and lists it above face value.
	f.escrow(t, "bob", 0)
	require.NoError(t, f.mp.ListTicket(ctx, "bob", 0, 500))

	ticket, err := f.mp.Ticket(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStateListed, ticket.State)

	listing, err := f.mp.Listing(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "bob", listing.SellerID)
	assert.Equal(t, int64(500), listing.Price)
}

func TestListTicketRequiresCustody(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)

	err := f.mp.ListTicket(ctx, "bob", 0, 500)
	assert.ErrorIs(t, err, domain.ErrNotInCustody)
}

func TestListTicketOnlyByEscrower(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)
	f.escrow(t, "bob", 0)

	err := f.mp.ListTicket(ctx, "mallory", 0, 500)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListTicketRejectsUnconvertiblePrice(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)
	f.escrow(t, "bob", 0)

	// A listing priced beyond the convertible range would make the required
	// payment overflow, leaving the ticket unbuyable; it is rejected and the
	// ticket stays in the OWNED state.
	tooHigh := math.MaxInt64/f.mp.cfg.WeiPerNominal + 1
	err := f.mp.ListTicket(ctx, "bob", 0, tooHigh)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	ticket, err := f.mp.Ticket(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStateOwned, ticket.State)
}

func TestBuyListedTicket(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)
	f.escrow(t, "bob", 0)
	require.NoError(t, f.mp.ListTicket(ctx, "bob", 0, 500))

	// The listing price governs, not the category price.
	_, err := f.mp.BuyTicket(ctx, "carol", 0, 0, f.mp.NominalToWei(300))
	assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

	receipt, err := f.mp.BuyTicket(ctx, "carol", 0, 0, f.mp.NominalToWei(500))
	require.NoError(t, err)
	assert.Equal(t, int64(500), receipt.Price)

	ticket, err := f.mp.Ticket(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "carol", ticket.OwnerID)
	assert.Equal(t, domain.TicketStateOwned, ticket.State)

	listing, err := f.mp.Listing(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, listing, "purchase clears the listing")
}

func TestRedeemTicket(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)

	require.NoError(t, f.mp.RedeemTicket(ctx, "bob", 0))

	ticket, err := f.mp.Ticket(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStateRedeemed, ticket.State)

	// Redemption awards one point per nominal unit of the face value.
	balance, err := f.ledger.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance)

	err = f.mp.RedeemTicket(ctx, "bob", 0)
	assert.ErrorIs(t, err, domain.ErrAlreadyRedeemed)
}

func TestRedeemTicketByApprovedSpender(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)

	require.NoError(t, f.mp.ApproveTicket(ctx, "bob", 0, "scanner"))
	require.NoError(t, f.mp.RedeemTicket(ctx, "scanner", 0))

	// Points go to the owner, not the redeeming spender.
	balance, err := f.ledger.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance)
}

func TestRedeemTicketUnauthorized(t *testing.T) {
	f := newMarketFixture(t)

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)

	err := f.mp.RedeemTicket(context.Background(), "mallory", 0)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRedeemTicketExpiredEvent(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	_, err := f.mp.CreateEvent(ctx, testOrganiser, "Yesterday's Show", time.Now().Add(-time.Hour), [domain.CategoryCount]int64{300, 200, 100})
	require.NoError(t, err)

	err = f.mp.RedeemTicket(ctx, testOrganiser, 0)
	assert.ErrorIs(t, err, domain.ErrEventExpired)
}

func TestDepositFunds(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.mp.DepositFunds(ctx, "alice", 100), domain.ErrNotAdmin)
	assert.ErrorIs(t, f.mp.DepositFunds(ctx, testAdmin, -1), domain.ErrInvalidAmount)

	require.NoError(t, f.mp.DepositFunds(ctx, testAdmin, 100))
	require.NoError(t, f.mp.DepositFunds(ctx, testAdmin, 50))

	reserve, err := f.mp.Reserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(150), reserve)
}

func TestWithdrawFundsLeavesMinimumReserve(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)

	// 250 outstanding points back 2 nominal units of liability.
	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "bob", 250))

	minReserve, err := f.mp.MinimumReserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.mp.NominalToWei(2), minReserve)

	amount, err := f.mp.WithdrawFunds(ctx, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, f.mp.NominalToWei(300)-f.mp.NominalToWei(2), amount)

	reserve, err := f.mp.Reserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, minReserve, reserve, "exactly the minimum reserve remains")

	// Nothing left above the floor.
	_, err = f.mp.WithdrawFunds(ctx, testAdmin)
	assert.ErrorIs(t, err, domain.ErrNoExcessLiquidity)
}

func TestWithdrawFundsAgainstOutstandingSupply(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	// 100 outstanding points back exactly 1 nominal unit.
	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "bob", 100))
	require.NoError(t, f.mp.DepositFunds(ctx, testAdmin, f.mp.NominalToWei(2)))

	amount, err := f.mp.WithdrawFunds(ctx, testAdmin)
	require.NoError(t, err)
	assert.Equal(t, f.mp.NominalToWei(2)-f.mp.NominalToWei(1), amount)

	_, err = f.mp.WithdrawFunds(ctx, testAdmin)
	assert.ErrorIs(t, err, domain.ErrNoExcessLiquidity)
}

func TestWithdrawFundsRequiresAdmin(t *testing.T) {
	f := newMarketFixture(t)

	_, err := f.mp.WithdrawFunds(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
}

func TestWithdrawFundsEmptyTreasury(t *testing.T) {
	f := newMarketFixture(t)

	_, err := f.mp.WithdrawFunds(context.Background(), testAdmin)
	assert.ErrorIs(t, err, domain.ErrNoExcessLiquidity)
}

func TestSetLoyaltyPointsRequiresAdmin(t *testing.T) {
	f := newMarketFixture(t)

	err := f.mp.SetLoyaltyPoints(context.Background(), "alice", "alice", 1000)
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
}

func TestNominalToWei(t *testing.T) {
	f := newMarketFixture(t)

	assert.Equal(t, int64(0), f.mp.NominalToWei(0))
	assert.Equal(t, int64(1_000_000_000_000), f.mp.NominalToWei(1))
	assert.Equal(t, int64(300_000_000_000_000), f.mp.NominalToWei(300))
}

func TestRecordsEmittedInCommitOrder(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)
	f.buy(t, "bob", 0, 300)
	require.NoError(t, f.mp.RedeemTicket(ctx, "bob", 0))
	require.NoError(t, f.mp.DepositFunds(ctx, testAdmin, 100))
	_, err := f.mp.WithdrawFunds(ctx, testAdmin)
	require.NoError(t, err)

	records := f.publisher.Records()
	require.Len(t, records, 5)

	want := []domain.RecordType{
		domain.RecordEventCreated,
		domain.RecordTicketBought,
		domain.RecordTicketRedeemed,
		domain.RecordFundsDeposited,
		domain.RecordFundsWithdrawn,
	}
	for i, record := range records {
		assert.Equal(t, want[i], record.Type, "record %d", i)
		assert.NotEmpty(t, record.ID)
		assert.False(t, record.Timestamp.IsZero())
	}

	bought := records[1]
	assert.Equal(t, uint64(0), bought.TicketID)
	assert.Equal(t, "bob", bought.Participant)
	assert.Equal(t, int64(300), bought.Price)
	assert.Equal(t, f.mp.NominalToWei(300), bought.Amount)
}

// Failed operations must not emit records.
func TestNoRecordOnFailedOperation(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 0)

	before := len(f.publisher.Records())
	_, err := f.mp.BuyTicket(ctx, "bob", 0, 0, 1)
	require.ErrorIs(t, err, domain.ErrIncorrectPayment)
	assert.Len(t, f.publisher.Records(), before)
}

func TestFullResaleLifecycle(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.createEvent(t)
	f.escrow(t, testOrganiser, 50) // category B, price 200
	f.buy(t, "bob", 50, 200)

	f.escrow(t, "bob", 50)
	require.NoError(t, f.mp.ListTicket(ctx, "bob", 50, 250))

	require.NoError(t, f.mp.SetLoyaltyPoints(ctx, testAdmin, "carol", 500))
	receipt, err := f.mp.BuyTicket(ctx, "carol", 50, 500, f.mp.NominalToWei(245))
	require.NoError(t, err)
	assert.Equal(t, int64(250), receipt.Price)
	assert.Equal(t, int64(500), receipt.PointsUsed)

	require.NoError(t, f.mp.RedeemTicket(ctx, "carol", 50))

	// Redemption awards the face value, not the resale price.
	balance, err := f.ledger.BalanceOf(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)

	reserve, err := f.mp.Reserve(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.mp.NominalToWei(200)+f.mp.NominalToWei(245), reserve)

	ticket, err := f.mp.Ticket(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStateRedeemed, ticket.State)
}
