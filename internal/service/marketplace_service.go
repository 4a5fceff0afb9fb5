package service

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/metrics"
	"github.com/rouvinerh/is4302-project/internal/repository"
	"github.com/rouvinerh/is4302-project/pkg/logger"
	"go.uber.org/zap"
)

// MarketplaceConfig contains configuration for the marketplace orchestrator.
type MarketplaceConfig struct {
	// AdminID is the bootstrap admin identity.
	AdminID string
	// CustodianID is the marketplace's own identity: the registry owner and
	// the escrow custodian tickets are transferred to before sale.
	CustodianID string
	// WeiPerNominal is the external exchange rate: payment currency units
	// per nominal unit.
	WeiPerNominal int64
	// PointsPerNominal is the loyalty spending rate: points per nominal
	// unit of discount.
	PointsPerNominal int64
	// MaxTicketsPerBuyer is the per-event purchase limit.
	MaxTicketsPerBuyer int
}

// DefaultMarketplaceConfig returns the default marketplace configuration
func DefaultMarketplaceConfig() *MarketplaceConfig {
	return &MarketplaceConfig{
		AdminID:            "admin",
		CustodianID:        "marketplace",
		WeiPerNominal:      1_000_000_000_000,
		PointsPerNominal:   100,
		MaxTicketsPerBuyer: 4,
	}
}

// PurchaseReceipt is the result of a successful ticket purchase.
type PurchaseReceipt struct {
	TicketID      uint64 `json:"ticket_id"`
	BuyerID       string `json:"buyer_id"`
	Price         int64  `json:"price"`          // nominal units
	PointsUsed    int64  `json:"points_used"`    // loyalty points consumed
	PaymentAmount int64  `json:"payment_amount"` // payment currency settled
}

// Marketplace is the orchestrator tying pricing, access control,
// purchase-limit enforcement and treasury solvency together. It is the sole
// privileged caller into TicketRegistry state transitions.
//
// All mutating operations are serialized by a single operation mutex and
// validate completely before mutating, so a failed operation leaves no
// partial state. Tickets in marketplace custody can only be moved by the
// orchestrator itself, which keeps validations stable until commit.
type Marketplace struct {
	cfg        *MarketplaceConfig
	eventRepo  repository.EventRepository
	marketRepo repository.MarketplaceRepository
	registry   *TicketRegistry
	ledger     *LoyaltyLedger
	access     *AccessControl
	publisher  RecordPublisher

	opMu sync.Mutex
}

// NewMarketplace creates a new Marketplace orchestrator.
func NewMarketplace(
	cfg *MarketplaceConfig,
	eventRepo repository.EventRepository,
	marketRepo repository.MarketplaceRepository,
	registry *TicketRegistry,
	ledger *LoyaltyLedger,
	access *AccessControl,
	publisher RecordPublisher,
) *Marketplace {
	if cfg == nil {
		cfg = DefaultMarketplaceConfig()
	}
	if publisher == nil {
		publisher = NewNoOpRecordPublisher()
	}

	return &Marketplace{
		cfg:        cfg,
		eventRepo:  eventRepo,
		marketRepo: marketRepo,
		registry:   registry,
		ledger:     ledger,
		access:     access,
		publisher:  publisher,
	}
}

// NominalToWei converts nominal units to payment currency at the configured
// exchange rate. The sgdToWei helper of the external API.
func (m *Marketplace) NominalToWei(amount int64) int64 {
	return amount * m.cfg.WeiPerNominal
}

// maxNominal is the largest nominal amount that converts to payment currency
// without overflowing int64. Prices above it are rejected at creation and
// listing time so every stored price stays convertible.
func (m *Marketplace) maxNominal() int64 {
	return math.MaxInt64 / m.cfg.WeiPerNominal
}

// CreateEvent creates a new event and batch-mints its ticket block, owned by
// the organiser. Organiser role required.
func (m *Marketplace) CreateEvent(ctx context.Context, callerID, name string, eventTime time.Time, categoryPrices [domain.CategoryCount]int64) (uint64, error) {
	if err := m.access.RequireOrganiser(ctx, callerID); err != nil {
		return 0, err
	}
	if eventTime.IsZero() {
		return 0, domain.ErrInvalidEventTime
	}
	for _, price := range categoryPrices {
		if price < 0 || price > m.maxNominal() {
			return 0, domain.ErrInvalidAmount
		}
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	eventID, err := m.eventRepo.Count(ctx)
	if err != nil {
		return 0, err
	}

	event := &domain.Event{
		ID:             eventID,
		Name:           name,
		OrganiserID:    callerID,
		EventTime:      eventTime,
		CategoryPrices: categoryPrices,
		CreatedAt:      time.Now().UTC(),
	}

	if err := m.eventRepo.Create(ctx, event); err != nil {
		return 0, err
	}

	for slot := 0; slot < domain.TicketsPerEvent; slot++ {
		cat := domain.SlotCategory(slot)
		ticketID := eventID*domain.TicketsPerEvent + uint64(slot)
		_, err := m.registry.Create(ctx, m.cfg.CustodianID, ticketID, eventID, cat, domain.SlotSeatLabel(slot), categoryPrices[cat], callerID)
		if err != nil {
			return 0, err
		}
	}

	record := newRecord(domain.RecordEventCreated)
	record.EventID = eventID
	record.Name = name
	record.Participant = callerID
	m.publish(ctx, record)

	metrics.EventsCreated.Inc(ctx)

	return eventID, nil
}

// Event returns an event from the catalog.
func (m *Marketplace) Event(ctx context.Context, eventID uint64) (*domain.Event, error) {
	return m.eventRepo.GetByID(ctx, eventID)
}

// Ticket returns the full ticket entity.
func (m *Marketplace) Ticket(ctx context.Context, ticketID uint64) (*domain.Ticket, error) {
	return m.registry.DetailsOf(ctx, ticketID)
}

// Listing returns the active listing for a ticket, or nil if none.
func (m *Marketplace) Listing(ctx context.Context, ticketID uint64) (*domain.Listing, error) {
	return m.marketRepo.GetListing(ctx, ticketID)
}

// EscrowTicket transfers a ticket the caller owns (or is approved to spend)
// into marketplace custody. The previous owner recorded on the ticket is the
// seller of record for listing.
func (m *Marketplace) EscrowTicket(ctx context.Context, callerID string, ticketID uint64) error {
	return m.registry.Transfer(ctx, callerID, ticketID, m.cfg.CustodianID)
}

// TransferTicket transfers a ticket to another participant. The caller must
// be the owner or the approved spender.
func (m *Marketplace) TransferTicket(ctx context.Context, callerID string, ticketID uint64, toID string) error {
	return m.registry.Transfer(ctx, callerID, ticketID, toID)
}

// ApproveTicket sets the approved spender for a ticket the caller owns.
func (m *Marketplace) ApproveTicket(ctx context.Context, callerID string, ticketID uint64, spenderID string) error {
	return m.registry.Approve(ctx, callerID, ticketID, spenderID)
}

// BuyTicket sells a custody-held ticket to the caller: primary sale at the
// category price for an OWNED ticket, secondary sale at the listing price
// for a LISTED one. loyaltyPointsToUse is converted to a nominal discount at
// the configured rate with truncating division; only whole-unit multiples
// are consumed. paymentAmount must equal the converted remainder exactly.
// All sale proceeds are retained in the treasury reserve.
func (m *Marketplace) BuyTicket(ctx context.Context, callerID string, ticketID uint64, loyaltyPointsToUse, paymentAmount int64) (*PurchaseReceipt, error) {
	if loyaltyPointsToUse < 0 || paymentAmount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	ticket, err := m.registry.DetailsOf(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	event, err := m.eventRepo.GetByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	if event.Expired(time.Now()) {
		return nil, domain.ErrEventExpired
	}

	// The ticket must be escrowed with the custodian before sale.
	if ticket.OwnerID != m.cfg.CustodianID {
		return nil, domain.ErrNotInCustody
	}

	var price int64
	switch ticket.State {
	case domain.TicketStateOwned:
		price = ticket.NominalPrice
	case domain.TicketStateListed:
		listing, err := m.marketRepo.GetListing(ctx, ticketID)
		if err != nil {
			return nil, err
		}
		if listing == nil {
			return nil, domain.ErrInvalidTicketState
		}
		price = listing.Price
	default:
		return nil, domain.ErrInvalidTicketState
	}

	discount := loyaltyPointsToUse / m.cfg.PointsPerNominal
	if discount > price {
		return nil, domain.ErrInvalidAmount
	}
	pointsConsumed := discount * m.cfg.PointsPerNominal

	balance, err := m.ledger.BalanceOf(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if balance < loyaltyPointsToUse {
		return nil, domain.ErrInsufficientLoyaltyPoints
	}

	required := m.NominalToWei(price - discount)
	if paymentAmount != required {
		return nil, domain.ErrIncorrectPayment
	}

	owned, err := m.registry.CountOwnedForEvent(ctx, callerID, event.ID)
	if err != nil {
		return nil, err
	}
	if owned >= m.cfg.MaxTicketsPerBuyer {
		return nil, domain.ErrPurchaseLimitExceeded
	}

	// All checks passed; commit. The custodian holds the ticket and this
	// operation is serialized, so none of the mutations below can fail a
	// recheck.
	if pointsConsumed > 0 {
		if err := m.ledger.spend(ctx, callerID, pointsConsumed); err != nil {
			return nil, err
		}
	}

	if err := m.registry.Transfer(ctx, m.cfg.CustodianID, ticketID, callerID); err != nil {
		return nil, err
	}

	if ticket.State == domain.TicketStateListed {
		if err := m.registry.SetState(ctx, m.cfg.CustodianID, ticketID, domain.TicketStateOwned); err != nil {
			return nil, err
		}
		if err := m.marketRepo.DeleteListing(ctx, ticketID); err != nil {
			return nil, err
		}
	}

	reserve, err := m.marketRepo.GetReserve(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.marketRepo.SetReserve(ctx, reserve+paymentAmount); err != nil {
		return nil, err
	}

	record := newRecord(domain.RecordTicketBought)
	record.TicketID = ticketID
	record.EventID = event.ID
	record.Participant = callerID
	record.Price = price
	record.Amount = paymentAmount
	m.publish(ctx, record)

	metrics.TicketsSold.Inc(ctx)
	metrics.SaleProceeds.Record(ctx, float64(paymentAmount))

	return &PurchaseReceipt{
		TicketID:      ticketID,
		BuyerID:       callerID,
		Price:         price,
		PointsUsed:    pointsConsumed,
		PaymentAmount: paymentAmount,
	}, nil
}

// ListTicket lists an escrowed ticket for resale at a seller-set nominal
// price. The caller must be the participant who escrowed the ticket.
func (m *Marketplace) ListTicket(ctx context.Context, callerID string, ticketID uint64, price int64) error {
	if price < 0 || price > m.maxNominal() {
		return domain.ErrInvalidAmount
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	ticket, err := m.registry.DetailsOf(ctx, ticketID)
	if err != nil {
		return err
	}

	if ticket.OwnerID != m.cfg.CustodianID {
		return domain.ErrNotInCustody
	}
	if ticket.PreviousOwnerID != callerID {
		return domain.ErrUnauthorized
	}
	if ticket.State != domain.TicketStateOwned {
		return domain.ErrInvalidTicketState
	}

	if err := m.registry.SetState(ctx, m.cfg.CustodianID, ticketID, domain.TicketStateListed); err != nil {
		return err
	}

	if err := m.marketRepo.PutListing(ctx, &domain.Listing{
		TicketID: ticketID,
		SellerID: callerID,
		Price:    price,
	}); err != nil {
		return err
	}

	record := newRecord(domain.RecordTicketListed)
	record.TicketID = ticketID
	record.EventID = ticket.EventID
	record.Participant = callerID
	record.Price = price
	m.publish(ctx, record)

	metrics.TicketsListed.Inc(ctx)

	return nil
}

// RedeemTicket redeems a ticket before its event deadline and mints loyalty
// points to the owner equal to the ticket's nominal price. The caller must
// be the owner or the approved spender.
func (m *Marketplace) RedeemTicket(ctx context.Context, callerID string, ticketID uint64) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	ticket, err := m.registry.DetailsOf(ctx, ticketID)
	if err != nil {
		return err
	}

	event, err := m.eventRepo.GetByID(ctx, ticket.EventID)
	if err != nil {
		return err
	}
	if event.Expired(time.Now()) {
		return domain.ErrEventExpired
	}

	if ticket.State == domain.TicketStateRedeemed {
		return domain.ErrAlreadyRedeemed
	}
	if callerID != ticket.OwnerID && callerID != ticket.ApprovedSpender {
		return domain.ErrUnauthorized
	}
	if ticket.State != domain.TicketStateOwned {
		return domain.ErrInvalidTicketState
	}

	if err := m.registry.SetState(ctx, m.cfg.CustodianID, ticketID, domain.TicketStateRedeemed); err != nil {
		return err
	}

	if err := m.ledger.award(ctx, ticket.OwnerID, ticket.NominalPrice); err != nil {
		return err
	}

	record := newRecord(domain.RecordTicketRedeemed)
	record.TicketID = ticketID
	record.EventID = ticket.EventID
	record.Participant = ticket.OwnerID
	record.Price = ticket.NominalPrice
	m.publish(ctx, record)

	metrics.TicketsRedeemed.Inc(ctx)

	return nil
}

// SetUserRole assigns a role to a participant. Admin only.
func (m *Marketplace) SetUserRole(ctx context.Context, callerID, participantID string, role domain.Role) error {
	return m.access.SetRole(ctx, callerID, participantID, role)
}

// SetLoyaltyPoints overrides a participant's loyalty point balance. Admin
// only; intended for bootstrapping and testing.
func (m *Marketplace) SetLoyaltyPoints(ctx context.Context, callerID, participantID string, amount int64) error {
	if err := m.access.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	return m.ledger.setBalance(ctx, participantID, amount)
}

// DepositFunds deposits payment currency into the treasury reserve. Admin
// only.
func (m *Marketplace) DepositFunds(ctx context.Context, callerID string, amount int64) error {
	if err := m.access.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	if amount < 0 {
		return domain.ErrInvalidAmount
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	reserve, err := m.marketRepo.GetReserve(ctx)
	if err != nil {
		return err
	}
	if err := m.marketRepo.SetReserve(ctx, reserve+amount); err != nil {
		return err
	}

	record := newRecord(domain.RecordFundsDeposited)
	record.Participant = callerID
	record.Amount = amount
	m.publish(ctx, record)

	return nil
}

// WithdrawFunds withdraws all reserve in excess of the minimum required to
// back the outstanding loyalty point supply, leaving exactly the minimum
// behind. Admin only.
func (m *Marketplace) WithdrawFunds(ctx context.Context, callerID string) (int64, error) {
	if err := m.access.RequireAdmin(ctx, callerID); err != nil {
		return 0, err
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	reserve, err := m.marketRepo.GetReserve(ctx)
	if err != nil {
		return 0, err
	}

	minReserve, err := m.minimumReserve(ctx)
	if err != nil {
		return 0, err
	}

	withdrawable := reserve - minReserve
	if withdrawable <= 0 {
		return 0, domain.ErrNoExcessLiquidity
	}

	if err := m.marketRepo.SetReserve(ctx, minReserve); err != nil {
		return 0, err
	}

	record := newRecord(domain.RecordFundsWithdrawn)
	record.Participant = callerID
	record.Amount = withdrawable
	m.publish(ctx, record)

	return withdrawable, nil
}

// Reserve returns the treasury reserve in payment currency.
func (m *Marketplace) Reserve(ctx context.Context) (int64, error) {
	return m.marketRepo.GetReserve(ctx)
}

// MinimumReserve returns the reserve floor required to back the outstanding
// loyalty point supply at the spending rate.
func (m *Marketplace) MinimumReserve(ctx context.Context) (int64, error) {
	return m.minimumReserve(ctx)
}

func (m *Marketplace) minimumReserve(ctx context.Context) (int64, error) {
	supply, err := m.ledger.TotalSupply(ctx)
	if err != nil {
		return 0, err
	}
	return m.NominalToWei(supply / m.cfg.PointsPerNominal), nil
}

// publish emits a record for a committed operation. A publish failure does
// not roll back the operation; it is logged and the caller proceeds.
func (m *Marketplace) publish(ctx context.Context, record *domain.Record) {
	if err := m.publisher.Publish(ctx, record); err != nil {
		logger.Get().Warn("Failed to publish marketplace record",
			zap.String("record_type", string(record.Type)),
			zap.String("record_id", record.ID),
			zap.Error(err),
		)
	}
}
