package di

import (
	"github.com/rouvinerh/is4302-project/internal/handler"
	"github.com/rouvinerh/is4302-project/internal/repository"
	"github.com/rouvinerh/is4302-project/internal/service"
	"github.com/rouvinerh/is4302-project/pkg/database"
	"github.com/rouvinerh/is4302-project/pkg/redis"
)

// Container holds all dependencies for the marketplace service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	EventRepo   repository.EventRepository
	TicketRepo  repository.TicketRepository
	LoyaltyRepo repository.LoyaltyRepository
	RoleRepo    repository.RoleRepository
	MarketRepo  repository.MarketplaceRepository

	// Publishers
	RecordPublisher service.RecordPublisher

	// Services
	AccessControl *service.AccessControl
	Registry      *service.TicketRegistry
	Ledger        *service.LoyaltyLedger
	Marketplace   *service.Marketplace

	// Handlers
	HealthHandler  *handler.HealthHandler
	EventHandler   *handler.EventHandler
	TicketHandler  *handler.TicketHandler
	LoyaltyHandler *handler.LoyaltyHandler
	AdminHandler   *handler.AdminHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB              *database.PostgresDB
	Redis           *redis.Client
	EventRepo       repository.EventRepository
	TicketRepo      repository.TicketRepository
	LoyaltyRepo     repository.LoyaltyRepository
	RoleRepo        repository.RoleRepository
	MarketRepo      repository.MarketplaceRepository
	RecordPublisher service.RecordPublisher
	MarketConfig    *service.MarketplaceConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:              cfg.DB,
		Redis:           cfg.Redis,
		EventRepo:       cfg.EventRepo,
		TicketRepo:      cfg.TicketRepo,
		LoyaltyRepo:     cfg.LoyaltyRepo,
		RoleRepo:        cfg.RoleRepo,
		MarketRepo:      cfg.MarketRepo,
		RecordPublisher: cfg.RecordPublisher,
	}

	marketCfg := cfg.MarketConfig
	if marketCfg == nil {
		marketCfg = service.DefaultMarketplaceConfig()
	}

	// Initialize services
	c.AccessControl = service.NewAccessControl(c.RoleRepo, marketCfg.AdminID)
	c.Registry = service.NewTicketRegistry(c.TicketRepo, marketCfg.CustodianID)
	c.Ledger = service.NewLoyaltyLedger(c.LoyaltyRepo, c.AccessControl)
	c.Marketplace = service.NewMarketplace(
		marketCfg,
		c.EventRepo,
		c.MarketRepo,
		c.Registry,
		c.Ledger,
		c.AccessControl,
		c.RecordPublisher,
	)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.EventHandler = handler.NewEventHandler(c.Marketplace)
	c.TicketHandler = handler.NewTicketHandler(c.Marketplace)
	c.LoyaltyHandler = handler.NewLoyaltyHandler(c.Ledger)
	c.AdminHandler = handler.NewAdminHandler(c.Marketplace, c.Ledger)

	return c
}
