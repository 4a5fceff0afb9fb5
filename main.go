package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rouvinerh/is4302-project/internal/di"
	"github.com/rouvinerh/is4302-project/internal/metrics"
	"github.com/rouvinerh/is4302-project/internal/repository"
	"github.com/rouvinerh/is4302-project/internal/service"
	"github.com/rouvinerh/is4302-project/pkg/config"
	"github.com/rouvinerh/is4302-project/pkg/database"
	"github.com/rouvinerh/is4302-project/pkg/logger"
	"github.com/rouvinerh/is4302-project/pkg/middleware"
	"github.com/rouvinerh/is4302-project/pkg/redis"
	"github.com/rouvinerh/is4302-project/pkg/response"
	"github.com/rouvinerh/is4302-project/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting ticket marketplace",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	// 3. Initialize telemetry
	_, err = telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	})
	if err != nil {
		appLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			appLog.Error("Failed to shutdown telemetry", zap.Error(err))
		}
	}()

	if err := metrics.Init(); err != nil {
		appLog.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	// 4. Connect to PostgreSQL
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MinIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      5,
		RetryInterval:   3 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()
	appLog.Info("Connected to PostgreSQL", zap.String("host", cfg.Database.Host))

	// 5. Connect to Redis
	redisClient, err := redis.NewClient(ctx, &redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		MaxRetries:   5,
	})
	if err != nil {
		appLog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLog.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))

	// 6. Initialize record publisher
	var publisher service.RecordPublisher
	if cfg.Kafka.Enabled {
		publisher, err = service.NewKafkaRecordPublisher(ctx, &service.RecordPublisherConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.RecordsTopic,
			ClientID: cfg.Kafka.ClientID,
		})
		if err != nil {
			appLog.Warn("Failed to connect to Kafka, records will not be published",
				zap.Strings("brokers", cfg.Kafka.Brokers),
				zap.Error(err),
			)
			publisher = service.NewNoOpRecordPublisher()
		} else {
			appLog.Info("Kafka record publisher initialized",
				zap.Strings("brokers", cfg.Kafka.Brokers),
				zap.String("topic", cfg.Kafka.RecordsTopic),
			)
		}
	} else {
		publisher = service.NewNoOpRecordPublisher()
	}
	defer publisher.Close()

	// 7. Build dependency container
	pool := db.Pool()
	container := di.NewContainer(&di.ContainerConfig{
		DB:              db,
		Redis:           redisClient,
		EventRepo:       repository.NewPostgresEventRepository(pool),
		TicketRepo:      repository.NewPostgresTicketRepository(pool),
		LoyaltyRepo:     repository.NewPostgresLoyaltyRepository(pool),
		RoleRepo:        repository.NewPostgresRoleRepository(pool),
		MarketRepo:      repository.NewPostgresMarketplaceRepository(pool),
		RecordPublisher: publisher,
		MarketConfig: &service.MarketplaceConfig{
			AdminID:            cfg.Market.AdminID,
			CustodianID:        cfg.Market.CustodianID,
			WeiPerNominal:      cfg.Market.WeiPerNominal,
			PointsPerNominal:   cfg.Market.PointsPerNominal,
			MaxTicketsPerBuyer: cfg.Market.MaxTicketsPerBuyer,
		},
	})

	// 8. Setup HTTP server
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RequestDuration.Record(c.Request.Context(), time.Since(start).Seconds())
	})
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	registerRoutes(router, container, cfg, redisClient)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 9. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
	}

	appLog.Info("Server exited")
}

func registerRoutes(router *gin.Engine, c *di.Container, cfg *config.Config, redisClient *redis.Client) {
	// Health checks (no auth)
	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	authCfg := &middleware.AuthConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	}
	idempotency := middleware.Idempotency(middleware.DefaultIdempotencyConfig(redisClient))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(authCfg))
	{
		events := v1.Group("/events")
		{
			events.POST("", c.EventHandler.Create)
			events.GET("/:id", c.EventHandler.GetByID)
		}

		tickets := v1.Group("/tickets")
		{
			tickets.GET("/:id", c.TicketHandler.Get)
			tickets.POST("/:id/transfer", c.TicketHandler.Transfer)
			tickets.POST("/:id/approve", c.TicketHandler.Approve)
			tickets.POST("/:id/list", c.TicketHandler.List)
			tickets.POST("/:id/buy", idempotency, c.TicketHandler.Buy)
			tickets.POST("/:id/redeem", c.TicketHandler.Redeem)
		}

		loyalty := v1.Group("/loyalty")
		{
			loyalty.GET("/balances/:participant", c.LoyaltyHandler.Balance)
			loyalty.GET("/balances/:participant/allowance/:spender", c.LoyaltyHandler.Allowance)
			loyalty.GET("/supply", c.LoyaltyHandler.Supply)
			loyalty.POST("/approve", c.LoyaltyHandler.Approve)
			loyalty.POST("/transfer", c.LoyaltyHandler.Transfer)
			loyalty.POST("/burn", c.LoyaltyHandler.Burn)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/roles", c.AdminHandler.SetRole)
			admin.POST("/loyalty/mint", c.AdminHandler.MintPoints)
			admin.POST("/loyalty", c.AdminHandler.SetLoyaltyPoints)
			admin.GET("/treasury", c.AdminHandler.Treasury)
			admin.POST("/treasury/deposit", c.AdminHandler.Deposit)
			admin.POST("/treasury/withdraw", c.AdminHandler.Withdraw)
		}

		v1.GET("/rates/convert", c.AdminHandler.Convert)
	}
}
