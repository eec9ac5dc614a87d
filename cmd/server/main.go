package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	budgetapp "github.com/mecanica/backend/internal/application/budget"
	executionapp "github.com/mecanica/backend/internal/application/execution"
	inventoryapp "github.com/mecanica/backend/internal/application/inventory"
	appnotification "github.com/mecanica/backend/internal/application/notification"
	partnerapp "github.com/mecanica/backend/internal/application/partner"
	workorderapp "github.com/mecanica/backend/internal/application/workorder"
	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/infrastructure/cache"
	"github.com/mecanica/backend/internal/infrastructure/config"
	"github.com/mecanica/backend/internal/infrastructure/event"
	"github.com/mecanica/backend/internal/infrastructure/logger"
	"github.com/mecanica/backend/internal/infrastructure/notification"
	"github.com/mecanica/backend/internal/infrastructure/persistence"
	"github.com/mecanica/backend/internal/interfaces/http/handler"
	"github.com/mecanica/backend/internal/interfaces/http/middleware"
	"github.com/mecanica/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Workshop Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	orderRepo := persistence.NewGormServiceOrderRepository(db.DB)
	executionRepo := persistence.NewGormServiceExecutionRepository(db.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)

	// Client reads go through Redis when it is reachable; otherwise fall
	// back to the plain repository.
	var clientRepo partner.ClientRepository = persistence.NewGormClientRepository(db.DB)
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, client cache disabled", zap.Error(err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Error closing Redis client", zap.Error(err))
				}
			}()
			clientRepo = cache.NewCachedClientRepository(clientRepo, redisClient, cfg.Redis.CacheTTL, log)
			log.Info("Client cache enabled", zap.Duration("ttl", cfg.Redis.CacheTTL))
		}
	}

	// Initialize application services
	orderService := workorderapp.NewServiceOrderService(orderRepo, clientRepo, vehicleRepo)
	budgetService := budgetapp.NewBudgetService(budgetRepo, orderRepo)
	executionService := executionapp.NewServiceExecutionService(executionRepo, employeeRepo)
	inventoryService := inventoryapp.NewInventoryService(stockItemRepo, stockMovementRepo)
	clientService := partnerapp.NewClientService(clientRepo)
	employeeService := partnerapp.NewEmployeeService(employeeRepo)
	vehicleService := partnerapp.NewVehicleService(vehicleRepo)

	// Outbound notifications: SMTP when configured, structured log otherwise
	var notifier appnotification.Notifier
	if cfg.Notification.Enabled {
		notifier = notification.NewSMTPNotifier(cfg.Notification)
		log.Info("SMTP notifications enabled", zap.String("host", cfg.Notification.SMTPHost))
	} else {
		notifier = notification.NewLogNotifier(log)
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Register event handlers for cross-context integration
	// Budget sent/approved/rejected -> order approval stage transitions
	budgetEventHandler := budgetapp.NewBudgetEventHandler(log, orderService, budgetRepo, clientRepo).
		WithNotifier(notifier)
	eventBus.Subscribe(budgetEventHandler)

	// Order approved -> execution creation and stock depletion
	orderApprovedHandler := workorderapp.NewServiceOrderApprovedHandler(
		log, budgetRepo, employeeRepo, executionService, inventoryService,
	)
	eventBus.Subscribe(orderApprovedHandler)

	// Execution progress -> order status sync and completion notice
	executionStatusHandler := workorderapp.NewServiceExecutionStatusChangedHandler(log, orderService, clientRepo).
		WithNotifier(notifier)
	eventBus.Subscribe(executionStatusHandler)

	// Stock below minimum -> low stock alert
	stockAlertHandler := inventoryapp.NewStockBelowMinimumHandler(log)
	if cfg.Notification.AlertAddress != "" {
		stockAlertHandler = stockAlertHandler.WithNotifier(
			notification.NewStockAlertMailer(notifier, cfg.Notification.AlertAddress, cfg.Notification.AlertName),
		)
	}
	eventBus.Subscribe(stockAlertHandler)

	log.Info("Event handlers registered",
		zap.Strings("budget_events", budgetEventHandler.EventTypes()),
		zap.Strings("order_approved_events", orderApprovedHandler.EventTypes()),
		zap.Strings("execution_status_events", executionStatusHandler.EventTypes()),
		zap.Strings("stock_alert_events", stockAlertHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	orderService.SetEventPublisher(eventBus)
	budgetService.SetEventPublisher(eventBus)
	executionService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)

	// Background sweep that expires overdue budgets
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Budget.SweepEnabled {
		go runBudgetSweep(sweepCtx, budgetService, cfg.Budget, log)
		log.Info("Budget expiry sweep started",
			zap.Duration("interval", cfg.Budget.SweepInterval),
			zap.Int("batch_size", cfg.Budget.SweepBatchSize),
		)
	}

	// Initialize HTTP handlers
	orderHandler := handler.NewServiceOrderHandler(orderService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	executionHandler := handler.NewExecutionHandler(executionService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	clientHandler := handler.NewClientHandler(clientService, vehicleService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(orderHandler).
		Register(budgetHandler).
		Register(executionHandler).
		Register(inventoryHandler).
		Register(clientHandler).
		Register(employeeHandler).
		Register(vehicleHandler).
		Register(systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runBudgetSweep expires overdue budgets on a fixed interval until ctx is
// cancelled.
func runBudgetSweep(ctx context.Context, budgetService *budgetapp.BudgetService, cfg config.BudgetConfig, log *zap.Logger) {
	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := budgetService.ExpireOverdue(ctx, cfg.SweepBatchSize)
			if err != nil {
				log.Error("Budget expiry sweep failed", zap.Error(err))
			}
			if expired > 0 {
				log.Info("Expired overdue budgets", zap.Int("count", expired))
			}
		}
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
