package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquaflow/sachet-api/internal/application/service"
	"github.com/aquaflow/sachet-api/internal/config"
	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/infrastructure/cache"
	"github.com/aquaflow/sachet-api/internal/infrastructure/database"
	"github.com/aquaflow/sachet-api/internal/infrastructure/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/handler"
	"github.com/aquaflow/sachet-api/internal/presentation/http/routes"
	"github.com/aquaflow/sachet-api/pkg/email"
	"github.com/aquaflow/sachet-api/pkg/oauth"
	"github.com/aquaflow/sachet-api/pkg/printer"
	"github.com/aquaflow/sachet-api/pkg/ratelimit"
	"github.com/aquaflow/sachet-api/pkg/utils"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const settingsCacheTTL = 10 * time.Minute

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin, cfg.Business); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Optional redis for shared rate limits and the settings cache
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Warning: Redis unavailable, falling back to in-memory state: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	recoveryTokenRepo := repository.NewRecoveryTokenRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	purchaseRepo := repository.NewMaterialPurchaseRepository(db)
	packerRepo := repository.NewPackerEntryRepository(db)
	salaryRepo := repository.NewSalaryPaymentRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	receptionistSaleRepo := repository.NewReceptionistSaleRepository(db)
	storekeeperRepo := repository.NewStorekeeperEntryRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	settlementPaymentRepo := repository.NewSettlementPaymentRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	var settingsCache cache.SettingsCache = cache.NoopSettingsCache{}
	if redisClient != nil {
		settingsCache = cache.NewRedisSettingsCache(redisClient, settingsCacheTTL)
	}

	// Initialize email service
	mailer := email.NewMailer(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		DashboardURL: cfg.App.DashboardURL,
		AppName:      cfg.Business.Name,
	})

	// Initialize Google OAuth
	google := oauth.NewGoogle(oauth.GoogleConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
		SuccessURL:   cfg.OAuth.SuccessURL,
		FailureURL:   cfg.OAuth.FailureURL,
	})

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	settingsService := service.NewSettingsService(settingsRepo, settingsCache)
	authService := service.NewAuthService(tx, userRepo, recoveryTokenRepo, jwtManager, mailer, google, cfg.Business.RecoveryTokenTTL)
	userService := service.NewUserService(userRepo)
	saleService := service.NewSaleService(saleRepo, auditService)
	expenseService := service.NewExpenseService(tx, expenseRepo, auditService)
	purchaseService := service.NewMaterialPurchaseService(purchaseRepo)
	packerService := service.NewPackerEntryService(packerRepo)
	salaryService := service.NewSalaryPaymentService(salaryRepo, employeeRepo)
	employeeService := service.NewEmployeeService(employeeRepo)
	commissionService := service.NewCommissionService(employeeRepo, saleRepo, packerRepo)
	priceService := service.NewPriceService(priceRepo)
	receptionistSaleService := service.NewReceptionistSaleService(receptionistSaleRepo, settingsService, auditService)
	storekeeperService := service.NewStorekeeperService(storekeeperRepo)
	settlementService := service.NewSettlementService(tx, settlementRepo, settlementPaymentRepo, receptionistSaleRepo, auditService)
	inventoryService := service.NewInventoryService(purchaseRepo, saleRepo, settingsService)
	reportService := service.NewReportService(saleRepo, expenseRepo, purchaseRepo, salaryRepo, settingsService)
	exportService := service.NewExportService(reportService)
	dashboardService := service.NewDashboardService(inventoryService, reportService, analyticsRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Width:   cfg.Printer.Width,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.Discard{}
	}
	printerService := service.NewPrinterService(thermalPrinter, settlementService, cfg.Business.Name, cfg.Printer.Type, cfg.Printer.Width)

	// Rate limiters: redis when configured so every instance shares budgets
	globalCfg := ratelimit.Config{
		Requests: cfg.RateLimit.Requests,
		Window:   ratelimit.WindowFromSeconds(cfg.RateLimit.Duration),
	}
	sensitiveCfg := ratelimit.Config{
		Requests: cfg.RateLimit.SensitiveRequests,
		Window:   cfg.RateLimit.SensitiveWindow,
	}
	var globalLimiter, sensitiveLimiter ratelimit.Limiter
	if redisClient != nil {
		globalLimiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit:global", globalCfg)
		sensitiveLimiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit:sensitive", sensitiveCfg)
	} else {
		memGlobal := ratelimit.NewMemoryLimiter(globalCfg, cfg.RateLimit.SweepInterval)
		memSensitive := ratelimit.NewMemoryLimiter(sensitiveCfg, cfg.RateLimit.SweepInterval)
		defer memGlobal.Close()
		defer memSensitive.Close()
		globalLimiter, sensitiveLimiter = memGlobal, memSensitive
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:             handler.NewAuthHandler(authService, google),
		User:             handler.NewUserHandler(userService),
		Settings:         handler.NewSettingsHandler(settingsService),
		Dashboard:        handler.NewDashboardHandler(dashboardService),
		Sale:             handler.NewSaleHandler(saleService),
		Expense:          handler.NewExpenseHandler(expenseService),
		MaterialPurchase: handler.NewMaterialPurchaseHandler(purchaseService),
		PackerEntry:      handler.NewPackerEntryHandler(packerService),
		SalaryPayment:    handler.NewSalaryPaymentHandler(salaryService),
		Employee:         handler.NewEmployeeHandler(employeeService, commissionService),
		BagPrice:         handler.NewPriceHandler(priceService, entity.BagPrices),
		MaterialPrice:    handler.NewPriceHandler(priceService, entity.MaterialPrices),
		ReceptionistSale: handler.NewReceptionistSaleHandler(receptionistSaleService),
		Storekeeper:      handler.NewStorekeeperHandler(storekeeperService),
		Settlement:       handler.NewSettlementHandler(settlementService, cfg.Business.Name),
		Report:           handler.NewReportHandler(reportService, exportService, inventoryService),
		Audit:            handler.NewAuditHandler(auditService),
		Printer:          handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:       jwtManager,
		Cfg:              cfg,
		IdempotencyRepo:  idempotencyRepo,
		GlobalLimiter:    globalLimiter,
		SensitiveLimiter: sensitiveLimiter,
	})

	// Background snapshots and housekeeping
	if cfg.Scheduler.Enabled {
		maintenance := service.NewMaintenanceService(exportService, idempotencyRepo, recoveryTokenRepo, cfg.Storage.Path)
		scheduler := service.NewScheduler(cfg.Scheduler.TaskTimeout,
			maintenance.Tasks(cfg.Scheduler.SnapshotInterval, cfg.Scheduler.MaintenanceInterval)...)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
