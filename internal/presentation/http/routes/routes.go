package routes

import (
	"github.com/aquaflow/sachet-api/internal/config"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/internal/presentation/http/handler"
	"github.com/aquaflow/sachet-api/internal/presentation/http/middleware"
	"github.com/aquaflow/sachet-api/pkg/ratelimit"
	"github.com/aquaflow/sachet-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth             *handler.AuthHandler
	User             *handler.UserHandler
	Settings         *handler.SettingsHandler
	Dashboard        *handler.DashboardHandler
	Sale             *handler.SaleHandler
	Expense          *handler.ExpenseHandler
	MaterialPurchase *handler.MaterialPurchaseHandler
	PackerEntry      *handler.PackerEntryHandler
	SalaryPayment    *handler.SalaryPaymentHandler
	Employee         *handler.EmployeeHandler
	BagPrice         *handler.PriceHandler
	MaterialPrice    *handler.PriceHandler
	ReceptionistSale *handler.ReceptionistSaleHandler
	Storekeeper      *handler.StorekeeperHandler
	Settlement       *handler.SettlementHandler
	Report           *handler.ReportHandler
	Audit            *handler.AuditHandler
	Printer          *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager       *utils.JWTManager
	Cfg              *config.Config
	IdempotencyRepo  domainRepo.IdempotencyRepository
	GlobalLimiter    ratelimit.Limiter
	SensitiveLimiter ratelimit.Limiter
}

var (
	adminOnly        = middleware.RequireRole(enum.UserRoleAdmin)
	receptionistDesk = middleware.RequireRole(enum.UserRoleReceptionist)
	storekeeperDesk  = middleware.RequireRole(enum.UserRoleStorekeeper)
)

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	api := router.Group("/api")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(api, h, deps)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RateLimit(deps.GlobalLimiter, middleware.ByUser))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(api *gin.RouterGroup, h *Handlers, deps *Deps) {
	sensitive := middleware.RateLimit(deps.SensitiveLimiter, middleware.ByClientIP)

	auth := api.Group("/auth")
	{
		auth.POST("/login", sensitive, h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", sensitive, h.Auth.ForgotPassword)
		auth.POST("/reset-password", sensitive, h.Auth.ResetPassword)
		auth.GET("/google", h.Auth.GoogleStart)
		auth.GET("/google/callback", sensitive, h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Business.IdempotencyKeyTTL,
	})

	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.GetProfile)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings and prices are read by every desk
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", adminOnly, h.Settings.UpdateSettings)
	registerPriceRoutes(protected.Group("/bag-prices"), h.BagPrice)
	registerPriceRoutes(protected.Group("/material-prices"), h.MaterialPrice)

	protected.GET("/dashboard", h.Dashboard.GetStats)

	registerLedgerRoutes(protected, h, idempotent)
	registerEmployeeRoutes(protected, h)
	registerDeskRoutes(protected, h, idempotent)
	registerReportRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerPriceRoutes(prices *gin.RouterGroup, p *handler.PriceHandler) {
	prices.GET("", p.List)
	prices.POST("", adminOnly, p.Create)
	prices.PUT("/:id", adminOnly, p.Update)
	prices.PATCH("/:id/toggle", adminOnly, p.Toggle)
	prices.DELETE("/:id", adminOnly, p.Delete)
}

func registerLedgerRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	sales := protected.Group("/sales")
	sales.Use(receptionistDesk)
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
	}

	expenses := protected.Group("/expenses")
	expenses.Use(adminOnly)
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		// Batch creation uses idempotency middleware to prevent duplicates
		expenses.POST("/batch", idempotent, h.Expense.CreateBatch)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	purchases := protected.Group("/material-purchases")
	purchases.Use(adminOnly)
	{
		purchases.GET("", h.MaterialPurchase.List)
		purchases.POST("", h.MaterialPurchase.Create)
		purchases.GET("/:id", h.MaterialPurchase.Get)
		purchases.PUT("/:id", h.MaterialPurchase.Update)
		purchases.DELETE("/:id", h.MaterialPurchase.Delete)
	}

	packers := protected.Group("/packer-entries")
	packers.Use(storekeeperDesk)
	{
		packers.GET("", h.PackerEntry.List)
		packers.POST("", h.PackerEntry.Create)
		packers.GET("/:id", h.PackerEntry.Get)
		packers.PUT("/:id", h.PackerEntry.Update)
		packers.DELETE("/:id", h.PackerEntry.Delete)
	}

	salaries := protected.Group("/salary-payments")
	salaries.Use(adminOnly)
	{
		salaries.GET("", h.SalaryPayment.List)
		salaries.POST("", h.SalaryPayment.Create)
		salaries.GET("/:id", h.SalaryPayment.Get)
		salaries.PUT("/:id", h.SalaryPayment.Update)
		salaries.DELETE("/:id", h.SalaryPayment.Delete)
	}
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Drivers and packers are picked from this list at every desk
	protected.GET("/employees", h.Employee.List)

	employees := protected.Group("/employees")
	employees.Use(adminOnly)
	{
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
		employees.GET("/:id/commission", h.Employee.Commission)
		employees.GET("/:id/salary-projection", h.Employee.SalaryProjection)
	}

	protected.GET("/commissions", adminOnly, h.Employee.CommissionSummary)
}

func registerDeskRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	receptionist := protected.Group("/receptionist-sales")
	receptionist.Use(receptionistDesk)
	{
		receptionist.GET("", h.ReceptionistSale.List)
		receptionist.POST("", h.ReceptionistSale.Create)
		receptionist.GET("/:id", h.ReceptionistSale.Get)
		receptionist.PUT("/:id", h.ReceptionistSale.Update)
		receptionist.POST("/:id/submit", h.ReceptionistSale.Submit)
		receptionist.DELETE("/:id", h.ReceptionistSale.Delete)
	}

	storekeeper := protected.Group("/storekeeper-entries")
	storekeeper.Use(storekeeperDesk)
	{
		storekeeper.GET("", h.Storekeeper.List)
		storekeeper.POST("", h.Storekeeper.Create)
		storekeeper.GET("/:id", h.Storekeeper.Get)
		storekeeper.PUT("/:id", h.Storekeeper.Update)
		storekeeper.POST("/:id/submit", h.Storekeeper.Submit)
		storekeeper.DELETE("/:id", h.Storekeeper.Delete)
	}

	settlements := protected.Group("/settlements")
	settlements.Use(receptionistDesk)
	{
		settlements.GET("", h.Settlement.List)
		settlements.POST("", h.Settlement.Create)
		settlements.GET("/:id", h.Settlement.Get)
		settlements.PUT("/:id", h.Settlement.Update)
		settlements.DELETE("/:id", h.Settlement.Delete)
		settlements.GET("/:id/receipt", h.Settlement.Receipt)
		settlements.POST("/:id/print", h.Printer.PrintSettlement)
	}

	payments := protected.Group("/settlement-payments")
	payments.Use(receptionistDesk)
	{
		payments.GET("", h.Settlement.ListPayments)
		// Payment recording uses idempotency middleware to prevent duplicates
		payments.POST("", idempotent, h.Settlement.RecordPayment)
		payments.GET("/settlement/:id", h.Settlement.SettlementPayments)
		payments.DELETE("/:id", h.Settlement.DeletePayment)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(adminOnly)
	{
		reports.GET("", h.Report.Generate)
		reports.GET("/trend", h.Report.Trend)
		reports.GET("/export", h.Report.Export)
	}

	protected.GET("/inventory", h.Report.Inventory)
	protected.GET("/audit-logs", adminOnly, h.Audit.List)
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(adminOnly)
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	protected.GET("/roles", adminOnly, h.User.ListRoles)
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", adminOnly, h.Printer.TestPrint)
	}
}
