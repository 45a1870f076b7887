package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/config"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	domainRepo "github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/internal/presentation/http/handler"
	"github.com/lukusafi/laundry-api/internal/presentation/http/middleware"
	"github.com/lukusafi/laundry-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Customer  *handler.CustomerHandler
	Catalog   *handler.CatalogHandler
	Order     *handler.OrderHandler
	Expense   *handler.ExpenseHandler
	Analytics *handler.AnalyticsHandler
	Receipt   *handler.ReceiptHandler
	Health    *handler.HealthHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	UserRepo        domainRepo.UserRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is optional; the caller owns it and stops it on shutdown
	RateLimiter *middleware.UserRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	api := router.Group("/api")
	{
		// Public routes (no authentication required)
		api.GET("/health", h.Health.Check)
		registerAuthRoutes(api, h)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.UserRepo))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Logger: logger,
		})
		owner := middleware.RequireRole(enum.UserRoleOwner)

		registerProtectedRoutes(protected, h, owner, idempotent)
	}

	return router
}

func registerAuthRoutes(api *gin.RouterGroup, h *Handlers) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, owner, idempotent gin.HandlerFunc) {
	// Session and staff accounts
	registerUserRoutes(protected, h, owner)

	// Orders
	registerOrderRoutes(protected, h, owner, idempotent)

	// Customers
	registerCustomerRoutes(protected, h)

	// Expenses (owner only)
	registerExpenseRoutes(protected, h, owner, idempotent)

	// Service catalog
	registerServiceRoutes(protected, h, owner)

	// Analytics (owner only)
	registerAnalyticsRoutes(protected, h, owner)

	// Receipts
	registerReceiptRoutes(protected, h)
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers, owner gin.HandlerFunc) {
	auth := protected.Group("/auth")
	{
		auth.GET("/me", h.Auth.Me)
		auth.POST("/add-user", owner, h.User.Add)
		auth.GET("/users", owner, h.User.List)
		auth.PATCH("/users/:id/role", owner, h.User.UpdateRole)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, owner, idempotent gin.HandlerFunc) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", idempotent, h.Order.Create)
		orders.POST("/quote", h.Order.Quote)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.DELETE("/:id", owner, h.Order.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/:id/history", h.Customer.History)
		customers.PUT("/:id", h.Customer.Update)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers, owner, idempotent gin.HandlerFunc) {
	expenses := protected.Group("/expenses", owner)
	{
		expenses.GET("", h.Expense.List)
		expenses.GET("/categories", h.Expense.Categories)
		expenses.POST("", idempotent, h.Expense.Create)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerServiceRoutes(protected *gin.RouterGroup, h *Handlers, owner gin.HandlerFunc) {
	services := protected.Group("/services")
	{
		services.GET("", h.Catalog.ListActive)
		services.GET("/all", owner, h.Catalog.ListAll)
		services.POST("", owner, h.Catalog.Create)
		services.PUT("/:id", owner, h.Catalog.Update)
		services.PATCH("/:id/toggle", owner, h.Catalog.Toggle)
	}
}

func registerAnalyticsRoutes(protected *gin.RouterGroup, h *Handlers, owner gin.HandlerFunc) {
	analytics := protected.Group("/analytics", owner)
	{
		analytics.GET("/dashboard", h.Analytics.Dashboard)
		analytics.GET("/revenue-chart", h.Analytics.RevenueChart)
		analytics.GET("/expenses-chart", h.Analytics.ExpensesChart)
		analytics.GET("/monthly-report", h.Analytics.MonthlyReport)
		analytics.GET("/monthly-report/export", h.Analytics.ExportMonthlyReport)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers) {
	receipts := protected.Group("/receipts")
	{
		receipts.POST("/generate", h.Receipt.Generate)
		receipts.GET("/jobs/:id", h.Receipt.Job)
		receipts.GET("/download/:filename", h.Receipt.Download)
		receipts.GET("/history/:customer_id", h.Receipt.History)
	}
}
