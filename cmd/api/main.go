package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukusafi/laundry-api/internal/application/service"
	"github.com/lukusafi/laundry-api/internal/config"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	domainRepo "github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/internal/infrastructure/cache"
	"github.com/lukusafi/laundry-api/internal/infrastructure/database"
	"github.com/lukusafi/laundry-api/internal/infrastructure/pdf"
	"github.com/lukusafi/laundry-api/internal/infrastructure/repository"
	"github.com/lukusafi/laundry-api/internal/infrastructure/storage"
	"github.com/lukusafi/laundry-api/internal/presentation/http/handler"
	"github.com/lukusafi/laundry-api/internal/presentation/http/middleware"
	"github.com/lukusafi/laundry-api/internal/presentation/http/routes"
	"github.com/lukusafi/laundry-api/internal/scheduler"
	"github.com/lukusafi/laundry-api/internal/worker"
	"github.com/lukusafi/laundry-api/pkg/logger"
	"github.com/lukusafi/laundry-api/pkg/notify"
	"github.com/lukusafi/laundry-api/pkg/utils"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		log.Warn("failed to seed default data", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to access database pool", zap.Error(err))
	}

	// Analytics cache; the API keeps working without Redis
	var analyticsCache domainRepo.Cache = cache.Noop{}
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisCache, err = cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("redis unavailable, analytics will not be cached", zap.Error(err))
		} else {
			analyticsCache = redisCache
		}
	}

	// Pickup notifications
	var channels notify.Multi
	sms := notify.SMSConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	}
	if sms.Enabled() {
		channels = append(channels, notify.NewSMSNotifier(sms))
	}
	mail := notify.EmailConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromName:     cfg.SMTP.FromName,
		FromEmail:    cfg.SMTP.FromEmail,
	}
	if mail.Enabled() {
		channels = append(channels, notify.NewEmailNotifier(mail))
	}
	var notifier notify.Notifier = notify.Nop{}
	if len(channels) > 0 {
		notifier = channels
	}
	log.Info("notifications configured", zap.Int("channels", len(channels)))

	// Receipt storage and rendering queue
	receiptStore, err := storage.NewReceiptStore(cfg.Storage.ReceiptDir())
	if err != nil {
		log.Fatal("failed to prepare receipt storage", zap.Error(err))
	}
	receiptPool := worker.NewPool[*entity.ReceiptFile](log.Named("receipts"), cfg.Receipt.Workers, cfg.Receipt.QueueSize)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	store := entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Tagline:   cfg.Store.Tagline,
		Phone:     cfg.Store.Phone,
		Email:     cfg.Store.Email,
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	customerService := service.NewCustomerService(customerRepo, orderRepo, analyticsCache, log.Named("customers"))
	catalogService := service.NewCatalogService(serviceRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, serviceRepo, analyticsCache, notifier, store, log.Named("orders"))
	expenseService := service.NewExpenseService(expenseRepo, analyticsCache, log.Named("expenses"))
	analyticsService := service.NewAnalyticsService(analyticsRepo, orderRepo, expenseRepo, analyticsCache, cfg.Redis.CacheTTL, log.Named("analytics"))
	receiptService := service.NewReceiptService(
		customerRepo,
		orderRepo,
		analyticsRepo,
		pdf.NewReceiptRenderer(),
		receiptStore,
		receiptPool,
		store,
		time.Duration(cfg.Receipt.RetentionDays)*24*time.Hour,
		log.Named("receipts"),
	)

	// Background jobs
	jobs, err := scheduler.New(scheduler.DefaultConfig(), log.Named("scheduler"), receiptService, idempotencyRepo, receiptPool)
	if err != nil {
		log.Fatal("failed to configure scheduler", zap.Error(err))
	}
	jobs.Start()

	// Health checks
	checks := map[string]handler.Pinger{"database": handler.PingFunc(sqlDB.PingContext)}
	if redisCache != nil {
		checks["redis"] = redisCache
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Customer:  handler.NewCustomerHandler(customerService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Order:     handler.NewOrderHandler(orderService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Health:    handler.NewHealthHandler(checks),
	}

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfigFor(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          log,
		UserRepo:        userRepo,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	rateLimiter.Stop()
	jobs.Stop(ctx)
	if err := receiptPool.Stop(ctx); err != nil {
		log.Error("receipt queue did not drain", zap.Error(err))
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Warn("closing redis", zap.Error(err))
		}
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("closing database", zap.Error(err))
	}
	log.Info("server stopped")
}
