package database

import (
	"errors"
	"fmt"

	"github.com/lukusafi/laundry-api/internal/config"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	zap.L().Info("connected to PostgreSQL", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	zap.L().Info("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Customer{},
		&entity.Service{},
		&entity.Order{},
		&entity.Expense{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	zap.L().Info("database migrations completed")
	return nil
}

// DefaultServices is the catalog seeded into an empty services table
func DefaultServices() []entity.Service {
	price := func(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

	defaults := []entity.Service{
		{DisplayName: "Wash & Fold", BasePrice: decimal.Zero, PricePerKg: price(150), RequiresWeight: true},
		{DisplayName: "Wash & Iron", BasePrice: decimal.Zero, PricePerKg: price(200), RequiresWeight: true},
		{DisplayName: "Ironing Only", BasePrice: decimal.Zero, PricePerItem: price(50), RequiresItems: true},
		{DisplayName: "Duvet Cleaning", BasePrice: decimal.Zero, PricePerItem: price(500), RequiresItems: true},
		{DisplayName: "Shoe Cleaning", BasePrice: decimal.Zero, PricePerItem: price(250), RequiresItems: true},
	}
	for i := range defaults {
		defaults[i].Name = utils.Slugify(defaults[i].DisplayName)
		defaults[i].IsActive = true
	}
	return defaults
}

// SeedDefaultData seeds the catalog and, when configured, an owner account
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	log := zap.L()
	log.Info("seeding default data")

	var services int64
	if err := db.Model(&entity.Service{}).Count(&services).Error; err != nil {
		return fmt.Errorf("failed to count services: %w", err)
	}
	if services == 0 {
		defaults := DefaultServices()
		if err := db.Create(&defaults).Error; err != nil {
			log.Warn("failed to seed services", zap.Error(err))
		} else {
			log.Info("seeded default services", zap.Int("count", len(defaults)))
		}
	}

	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	var existing entity.User
	err := db.Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		log.Info("owner account already exists", zap.String("email", admin.Email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up owner account: %w", err)
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Owner"
	}
	owner := entity.User{
		Email:    admin.Email,
		Name:     name,
		Password: hashed,
		Role:     enum.UserRoleOwner,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Warn("failed to create owner account", zap.Error(err))
		return nil
	}

	log.Info("owner account created", zap.String("email", admin.Email))
	return nil
}
