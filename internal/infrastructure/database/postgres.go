package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aquaflow/sachet-api/internal/config"
	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
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
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Accounts
		&entity.User{},
		&entity.RecoveryToken{},

		// Production ledger
		&entity.Settings{},
		&entity.Employee{},
		&entity.Sale{},
		&entity.Expense{},
		&entity.MaterialPurchase{},
		&entity.PackerEntry{},
		&entity.SalaryPayment{},

		// Front desk and warehouse
		&entity.ReceptionistSale{},
		&entity.StorekeeperEntry{},
		&entity.Settlement{},
		&entity.SettlementPayment{},

		// System
		&entity.AuditLog{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, table := range []string{entity.BagPriceTable, entity.MaterialPriceTable} {
		if err := db.Table(table).AutoMigrate(&entity.Price{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData writes the settings row and the first admin user when they
// are missing.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig, business config.BusinessConfig) error {
	log.Println("Seeding default data...")

	var settings entity.Settings
	err := db.First(&settings, "id = ?", entity.SettingsID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		defaults := entity.DefaultSettings()
		if business.InventoryLowThreshold > 0 {
			defaults.InventoryLowThreshold = business.InventoryLowThreshold
		}
		if err := db.Create(defaults).Error; err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
		log.Println("Default settings created")
	case err != nil:
		return fmt.Errorf("failed to read settings: %w", err)
	}

	if admin.Email == "" || admin.Password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("role = ?", enum.UserRoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		log.Println("Admin user already exists")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := entity.User{
		Name:     admin.Name,
		Email:    strings.ToLower(strings.TrimSpace(admin.Email)),
		Role:     enum.UserRoleAdmin,
		Password: string(hashed),
		IsActive: true,
	}
	if admin.Phone != "" {
		phone := admin.Phone
		user.Phone = &phone
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Admin user created: %s", user.Email)
	log.Println("Default data seeding completed")
	return nil
}
