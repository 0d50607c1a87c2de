package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/printarts/billing-api/internal/config"
	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Customer{},
		&entity.Transaction{},
		&entity.BusinessSettings{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the singleton settings row and, when configured via
// environment variables, the initial admin account.
func SeedDefaultData(db *gorm.DB) error {
	logrus.Info("Seeding default data...")

	var settingsCount int64
	if err := db.Model(&entity.BusinessSettings{}).Count(&settingsCount).Error; err != nil {
		return fmt.Errorf("failed to check settings: %w", err)
	}
	if settingsCount == 0 {
		settings := entity.BusinessSettings{
			BusinessName:    "Print Arts",
			Currency:        "INR",
			DefaultTaxClass: enum.TaxClassNone,
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}
		logrus.Info("Default business settings created")
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		err := db.Where("email = ?", adminEmail).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check admin user: %w", err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				logrus.WithError(err).Warn("Failed to hash admin password")
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				firstName := adminName
				lastName := ""
				for i, c := range adminName {
					if c == ' ' {
						firstName = adminName[:i]
						lastName = adminName[i+1:]
						break
					}
				}
				admin := entity.User{
					FirstName: firstName,
					LastName:  lastName,
					Email:     adminEmail,
					Password:  string(hashed),
					Role:      entity.RoleAdmin,
				}
				if err := db.Create(&admin).Error; err != nil {
					logrus.WithError(err).Warn("Failed to create admin user")
				} else {
					logrus.WithField("email", adminEmail).Info("Admin user created")
				}
			}
		} else {
			logrus.WithField("email", adminEmail).Info("Admin user already exists")
		}
	}

	logrus.Info("Default data seeding completed")
	return nil
}
