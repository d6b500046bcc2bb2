// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mcaportal/mca-backend/internal/config"
	"github.com/mcaportal/mca-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.Client{},
		&models.AdminUser{},
		&models.Lender{},
		&models.Application{},
		&models.ApplicationSequence{},
		&models.LenderSubmission{},
		&models.Document{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_clients_email ON clients(email)",
		"CREATE INDEX IF NOT EXISTS idx_applications_client ON applications(client_id)",
		"CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status)",
		"CREATE INDEX IF NOT EXISTS idx_applications_submitted ON applications(submitted_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_submissions_application ON lender_submissions(application_id)",
		"CREATE INDEX IF NOT EXISTS idx_submissions_status ON lender_submissions(status)",
		"CREATE INDEX IF NOT EXISTS idx_documents_application ON documents(application_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData inserts the built-in lender directory and, when configured,
// the bootstrap admin account. Existing rows are left alone.
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	logrus.Info("Seeding initial data...")

	for _, lender := range models.DefaultLenders() {
		var count int64
		db.Model(&models.Lender{}).Where("id = ?", lender.ID).Count(&count)
		if count == 0 {
			if err := db.Create(&lender).Error; err != nil {
				return fmt.Errorf("failed to seed lender %s: %w", lender.ID, err)
			}
		}
	}

	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		var adminCount int64
		db.Model(&models.AdminUser{}).Count(&adminCount)

		if adminCount == 0 {
			admin := &models.AdminUser{
				Email: cfg.Seed.AdminEmail,
				Name:  cfg.Seed.AdminName,
				Role:  models.AdminRoleSuperAdmin,
			}
			if err := admin.SetPassword(cfg.Seed.AdminPassword); err != nil {
				return fmt.Errorf("failed to set admin password: %w", err)
			}
			if err := db.Create(admin).Error; err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}
			logrus.WithField("email", admin.Email).Info("Bootstrap admin user created")
		}
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
