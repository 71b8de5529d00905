package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/BUSAN-4/front-back/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectWeb opens the application (write) store.
func ConnectWeb(cfg config.DatabaseConfig) (*gorm.DB, error) {
	slog.Info("Connecting to web database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to web database: %w", err)
	}
	if err := tunePool(db); err != nil {
		return nil, err
	}

	slog.Info("Web database connection successful")
	return db, nil
}

// ConnectCar opens the telemetry (read-only) store. The schema there belongs
// to the ingestion pipeline; this service only ever reads and never
// migrates it.
func ConnectCar(cfg config.DatabaseConfig) (*gorm.DB, error) {
	slog.Info("Connecting to car telemetry database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to car database: %w", err)
	}
	if err := tunePool(db); err != nil {
		return nil, err
	}

	slog.Info("Car database connection successful")
	return db, nil
}

func tunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return nil
}
