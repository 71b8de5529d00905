package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/BUSAN-4/front-back/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openStores opens throwaway telemetry and application stores for one test.
func openStores(t *testing.T) (car, web *gorm.DB) {
	t.Helper()
	dir := t.TempDir()

	car, err := gorm.Open(sqlite.Open(filepath.Join(dir, "car.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open car store: %v", err)
	}
	err = car.AutoMigrate(
		&models.DrivingSession{},
		&models.DrivingSessionInfo{},
		&models.DrowsyDrive{},
		&models.UserVehicle{},
		&models.MissingPersonDetection{},
		&models.MissingPersonInfo{},
		&models.ArrearsDetection{},
		&models.ArrearsInfo{},
	)
	if err != nil {
		t.Fatalf("migrate car store: %v", err)
	}

	web, err = gorm.Open(sqlite.Open(filepath.Join(dir, "web.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open web store: %v", err)
	}
	err = web.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.MissingPersonDetectionModification{},
		&models.ArrearsDetectionModification{},
	)
	if err != nil {
		t.Fatalf("migrate web store: %v", err)
	}
	return car, web
}

func ip(n int) *int             { return &n }
func fp(f float64) *float64     { return &f }
func tp(t time.Time) *time.Time { return &t }

func at(h, m int) time.Time { return time.Date(2025, 7, 14, h, m, 0, 0, time.UTC) }
