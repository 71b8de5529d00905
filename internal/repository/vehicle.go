package repository

import (
	"context"

	"github.com/BUSAN-4/front-back/internal/models"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) ListByUser(ctx context.Context, userID int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&vehicles).Error
	return vehicles, err
}

// GetForUser fetches a vehicle only if it belongs to the user.
func (r *VehicleRepository) GetForUser(ctx context.Context, id, userID int) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		First(&vehicle, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetByCarIDForUser resolves ownership of a telemetry car id.
func (r *VehicleRepository) GetByCarIDForUser(ctx context.Context, carID string, userID int) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		First(&vehicle, "car_id = ? AND user_id = ?", carID, userID).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// PlateTaken reports whether another vehicle already carries the plate.
func (r *VehicleRepository) PlateTaken(ctx context.Context, plate string, excludeID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("license_plate = ? AND id <> ?", plate, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *VehicleRepository) Save(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&models.Vehicle{}, "id = ?", id).Error
}
