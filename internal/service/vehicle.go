package service

import (
	"context"
	"errors"

	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrPlateTaken         = errors.New("vehicle with this license plate already exists")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
)

type VehicleService struct {
	r *repository.VehicleRepository
}

func NewVehicleService(r *repository.VehicleRepository) *VehicleService {
	return &VehicleService{r: r}
}

func (s *VehicleService) Register(ctx context.Context, userID int, req *models.VehicleCreateRequest) (*models.Vehicle, error) {
	if !models.ValidVehicleType(req.VehicleType) {
		return nil, ErrInvalidVehicleType
	}

	taken, err := s.r.PlateTaken(ctx, req.LicensePlate, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPlateTaken
	}

	vehicle := &models.Vehicle{
		UserID:       userID,
		LicensePlate: req.LicensePlate,
		VehicleType:  req.VehicleType,
		Model:        req.Model,
		Year:         req.Year,
	}
	if err := s.r.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) ListByUser(ctx context.Context, userID int) ([]models.Vehicle, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *VehicleService) GetForUser(ctx context.Context, id, userID int) (*models.Vehicle, error) {
	vehicle, err := s.r.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id, userID int, req *models.VehicleUpdateRequest) (*models.Vehicle, error) {
	vehicle, err := s.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.LicensePlate != nil && *req.LicensePlate != vehicle.LicensePlate {
		taken, err := s.r.PlateTaken(ctx, *req.LicensePlate, vehicle.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPlateTaken
		}
		vehicle.LicensePlate = *req.LicensePlate
	}
	if req.VehicleType != nil {
		if !models.ValidVehicleType(*req.VehicleType) {
			return nil, ErrInvalidVehicleType
		}
		vehicle.VehicleType = *req.VehicleType
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}

	if err := s.r.Save(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id, userID int) error {
	if _, err := s.GetForUser(ctx, id, userID); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}
