package models

import "time"

// Vehicle types accepted at registration.
const (
	VehiclePrivate = "private"
	VehicleTaxi    = "taxi"
	VehicleRental  = "rental"
)

// Vehicle is a user-registered vehicle in the application store. CarID maps
// the vehicle onto the telemetry store's identifiers; it is empty until the
// mapping is provisioned.
type Vehicle struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	UserID       int        `gorm:"not null;index" json:"userId"`
	LicensePlate string     `gorm:"type:varchar(20);unique;not null;index" json:"licensePlate"`
	VehicleType  string     `gorm:"type:varchar(20);not null" json:"vehicleType"`
	Model        string     `gorm:"type:varchar(50)" json:"model"`
	Year         int        `json:"year"`
	CarID        string     `gorm:"type:varchar(255);index" json:"carId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func (Vehicle) TableName() string { return "vehicles" }

// ValidVehicleType reports whether t is a registrable vehicle type.
func ValidVehicleType(t string) bool {
	switch t {
	case VehiclePrivate, VehicleTaxi, VehicleRental:
		return true
	}
	return false
}

type VehicleCreateRequest struct {
	LicensePlate string `json:"licensePlate" binding:"required"`
	VehicleType  string `json:"vehicleType" binding:"required"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
}

type VehicleUpdateRequest struct {
	LicensePlate *string `json:"licensePlate"`
	VehicleType  *string `json:"vehicleType"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
}
