package models

import "time"

// Modification records live in the application store and form the append-
// only audit trail of manual corrections to automated detections. One row
// exists per (detection, subject) pair; result corrections and resolution
// both land on that row.

type MissingPersonDetectionModification struct {
	ID                 int        `gorm:"primaryKey" json:"id"`
	DetectionID        string     `gorm:"type:varchar(64);not null;index" json:"detectionId"`
	MissingID          string     `gorm:"type:varchar(64);not null;index" json:"missingId"`
	PreviousResult     *bool      `json:"previousResult"`
	NewResult          *bool      `json:"newResult"`
	ModifiedBy         int        `gorm:"not null;index" json:"modifiedBy"`
	ModificationReason *string    `gorm:"type:varchar(500)" json:"modificationReason"`
	IsResolved         bool       `gorm:"not null;default:false;index" json:"isResolved"`
	ResolvedAt         *time.Time `gorm:"index" json:"resolvedAt"`
	CreatedAt          time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt"`
}

func (MissingPersonDetectionModification) TableName() string {
	return "missing_person_detection_modifications"
}

type ArrearsDetectionModification struct {
	ID                 int        `gorm:"primaryKey" json:"id"`
	DetectionID        string     `gorm:"type:varchar(64);not null;index" json:"detectionId"`
	CarPlateNumber     string     `gorm:"type:varchar(20);not null;index" json:"carPlateNumber"`
	PreviousResult     *bool      `json:"previousResult"`
	NewResult          *bool      `json:"newResult"`
	ModifiedBy         int        `gorm:"not null;index" json:"modifiedBy"`
	ModificationReason *string    `gorm:"type:varchar(500)" json:"modificationReason"`
	IsResolved         bool       `gorm:"not null;default:false;index" json:"isResolved"`
	ResolvedAt         *time.Time `gorm:"index" json:"resolvedAt"`
	CreatedAt          time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt"`
}

func (ArrearsDetectionModification) TableName() string {
	return "arrears_detection_modifications"
}
