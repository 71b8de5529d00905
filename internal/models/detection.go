package models

import "time"

// Automated detections produced by the city camera pipeline, read-only to
// this service. DetectionSuccess is a nullable tinyint: nil means the
// detection has not been confirmed either way yet.

type MissingPersonDetection struct {
	DetectionID      string     `gorm:"column:detection_id;primaryKey" json:"detectionId"`
	ImageID          string     `gorm:"column:image_id;type:varchar(64)" json:"imageId"`
	MissingID        string     `gorm:"column:missing_id;type:varchar(64);index" json:"missingId"`
	DetectionSuccess *int       `gorm:"column:detection_success" json:"detectionSuccess"`
	DetectedLat      *float64   `gorm:"column:detected_lat" json:"detectedLat"`
	DetectedLon      *float64   `gorm:"column:detected_lon" json:"detectedLon"`
	DetectedTime     *time.Time `gorm:"column:detected_time;index" json:"detectedTime"`
}

func (MissingPersonDetection) TableName() string { return "missing_person_detection" }

type MissingPersonInfo struct {
	MissingID       string     `gorm:"column:missing_id;primaryKey" json:"missingId"`
	MissingName     string     `gorm:"column:missing_name;type:varchar(100)" json:"missingName"`
	MissingAge      *int       `gorm:"column:missing_age" json:"missingAge"`
	MissingIdentity string     `gorm:"column:missing_identity;type:varchar(255)" json:"missingIdentity"`
	RegisteredAt    *time.Time `gorm:"column:registered_at" json:"registeredAt"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updatedAt"`
	MissingLocation string     `gorm:"column:missing_location;type:varchar(50)" json:"missingLocation"`
}

func (MissingPersonInfo) TableName() string { return "missing_person_info" }

type ArrearsDetection struct {
	DetectionID      string     `gorm:"column:detection_id;primaryKey" json:"detectionId"`
	CarPlateNumber   string     `gorm:"column:car_plate_number;type:varchar(20);index" json:"carPlateNumber"`
	ImageID          string     `gorm:"column:image_id;type:varchar(64)" json:"imageId"`
	DetectionSuccess *int       `gorm:"column:detection_success" json:"detectionSuccess"`
	DetectedLat      *float64   `gorm:"column:detected_lat" json:"detectedLat"`
	DetectedLon      *float64   `gorm:"column:detected_lon" json:"detectedLon"`
	DetectedTime     *time.Time `gorm:"column:detected_time;index" json:"detectedTime"`
}

func (ArrearsDetection) TableName() string { return "arrears_detection" }

type ArrearsInfo struct {
	CarPlateNumber     string     `gorm:"column:car_plate_number;primaryKey" json:"carPlateNumber"`
	ArrearsUserID      string     `gorm:"column:arrears_user_id;type:varchar(64)" json:"arrearsUserId"`
	TotalArrearsAmount *int       `gorm:"column:total_arrears_amount" json:"totalArrearsAmount"`
	ArrearsPeriod      string     `gorm:"column:arrears_period;type:varchar(50)" json:"arrearsPeriod"`
	NoticeSent         *int       `gorm:"column:notice_sent" json:"noticeSent"`
	UpdatedAt          *time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (ArrearsInfo) TableName() string { return "arrears_info" }
