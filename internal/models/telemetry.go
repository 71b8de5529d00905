package models

import "time"

// Read-only models over the city telemetry store. Rows are produced by the
// in-vehicle ingestion pipeline; this service never writes them.

// DrivingSession is one continuous vehicle trip. A nil EndTime means the
// trip is still in progress.
type DrivingSession struct {
	SessionID string     `gorm:"column:session_id;primaryKey" json:"sessionId"`
	CarID     string     `gorm:"column:car_id;index" json:"carId"`
	StartTime *time.Time `gorm:"column:start_time" json:"startTime"`
	EndTime   *time.Time `gorm:"column:end_time" json:"endTime"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (DrivingSession) TableName() string { return "driving_session" }

// DrivingSessionInfo is one periodic telemetry reading within a session.
// Most columns are nullable on the wire and stay pointers here.
type DrivingSessionInfo struct {
	InfoID           string     `gorm:"column:info_id;primaryKey" json:"infoId"`
	SessionID        string     `gorm:"column:session_id;index" json:"sessionId"`
	AppLat           *float64   `gorm:"column:app_lat" json:"appLat"`
	AppLon           *float64   `gorm:"column:app_lon" json:"appLon"`
	AppPrevLat       *float64   `gorm:"column:app_prev_lat" json:"appPrevLat"`
	AppPrevLon       *float64   `gorm:"column:app_prev_lon" json:"appPrevLon"`
	Voltage          *int       `gorm:"column:voltage" json:"voltage"`
	DDoor            *int       `gorm:"column:d_door" json:"dDoor"`
	PDoor            *int       `gorm:"column:p_door" json:"pDoor"`
	RdDoor           *int       `gorm:"column:rd_door" json:"rdDoor"`
	RpDoor           *int       `gorm:"column:rp_door" json:"rpDoor"`
	TDoor            *int       `gorm:"column:t_door" json:"tDoor"`
	EngineStatus     *int       `gorm:"column:engine_status" json:"engineStatus"`
	REngineStatus    *int       `gorm:"column:r_engine_status" json:"rEngineStatus"`
	SttAlert         *int       `gorm:"column:stt_alert" json:"sttAlert"`
	ElStatus         *int       `gorm:"column:el_status" json:"elStatus"`
	DetectShock      *int       `gorm:"column:detect_shock" json:"detectShock"`
	RemainRemote     *int       `gorm:"column:remain_remote" json:"remainRemote"`
	AutodoorUse      *int       `gorm:"column:autodoor_use" json:"autodoorUse"`
	SilenceMode      *int       `gorm:"column:silence_mode" json:"silenceMode"`
	LowVoltageAlert  *int       `gorm:"column:low_voltage_alert" json:"lowVoltageAlert"`
	LowVoltageEngine *int       `gorm:"column:low_voltage_engine" json:"lowVoltageEngine"`
	Temperature      *int       `gorm:"column:temperature" json:"temperature"`
	AppTravel        *int       `gorm:"column:app_travel" json:"appTravel"`
	AppAvgSpeed      *float64   `gorm:"column:app_avg_speed" json:"appAvgSpeed"`
	AppAccel         *float64   `gorm:"column:app_accel" json:"appAccel"`
	AppGradient      *float64   `gorm:"column:app_gradient" json:"appGradient"`
	AppRapidAcc      *int       `gorm:"column:app_rapid_acc" json:"appRapidAcc"`
	AppRapidDeacc    *int       `gorm:"column:app_rapid_deacc" json:"appRapidDeacc"`
	Speed            *float64   `gorm:"column:speed" json:"speed"`
	CreatedDate      *time.Time `gorm:"column:createdDate" json:"createdDate"`
	AppWeatherStatus *string    `gorm:"column:app_weather_status" json:"appWeatherStatus"`
	AppPrecipitation *float64   `gorm:"column:app_precipitation" json:"appPrecipitation"`
	Dt               *time.Time `gorm:"column:dt" json:"dt"`
	Roadname         *string    `gorm:"column:roadname" json:"roadname"`
	Treveltime       *float64   `gorm:"column:treveltime" json:"treveltime"`
	Hour             *int       `gorm:"column:Hour" json:"hour"`
}

func (DrivingSessionInfo) TableName() string { return "driving_session_info" }

// DrowsyDrive is one detected drowsy-driving episode.
type DrowsyDrive struct {
	DrowsyID    string     `gorm:"column:drowsy_id;primaryKey" json:"drowsyId"`
	SessionID   string     `gorm:"column:session_id;index" json:"sessionId"`
	DetectedAt  *time.Time `gorm:"column:detected_at" json:"detectedAt"`
	DurationSec *int       `gorm:"column:duration_sec" json:"durationSec"`
	GazeClosure *int       `gorm:"column:gaze_closure" json:"gazeClosure"`
	HeadDrop    *int       `gorm:"column:head_drop" json:"headDrop"`
	YawnFlag    *int       `gorm:"column:yawn_flag" json:"yawnFlag"`
}

func (DrowsyDrive) TableName() string { return "drowsy_drive" }

// Abnormal marks an episode severe enough to surface on its own: the
// duration already carries penalty weight, or several distinct drowsiness
// signals fired together.
func (d *DrowsyDrive) Abnormal() bool {
	if d.DurationSec != nil && *d.DurationSec >= 10 {
		return true
	}
	flags := 0
	for _, p := range []*int{d.GazeClosure, d.HeadDrop, d.YawnFlag} {
		if p != nil {
			flags += *p
		}
	}
	return flags >= 3
}

// UserVehicle is the telemetry store's per-vehicle driver profile, joined by
// car_id for grouping only.
type UserVehicle struct {
	CarID             string     `gorm:"column:car_id;primaryKey" json:"carId"`
	Age               *int       `gorm:"column:age" json:"age"`
	UserSex           string     `gorm:"column:user_sex;type:varchar(10)" json:"userSex"`
	UserLocation      string     `gorm:"column:user_location;type:varchar(255)" json:"userLocation"`
	UserCarClass      string     `gorm:"column:user_car_class;type:varchar(255)" json:"userCarClass"`
	UserCarBrand      string     `gorm:"column:user_car_brand;type:varchar(255)" json:"userCarBrand"`
	UserCarYear       *int       `gorm:"column:user_car_year" json:"userCarYear"`
	UserCarModel      string     `gorm:"column:user_car_model;type:varchar(255)" json:"userCarModel"`
	UserCarWeight     *int       `gorm:"column:user_car_weight" json:"userCarWeight"`
	UserCarDisplace   *int       `gorm:"column:user_car_displace" json:"userCarDisplace"`
	UserCarEfficiency string     `gorm:"column:user_car_efficiency;type:varchar(255)" json:"userCarEfficiency"`
	UpdatedAt         *time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (UserVehicle) TableName() string { return "uservehicle" }
