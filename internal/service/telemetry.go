package service

import (
	"context"
	"errors"
	"time"

	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/scoring"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// TelemetryReader is the read-only accessor over the car telemetry store.
// Every method fetches a complete batch; joins against vehicle profiles are
// done in memory by the callers, never delegated to the ORM.
type TelemetryReader struct {
	db *gorm.DB
}

func NewTelemetryReader(db *gorm.DB) *TelemetryReader {
	return &TelemetryReader{db: db}
}

// SessionFilter narrows the trip listing. CarIDs restricts the result to a
// vehicle set; an explicit empty set matches nothing.
type SessionFilter struct {
	CarID     string
	CarIDs    []string
	SessionID string
	StartDate *time.Time
	EndDate   *time.Time
}

func (r *TelemetryReader) Sessions(ctx context.Context, f SessionFilter) ([]models.DrivingSession, error) {
	if f.CarIDs != nil && len(f.CarIDs) == 0 {
		return nil, nil
	}

	q := r.db.WithContext(ctx).Model(&models.DrivingSession{})
	if f.CarID != "" {
		q = q.Where("car_id = ?", f.CarID)
	}
	if len(f.CarIDs) > 0 {
		q = q.Where("car_id IN ?", f.CarIDs)
	}
	if f.SessionID != "" {
		q = q.Where("session_id = ?", f.SessionID)
	}
	if f.StartDate != nil {
		q = q.Where("start_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("start_time <= ?", *f.EndDate)
	}

	var sessions []models.DrivingSession
	err := q.Order("start_time DESC").Find(&sessions).Error
	return sessions, err
}

func (r *TelemetryReader) SessionByID(ctx context.Context, sessionID string) (*models.DrivingSession, error) {
	var session models.DrivingSession
	err := r.db.WithContext(ctx).First(&session, "session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// SessionsForMonth lists the month's sessions for the given cars. Sessions
// are attributed to a month by created_at; rows without created_at fall back
// to start_time.
func (r *TelemetryReader) SessionsForMonth(ctx context.Context, carIDs []string, year, month int) ([]models.DrivingSession, error) {
	if len(carIDs) == 0 {
		return nil, nil
	}
	start, end := scoring.MonthRange(year, month)

	var sessions []models.DrivingSession
	err := r.db.WithContext(ctx).
		Where("car_id IN ?", carIDs).
		Where(
			r.db.Where("created_at >= ? AND created_at < ?", start, end).
				Or("created_at IS NULL AND start_time >= ? AND start_time < ?", start, end),
		).
		Find(&sessions).Error
	return sessions, err
}

// SessionsInMonth lists the month's sessions across the whole fleet, with
// the same created_at/start_time attribution as SessionsForMonth.
func (r *TelemetryReader) SessionsInMonth(ctx context.Context, year, month int) ([]models.DrivingSession, error) {
	start, end := scoring.MonthRange(year, month)

	var sessions []models.DrivingSession
	err := r.db.WithContext(ctx).
		Where(
			r.db.Where("created_at >= ? AND created_at < ?", start, end).
				Or("created_at IS NULL AND start_time >= ? AND start_time < ?", start, end),
		).
		Find(&sessions).Error
	return sessions, err
}

// AllSessions lists every recorded session, oldest first.
func (r *TelemetryReader) AllSessions(ctx context.Context) ([]models.DrivingSession, error) {
	var sessions []models.DrivingSession
	err := r.db.WithContext(ctx).Order("start_time ASC").Find(&sessions).Error
	return sessions, err
}

// SessionInfos returns a session's telemetry rows with a capture timestamp,
// in capture order. This is the scoring input: rows without createdDate
// never reach the bucketing engine.
func (r *TelemetryReader) SessionInfos(ctx context.Context, sessionID string) ([]models.DrivingSessionInfo, error) {
	var infos []models.DrivingSessionInfo
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND createdDate IS NOT NULL", sessionID).
		Order("createdDate ASC").
		Find(&infos).Error
	return infos, err
}

// AllSessionInfos returns every telemetry row of a session ordered by dt,
// for the raw trip-detail listing.
func (r *TelemetryReader) AllSessionInfos(ctx context.Context, sessionID string) ([]models.DrivingSessionInfo, error) {
	var infos []models.DrivingSessionInfo
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("dt ASC").
		Find(&infos).Error
	return infos, err
}

// InfosForMonth returns every telemetry row captured in the month, across
// all vehicles, in capture order.
func (r *TelemetryReader) InfosForMonth(ctx context.Context, year, month int) ([]models.DrivingSessionInfo, error) {
	start, end := scoring.MonthRange(year, month)

	var infos []models.DrivingSessionInfo
	err := r.db.WithContext(ctx).
		Where("createdDate >= ? AND createdDate < ?", start, end).
		Order("createdDate ASC").
		Find(&infos).Error
	return infos, err
}

// InfosBySessions batch-fetches telemetry rows for a session set. Row order
// is unspecified; aggregation callers do not depend on it.
func (r *TelemetryReader) InfosBySessions(ctx context.Context, sessionIDs []string) ([]models.DrivingSessionInfo, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var infos []models.DrivingSessionInfo
	err := r.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Find(&infos).Error
	return infos, err
}

func (r *TelemetryReader) DrowsyEvents(ctx context.Context, sessionID string) ([]models.DrowsyDrive, error) {
	var events []models.DrowsyDrive
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&events).Error
	return events, err
}

// DrowsyEventsBySessions batch-fetches drowsy episodes for a session set.
func (r *TelemetryReader) DrowsyEventsBySessions(ctx context.Context, sessionIDs []string) ([]models.DrowsyDrive, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var events []models.DrowsyDrive
	err := r.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Find(&events).Error
	return events, err
}

// SessionsByIDs batch-fetches session rows for an id set.
func (r *TelemetryReader) SessionsByIDs(ctx context.Context, sessionIDs []string) ([]models.DrivingSession, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var sessions []models.DrivingSession
	err := r.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Find(&sessions).Error
	return sessions, err
}

// Profiles batch-fetches driver profiles keyed by car id. Missing profiles
// are simply absent from the map; callers fall back to sentinel groups.
func (r *TelemetryReader) Profiles(ctx context.Context, carIDs []string) (map[string]models.UserVehicle, error) {
	profiles := make(map[string]models.UserVehicle, len(carIDs))
	if len(carIDs) == 0 {
		return profiles, nil
	}

	var rows []models.UserVehicle
	err := r.db.WithContext(ctx).
		Where("car_id IN ?", carIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, p := range rows {
		profiles[p.CarID] = p
	}
	return profiles, nil
}
