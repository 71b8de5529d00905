package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/scoring"

	"gorm.io/gorm"
)

var (
	ErrDetectionNotFound = errors.New("detection not found")
	ErrAlreadyResolved   = errors.New("detection already resolved")
)

const (
	locationUnknown = "위치 정보 없음"
	nameUnknown     = "알 수 없음"

	recentDetectionLimit = 50
)

// DetectionService serves the camera-pipeline detection feeds. Detections
// and their subject records live in the read-mostly telemetry store; the
// manual-correction audit trail lives in the application store. The only
// telemetry write this service performs is the detection_success correction.
type DetectionService struct {
	car *gorm.DB
	web *gorm.DB
}

func NewDetectionService(car, web *gorm.DB) *DetectionService {
	return &DetectionService{car: car, web: web}
}

func formatLocation(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return locationUnknown
	}
	return fmt.Sprintf("위도: %v, 경도: %v", *lat, *lon)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBoolPtr(p *int) *bool {
	if p == nil {
		return nil
	}
	b := *p != 0
	return &b
}

// DetectionFilter narrows a detection listing. Subject matches the feed's
// subject key: a missing-person id or a car plate number.
type DetectionFilter struct {
	Page      int
	Limit     int
	Subject   string
	Success   *bool
	Resolved  *bool
	StartDate *time.Time
	EndDate   *time.Time
}

func (f *DetectionFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// MissingDetectionItem is one missing-person detection with its subject
// record and audit state joined in.
type MissingDetectionItem struct {
	DetectionID      string     `json:"detectionId"`
	MissingID        string     `json:"missingId"`
	MissingName      string     `json:"missingName"`
	MissingAge       *int       `json:"missingAge"`
	MissingIdentity  string     `json:"missingIdentity"`
	ImageID          string     `json:"imageId"`
	DetectionSuccess *int       `json:"detectionSuccess"`
	NewResult        *bool      `json:"newResult"`
	IsResolved       bool       `json:"isResolved"`
	ResolvedAt       *time.Time `json:"resolvedAt"`
	Location         string     `json:"location"`
	DetectedTime     *time.Time `json:"detectedTime"`
}

// MissingDetectionPage is one page of the missing-person feed.
type MissingDetectionPage struct {
	Items      []MissingDetectionItem `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

// ListMissingDetections pages through the missing-person feed, newest first.
// The resolved filter is applied by pre-fetching the resolved id set from
// the audit trail, since the two stores cannot be joined in SQL.
func (s *DetectionService) ListMissingDetections(ctx context.Context, f DetectionFilter) (*MissingDetectionPage, error) {
	f.normalize()

	q := s.car.WithContext(ctx).Model(&models.MissingPersonDetection{})
	if f.Subject != "" {
		q = q.Where("missing_id = ?", f.Subject)
	}
	if f.Success != nil {
		q = q.Where("detection_success = ?", boolToInt(*f.Success))
	}
	if f.StartDate != nil {
		q = q.Where("detected_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("detected_time <= ?", *f.EndDate)
	}
	if f.Resolved != nil {
		resolvedIDs, err := s.resolvedMissingIDs(ctx)
		if err != nil {
			return nil, err
		}
		var applied bool
		q, applied = applyResolvedFilter(q, *f.Resolved, resolvedIDs)
		if !applied {
			return &MissingDetectionPage{Items: []MissingDetectionItem{}, Page: f.Page, Limit: f.Limit}, nil
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count detections: %w", err)
	}

	var detections []models.MissingPersonDetection
	err := q.Order("detected_time DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&detections).Error
	if err != nil {
		return nil, fmt.Errorf("list detections: %w", err)
	}

	items, err := s.assembleMissingItems(ctx, detections)
	if err != nil {
		return nil, err
	}
	return &MissingDetectionPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int((total + int64(f.Limit) - 1) / int64(f.Limit)),
	}, nil
}

// RecentMissingDetections lists detections newer than since, capped at 50.
func (s *DetectionService) RecentMissingDetections(ctx context.Context, since time.Time) ([]MissingDetectionItem, error) {
	var detections []models.MissingPersonDetection
	err := s.car.WithContext(ctx).
		Where("detected_time > ?", since).
		Order("detected_time DESC").
		Limit(recentDetectionLimit).
		Find(&detections).Error
	if err != nil {
		return nil, fmt.Errorf("list recent detections: %w", err)
	}
	return s.assembleMissingItems(ctx, detections)
}

func (s *DetectionService) resolvedMissingIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.web.WithContext(ctx).
		Model(&models.MissingPersonDetectionModification{}).
		Where("is_resolved = ?", true).
		Pluck("detection_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list resolved detections: %w", err)
	}
	return ids, nil
}

// applyResolvedFilter narrows q to the resolved (or unresolved) detection id
// set. The second return is false when the filter can only match nothing.
func applyResolvedFilter(q *gorm.DB, resolved bool, resolvedIDs []string) (*gorm.DB, bool) {
	if resolved {
		if len(resolvedIDs) == 0 {
			return q, false
		}
		return q.Where("detection_id IN ?", resolvedIDs), true
	}
	if len(resolvedIDs) == 0 {
		return q, true
	}
	return q.Where("detection_id NOT IN ?", resolvedIDs), true
}

func (s *DetectionService) assembleMissingItems(ctx context.Context, detections []models.MissingPersonDetection) ([]MissingDetectionItem, error) {
	missingIDs := make([]string, 0, len(detections))
	detectionIDs := make([]string, 0, len(detections))
	for _, d := range detections {
		missingIDs = append(missingIDs, d.MissingID)
		detectionIDs = append(detectionIDs, d.DetectionID)
	}

	infoByID := make(map[string]models.MissingPersonInfo, len(missingIDs))
	if len(missingIDs) > 0 {
		var infos []models.MissingPersonInfo
		err := s.car.WithContext(ctx).Where("missing_id IN ?", missingIDs).Find(&infos).Error
		if err != nil {
			return nil, fmt.Errorf("load missing-person records: %w", err)
		}
		for _, info := range infos {
			infoByID[info.MissingID] = info
		}
	}

	modByID := make(map[string]models.MissingPersonDetectionModification, len(detectionIDs))
	if len(detectionIDs) > 0 {
		var mods []models.MissingPersonDetectionModification
		err := s.web.WithContext(ctx).Where("detection_id IN ?", detectionIDs).Find(&mods).Error
		if err != nil {
			return nil, fmt.Errorf("load audit records: %w", err)
		}
		for _, m := range mods {
			modByID[m.DetectionID] = m
		}
	}

	items := make([]MissingDetectionItem, 0, len(detections))
	for _, d := range detections {
		item := MissingDetectionItem{
			DetectionID:      d.DetectionID,
			MissingID:        d.MissingID,
			MissingName:      nameUnknown,
			MissingIdentity:  nameUnknown,
			ImageID:          d.ImageID,
			DetectionSuccess: d.DetectionSuccess,
			Location:         formatLocation(d.DetectedLat, d.DetectedLon),
			DetectedTime:     d.DetectedTime,
		}
		if info, ok := infoByID[d.MissingID]; ok {
			if info.MissingName != "" {
				item.MissingName = info.MissingName
			}
			if info.MissingIdentity != "" {
				item.MissingIdentity = info.MissingIdentity
			}
			item.MissingAge = info.MissingAge
		}
		if mod, ok := modByID[d.DetectionID]; ok {
			item.NewResult = mod.NewResult
			item.IsResolved = mod.IsResolved
			item.ResolvedAt = mod.ResolvedAt
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateMissingResult corrects a detection's result. The telemetry row is
// updated in place and the correction lands on the detection's audit row,
// preserving the first recorded previous result.
func (s *DetectionService) UpdateMissingResult(ctx context.Context, detectionID string, newResult bool, reason *string, userID int) error {
	var detection models.MissingPersonDetection
	err := s.car.WithContext(ctx).First(&detection, "detection_id = ?", detectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDetectionNotFound
		}
		return fmt.Errorf("load detection: %w", err)
	}

	err = s.car.WithContext(ctx).
		Model(&models.MissingPersonDetection{}).
		Where("detection_id = ?", detectionID).
		Update("detection_success", boolToInt(newResult)).Error
	if err != nil {
		return fmt.Errorf("update detection result: %w", err)
	}

	now := time.Now()
	result := newResult
	var mod models.MissingPersonDetectionModification
	err = s.web.WithContext(ctx).First(&mod, "detection_id = ?", detectionID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		mod = models.MissingPersonDetectionModification{
			DetectionID:        detectionID,
			MissingID:          detection.MissingID,
			PreviousResult:     intToBoolPtr(detection.DetectionSuccess),
			NewResult:          &result,
			ModifiedBy:         userID,
			ModificationReason: reason,
		}
		if err := s.web.WithContext(ctx).Create(&mod).Error; err != nil {
			return fmt.Errorf("record correction: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load audit record: %w", err)
	default:
		mod.NewResult = &result
		mod.ModifiedBy = userID
		if reason != nil {
			mod.ModificationReason = reason
		}
		mod.UpdatedAt = &now
		if err := s.web.WithContext(ctx).Save(&mod).Error; err != nil {
			return fmt.Errorf("record correction: %w", err)
		}
	}
	return nil
}

// ResolveMissingDetection marks a detection's case handled. A detection that
// is already resolved is rejected; the flag never flips back.
func (s *DetectionService) ResolveMissingDetection(ctx context.Context, detectionID string, userID int) error {
	var detection models.MissingPersonDetection
	err := s.car.WithContext(ctx).First(&detection, "detection_id = ?", detectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDetectionNotFound
		}
		return fmt.Errorf("load detection: %w", err)
	}

	now := time.Now()
	var mod models.MissingPersonDetectionModification
	err = s.web.WithContext(ctx).First(&mod, "detection_id = ?", detectionID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		mod = models.MissingPersonDetectionModification{
			DetectionID: detectionID,
			MissingID:   detection.MissingID,
			ModifiedBy:  userID,
			IsResolved:  true,
			ResolvedAt:  &now,
		}
		if err := s.web.WithContext(ctx).Create(&mod).Error; err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load audit record: %w", err)
	default:
		if mod.IsResolved {
			return ErrAlreadyResolved
		}
		mod.IsResolved = true
		mod.ResolvedAt = &now
		mod.ModifiedBy = userID
		mod.UpdatedAt = &now
		if err := s.web.WithContext(ctx).Save(&mod).Error; err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
	}
	return nil
}

// ArrearsDetectionItem is one arrears detection with its subject record and
// audit state joined in.
type ArrearsDetectionItem struct {
	DetectionID        string     `json:"detectionId"`
	CarPlateNumber     string     `json:"carPlateNumber"`
	ArrearsUserID      string     `json:"arrearsUserId"`
	TotalArrearsAmount *int       `json:"totalArrearsAmount"`
	ArrearsPeriod      string     `json:"arrearsPeriod"`
	NoticeSent         *int       `json:"noticeSent"`
	ImageID            string     `json:"imageId"`
	DetectionSuccess   *int       `json:"detectionSuccess"`
	NewResult          *bool      `json:"newResult"`
	IsResolved         bool       `json:"isResolved"`
	ResolvedAt         *time.Time `json:"resolvedAt"`
	Location           string     `json:"location"`
	DetectedTime       *time.Time `json:"detectedTime"`
}

// ArrearsDetectionPage is one page of the arrears feed.
type ArrearsDetectionPage struct {
	Items      []ArrearsDetectionItem `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

// ListArrearsDetections pages through the arrears feed, newest first.
func (s *DetectionService) ListArrearsDetections(ctx context.Context, f DetectionFilter) (*ArrearsDetectionPage, error) {
	f.normalize()

	q := s.car.WithContext(ctx).Model(&models.ArrearsDetection{})
	if f.Subject != "" {
		q = q.Where("car_plate_number = ?", f.Subject)
	}
	if f.Success != nil {
		q = q.Where("detection_success = ?", boolToInt(*f.Success))
	}
	if f.StartDate != nil {
		q = q.Where("detected_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("detected_time <= ?", *f.EndDate)
	}
	if f.Resolved != nil {
		resolvedIDs, err := s.resolvedArrearsIDs(ctx)
		if err != nil {
			return nil, err
		}
		var applied bool
		q, applied = applyResolvedFilter(q, *f.Resolved, resolvedIDs)
		if !applied {
			return &ArrearsDetectionPage{Items: []ArrearsDetectionItem{}, Page: f.Page, Limit: f.Limit}, nil
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count detections: %w", err)
	}

	var detections []models.ArrearsDetection
	err := q.Order("detected_time DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&detections).Error
	if err != nil {
		return nil, fmt.Errorf("list detections: %w", err)
	}

	items, err := s.assembleArrearsItems(ctx, detections)
	if err != nil {
		return nil, err
	}
	return &ArrearsDetectionPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int((total + int64(f.Limit) - 1) / int64(f.Limit)),
	}, nil
}

// RecentArrearsDetections lists detections newer than since, capped at 50.
func (s *DetectionService) RecentArrearsDetections(ctx context.Context, since time.Time) ([]ArrearsDetectionItem, error) {
	var detections []models.ArrearsDetection
	err := s.car.WithContext(ctx).
		Where("detected_time > ?", since).
		Order("detected_time DESC").
		Limit(recentDetectionLimit).
		Find(&detections).Error
	if err != nil {
		return nil, fmt.Errorf("list recent detections: %w", err)
	}
	return s.assembleArrearsItems(ctx, detections)
}

func (s *DetectionService) resolvedArrearsIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.web.WithContext(ctx).
		Model(&models.ArrearsDetectionModification{}).
		Where("is_resolved = ?", true).
		Pluck("detection_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list resolved detections: %w", err)
	}
	return ids, nil
}

func (s *DetectionService) assembleArrearsItems(ctx context.Context, detections []models.ArrearsDetection) ([]ArrearsDetectionItem, error) {
	plates := make([]string, 0, len(detections))
	detectionIDs := make([]string, 0, len(detections))
	for _, d := range detections {
		plates = append(plates, d.CarPlateNumber)
		detectionIDs = append(detectionIDs, d.DetectionID)
	}

	infoByPlate := make(map[string]models.ArrearsInfo, len(plates))
	if len(plates) > 0 {
		var infos []models.ArrearsInfo
		err := s.car.WithContext(ctx).Where("car_plate_number IN ?", plates).Find(&infos).Error
		if err != nil {
			return nil, fmt.Errorf("load arrears records: %w", err)
		}
		for _, info := range infos {
			infoByPlate[info.CarPlateNumber] = info
		}
	}

	modByID := make(map[string]models.ArrearsDetectionModification, len(detectionIDs))
	if len(detectionIDs) > 0 {
		var mods []models.ArrearsDetectionModification
		err := s.web.WithContext(ctx).Where("detection_id IN ?", detectionIDs).Find(&mods).Error
		if err != nil {
			return nil, fmt.Errorf("load audit records: %w", err)
		}
		for _, m := range mods {
			modByID[m.DetectionID] = m
		}
	}

	items := make([]ArrearsDetectionItem, 0, len(detections))
	for _, d := range detections {
		item := ArrearsDetectionItem{
			DetectionID:      d.DetectionID,
			CarPlateNumber:   d.CarPlateNumber,
			ArrearsUserID:    nameUnknown,
			ArrearsPeriod:    nameUnknown,
			ImageID:          d.ImageID,
			DetectionSuccess: d.DetectionSuccess,
			Location:         formatLocation(d.DetectedLat, d.DetectedLon),
			DetectedTime:     d.DetectedTime,
		}
		if info, ok := infoByPlate[d.CarPlateNumber]; ok {
			if info.ArrearsUserID != "" {
				item.ArrearsUserID = info.ArrearsUserID
			}
			if info.ArrearsPeriod != "" {
				item.ArrearsPeriod = info.ArrearsPeriod
			}
			item.TotalArrearsAmount = info.TotalArrearsAmount
			item.NoticeSent = info.NoticeSent
		}
		if mod, ok := modByID[d.DetectionID]; ok {
			item.NewResult = mod.NewResult
			item.IsResolved = mod.IsResolved
			item.ResolvedAt = mod.ResolvedAt
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateArrearsResult corrects an arrears detection's result, mirroring
// UpdateMissingResult.
func (s *DetectionService) UpdateArrearsResult(ctx context.Context, detectionID string, newResult bool, reason *string, userID int) error {
	var detection models.ArrearsDetection
	err := s.car.WithContext(ctx).First(&detection, "detection_id = ?", detectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDetectionNotFound
		}
		return fmt.Errorf("load detection: %w", err)
	}

	err = s.car.WithContext(ctx).
		Model(&models.ArrearsDetection{}).
		Where("detection_id = ?", detectionID).
		Update("detection_success", boolToInt(newResult)).Error
	if err != nil {
		return fmt.Errorf("update detection result: %w", err)
	}

	now := time.Now()
	result := newResult
	var mod models.ArrearsDetectionModification
	err = s.web.WithContext(ctx).First(&mod, "detection_id = ?", detectionID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		mod = models.ArrearsDetectionModification{
			DetectionID:        detectionID,
			CarPlateNumber:     detection.CarPlateNumber,
			PreviousResult:     intToBoolPtr(detection.DetectionSuccess),
			NewResult:          &result,
			ModifiedBy:         userID,
			ModificationReason: reason,
		}
		if err := s.web.WithContext(ctx).Create(&mod).Error; err != nil {
			return fmt.Errorf("record correction: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load audit record: %w", err)
	default:
		mod.NewResult = &result
		mod.ModifiedBy = userID
		if reason != nil {
			mod.ModificationReason = reason
		}
		mod.UpdatedAt = &now
		if err := s.web.WithContext(ctx).Save(&mod).Error; err != nil {
			return fmt.Errorf("record correction: %w", err)
		}
	}
	return nil
}

// ResolveArrearsDetection marks an arrears case handled, rejecting repeats.
func (s *DetectionService) ResolveArrearsDetection(ctx context.Context, detectionID string, userID int) error {
	var detection models.ArrearsDetection
	err := s.car.WithContext(ctx).First(&detection, "detection_id = ?", detectionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDetectionNotFound
		}
		return fmt.Errorf("load detection: %w", err)
	}

	now := time.Now()
	var mod models.ArrearsDetectionModification
	err = s.web.WithContext(ctx).First(&mod, "detection_id = ?", detectionID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		mod = models.ArrearsDetectionModification{
			DetectionID:    detectionID,
			CarPlateNumber: detection.CarPlateNumber,
			ModifiedBy:     userID,
			IsResolved:     true,
			ResolvedAt:     &now,
		}
		if err := s.web.WithContext(ctx).Create(&mod).Error; err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load audit record: %w", err)
	default:
		if mod.IsResolved {
			return ErrAlreadyResolved
		}
		mod.IsResolved = true
		mod.ResolvedAt = &now
		mod.ModifiedBy = userID
		mod.UpdatedAt = &now
		if err := s.web.WithContext(ctx).Save(&mod).Error; err != nil {
			return fmt.Errorf("record resolution: %w", err)
		}
	}
	return nil
}

// DetectionStats is the one-row summary of a detection feed. Undetected is
// everything not confirmed successful, while unconfirmed counts only the
// rows the pipeline has not judged at all.
type DetectionStats struct {
	Total             int64 `json:"total"`
	Detected          int64 `json:"detected"`
	Undetected        int64 `json:"undetected"`
	Unconfirmed       int64 `json:"unconfirmed"`
	FalsePositives    int64 `json:"falsePositives"`
	ResolvedThisMonth int64 `json:"resolvedThisMonth"`
}

// MissingStats summarizes the missing-person feed for one month; zero year
// or month defaults to the month of now.
func (s *DetectionService) MissingStats(ctx context.Context, year, month int, now time.Time) (*DetectionStats, error) {
	if year == 0 || month == 0 {
		year, month = now.Year(), int(now.Month())
	}
	return s.feedStats(ctx,
		s.car.WithContext(ctx).Model(&models.MissingPersonDetection{}),
		s.web.WithContext(ctx).Model(&models.MissingPersonDetectionModification{}),
		year, month)
}

// ArrearsStats summarizes the whole arrears feed; the resolved count covers
// the month of now.
func (s *DetectionService) ArrearsStats(ctx context.Context, now time.Time) (*DetectionStats, error) {
	return s.feedStats(ctx,
		s.car.WithContext(ctx).Model(&models.ArrearsDetection{}),
		s.web.WithContext(ctx).Model(&models.ArrearsDetectionModification{}),
		now.Year(), int(now.Month()))
}

func (s *DetectionService) feedStats(ctx context.Context, detections, mods *gorm.DB, year, month int) (*DetectionStats, error) {
	var stats DetectionStats

	if err := detections.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("count detections: %w", err)
	}
	if err := detections.Session(&gorm.Session{}).Where("detection_success = ?", 1).Count(&stats.Detected).Error; err != nil {
		return nil, fmt.Errorf("count detected: %w", err)
	}
	if err := detections.Session(&gorm.Session{}).Where("detection_success IS NULL").Count(&stats.Unconfirmed).Error; err != nil {
		return nil, fmt.Errorf("count unconfirmed: %w", err)
	}
	stats.Undetected = stats.Total - stats.Detected

	if err := mods.Session(&gorm.Session{}).Where("new_result = ?", false).Count(&stats.FalsePositives).Error; err != nil {
		return nil, fmt.Errorf("count false positives: %w", err)
	}

	start, end := scoring.MonthRange(year, month)
	err := mods.Session(&gorm.Session{}).
		Where("is_resolved = ? AND resolved_at >= ? AND resolved_at < ?", true, start, end).
		Count(&stats.ResolvedThisMonth).Error
	if err != nil {
		return nil, fmt.Errorf("count resolved: %w", err)
	}
	return &stats, nil
}

// TrendPoint is one month of a detection trend.
type TrendPoint struct {
	scoring.YearMonth
	Reports  int `json:"reports"`
	Found    int `json:"found"`
	Resolved int `json:"resolved"`
}

const trendMonths = 7

// MissingTrend reports the trailing 7-month missing-person trend ending at
// the given month, zero-filled for months without activity.
func (s *DetectionService) MissingTrend(ctx context.Context, year, month int) ([]TrendPoint, error) {
	months := scoring.TrailingMonths(year, month, trendMonths)
	start, _ := scoring.MonthRange(months[0].Year, months[0].Month)
	_, end := scoring.MonthRange(year, month)

	var detections []models.MissingPersonDetection
	err := s.car.WithContext(ctx).
		Where("detected_time >= ? AND detected_time < ?", start, end).
		Find(&detections).Error
	if err != nil {
		return nil, fmt.Errorf("load detections: %w", err)
	}

	var mods []models.MissingPersonDetectionModification
	err = s.web.WithContext(ctx).
		Where("is_resolved = ? AND resolved_at >= ? AND resolved_at < ?", true, start, end).
		Find(&mods).Error
	if err != nil {
		return nil, fmt.Errorf("load resolutions: %w", err)
	}

	points := make([]TrendPoint, len(months))
	index := make(map[scoring.YearMonth]int, len(months))
	for i, ym := range months {
		points[i] = TrendPoint{YearMonth: ym}
		index[ym] = i
	}
	for _, d := range detections {
		if d.DetectedTime == nil {
			continue
		}
		ym := scoring.YearMonth{Year: d.DetectedTime.Year(), Month: int(d.DetectedTime.Month())}
		i, ok := index[ym]
		if !ok {
			continue
		}
		points[i].Reports++
		if d.DetectionSuccess != nil && *d.DetectionSuccess == 1 {
			points[i].Found++
		}
	}
	for _, m := range mods {
		if m.ResolvedAt == nil {
			continue
		}
		ym := scoring.YearMonth{Year: m.ResolvedAt.Year(), Month: int(m.ResolvedAt.Month())}
		if i, ok := index[ym]; ok {
			points[i].Resolved++
		}
	}
	return points, nil
}

// ArrearsTrend reports the trailing 7-month arrears trend ending at the
// given month, zero-filled for months without activity.
func (s *DetectionService) ArrearsTrend(ctx context.Context, year, month int) ([]TrendPoint, error) {
	months := scoring.TrailingMonths(year, month, trendMonths)
	start, _ := scoring.MonthRange(months[0].Year, months[0].Month)
	_, end := scoring.MonthRange(year, month)

	var detections []models.ArrearsDetection
	err := s.car.WithContext(ctx).
		Where("detected_time >= ? AND detected_time < ?", start, end).
		Find(&detections).Error
	if err != nil {
		return nil, fmt.Errorf("load detections: %w", err)
	}

	var mods []models.ArrearsDetectionModification
	err = s.web.WithContext(ctx).
		Where("is_resolved = ? AND resolved_at >= ? AND resolved_at < ?", true, start, end).
		Find(&mods).Error
	if err != nil {
		return nil, fmt.Errorf("load resolutions: %w", err)
	}

	points := make([]TrendPoint, len(months))
	index := make(map[scoring.YearMonth]int, len(months))
	for i, ym := range months {
		points[i] = TrendPoint{YearMonth: ym}
		index[ym] = i
	}
	for _, d := range detections {
		if d.DetectedTime == nil {
			continue
		}
		ym := scoring.YearMonth{Year: d.DetectedTime.Year(), Month: int(d.DetectedTime.Month())}
		i, ok := index[ym]
		if !ok {
			continue
		}
		points[i].Reports++
		if d.DetectionSuccess != nil && *d.DetectionSuccess == 1 {
			points[i].Found++
		}
	}
	for _, m := range mods {
		if m.ResolvedAt == nil {
			continue
		}
		ym := scoring.YearMonth{Year: m.ResolvedAt.Year(), Month: int(m.ResolvedAt.Month())}
		if i, ok := index[ym]; ok {
			points[i].Resolved++
		}
	}
	return points, nil
}
