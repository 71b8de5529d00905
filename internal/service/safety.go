package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/repository"
	"github.com/BUSAN-4/front-back/internal/scoring"

	"gorm.io/gorm"
)

var ErrSessionNotOwned = errors.New("session does not belong to the user")

// SafetyService computes driver safety scores and fleet-wide safety
// statistics from the telemetry store. Vehicle ownership and license plates
// come from the application store; the two are joined in memory by car id.
type SafetyService struct {
	vehicles  *repository.VehicleRepository
	telemetry *TelemetryReader
}

func NewSafetyService(vehicles *repository.VehicleRepository, telemetry *TelemetryReader) *SafetyService {
	return &SafetyService{vehicles: vehicles, telemetry: telemetry}
}

// SessionScoreSummary is one scored trip in the monthly listing.
type SessionScoreSummary struct {
	SessionID        string     `json:"sessionId"`
	CarID            string     `json:"carId"`
	LicensePlate     string     `json:"licensePlate"`
	StartTime        *time.Time `json:"startTime"`
	EndTime          *time.Time `json:"endTime"`
	SafetyScore      int        `json:"safetyScore"`
	DrowsyPenalty    int        `json:"drowsyPenalty"`
	RapidPenalty     int        `json:"rapidPenalty"`
	TotalPenalty     int        `json:"totalPenalty"`
	DrowsyCount      int        `json:"drowsyCount"`
	GazeClosureCount int        `json:"gazeClosureCount"`
	HeadDropCount    int        `json:"headDropCount"`
	YawnFlagCount    int        `json:"yawnFlagCount"`
	TotalRapidAcc    int        `json:"totalRapidAcc"`
	TotalRapidDeacc  int        `json:"totalRapidDeacc"`
}

// MonthlySessionScores scores every trip the user's vehicles made in the
// given month. Vehicles without a telemetry mapping contribute nothing; a
// trip on a car whose plate is unknown is reported as "Unknown".
func (s *SafetyService) MonthlySessionScores(ctx context.Context, userID, year, month int) ([]SessionScoreSummary, error) {
	vehicles, err := s.vehicles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	plateByCar := make(map[string]string, len(vehicles))
	carIDs := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if v.CarID == "" {
			continue
		}
		plateByCar[v.CarID] = v.LicensePlate
		carIDs = append(carIDs, v.CarID)
	}

	sessions, err := s.telemetry.SessionsForMonth(ctx, carIDs, year, month)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summaries := make([]SessionScoreSummary, 0, len(sessions))
	for _, session := range sessions {
		score, drowsyCount, err := s.scoreSession(ctx, session.SessionID)
		if err != nil {
			return nil, err
		}

		plate := plateByCar[session.CarID]
		if plate == "" {
			plate = "Unknown"
		}
		summaries = append(summaries, SessionScoreSummary{
			SessionID:        session.SessionID,
			CarID:            session.CarID,
			LicensePlate:     plate,
			StartTime:        session.StartTime,
			EndTime:          session.EndTime,
			SafetyScore:      score.SafetyScore,
			DrowsyPenalty:    score.DrowsyPenalty,
			RapidPenalty:     score.RapidPenalty,
			TotalPenalty:     score.TotalPenalty,
			DrowsyCount:      drowsyCount,
			GazeClosureCount: score.GazeClosureCount,
			HeadDropCount:    score.HeadDropCount,
			YawnFlagCount:    score.YawnFlagCount,
			TotalRapidAcc:    score.TotalRapidAcc,
			TotalRapidDeacc:  score.TotalRapidDeacc,
		})
	}
	return summaries, nil
}

// UserSessions lists raw trips across the user's vehicles, newest first.
// The filter's car id, when set, must belong to the user; otherwise the
// listing is empty rather than leaking another driver's trips.
func (s *SafetyService) UserSessions(ctx context.Context, userID int, f SessionFilter) ([]models.DrivingSession, error) {
	vehicles, err := s.vehicles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	owned := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if v.CarID != "" {
			owned = append(owned, v.CarID)
		}
	}
	if f.CarID != "" {
		var ok bool
		for _, id := range owned {
			if id == f.CarID {
				ok = true
				break
			}
		}
		if !ok {
			return nil, nil
		}
	} else {
		f.CarIDs = owned
	}
	return s.telemetry.Sessions(ctx, f)
}

// SessionTimeline is a trip with its full telemetry readings.
type SessionTimeline struct {
	Session models.DrivingSession       `json:"session"`
	Infos   []models.DrivingSessionInfo `json:"infos"`
}

// SessionTimeline returns a trip's raw telemetry, subject to the same
// ownership rule as SessionDetail.
func (s *SafetyService) SessionTimeline(ctx context.Context, userID int, sessionID string) (*SessionTimeline, error) {
	session, err := s.telemetry.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicles.GetByCarIDForUser(ctx, session.CarID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotOwned
		}
		return nil, fmt.Errorf("check session ownership: %w", err)
	}

	infos, err := s.telemetry.AllSessionInfos(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session telemetry: %w", err)
	}
	return &SessionTimeline{Session: *session, Infos: infos}, nil
}

// DrowsyDetail is one drowsy episode with its assessed penalty.
type DrowsyDetail struct {
	DetectedAt  *time.Time `json:"detectedAt"`
	DurationSec int        `json:"durationSec"`
	Penalty     int        `json:"penalty"`
	GazeClosure int        `json:"gazeClosure"`
	HeadDrop    int        `json:"headDrop"`
	YawnFlag    int        `json:"yawnFlag"`
	Abnormal    bool       `json:"abnormal"`
}

// RapidDetail is one 10-minute window's rapid-maneuver breakdown.
type RapidDetail struct {
	TimeSlot   string `json:"timeSlot"`
	RapidAcc   int    `json:"rapidAcc"`
	RapidDeacc int    `json:"rapidDeacc"`
	Penalty    int    `json:"penalty"`
}

// SessionScoreDetail is the full per-trip breakdown behind a summary row.
type SessionScoreDetail struct {
	SessionScoreSummary
	DrowsyDetails []DrowsyDetail `json:"drowsyDetails"`
	RapidDetails  []RapidDetail  `json:"rapidDetails"`
}

// SessionDetail scores one trip and returns the per-event breakdown. The
// trip must belong to one of the user's vehicles; otherwise
// ErrSessionNotOwned is returned without revealing whether the trip exists.
func (s *SafetyService) SessionDetail(ctx context.Context, userID int, sessionID string) (*SessionScoreDetail, error) {
	session, err := s.telemetry.SessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByCarIDForUser(ctx, session.CarID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotOwned
		}
		return nil, fmt.Errorf("check session ownership: %w", err)
	}

	drowsy, err := s.telemetry.DrowsyEvents(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load drowsy events: %w", err)
	}
	infos, err := s.telemetry.SessionInfos(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session telemetry: %w", err)
	}

	score := scoring.ScoreSession(drowsyEvents(drowsy), rapidSamples(infos))

	detail := &SessionScoreDetail{
		SessionScoreSummary: SessionScoreSummary{
			SessionID:        session.SessionID,
			CarID:            session.CarID,
			LicensePlate:     vehicle.LicensePlate,
			StartTime:        session.StartTime,
			EndTime:          session.EndTime,
			SafetyScore:      score.SafetyScore,
			DrowsyPenalty:    score.DrowsyPenalty,
			RapidPenalty:     score.RapidPenalty,
			TotalPenalty:     score.TotalPenalty,
			DrowsyCount:      len(drowsy),
			GazeClosureCount: score.GazeClosureCount,
			HeadDropCount:    score.HeadDropCount,
			YawnFlagCount:    score.YawnFlagCount,
			TotalRapidAcc:    score.TotalRapidAcc,
			TotalRapidDeacc:  score.TotalRapidDeacc,
		},
		DrowsyDetails: make([]DrowsyDetail, 0, len(drowsy)),
		RapidDetails:  make([]RapidDetail, 0, len(score.Buckets)),
	}

	for i := range drowsy {
		d := &drowsy[i]
		duration := intOrZero(d.DurationSec)
		detail.DrowsyDetails = append(detail.DrowsyDetails, DrowsyDetail{
			DetectedAt:  d.DetectedAt,
			DurationSec: duration,
			Penalty:     scoring.DrowsyPenalty(duration),
			GazeClosure: intOrZero(d.GazeClosure),
			HeadDrop:    intOrZero(d.HeadDrop),
			YawnFlag:    intOrZero(d.YawnFlag),
			Abnormal:    d.Abnormal(),
		})
	}
	for _, b := range score.Buckets {
		if b.Total() == 0 {
			continue
		}
		detail.RapidDetails = append(detail.RapidDetails, RapidDetail{
			TimeSlot:   b.Key.Label(),
			RapidAcc:   b.AccSum,
			RapidDeacc: b.DeaccSum,
			Penalty:    b.Total(),
		})
	}
	return detail, nil
}

func (s *SafetyService) scoreSession(ctx context.Context, sessionID string) (scoring.SessionScore, int, error) {
	drowsy, err := s.telemetry.DrowsyEvents(ctx, sessionID)
	if err != nil {
		return scoring.SessionScore{}, 0, fmt.Errorf("load drowsy events: %w", err)
	}
	infos, err := s.telemetry.SessionInfos(ctx, sessionID)
	if err != nil {
		return scoring.SessionScore{}, 0, fmt.Errorf("load session telemetry: %w", err)
	}
	return scoring.ScoreSession(drowsyEvents(drowsy), rapidSamples(infos)), len(drowsy), nil
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func drowsyEvents(rows []models.DrowsyDrive) []scoring.DrowsyEvent {
	events := make([]scoring.DrowsyEvent, 0, len(rows))
	for i := range rows {
		d := &rows[i]
		events = append(events, scoring.DrowsyEvent{
			DetectedAt:  d.DetectedAt,
			DurationSec: d.DurationSec,
			GazeClosure: d.GazeClosure,
			HeadDrop:    d.HeadDrop,
			YawnFlag:    d.YawnFlag,
		})
	}
	return events
}

func rapidSamples(rows []models.DrivingSessionInfo) []scoring.RapidSample {
	samples := make([]scoring.RapidSample, 0, len(rows))
	for i := range rows {
		info := &rows[i]
		samples = append(samples, scoring.RapidSample{
			CapturedAt: info.CreatedDate,
			RapidAcc:   info.AppRapidAcc,
			RapidDeacc: info.AppRapidDeacc,
		})
	}
	return samples
}

// monthAggregates is the fleet-wide working set for one month: every
// session, telemetry row and drowsy episode, with session-to-car and
// car-to-profile maps for the in-memory joins.
type monthAggregates struct {
	sessions     []models.DrivingSession
	infos        []models.DrivingSessionInfo
	drowsy       []models.DrowsyDrive
	carBySession map[string]string
	profiles     map[string]models.UserVehicle
}

func (s *SafetyService) loadMonth(ctx context.Context, year, month int) (*monthAggregates, error) {
	sessions, err := s.telemetry.SessionsInMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("list month sessions: %w", err)
	}

	sessionIDs := make([]string, 0, len(sessions))
	carBySession := make(map[string]string, len(sessions))
	carSet := make(map[string]struct{})
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.SessionID)
		carBySession[sess.SessionID] = sess.CarID
		carSet[sess.CarID] = struct{}{}
	}
	carIDs := make([]string, 0, len(carSet))
	for id := range carSet {
		carIDs = append(carIDs, id)
	}

	infos, err := s.telemetry.InfosBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("load month telemetry: %w", err)
	}
	drowsy, err := s.telemetry.DrowsyEventsBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("load month drowsy events: %w", err)
	}
	profiles, err := s.telemetry.Profiles(ctx, carIDs)
	if err != nil {
		return nil, fmt.Errorf("load driver profiles: %w", err)
	}

	return &monthAggregates{
		sessions:     sessions,
		infos:        infos,
		drowsy:       drowsy,
		carBySession: carBySession,
		profiles:     profiles,
	}, nil
}

// driverTotals folds the working set into per-vehicle aggregates, keeping
// first-seen order so the stable ranking sorts deterministically.
func (m *monthAggregates) driverTotals() []scoring.DriverTotals {
	byCar := make(map[string]*scoring.DriverTotals)
	var order []string
	get := func(carID string) *scoring.DriverTotals {
		if t, ok := byCar[carID]; ok {
			return t
		}
		t := &scoring.DriverTotals{CarID: carID}
		if p, ok := m.profiles[carID]; ok {
			t.CarBrand = p.UserCarBrand
			t.CarModel = p.UserCarModel
			t.DriverAge = p.Age
			t.DriverSex = p.UserSex
			t.DriverLocation = p.UserLocation
		}
		byCar[carID] = t
		order = append(order, carID)
		return t
	}

	for _, sess := range m.sessions {
		get(sess.CarID).SessionCount++
	}
	for i := range m.infos {
		info := &m.infos[i]
		carID, ok := m.carBySession[info.SessionID]
		if !ok {
			continue
		}
		t := get(carID)
		t.TotalDataPoints++
		t.TotalTravel += intOrZero(info.AppTravel)
		acc, deacc := intOrZero(info.AppRapidAcc), intOrZero(info.AppRapidDeacc)
		t.TotalRapidAcc += acc
		t.TotalRapidDeacc += deacc
		if acc > 0 {
			t.IncidentRows++
		}
		if deacc > 0 {
			t.IncidentRows++
		}
	}
	for i := range m.drowsy {
		d := &m.drowsy[i]
		carID, ok := m.carBySession[d.SessionID]
		if !ok {
			continue
		}
		t := get(carID)
		t.TotalGazeClosure += intOrZero(d.GazeClosure)
		t.IncidentRows++
	}

	totals := make([]scoring.DriverTotals, 0, len(order))
	for _, carID := range order {
		totals = append(totals, *byCar[carID])
	}
	return totals
}

// BestDriversByRate is the per-session incident-rate leaderboard for one
// month: top drivers by fewest incidents per trip on a 1000-point scale.
func (s *SafetyService) BestDriversByRate(ctx context.Context, year, month, limit int) ([]scoring.RankedDriver, error) {
	agg, err := s.loadMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return scoring.RankByIncidentRate(agg.driverTotals(), limit), nil
}

// BestDriversByScore is the 100-point leaderboard for one month: incident
// density with session and travel bonuses.
func (s *SafetyService) BestDriversByScore(ctx context.Context, year, month, limit int) ([]scoring.RankedDriver, error) {
	agg, err := s.loadMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return scoring.RankByScore(agg.driverTotals(), limit), nil
}

// MonthlyLeaderboard is one month's entry of the all-months listing.
type MonthlyLeaderboard struct {
	scoring.YearMonth
	Drivers []scoring.RankedDriver `json:"drivers"`
}

// BestDriversAllMonths lists every recorded month's top-10 leaderboard,
// newest month first. Scores here use the flat 10-points-per-incident scale.
func (s *SafetyService) BestDriversAllMonths(ctx context.Context) ([]MonthlyLeaderboard, error) {
	sessions, err := s.telemetry.AllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	monthSet := make(map[scoring.YearMonth]struct{})
	for _, sess := range sessions {
		at := sess.CreatedAt
		if at == nil {
			at = sess.StartTime
		}
		if at == nil {
			continue
		}
		monthSet[scoring.YearMonth{Year: at.Year(), Month: int(at.Month())}] = struct{}{}
	}

	months := make([]scoring.YearMonth, 0, len(monthSet))
	for ym := range monthSet {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})

	boards := make([]MonthlyLeaderboard, 0, len(months))
	for _, ym := range months {
		agg, err := s.loadMonth(ctx, ym.Year, ym.Month)
		if err != nil {
			return nil, err
		}
		totals := agg.driverTotals()

		sort.SliceStable(totals, func(i, j int) bool {
			return totals[i].TotalIncidents() < totals[j].TotalIncidents()
		})
		if len(totals) > scoring.DefaultRateRankingLimit {
			totals = totals[:scoring.DefaultRateRankingLimit]
		}
		drivers := make([]scoring.RankedDriver, 0, len(totals))
		for i, t := range totals {
			drivers = append(drivers, scoring.RankedDriver{
				Rank:             i + 1,
				CarID:            t.CarID,
				CarBrand:         t.CarBrand,
				CarModel:         t.CarModel,
				DriverAge:        t.DriverAge,
				DriverSex:        t.DriverSex,
				DriverLocation:   t.DriverLocation,
				TotalRapidAcc:    t.TotalRapidAcc,
				TotalRapidDeacc:  t.TotalRapidDeacc,
				TotalGazeClosure: t.TotalGazeClosure,
				TotalScore:       t.TotalIncidents(),
				DriverScore:      scoring.MonthlyListScore(t.TotalIncidents()),
				SessionCount:     t.SessionCount,
			})
		}
		boards = append(boards, MonthlyLeaderboard{YearMonth: ym, Drivers: drivers})
	}
	return boards, nil
}

// Safety-rate grouping dimensions.
const (
	GroupByDistrict    = "district"
	GroupByDemographic = "demographic"
	GroupByHour        = "hour"
)

var ErrUnknownGroupBy = errors.New("unknown groupBy dimension")

// MonthlySafetyRate breaks the month's fleet safety rate down by the given
// dimension. District and demographic come from the driver profile joined by
// car id; the hourly breakdown uses each row's capture hour and each drowsy
// episode's detection hour.
func (s *SafetyService) MonthlySafetyRate(ctx context.Context, year, month int, groupBy string) ([]scoring.CohortStat, error) {
	agg, err := s.loadMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	switch groupBy {
	case GroupByDistrict, GroupByDemographic:
		return s.rateByProfile(agg, groupBy), nil
	case GroupByHour:
		return s.rateByHour(agg), nil
	default:
		return nil, ErrUnknownGroupBy
	}
}

func (s *SafetyService) rateByProfile(agg *monthAggregates, groupBy string) []scoring.CohortStat {
	label := func(carID string) string {
		p, ok := agg.profiles[carID]
		if !ok {
			return scoring.LabelOther
		}
		if groupBy == GroupByDistrict {
			return scoring.District(p.UserLocation)
		}
		return scoring.Demographic(p.Age, p.UserSex)
	}

	stats := make(map[string]*scoring.CohortStat)
	get := func(l string) *scoring.CohortStat {
		if st, ok := stats[l]; ok {
			return st
		}
		st := &scoring.CohortStat{Label: l}
		stats[l] = st
		return st
	}

	for _, sess := range agg.sessions {
		get(label(sess.CarID)).SessionCount++
	}
	for i := range agg.infos {
		info := &agg.infos[i]
		carID, ok := agg.carBySession[info.SessionID]
		if !ok {
			continue
		}
		st := get(label(carID))
		st.TotalDataPoints++
		if intOrZero(info.AppRapidAcc) > 0 {
			st.RapidAccIncidents++
		}
		if intOrZero(info.AppRapidDeacc) > 0 {
			st.RapidDeaccIncidents++
		}
	}
	for i := range agg.drowsy {
		d := &agg.drowsy[i]
		carID, ok := agg.carBySession[d.SessionID]
		if !ok {
			continue
		}
		get(label(carID)).DrowsyIncidents++
	}

	return finishStats(stats, func(a, b string) bool { return a < b })
}

func (s *SafetyService) rateByHour(agg *monthAggregates) []scoring.CohortStat {
	stats := make(map[string]*scoring.CohortStat)
	get := func(l string) *scoring.CohortStat {
		if st, ok := stats[l]; ok {
			return st
		}
		st := &scoring.CohortStat{Label: l}
		stats[l] = st
		return st
	}

	for _, sess := range agg.sessions {
		var hour *int
		if sess.StartTime != nil {
			h := sess.StartTime.Hour()
			hour = &h
		}
		get(scoring.HourWindow(hour)).SessionCount++
	}
	for i := range agg.infos {
		info := &agg.infos[i]
		st := get(scoring.HourWindow(info.Hour))
		st.TotalDataPoints++
		if intOrZero(info.AppRapidAcc) > 0 {
			st.RapidAccIncidents++
		}
		if intOrZero(info.AppRapidDeacc) > 0 {
			st.RapidDeaccIncidents++
		}
	}
	for i := range agg.drowsy {
		d := &agg.drowsy[i]
		var hour *int
		if d.DetectedAt != nil {
			h := d.DetectedAt.Hour()
			hour = &h
		}
		get(scoring.HourWindow(hour)).DrowsyIncidents++
	}

	return finishStats(stats, func(a, b string) bool {
		return scoring.HourWindowOrder(a) < scoring.HourWindowOrder(b)
	})
}

func finishStats(stats map[string]*scoring.CohortStat, less func(a, b string) bool) []scoring.CohortStat {
	out := make([]scoring.CohortStat, 0, len(stats))
	for _, st := range stats {
		st.SafetyRate = scoring.SafetyRate(st.Incidents(), st.TotalDataPoints)
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].Label, out[j].Label) })
	return out
}

// FleetStats is the one-row fleet summary for a month.
type FleetStats struct {
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	TotalVehicles       int     `json:"totalVehicles"`
	TotalSessions       int     `json:"totalSessions"`
	TotalDataPoints     int     `json:"totalDataPoints"`
	RapidAccIncidents   int     `json:"rapidAccIncidents"`
	RapidDeaccIncidents int     `json:"rapidDeaccIncidents"`
	DrowsyIncidents     int     `json:"drowsyIncidents"`
	TotalTravel         int     `json:"totalTravel"`
	SafetyRate          float64 `json:"safetyRate"`
}

// MonthlyFleetStats summarizes the whole fleet for one month. Unlike the
// cohort breakdowns, a month with no telemetry reports a flat 100 rate.
func (s *SafetyService) MonthlyFleetStats(ctx context.Context, year, month int) (*FleetStats, error) {
	agg, err := s.loadMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	stats := &FleetStats{Year: year, Month: month, TotalSessions: len(agg.sessions)}

	cars := make(map[string]struct{})
	for _, sess := range agg.sessions {
		cars[sess.CarID] = struct{}{}
	}
	stats.TotalVehicles = len(cars)

	for i := range agg.infos {
		info := &agg.infos[i]
		stats.TotalDataPoints++
		stats.TotalTravel += intOrZero(info.AppTravel)
		if intOrZero(info.AppRapidAcc) > 0 {
			stats.RapidAccIncidents++
		}
		if intOrZero(info.AppRapidDeacc) > 0 {
			stats.RapidDeaccIncidents++
		}
	}
	stats.DrowsyIncidents = len(agg.drowsy)

	incidents := stats.RapidAccIncidents + stats.RapidDeaccIncidents + stats.DrowsyIncidents
	stats.SafetyRate = scoring.SafetyRateGuarded(incidents, stats.TotalDataPoints)
	return stats, nil
}
