package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/repository"
)

func TestMonthlySessionScoresComputesPenalties(t *testing.T) {
	ctx := context.Background()
	car, web := openStores(t)

	if err := web.Create(&models.Vehicle{
		UserID:       1,
		LicensePlate: "12가3456",
		VehicleType:  models.VehiclePrivate,
		CarID:        "car-1",
	}).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	start := at(10, 0)
	if err := car.Create(&models.DrivingSession{
		SessionID: "sess-1",
		CarID:     "car-1",
		StartTime: tp(start),
		CreatedAt: tp(start),
	}).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	// two samples in the 10:00 window, one in the 10:10 window
	infos := []models.DrivingSessionInfo{
		{InfoID: "i1", SessionID: "sess-1", CreatedDate: tp(at(10, 2)), AppRapidAcc: ip(1), AppRapidDeacc: ip(1), AppTravel: ip(5)},
		{InfoID: "i2", SessionID: "sess-1", CreatedDate: tp(at(10, 5)), AppRapidAcc: ip(2)},
		{InfoID: "i3", SessionID: "sess-1", CreatedDate: tp(at(10, 15)), AppRapidAcc: ip(2)},
	}
	if err := car.Create(&infos).Error; err != nil {
		t.Fatalf("seed infos: %v", err)
	}

	drowsy := []models.DrowsyDrive{
		{DrowsyID: "d1", SessionID: "sess-1", DetectedAt: tp(at(10, 3)), DurationSec: ip(7), GazeClosure: ip(1)},
		{DrowsyID: "d2", SessionID: "sess-1", DetectedAt: tp(at(10, 20)), DurationSec: ip(55), YawnFlag: ip(1)},
	}
	if err := car.Create(&drowsy).Error; err != nil {
		t.Fatalf("seed drowsy events: %v", err)
	}

	svc := NewSafetyService(repository.NewVehicleRepository(web), NewTelemetryReader(car))

	scores, err := svc.MonthlySessionScores(ctx, 1, 2025, 7)
	if err != nil {
		t.Fatalf("monthly scores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 scored session, got %d", len(scores))
	}

	got := scores[0]
	if got.LicensePlate != "12가3456" {
		t.Errorf("license plate = %q", got.LicensePlate)
	}
	// drowsy: 7s -> 1, 55s -> 10; rapid: bucket sums 4 and 2
	if got.DrowsyPenalty != 11 {
		t.Errorf("drowsy penalty = %d, want 11", got.DrowsyPenalty)
	}
	if got.RapidPenalty != 6 {
		t.Errorf("rapid penalty = %d, want 6", got.RapidPenalty)
	}
	if got.SafetyScore != 83 {
		t.Errorf("safety score = %d, want 83", got.SafetyScore)
	}
	if got.TotalRapidAcc != 5 || got.TotalRapidDeacc != 1 {
		t.Errorf("rapid totals = %d/%d, want 5/1", got.TotalRapidAcc, got.TotalRapidDeacc)
	}
	if got.DrowsyCount != 2 || got.GazeClosureCount != 1 || got.YawnFlagCount != 1 {
		t.Errorf("drowsy counts = %d/%d/%d", got.DrowsyCount, got.GazeClosureCount, got.YawnFlagCount)
	}
}

func TestSessionDetailEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	car, web := openStores(t)

	if err := web.Create(&models.Vehicle{
		UserID:       1,
		LicensePlate: "34나5678",
		VehicleType:  models.VehicleTaxi,
		CarID:        "car-1",
	}).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	if err := car.Create(&models.DrivingSession{
		SessionID: "sess-1",
		CarID:     "car-1",
		StartTime: tp(at(9, 0)),
	}).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	svc := NewSafetyService(repository.NewVehicleRepository(web), NewTelemetryReader(car))

	if _, err := svc.SessionDetail(ctx, 2, "sess-1"); !errors.Is(err, ErrSessionNotOwned) {
		t.Fatalf("foreign user error = %v, want ErrSessionNotOwned", err)
	}
	if _, err := svc.SessionDetail(ctx, 1, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("missing session error = %v, want ErrSessionNotFound", err)
	}

	detail, err := svc.SessionDetail(ctx, 1, "sess-1")
	if err != nil {
		t.Fatalf("owner detail: %v", err)
	}
	if detail.SafetyScore != 100 {
		t.Errorf("empty session score = %d, want 100", detail.SafetyScore)
	}
}

func TestSessionDetailBreakdownRows(t *testing.T) {
	ctx := context.Background()
	car, web := openStores(t)

	if err := web.Create(&models.Vehicle{
		UserID:       7,
		LicensePlate: "56다7890",
		VehicleType:  models.VehiclePrivate,
		CarID:        "car-7",
	}).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	if err := car.Create(&models.DrivingSession{
		SessionID: "sess-7",
		CarID:     "car-7",
		StartTime: tp(at(8, 0)),
	}).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	infos := []models.DrivingSessionInfo{
		{InfoID: "i1", SessionID: "sess-7", CreatedDate: tp(at(8, 4)), AppRapidAcc: ip(2)},
		{InfoID: "i2", SessionID: "sess-7", CreatedDate: tp(at(8, 6))},
		{InfoID: "i3", SessionID: "sess-7", CreatedDate: tp(at(8, 31)), AppRapidDeacc: ip(1)},
	}
	if err := car.Create(&infos).Error; err != nil {
		t.Fatalf("seed infos: %v", err)
	}
	if err := car.Create(&models.DrowsyDrive{
		DrowsyID: "d1", SessionID: "sess-7", DetectedAt: tp(at(8, 10)), DurationSec: ip(12),
	}).Error; err != nil {
		t.Fatalf("seed drowsy: %v", err)
	}

	svc := NewSafetyService(repository.NewVehicleRepository(web), NewTelemetryReader(car))

	detail, err := svc.SessionDetail(ctx, 7, "sess-7")
	if err != nil {
		t.Fatalf("session detail: %v", err)
	}

	// the 08:00 window carries the acc, the quiet row adds nothing, the
	// 08:30 window carries the deacc
	if len(detail.RapidDetails) != 2 {
		t.Fatalf("rapid details = %d rows, want 2", len(detail.RapidDetails))
	}
	if detail.RapidDetails[0].TimeSlot != "08:00" || detail.RapidDetails[0].Penalty != 2 {
		t.Errorf("first window = %+v", detail.RapidDetails[0])
	}
	if detail.RapidDetails[1].TimeSlot != "08:30" || detail.RapidDetails[1].Penalty != 1 {
		t.Errorf("second window = %+v", detail.RapidDetails[1])
	}

	if len(detail.DrowsyDetails) != 1 {
		t.Fatalf("drowsy details = %d rows, want 1", len(detail.DrowsyDetails))
	}
	if detail.DrowsyDetails[0].Penalty != 2 {
		t.Errorf("12s episode penalty = %d, want 2", detail.DrowsyDetails[0].Penalty)
	}
	if !detail.DrowsyDetails[0].Abnormal {
		t.Errorf("12s episode should be abnormal")
	}
	if detail.TotalPenalty != 5 || detail.SafetyScore != 95 {
		t.Errorf("total/score = %d/%d, want 5/95", detail.TotalPenalty, detail.SafetyScore)
	}
}

func TestMonthlySafetyRateByDistrict(t *testing.T) {
	ctx := context.Background()
	car, web := openStores(t)

	sessions := []models.DrivingSession{
		{SessionID: "s1", CarID: "car-a", StartTime: tp(at(9, 0)), CreatedAt: tp(at(9, 0))},
		{SessionID: "s2", CarID: "car-b", StartTime: tp(at(14, 0)), CreatedAt: tp(at(14, 0))},
	}
	if err := car.Create(&sessions).Error; err != nil {
		t.Fatalf("seed sessions: %v", err)
	}
	profiles := []models.UserVehicle{
		{CarID: "car-a", Age: ip(34), UserSex: "남", UserLocation: "부산시 해운대구"},
		{CarID: "car-b", Age: ip(52), UserSex: "여", UserLocation: "부산시 수영구"},
	}
	if err := car.Create(&profiles).Error; err != nil {
		t.Fatalf("seed profiles: %v", err)
	}
	infos := []models.DrivingSessionInfo{
		// car-a: 4 rows, one acc incident row
		{InfoID: "a1", SessionID: "s1", CreatedDate: tp(at(9, 1)), AppRapidAcc: ip(3)},
		{InfoID: "a2", SessionID: "s1", CreatedDate: tp(at(9, 2))},
		{InfoID: "a3", SessionID: "s1", CreatedDate: tp(at(9, 3))},
		{InfoID: "a4", SessionID: "s1", CreatedDate: tp(at(9, 4))},
		// car-b: 2 clean rows
		{InfoID: "b1", SessionID: "s2", CreatedDate: tp(at(14, 1))},
		{InfoID: "b2", SessionID: "s2", CreatedDate: tp(at(14, 2))},
	}
	if err := car.Create(&infos).Error; err != nil {
		t.Fatalf("seed infos: %v", err)
	}

	svc := NewSafetyService(repository.NewVehicleRepository(web), NewTelemetryReader(car))

	stats, err := svc.MonthlySafetyRate(ctx, 2025, 7, GroupByDistrict)
	if err != nil {
		t.Fatalf("safety rate: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("groups = %d, want 2", len(stats))
	}

	// sorted by label: 수영구 before 해운대구
	if stats[0].Label != "수영구" || stats[1].Label != "해운대구" {
		t.Fatalf("labels = %q, %q", stats[0].Label, stats[1].Label)
	}
	if stats[0].SafetyRate != 100 {
		t.Errorf("clean district rate = %v, want 100", stats[0].SafetyRate)
	}
	// one incident row out of four: 75.0
	if stats[1].SafetyRate != 75 {
		t.Errorf("해운대구 rate = %v, want 75", stats[1].SafetyRate)
	}
	if stats[1].RapidAccIncidents != 1 {
		t.Errorf("incident rows = %d, want 1 (presence, not magnitude)", stats[1].RapidAccIncidents)
	}

	if _, err := svc.MonthlySafetyRate(ctx, 2025, 7, "bogus"); !errors.Is(err, ErrUnknownGroupBy) {
		t.Fatalf("bogus groupBy error = %v", err)
	}
}

func TestBestDriversByRateOrdering(t *testing.T) {
	ctx := context.Background()
	car, web := openStores(t)

	sessions := []models.DrivingSession{
		{SessionID: "s1", CarID: "car-a", StartTime: tp(at(9, 0)), CreatedAt: tp(at(9, 0))},
		{SessionID: "s2", CarID: "car-a", StartTime: tp(at(11, 0)), CreatedAt: tp(at(11, 0))},
		{SessionID: "s3", CarID: "car-b", StartTime: tp(at(13, 0)), CreatedAt: tp(at(13, 0))},
	}
	if err := car.Create(&sessions).Error; err != nil {
		t.Fatalf("seed sessions: %v", err)
	}
	if err := car.Create(&models.DrivingSessionInfo{
		InfoID: "a1", SessionID: "s1", CreatedDate: tp(at(9, 1)), AppRapidAcc: ip(1),
	}).Error; err != nil {
		t.Fatalf("seed infos: %v", err)
	}
	if err := car.Create(&models.DrowsyDrive{
		DrowsyID: "d1", SessionID: "s3", DetectedAt: tp(at(13, 5)), GazeClosure: ip(2),
	}).Error; err != nil {
		t.Fatalf("seed drowsy: %v", err)
	}

	svc := NewSafetyService(repository.NewVehicleRepository(web), NewTelemetryReader(car))

	drivers, err := svc.BestDriversByRate(ctx, 2025, 7, 10)
	if err != nil {
		t.Fatalf("best drivers: %v", err)
	}
	if len(drivers) != 2 {
		t.Fatalf("drivers = %d, want 2", len(drivers))
	}

	// car-a: 1 incident / 2 sessions -> 0.5 -> 500; car-b: 2 gaze closures
	// over 1 session -> 2.0 -> floored at 0
	if drivers[0].CarID != "car-a" || drivers[0].DriverScore != 500 {
		t.Errorf("rank 1 = %s score %v, want car-a 500", drivers[0].CarID, drivers[0].DriverScore)
	}
	if drivers[1].CarID != "car-b" || drivers[1].DriverScore != 0 {
		t.Errorf("rank 2 = %s score %v, want car-b 0", drivers[1].CarID, drivers[1].DriverScore)
	}
	if drivers[0].IncidentRate != 0.5 {
		t.Errorf("rank 1 incident rate = %v, want 0.5", drivers[0].IncidentRate)
	}
}

func TestMonthlyFleetStats(t *testing.T) {
	ctx := context.Background()
	car, web := openStores(t)

	if err := car.Create(&models.DrivingSession{
		SessionID: "s1", CarID: "car-a", StartTime: tp(at(9, 0)), CreatedAt: tp(at(9, 0)),
	}).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	infos := []models.DrivingSessionInfo{
		{InfoID: "i1", SessionID: "s1", CreatedDate: tp(at(9, 1)), AppRapidAcc: ip(2), AppTravel: ip(10)},
		{InfoID: "i2", SessionID: "s1", CreatedDate: tp(at(9, 2)), AppTravel: ip(8)},
	}
	if err := car.Create(&infos).Error; err != nil {
		t.Fatalf("seed infos: %v", err)
	}

	svc := NewSafetyService(repository.NewVehicleRepository(web), NewTelemetryReader(car))

	stats, err := svc.MonthlyFleetStats(ctx, 2025, 7)
	if err != nil {
		t.Fatalf("fleet stats: %v", err)
	}
	if stats.TotalVehicles != 1 || stats.TotalSessions != 1 || stats.TotalDataPoints != 2 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.TotalTravel != 18 {
		t.Errorf("travel = %d, want 18", stats.TotalTravel)
	}
	if stats.RapidAccIncidents != 1 {
		t.Errorf("acc incidents = %d, want 1", stats.RapidAccIncidents)
	}
	// 1 incident / 2 rows -> 50.0
	if stats.SafetyRate != 50 {
		t.Errorf("rate = %v, want 50", stats.SafetyRate)
	}

	empty, err := svc.MonthlyFleetStats(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("empty month: %v", err)
	}
	if empty.SafetyRate != 100 {
		t.Errorf("empty month rate = %v, want 100", empty.SafetyRate)
	}
}

func TestUserSessionsScopedToOwnedCars(t *testing.T) {
	ctx := context.Background()
	car, web := openStores(t)

	vehicles := []models.Vehicle{
		{UserID: 1, LicensePlate: "11가1111", VehicleType: models.VehiclePrivate, CarID: "car-a"},
		{UserID: 2, LicensePlate: "22나2222", VehicleType: models.VehiclePrivate, CarID: "car-b"},
	}
	if err := web.Create(&vehicles).Error; err != nil {
		t.Fatalf("seed vehicles: %v", err)
	}
	sessions := []models.DrivingSession{
		{SessionID: "s1", CarID: "car-a", StartTime: tp(at(9, 0))},
		{SessionID: "s2", CarID: "car-b", StartTime: tp(at(10, 0))},
	}
	if err := car.Create(&sessions).Error; err != nil {
		t.Fatalf("seed sessions: %v", err)
	}

	svc := NewSafetyService(repository.NewVehicleRepository(web), NewTelemetryReader(car))

	mine, err := svc.UserSessions(ctx, 1, SessionFilter{})
	if err != nil {
		t.Fatalf("user sessions: %v", err)
	}
	if len(mine) != 1 || mine[0].SessionID != "s1" {
		t.Fatalf("user 1 sessions = %+v", mine)
	}

	// asking for someone else's car must not leak their trips
	foreign, err := svc.UserSessions(ctx, 1, SessionFilter{CarID: "car-b"})
	if err != nil {
		t.Fatalf("foreign car filter: %v", err)
	}
	if len(foreign) != 0 {
		t.Fatalf("foreign car returned %d trips", len(foreign))
	}
}
