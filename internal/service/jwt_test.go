package service

import (
	"testing"
	"time"

	"github.com/BUSAN-4/front-back/internal/config"
	"github.com/BUSAN-4/front-back/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})

	user := &models.User{
		ID:           42,
		Email:        "driver@example.com",
		Name:         "홍길동",
		Role:         models.RoleAdmin,
		Organization: models.OrgBusan,
	}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "driver@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Role != models.RoleAdmin || claims.Organization != models.OrgBusan {
		t.Errorf("role claims = %q/%q", claims.Role, claims.Organization)
	}
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret-a", AccessTTL: time.Minute})
	other := NewJWTService(config.JWTConfig{Secret: "secret-b", AccessTTL: time.Minute})
	expired := NewJWTService(config.JWTConfig{Secret: "secret-a", AccessTTL: -time.Minute})

	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleGeneral}

	foreign, err := other.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate foreign: %v", err)
	}
	if _, err := svc.ValidateToken(foreign); err == nil {
		t.Fatal("token signed with another secret validated")
	}

	stale, err := expired.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	if _, err := svc.ValidateToken(stale); err == nil {
		t.Fatal("expired token validated")
	}

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage validated")
	}
}
