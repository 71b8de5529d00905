package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BUSAN-4/front-back/internal/config"
	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/repository"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	_, web := openStores(t)
	jwtService := NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	return NewUserService(repository.NewUserRepository(web), jwtService)
}

func TestRegisterLoginRefreshFlow(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	req := &models.RegisterRequest{
		Username: "driver1",
		Email:    "driver@example.com",
		Password: "correct horse",
		Name:     "김영희",
	}

	reg, err := svc.RegisterWithTokens(ctx, req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatal("registration returned empty tokens")
	}
	if reg.User.Role != models.RoleGeneral {
		t.Errorf("new account role = %q, want GENERAL", reg.User.Role)
	}

	if _, err := svc.RegisterWithTokens(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email error = %v, want ErrEmailTaken", err)
	}

	login, err := svc.LoginWithTokens(ctx, &models.LoginRequest{
		Email:    "driver@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login user id = %d, want %d", login.User.ID, reg.User.ID)
	}

	if _, err := svc.LoginWithTokens(ctx, &models.LoginRequest{
		Email:    "driver@example.com",
		Password: "wrong",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password error = %v, want ErrInvalidCredentials", err)
	}

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("refresh returned empty access token")
	}

	if _, err := svc.RefreshToken(ctx, "bogus"); err == nil {
		t.Fatal("bogus refresh token accepted")
	}
}

func TestDeleteUserGuards(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	admin, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "admin", Email: "admin@example.com", Password: "password1", Name: "관리자",
	})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	target, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "target", Email: "target@example.com", Password: "password2", Name: "대상자",
	})
	if err != nil {
		t.Fatalf("register target: %v", err)
	}

	if err := svc.DeleteUser(ctx, admin.ID, admin.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Fatalf("self delete error = %v, want ErrCannotDeleteSelf", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID, target.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("repeat delete error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateRoleMapsLegacyNames(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	user, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "u", Email: "u@example.com", Password: "password1", Name: "이몽룡",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateRole(ctx, user.ID, "admin")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Errorf("role = %q, want ADMIN", updated.Role)
	}

	if _, err := svc.UpdateRole(ctx, user.ID, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("invalid role error = %v, want ErrInvalidRole", err)
	}
}
