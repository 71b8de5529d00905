package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/repository"
	"github.com/BUSAN-4/front-back/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
}

type UserService struct {
	r          *repository.UserRepository
	jwtService *JWTService
}

func NewUserService(r *repository.UserRepository, jwt *JWTService) *UserService {
	return &UserService{r: r, jwtService: jwt}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if existing, _ := s.r.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return nil, errors.New("failed to process password")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         models.RoleGeneral,
		IsActive:     true,
	}

	if err := s.r.Create(ctx, user); err != nil {
		slog.Error("Failed to create user", "error", err, "email", req.Email)
		return nil, errors.New("failed to create user")
	}

	slog.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.r.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("Login attempt with non-existent email", "email", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		slog.Warn("Login attempt on inactive account", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if err := utils.CheckPassword(user.PasswordHash, req.Password); err != nil {
		slog.Warn("Invalid password attempt", "email", req.Email, "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	slog.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserService) RegisterWithTokens(ctx context.Context, req *models.RegisterRequest) (*AuthResponse, error) {
	user, err := s.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.generateAuthResponse(user)
}

func (s *UserService) LoginWithTokens(ctx context.Context, req *models.LoginRequest) (*AuthResponse, error) {
	user, err := s.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.generateAuthResponse(user)
}

func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	user, err := s.r.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.generateAuthResponse(user)
}

func (s *UserService) generateAuthResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.New("failed to generate access token")
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtService.AccessTokenTTL().Seconds()),
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	return s.r.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req *models.UserUpdateRequest) (*models.User, error) {
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.r.EmailTaken(ctx, *req.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if err := s.r.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers is the system-admin user search.
func (s *UserService) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	return s.r.List(ctx, search)
}

var ErrCannotDeleteSelf = errors.New("cannot delete yourself")

func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID int) error {
	if actorID == targetID {
		return ErrCannotDeleteSelf
	}
	if _, err := s.r.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.r.Delete(ctx, targetID)
}

var ErrInvalidRole = errors.New("invalid role")

func (s *UserService) UpdateRole(ctx context.Context, targetID int, role string) (*models.User, error) {
	switch role {
	case models.RoleGeneral, models.RoleAdmin:
	case "user": // backwards compatibility with the old frontend
		role = models.RoleGeneral
	case "admin":
		role = models.RoleAdmin
	default:
		return nil, ErrInvalidRole
	}

	user, err := s.r.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := s.r.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
