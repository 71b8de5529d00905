package service

import (
	"errors"
	"time"

	"github.com/BUSAN-4/front-back/internal/config"
	"github.com/BUSAN-4/front-back/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTService struct {
	secretKey       []byte
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
}

type Claims struct {
	UserID       int    `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	jwt.RegisteredClaims
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:       []byte(cfg.Secret),
		accessTokenExp:  cfg.AccessTTL,
		refreshTokenExp: cfg.RefreshTTL,
	}
}

func (s *JWTService) AccessTokenTTL() time.Duration { return s.accessTokenExp }

func (s *JWTService) GenerateAccessToken(user *models.User) (string, error) {
	return s.generate(user, s.accessTokenExp)
}

func (s *JWTService) GenerateRefreshToken(user *models.User) (string, error) {
	return s.generate(user, s.refreshTokenExp)
}

func (s *JWTService) generate(user *models.User, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		Organization: user.Organization,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "busan-city-vehicle-api",
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
