// File: internal/auth/service.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"profolio_backend/internal/config"
	"profolio_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Token verification failures. Expired is split out so callers can tell a
// structurally valid but stale token from a forged or malformed one.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// JWTService issues and verifies HS256-signed bearer tokens. The signing key
// and token lifetime come from process configuration; nothing is persisted,
// so a token stays valid until its natural expiry.
type JWTService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewJWTService creates a new JWT token service.
func NewJWTService(cfg *config.Config, logger *zap.Logger) shared.TokenService {
	return &JWTService{cfg: cfg, logger: logger}
}

// GenerateToken produces a signed token for the given user with the
// configured lifetime from the issuance instant.
func (s *JWTService) GenerateToken(userID, email string) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(s.cfg.JWTTokenExpiry)

	claims := &shared.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "profolio_backend",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// ValidateToken checks signature integrity and expiry and returns the
// embedded claims. It never partially trusts an unverified token.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("Token expired", zap.Error(err))
			return nil, ErrTokenExpired
		}
		s.logger.Debug("Token validation failed", zap.Error(err))
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
