// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"profolio_backend/internal/auth"
	"profolio_backend/internal/common"
	"profolio_backend/internal/config"
	"profolio_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceImplementation provides the account operations: registration and
// login. It composes the repository, password hashing and the token service.
type ServiceImplementation struct {
	repo   Repository
	tokens shared.TokenService
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new account service.
func NewService(repo Repository, tokens shared.TokenService, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// Register creates a new user and its companion profile, then issues a
// token. The returned user still carries the password hash; callers must
// project it through Public() before responding.
func (s *ServiceImplementation) Register(ctx context.Context, email, password, name string) (*shared.User, string, error) {
	if email == "" || password == "" {
		return nil, "", common.ErrValidation.WithDetails("Email and password are required.")
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		// A hashing failure is fatal to the operation, never a mismatch.
		s.logger.Error("Password hashing failed", zap.Error(err))
		return nil, "", common.ErrInternalServer
	}

	if name == "" {
		name = emailLocalPart(email)
	}

	usr := &shared.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	profile := &shared.Profile{
		UserID:       usr.ID,
		Name:         usr.Name,
		Email:        usr.Email,
		Achievements: []shared.Achievement{},
	}

	if err := s.repo.CreateWithProfile(ctx, usr, profile); err != nil {
		return nil, "", err
	}
	s.logger.Info("User registered", zap.String("userID", usr.ID))

	token, _, err := s.tokens.GenerateToken(usr.ID, usr.Email)
	if err != nil {
		return nil, "", common.ErrInternalServer
	}
	return usr, token, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password produce the same error so callers cannot probe which
// emails are registered.
func (s *ServiceImplementation) Login(ctx context.Context, email, password string) (*shared.User, string, error) {
	if email == "" || password == "" {
		return nil, "", common.ErrValidation.WithDetails("Email and password are required.")
	}

	usr, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPasswordHash(password, usr.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, _, err := s.tokens.GenerateToken(usr.ID, usr.Email)
	if err != nil {
		return nil, "", common.ErrInternalServer
	}
	s.logger.Info("User logged in", zap.String("userID", usr.ID))
	return usr, token, nil
}

// emailLocalPart returns everything before the first '@'.
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
