// File: internal/profile/service.go
package profile

import (
	"context"
	"time"

	"profolio_backend/internal/platform/crypto"
	"profolio_backend/internal/shared"

	"go.uber.org/zap"
)

// Service defines the interface for profile business logic.
type Service interface {
	Get(ctx context.Context, userID string) (*shared.Profile, error)
	Update(ctx context.Context, userID, email string, req UpdateProfileRequest) (*shared.Profile, error)
}

// ServiceImplementation implements Service on top of the profile repository.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

// Get returns the profile belonging to the given user.
func (s *ServiceImplementation) Get(ctx context.Context, userID string) (*shared.Profile, error) {
	return s.repo.Get(ctx, userID)
}

// Update applies a partial update to the caller's profile. Fields omitted
// from the request are left untouched. A user without a profile gets one
// created with defaults before the update is applied, so the operation
// self-heals a missing document. Registration normally guarantees the
// profile exists.
func (s *ServiceImplementation) Update(ctx context.Context, userID, email string, req UpdateProfileRequest) (*shared.Profile, error) {
	updated, err := s.repo.Apply(ctx, userID, func(p *shared.Profile, created bool) {
		if created {
			p.Email = email
			s.logger.Warn("Recreated missing profile during update", zap.String("userID", userID))
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Company != nil {
			p.Company = *req.Company
		}
		if req.Bio != nil {
			p.Bio = *req.Bio
		}
		if req.Email != nil {
			p.Email = *req.Email
		}
		if req.Location != nil {
			p.Location = *req.Location
		}
		if req.Achievements != nil {
			p.Achievements = normalizeAchievements(*req.Achievements)
		}
		now := time.Now().UTC()
		p.UpdatedAt = &now
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// normalizeAchievements fills in structural defaults on incoming entries.
// Content is otherwise passed through opaquely.
func normalizeAchievements(in []shared.Achievement) []shared.Achievement {
	out := make([]shared.Achievement, len(in))
	for i, a := range in {
		if a.ID == "" {
			if id, err := crypto.GenerateSecureRandomString(9); err == nil {
				a.ID = id
			}
		}
		if a.VerificationStatus == "" {
			a.VerificationStatus = shared.VerificationPending
		}
		out[i] = a
	}
	return out
}
