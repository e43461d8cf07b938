// File: internal/profile/repository.go
package profile

import (
	"context"

	"profolio_backend/internal/common"
	"profolio_backend/internal/shared"
	"profolio_backend/internal/store"
)

// Repository defines the interface for profile data operations.
type Repository interface {
	Get(ctx context.Context, userID string) (*shared.Profile, error)
	// Apply runs mutate against the stored profile inside one serialized
	// load-mutate-save cycle, creating an empty profile first when none
	// exists. created tells the mutation whether it is working on a fresh
	// document. The resulting profile is returned.
	Apply(ctx context.Context, userID string, mutate func(p *shared.Profile, created bool)) (*shared.Profile, error)
}

type storeRepository struct {
	store *store.Store
}

// NewStoreRepository creates a profile repository backed by the document store.
func NewStoreRepository(st *store.Store) Repository {
	return &storeRepository{store: st}
}

func (r *storeRepository) Get(ctx context.Context, userID string) (*shared.Profile, error) {
	agg, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	p, ok := agg.Profiles[userID]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Profile not found.")
	}
	return &p, nil
}

func (r *storeRepository) Apply(ctx context.Context, userID string, mutate func(p *shared.Profile, created bool)) (*shared.Profile, error) {
	var result shared.Profile
	err := r.store.Update(func(agg *store.Aggregate) error {
		p, ok := agg.Profiles[userID]
		if !ok {
			p = shared.Profile{
				UserID:       userID,
				Achievements: []shared.Achievement{},
			}
		}
		mutate(&p, !ok)
		agg.Profiles[userID] = p
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
