// File: internal/user/repository.go
package user

import (
	"context"

	"profolio_backend/internal/common"
	"profolio_backend/internal/shared"
	"profolio_backend/internal/store"
)

// Repository defines the interface for user data operations.
type Repository interface {
	// CreateWithProfile persists a new user together with its companion
	// profile as one atomic store mutation, failing if the email is taken.
	CreateWithProfile(ctx context.Context, usr *shared.User, profile *shared.Profile) error
	FindByEmail(ctx context.Context, email string) (*shared.User, error)
}

type storeRepository struct {
	store *store.Store
}

// NewStoreRepository creates a user repository backed by the document store.
func NewStoreRepository(st *store.Store) Repository {
	return &storeRepository{store: st}
}

func (r *storeRepository) CreateWithProfile(ctx context.Context, usr *shared.User, profile *shared.Profile) error {
	return r.store.Update(func(agg *store.Aggregate) error {
		// The uniqueness check runs under the store's writer lock so two
		// concurrent registrations cannot both pass it.
		if agg.FindUserByEmail(usr.Email) != nil {
			return common.ErrEmailTaken
		}
		agg.Users = append(agg.Users, *usr)
		agg.Profiles[usr.ID] = *profile
		return nil
	})
}

func (r *storeRepository) FindByEmail(ctx context.Context, email string) (*shared.User, error) {
	agg, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	usr := agg.FindUserByEmail(email)
	if usr == nil {
		return nil, common.ErrNotFound.WithDetails("User not found with this email.")
	}
	return usr, nil
}
