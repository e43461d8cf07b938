// File: internal/profile/model.go
package profile

import "profolio_backend/internal/shared"

// UpdateProfileRequest carries a partial update. Every field is a pointer so
// an omitted field is distinguishable from an explicitly empty one; only
// supplied fields are overwritten.
type UpdateProfileRequest struct {
	Name         *string               `json:"name"`
	Title        *string               `json:"title"`
	Company      *string               `json:"company"`
	Bio          *string               `json:"bio"`
	Email        *string               `json:"email"`
	Location     *string               `json:"location"`
	Achievements *[]shared.Achievement `json:"achievements"`
}
