package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a user in the system. The password hash is part of the
// persisted record but must never appear in an API response; use Public().
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the outward projection of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the projection of the user that is safe to send to clients.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Achievement verification statuses.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Achievement is an embedded profile entry. The server treats its content
// as opaque payload beyond structural defaults.
type Achievement struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Date               string `json:"date,omitempty"`
	VerificationLink   string `json:"verificationLink,omitempty"`
	VerificationStatus string `json:"verificationStatus"`
}

// Profile is the per-user profile document, keyed by the owning user's ID.
type Profile struct {
	UserID       string        `json:"userId"`
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	Company      string        `json:"company"`
	Bio          string        `json:"bio"`
	Email        string        `json:"email"`
	Location     string        `json:"location"`
	Achievements []Achievement `json:"achievements"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"`
}

// Claims represents the JWT claims structure.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for JWT operations.
type TokenService interface {
	GenerateToken(userID, email string) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// AccountService defines the account operations the HTTP layer depends on.
type AccountService interface {
	Register(ctx context.Context, email, password, name string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
}
