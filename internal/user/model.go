// File: internal/user/model.go
package user

import "profolio_backend/internal/shared"

// RegisterRequest defines the structure for creating a new user.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"` // bcrypt max is 72 bytes
	Name     string `json:"name,omitempty" binding:"omitempty,max=100"`
}

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the body returned by both register and login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  shared.PublicUser `json:"user"`
}
