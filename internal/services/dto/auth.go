package dto

import (
	"time"

	"klarfix/internal/models"
)

// SignupRequest creates a helper or client account. Username is the e-mail.
type SignupRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Username    string          `json:"username" validate:"required,email,max=255"`
	Password    string          `json:"password" validate:"required,min=6,max=72"`
	Role        models.UserRole `json:"role" validate:"required,is-signup-role"`
	Bio         string          `json:"bio" validate:"max=2000"`
	Skills      []string        `json:"skills" validate:"max=20,dive,min=1,max=64"`
	PhoneNumber string          `json:"phoneNumber" validate:"omitempty,phone"`
}

type SignupResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the session token to the handler, which sets the cookie.
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type LoginResponse struct {
	User    *models.User `json:"user"`
	Message string       `json:"message"`
}
