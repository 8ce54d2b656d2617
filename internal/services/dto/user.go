package dto

import "klarfix/internal/models"

// UpdateProfileRequest edits the caller's own profile. Nil fields stay unchanged.
type UpdateProfileRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=2,max=255"`
	Bio         *string   `json:"bio" validate:"omitempty,max=2000"`
	Skills      *[]string `json:"skills" validate:"omitempty,max=20,dive,min=1,max=64"`
	PhoneNumber *string   `json:"phoneNumber" validate:"omitempty,phone"`
	ShowPhone   *bool     `json:"showPhone"`
}

// AdminUpdateUserRequest edits any user. Password is never editable here.
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Role     *models.UserRole `json:"role" validate:"omitempty,is-user-role"`
	Verified *bool            `json:"verified"`
	Rating   *int             `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsOnline *bool            `json:"isOnline"`
}

type SetOnlineRequest struct {
	IsOnline *bool `json:"isOnline" validate:"required"`
}

type UserListQuery struct {
	Role     models.UserRole `form:"role" validate:"omitempty,is-user-role"`
	Verified *bool           `form:"verified"`
	Search   string          `form:"search" validate:"max=100"`
}
