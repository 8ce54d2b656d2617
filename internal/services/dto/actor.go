package dto

import "klarfix/internal/models"

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

func (a Actor) IsHelper() bool {
	return a.Role == models.UserRoleHelper
}

// Is reports whether the actor is the user with the given id.
func (a Actor) Is(userID uint) bool {
	return a.UserID != 0 && a.UserID == userID
}

// MessageResponse is the generic {"message": "..."} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps paginated admin lists.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
