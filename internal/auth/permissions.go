package auth

import "klarfix/internal/models"

// Permission names an action guarded by role.
type Permission string

const (
	PermReviewVerifications Permission = "verifications:review"
	PermListVerifications   Permission = "verifications:list"
	PermSubmitVerification  Permission = "verifications:submit"
	PermManageUsers         Permission = "users:manage"
	PermManageCatalog       Permission = "catalog:manage"
	PermOfferServices       Permission = "services:offer"
	PermBookServices        Permission = "bookings:create"
	PermHandleContacts      Permission = "contacts:handle"
	PermManageApplications  Permission = "applications:manage"
)

var Permissions = map[models.UserRole][]Permission{
	models.UserRoleAdmin: {
		PermReviewVerifications,
		PermListVerifications,
		PermManageUsers,
		PermManageCatalog,
		PermOfferServices,
		PermBookServices,
		PermHandleContacts,
		PermManageApplications,
	},
	models.UserRoleHelper: {
		PermSubmitVerification,
		PermOfferServices,
		PermHandleContacts,
	},
	models.UserRoleClient: {
		PermBookServices,
	},
}

// HasPermission reports whether role grants permission.
func HasPermission(role models.UserRole, permission Permission) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.Role == models.UserRoleAdmin
}
