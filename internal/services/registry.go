package services

import (
	"klarfix/internal/email"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService           AuthService
	UserService           UserService
	ContactRequestService ContactRequestService
	VerificationService   VerificationService
	CatalogService        CatalogService
	BookingService        BookingService
	PaymentService        PaymentService
	ReviewService         ReviewService
	ApplicationService    ApplicationService
	NotificationService   NotificationService
	EmailProvider         email.Provider
}
