package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	HealthHandler       *HealthHandler
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ContactHandler      *ContactHandler
	VerificationHandler *VerificationHandler
	ServiceHandler      *ServiceHandler
	BookingHandler      *BookingHandler
	PaymentHandler      *PaymentHandler
	ReviewHandler       *ReviewHandler
	ApplicationHandler  *ApplicationHandler
}
