package routes

import (
	"klarfix/internal/handlers"
	"klarfix/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route: /health at the root, the API under /api.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)
		appHandlers.VerificationHandler.RegisterRoutes(api)
		appHandlers.ServiceHandler.RegisterRoutes(api)
		appHandlers.BookingHandler.RegisterRoutes(api)
		appHandlers.PaymentHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
	}

	logger.Debug("HTTP routes registered", "count", len(ginRouter.Routes()))
}
