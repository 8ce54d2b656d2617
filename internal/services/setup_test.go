package services_test

import (
	"context"
	"testing"
	"time"

	"klarfix/internal/auth"
	"klarfix/internal/email"
	"klarfix/internal/logger"
	"klarfix/internal/repositories"
	"klarfix/internal/services"
	"klarfix/internal/testutil"
	"klarfix/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-test-secret-test-secret-42"

type env struct {
	ctx    context.Context
	db     *gorm.DB
	mail   *testutil.MailRecorder
	tokens *auth.TokenManager
	svc    *services.ServiceContainer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger.Init("test")

	db := testutil.NewTestDB(t)
	mail := testutil.NewMailRecorder()

	userRepo := repositories.NewUserRepository()
	contactRepo := repositories.NewContactRequestRepository()
	verificationRepo := repositories.NewVerificationRepository()
	serviceRepo := repositories.NewServiceRepository()
	bookingRepo := repositories.NewBookingRepository()
	paymentRepo := repositories.NewPaymentRepository()
	reviewRepo := repositories.NewReviewRepository()
	applicationRepo := repositories.NewApplicationRepository()

	notifications := services.NewNotificationService(mail, email.NewTemplateManager())
	tokens := auth.NewTokenManager(testSecret, time.Hour)

	return &env{
		ctx:    context.Background(),
		db:     db,
		mail:   mail,
		tokens: tokens,
		svc: &services.ServiceContainer{
			AuthService:           services.NewAuthService(userRepo, tokens),
			UserService:           services.NewUserService(userRepo),
			ContactRequestService: services.NewContactRequestService(contactRepo, userRepo, notifications),
			VerificationService:   services.NewVerificationService(verificationRepo, userRepo, notifications),
			CatalogService:        services.NewCatalogService(serviceRepo, userRepo),
			BookingService:        services.NewBookingService(bookingRepo, serviceRepo),
			PaymentService:        services.NewPaymentService(paymentRepo, bookingRepo, 20),
			ReviewService:         services.NewReviewService(reviewRepo, bookingRepo, userRepo),
			ApplicationService:    services.NewApplicationService(applicationRepo, userRepo, notifications),
			NotificationService:   notifications,
			EmailProvider:         mail,
		},
	}
}

// requireAppError asserts err is an AppError with the given HTTP status and returns it.
func requireAppError(t *testing.T, err error, httpCode int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, httpCode, appErr.HTTPCode, appErr.Message)
	return appErr
}

func strPtr(s string) *string { return &s }

func repositoriesPage() repositories.Pagination {
	return repositories.Pagination{}
}
