package services

import (
	"context"
	"fmt"
	"time"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreatePaymentRequest) (*models.Payment, error)
	GetPayment(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) (*models.Payment, error)
	GetBookingPayment(ctx context.Context, db *gorm.DB, actor dto.Actor, bookingID uint) (*models.Payment, error)
	ListPayments(ctx context.Context, db *gorm.DB, query *dto.PaymentQuery, page repositories.Pagination) ([]models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, status models.PaymentStatus) (*models.Payment, error)
}

type PaymentServiceImpl struct {
	paymentRepo        repositories.PaymentRepository
	bookingRepo        repositories.BookingRepository
	platformFeePercent int
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, bookingRepo repositories.BookingRepository, platformFeePercent int) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:        paymentRepo,
		bookingRepo:        bookingRepo,
		platformFeePercent: platformFeePercent,
	}
}

var amountTooLarge = fmt.Sprintf("Must be less than or equal to %d", dto.MaxAmountCents)

// SplitAmount divides amount between helper and platform. The platform share
// is rounded down so the helper never loses a cent to rounding.
func SplitAmount(amount, feePercent int) (student, platform int) {
	platform = amount * feePercent / 100
	return amount - platform, platform
}

func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount > dto.MaxAmountCents {
		return nil, apperrors.ValidationError(map[string]string{"amount": amountTooLarge})
	}

	booking, err := s.bookingRepo.FindByID(db, req.BookingID)
	if err != nil {
		return nil, translate(err, repositories.ErrBookingNotFound, apperrors.ErrBookingNotFound)
	}
	if !actor.IsAdmin() && !actor.Is(booking.ClientID) {
		return nil, apperrors.NewForbiddenError("Only the booking's client can record a payment")
	}

	payment := &models.Payment{
		BookingID: booking.ID,
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    models.PaymentStatusPending,
		Date:      time.Now().UTC(),
	}
	if req.Date != nil {
		payment.Date = req.Date.UTC()
	}

	switch {
	case req.StudentAmount == nil && req.PlatformAmount == nil:
		payment.StudentAmount, payment.PlatformAmount = SplitAmount(req.Amount, s.platformFeePercent)
	case req.StudentAmount != nil && req.PlatformAmount == nil:
		payment.StudentAmount = *req.StudentAmount
		payment.PlatformAmount = req.Amount - *req.StudentAmount
	case req.StudentAmount == nil && req.PlatformAmount != nil:
		payment.PlatformAmount = *req.PlatformAmount
		payment.StudentAmount = req.Amount - *req.PlatformAmount
	default:
		payment.StudentAmount = *req.StudentAmount
		payment.PlatformAmount = *req.PlatformAmount
	}

	if payment.StudentAmount < 0 || payment.PlatformAmount < 0 || !payment.SplitIsBalanced() {
		return nil, apperrors.ErrInvalidPaymentSplit
	}

	if err := s.paymentRepo.Create(db, payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "payment recorded", "payment_id", payment.ID, "booking_id", booking.ID, "amount", payment.Amount)
	return payment, nil
}

func (s *PaymentServiceImpl) GetPayment(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrPaymentNotFound, apperrors.ErrPaymentNotFound)
	}
	if err := s.authorizeBooking(db, actor, payment.BookingID); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentServiceImpl) GetBookingPayment(ctx context.Context, db *gorm.DB, actor dto.Actor, bookingID uint) (*models.Payment, error) {
	if err := s.authorizeBooking(db, actor, bookingID); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindByBooking(db, bookingID)
	if err != nil {
		return nil, translate(err, repositories.ErrPaymentNotFound, apperrors.ErrPaymentNotFound)
	}
	return payment, nil
}

func (s *PaymentServiceImpl) ListPayments(ctx context.Context, db *gorm.DB, query *dto.PaymentQuery, page repositories.Pagination) ([]models.Payment, error) {
	filter := repositories.PaymentFilter{Pagination: page}
	if query != nil {
		filter.Status = query.Status
	}
	payments, err := s.paymentRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return payments, nil
}

func (s *PaymentServiceImpl) UpdatePaymentStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, status models.PaymentStatus) (*models.Payment, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only admins can change payment status")
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus("payment", "Invalid payment status")
	}
	if err := s.paymentRepo.UpdateStatus(db, id, status); err != nil {
		return nil, translate(err, repositories.ErrPaymentNotFound, apperrors.ErrPaymentNotFound)
	}

	logger.CtxInfo(ctx, "payment status changed", "payment_id", id, "status", status, "admin_id", actor.UserID)

	payment, err := s.paymentRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrPaymentNotFound, apperrors.ErrPaymentNotFound)
	}
	return payment, nil
}

func (s *PaymentServiceImpl) authorizeBooking(db *gorm.DB, actor dto.Actor, bookingID uint) error {
	booking, err := s.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		return translate(err, repositories.ErrBookingNotFound, apperrors.ErrBookingNotFound)
	}
	if !canSeeBooking(actor, booking) {
		return apperrors.NewForbiddenError("You are not a participant of this booking")
	}
	return nil
}
