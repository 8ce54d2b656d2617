package services

import (
	"context"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

type BookingService interface {
	CreateBooking(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) (*models.Booking, error)
	ListUserBookings(ctx context.Context, db *gorm.DB, actor dto.Actor, userID uint) ([]models.Booking, error)
	ListBookings(ctx context.Context, db *gorm.DB, query *dto.BookingQuery, page repositories.Pagination) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, status models.BookingStatus) (*models.Booking, error)
}

type BookingServiceImpl struct {
	bookingRepo repositories.BookingRepository
	serviceRepo repositories.ServiceRepository
}

func NewBookingService(bookingRepo repositories.BookingRepository, serviceRepo repositories.ServiceRepository) BookingService {
	return &BookingServiceImpl{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
	}
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateBookingRequest) (*models.Booking, error) {
	if actor.Role != models.UserRoleClient && !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only clients can book services")
	}

	service, err := s.serviceRepo.FindByID(db, req.ServiceID)
	if err != nil {
		return nil, translate(err, repositories.ErrServiceNotFound, apperrors.ErrServiceNotFound)
	}

	booking := &models.Booking{
		ClientID:  actor.UserID,
		ServiceID: service.ID,
		Status:    models.BookingStatusPending,
		Date:      req.Date.UTC(),
	}
	if err := s.bookingRepo.Create(db, booking); err != nil {
		return nil, apperrors.InternalError(err)
	}
	booking.Service = service

	logger.CtxInfo(ctx, "booking created", "booking_id", booking.ID, "service_id", service.ID, "client_id", actor.UserID)
	return booking, nil
}

func (s *BookingServiceImpl) GetBooking(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrBookingNotFound, apperrors.ErrBookingNotFound)
	}
	if !canSeeBooking(actor, booking) {
		return nil, apperrors.NewForbiddenError("You are not a participant of this booking")
	}
	return booking, nil
}

func (s *BookingServiceImpl) ListUserBookings(ctx context.Context, db *gorm.DB, actor dto.Actor, userID uint) ([]models.Booking, error) {
	if !actor.Is(userID) && !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("You can only view your own bookings")
	}
	bookings, err := s.bookingRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

func (s *BookingServiceImpl) ListBookings(ctx context.Context, db *gorm.DB, query *dto.BookingQuery, page repositories.Pagination) ([]models.Booking, error) {
	filter := repositories.BookingFilter{Pagination: page}
	if query != nil {
		filter.Status = query.Status
	}
	bookings, err := s.bookingRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

// UpdateBookingStatus lets the service's helper and admins set any status;
// the client may only cancel.
func (s *BookingServiceImpl) UpdateBookingStatus(ctx context.Context, db *gorm.DB, actor dto.Actor, id uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus("booking", "Invalid booking status")
	}

	booking, err := s.bookingRepo.FindByID(db, id)
	if err != nil {
		return nil, translate(err, repositories.ErrBookingNotFound, apperrors.ErrBookingNotFound)
	}

	switch {
	case actor.IsAdmin(), booking.Service != nil && actor.Is(booking.Service.HelperID):
	case actor.Is(booking.ClientID):
		if status != models.BookingStatusCancelled {
			return nil, apperrors.NewForbiddenError("Clients can only cancel a booking")
		}
	default:
		return nil, apperrors.NewForbiddenError("You are not a participant of this booking")
	}

	if err := s.bookingRepo.UpdateStatus(db, id, status); err != nil {
		return nil, translate(err, repositories.ErrBookingNotFound, apperrors.ErrBookingNotFound)
	}

	logger.CtxInfo(ctx, "booking status changed", "booking_id", id, "from", booking.Status, "to", status, "actor_id", actor.UserID)
	booking.Status = status
	return booking, nil
}

func canSeeBooking(actor dto.Actor, booking *models.Booking) bool {
	if actor.IsAdmin() || actor.Is(booking.ClientID) {
		return true
	}
	return booking.Service != nil && actor.Is(booking.Service.HelperID)
}
