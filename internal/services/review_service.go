package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"klarfix/internal/logger"
	"klarfix/internal/models"
	"klarfix/internal/repositories"
	"klarfix/internal/services/dto"
	"klarfix/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateReviewRequest) (*models.Review, error)
	ListServiceReviews(ctx context.Context, db *gorm.DB, serviceID uint) ([]models.Review, error)
}

type ReviewServiceImpl struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bookingRepo repositories.BookingRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// CreateReview stores the review and recomputes the helper's rating in one transaction.
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, db *gorm.DB, actor dto.Actor, req *dto.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ValidationError(map[string]string{"rating": "Must be between 1 and 5"})
	}

	review := &models.Review{
		BookingID: req.BookingID,
		Rating:    req.Rating,
	}
	if req.Comment != nil {
		if trimmed := strings.TrimSpace(*req.Comment); trimmed != "" {
			review.Comment = &trimmed
		}
	}

	var helperID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByID(tx, req.BookingID)
		if err != nil {
			return translate(err, repositories.ErrBookingNotFound, apperrors.ErrBookingNotFound)
		}
		if !actor.Is(booking.ClientID) {
			return apperrors.NewForbiddenError("Only the booking's client can review it")
		}
		if booking.Service == nil {
			return apperrors.ErrServiceNotFound
		}
		helperID = booking.Service.HelperID

		if _, err := s.reviewRepo.FindByBooking(tx, booking.ID); err == nil {
			return apperrors.ErrReviewExists
		} else if !errors.Is(err, repositories.ErrReviewNotFound) {
			return err
		}

		if err := s.reviewRepo.Create(tx, review); err != nil {
			return translate(err, repositories.ErrReviewAlreadyExists, apperrors.ErrReviewExists)
		}

		avg, _, err := s.reviewRepo.AverageForHelper(tx, helperID)
		if err != nil {
			return err
		}
		return s.userRepo.UpdateRating(tx, helperID, int(math.Round(avg)))
	})
	if err != nil {
		return nil, passThrough(err)
	}

	logger.CtxInfo(ctx, "review created", "review_id", review.ID, "booking_id", review.BookingID, "helper_id", helperID)
	return review, nil
}

func (s *ReviewServiceImpl) ListServiceReviews(ctx context.Context, db *gorm.DB, serviceID uint) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByService(db, serviceID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reviews, nil
}
