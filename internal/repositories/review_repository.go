package repositories

import (
	"errors"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this booking")
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByBooking(db *gorm.DB, bookingID uint) (*models.Review, error)
	ListByService(db *gorm.DB, serviceID uint) ([]models.Review, error)
	AverageForHelper(db *gorm.DB, helperID uint) (float64, int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByBooking(db *gorm.DB, bookingID uint) (*models.Review, error) {
	var review models.Review
	if err := db.Where("booking_id = ?", bookingID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ListByService(db *gorm.DB, serviceID uint) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	query := db.Model(&models.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("bookings.service_id = ?", serviceID)
	err := newestFirst(query, "reviews").Find(&reviews).Error
	return reviews, err
}

// AverageForHelper averages ratings over all bookings of the helper's services.
func (r *ReviewRepositoryImpl) AverageForHelper(db *gorm.DB, helperID uint) (float64, int64, error) {
	var stats struct {
		Average float64
		Total   int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(reviews.rating), 0) AS average, COUNT(reviews.id) AS total").
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.helper_id = ?", helperID).
		Scan(&stats).Error
	return stats.Average, stats.Total, err
}
