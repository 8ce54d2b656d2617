package repositories

import (
	"errors"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingFilter struct {
	Pagination
	Status models.BookingStatus
}

type BookingRepository interface {
	Create(db *gorm.DB, booking *models.Booking) error
	FindByID(db *gorm.DB, id uint) (*models.Booking, error)
	ListByUser(db *gorm.DB, userID uint) ([]models.Booking, error)
	List(db *gorm.DB, filter BookingFilter) ([]models.Booking, error)
	UpdateStatus(db *gorm.DB, id uint, status models.BookingStatus) error
}

type BookingRepositoryImpl struct{}

func NewBookingRepository() BookingRepository {
	return &BookingRepositoryImpl{}
}

func (r *BookingRepositoryImpl) Create(db *gorm.DB, booking *models.Booking) error {
	return db.Create(booking).Error
}

// FindByID loads the booking together with its service.
func (r *BookingRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := db.Preload("Service").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns bookings the user made as client or received as the service's helper.
func (r *BookingRepositoryImpl) ListByUser(db *gorm.DB, userID uint) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	query := db.Preload("Service").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("bookings.client_id = ? OR services.helper_id = ?", userID, userID)
	err := newestFirst(query, "bookings").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) List(db *gorm.DB, filter BookingFilter) ([]models.Booking, error) {
	query := db.Model(&models.Booking{}).Preload("Service")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	bookings := make([]models.Booking, 0)
	err := filter.Pagination.apply(newestFirst(query, "bookings")).Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, status models.BookingStatus) error {
	result := db.Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(db, id); err != nil {
			return err
		}
	}
	return nil
}

