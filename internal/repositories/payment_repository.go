package repositories

import (
	"errors"

	"klarfix/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentFilter struct {
	Pagination
	Status models.PaymentStatus
}

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	FindByID(db *gorm.DB, id uint) (*models.Payment, error)
	FindByBooking(db *gorm.DB, bookingID uint) (*models.Payment, error)
	List(db *gorm.DB, filter PaymentFilter) ([]models.Payment, error)
	UpdateStatus(db *gorm.DB, id uint, status models.PaymentStatus) error
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	return db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByBooking returns the latest payment recorded for the booking.
func (r *PaymentRepositoryImpl) FindByBooking(db *gorm.DB, bookingID uint) (*models.Payment, error) {
	var payment models.Payment
	err := newestFirst(db.Where("booking_id = ?", bookingID), "payments").First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) List(db *gorm.DB, filter PaymentFilter) ([]models.Payment, error) {
	query := db.Model(&models.Payment{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	payments := make([]models.Payment, 0)
	err := filter.Pagination.apply(newestFirst(query, "payments")).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) UpdateStatus(db *gorm.DB, id uint, status models.PaymentStatus) error {
	result := db.Model(&models.Payment{}).Where("id = ?", id).Update("status", status)
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
