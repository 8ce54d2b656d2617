package dto

import (
	"time"

	"klarfix/internal/models"
)

// MaxAmountCents caps prices and payment amounts.
const MaxAmountCents = 100000000

type CreateServiceRequest struct {
	Title       string                 `json:"title" validate:"required,min=3,max=255"`
	Description string                 `json:"description" validate:"required,min=10,max=5000"`
	Category    models.ServiceCategory `json:"category" validate:"required,is-service-category"`
	Price       *int                   `json:"price" validate:"required,gte=0,lte=100000000"`
	// HelperID lets an admin create a service on behalf of a helper.
	HelperID *uint `json:"helperId"`
}

type UpdateServiceRequest struct {
	Title       *string                 `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string                 `json:"description" validate:"omitempty,min=10,max=5000"`
	Category    *models.ServiceCategory `json:"category" validate:"omitempty,is-service-category"`
	Price       *int                    `json:"price" validate:"omitempty,gte=0,lte=100000000"`
}

type ServiceSearchQuery struct {
	Category models.ServiceCategory `form:"category" validate:"omitempty,is-service-category"`
}

type CreateBookingRequest struct {
	ServiceID uint       `json:"serviceId" validate:"required"`
	Date      *time.Time `json:"date" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" validate:"required,is-booking-status"`
}

type BookingQuery struct {
	Status models.BookingStatus `form:"status" validate:"omitempty,is-booking-status"`
}

// CreatePaymentRequest records a payment. When the split is omitted it is
// derived from the platform fee.
type CreatePaymentRequest struct {
	BookingID      uint                 `json:"bookingId" validate:"required"`
	Amount         int                  `json:"amount" validate:"required,gt=0,lte=100000000"`
	StudentAmount  *int                 `json:"studentAmount" validate:"omitempty,gte=0,lte=100000000"`
	PlatformAmount *int                 `json:"platformAmount" validate:"omitempty,gte=0,lte=100000000"`
	Method         models.PaymentMethod `json:"method" validate:"required,is-payment-method"`
	Date           *time.Time           `json:"date"`
}

type UpdatePaymentStatusRequest struct {
	Status models.PaymentStatus `json:"status" validate:"required,is-payment-status"`
}

type PaymentQuery struct {
	Status models.PaymentStatus `form:"status" validate:"omitempty,is-payment-status"`
}

type CreateReviewRequest struct {
	BookingID uint    `json:"bookingId" validate:"required"`
	Rating    int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=2000"`
}
