package models

import "time"

type Payment struct {
	BaseModel
	BookingID      uint          `gorm:"not null;index" json:"bookingId"`
	Amount         int           `gorm:"not null" json:"amount"`
	StudentAmount  int           `gorm:"not null" json:"studentAmount"`
	PlatformAmount int           `gorm:"not null" json:"platformAmount"`
	Method         PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Status         PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Date           time.Time     `gorm:"not null" json:"date"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`
}

// SplitIsBalanced checks studentAmount + platformAmount == amount.
func (p *Payment) SplitIsBalanced() bool {
	return p.StudentAmount+p.PlatformAmount == p.Amount
}
