package models

import "time"

type Booking struct {
	BaseModel
	ClientID  uint          `gorm:"not null;index" json:"clientId"`
	ServiceID uint          `gorm:"not null;index" json:"serviceId"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Date      time.Time     `gorm:"not null" json:"date"`

	Client  *User    `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"service,omitempty"`
}
