package models

type Review struct {
	BaseModel
	BookingID uint    `gorm:"not null;uniqueIndex" json:"bookingId"`
	Rating    int     `gorm:"not null" json:"rating"`
	Comment   *string `gorm:"type:text" json:"comment,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`
}
