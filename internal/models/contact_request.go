package models

type ContactRequest struct {
	BaseModel
	HelperID    uint          `gorm:"not null;index" json:"helperId"`
	ClientPhone string        `gorm:"type:varchar(32);not null" json:"clientPhone"`
	Status      ContactStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes       *string       `gorm:"type:text" json:"notes,omitempty"`

	Helper *User `gorm:"foreignKey:HelperID;constraint:OnDelete:CASCADE" json:"-"`
}
