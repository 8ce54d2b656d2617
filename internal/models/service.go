package models

type Service struct {
	BaseModel
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    ServiceCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Price       int             `gorm:"not null" json:"price"`
	HelperID    uint            `gorm:"not null;index" json:"helperId"`

	Helper *User `gorm:"foreignKey:HelperID;constraint:OnDelete:CASCADE" json:"-"`
}
