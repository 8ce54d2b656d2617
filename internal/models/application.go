package models

type Application struct {
	BaseModel
	Name                   string            `gorm:"type:varchar(255);not null" json:"name"`
	Email                  string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone                  string            `gorm:"type:varchar(32);not null" json:"phone"`
	ProblemType            ServiceCategory   `gorm:"type:varchar(20);not null" json:"problemType"`
	ProblemDescription     string            `gorm:"type:text;not null" json:"problemDescription"`
	Urgency                Urgency           `gorm:"type:varchar(10);not null" json:"urgency"`
	PreferredContactMethod ContactMethod     `gorm:"type:varchar(10);not null" json:"preferredContactMethod"`
	PreviousAttempts       *string           `gorm:"type:text" json:"previousAttempts,omitempty"`
	DeviceInfo             string            `gorm:"type:text;not null" json:"deviceInfo"`
	Status                 ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AssignedToID           *uint             `gorm:"index" json:"assignedToId,omitempty"`

	AssignedTo *User `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"-"`
}
