package models

import "time"

type Verification struct {
	BaseModel
	UserID              uint               `gorm:"not null;index" json:"userId"`
	RouterSetup         QuizAnswer         `gorm:"type:varchar(1);not null" json:"routerSetup"`
	FirewallSetting     QuizAnswer         `gorm:"type:varchar(1);not null" json:"firewallSetting"`
	WindowsIssue        QuizAnswer         `gorm:"type:varchar(1);not null" json:"windowsIssue"`
	CableTypes          QuizAnswer         `gorm:"type:varchar(1);not null" json:"cableTypes"`
	WPSExplanation      string             `gorm:"type:text;not null" json:"wpsExplanation"`
	TechnicalExperience string             `gorm:"type:text;not null" json:"technicalExperience"`
	ToolsUsed           string             `gorm:"type:text;not null" json:"toolsUsed"`
	Status              VerificationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Feedback            *string            `gorm:"type:text" json:"feedback,omitempty"`
	ReviewedBy          *uint              `json:"reviewedBy,omitempty"`
	ReviewedAt          *time.Time         `json:"reviewedAt,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsReviewed reports whether an admin already decided on the submission.
func (v *Verification) IsReviewed() bool {
	return v.Status != VerificationStatusPending
}
