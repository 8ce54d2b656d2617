package models

import (
	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Username     string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string                      `gorm:"not null" json:"-"`
	Name         string                      `gorm:"type:varchar(255);not null" json:"name"`
	Role         UserRole                    `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	Bio          string                      `gorm:"type:text" json:"bio"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	IsOnline     bool                        `gorm:"default:false" json:"isOnline"`
	ShowPhone    bool                        `gorm:"default:false" json:"showPhone"`
	PhoneNumber  string                      `gorm:"type:varchar(32)" json:"phoneNumber"`
	Rating       int                         `gorm:"default:0" json:"rating"`
	Verified     bool                        `gorm:"default:false" json:"verified"`
}

func (u *User) IsHelper() bool { return u.Role == UserRoleHelper }
func (u *User) IsAdmin() bool  { return u.Role == UserRoleAdmin }

// PublicView hides the phone number unless the user opted to show it.
func (u User) PublicView() User {
	if !u.ShowPhone {
		u.PhoneNumber = ""
	}
	return u
}

// Skills converts a plain slice to the JSON column type.
func Skills(skills []string) datatypes.JSONSlice[string] {
	if skills == nil {
		skills = []string{}
	}
	return datatypes.JSONSlice[string](skills)
}
