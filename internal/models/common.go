package models

import (
	"time"
)

// BaseModel carries the auto-increment id and timestamps shared by every table.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AllModels lists every table for AutoMigrate in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Service{},
		&Booking{},
		&Payment{},
		&Review{},
		&ContactRequest{},
		&Verification{},
		&Application{},
	}
}
