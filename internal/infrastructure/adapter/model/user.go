package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Email       string    `gorm:"uniqueIndex;not null;size:320"`
	Username    string    `gorm:"uniqueIndex;not null;size:64"`
	FullName    string    `gorm:"size:256"`
	Balance     int64     `gorm:"not null;default:0"`
	GiftBalance int64     `gorm:"not null;default:25"`
	Role        string    `gorm:"not null;size:16;default:student"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
