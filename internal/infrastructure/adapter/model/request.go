package model

import (
	"time"
)

// Request represents the database model for peer-to-peer point
// requests. The schema is migrated for forward compatibility; no
// business logic writes to it yet.
type Request struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	SenderID    uint64    `gorm:"not null;index"`
	RecipientID uint64    `gorm:"not null;index"`
	Amount      int64     `gorm:"not null"`
	Status      string    `gorm:"not null;size:16;default:pending"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time

	Sender    User `gorm:"foreignKey:SenderID;references:ID"`
	Recipient User `gorm:"foreignKey:RecipientID;references:ID"`
}

// TableName specifies the table name for Request
func (Request) TableName() string {
	return "requests"
}
