package model

import (
	"time"
)

// Transaction represents the database model for ledger entries.
// Append-only: rows are never updated or deleted.
type Transaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index"`
	AdminID     *uint64   `gorm:"index"`
	Amount      int64     `gorm:"not null"`
	Type        string    `gorm:"not null;size:16"`
	Description string    `gorm:"type:text"`
	RecipientID *uint64
	RequestID   *uint64
	CreatedAt   time.Time `gorm:"not null;index"`

	// Define relationships
	User      User     `gorm:"foreignKey:UserID;references:ID"`
	Admin     *User    `gorm:"foreignKey:AdminID;references:ID"`
	Recipient *User    `gorm:"foreignKey:RecipientID;references:ID"`
	Request   *Request `gorm:"foreignKey:RequestID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
