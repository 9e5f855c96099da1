package entity

import (
	"fmt"
	"time"

	errs "github.com/campuspoints/points-api/internal/domain/error"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
)

// TransactionType classifies a ledger entry
type TransactionType string

// Transaction types. The generic balance mutation path emits credit or
// debit based on the sign of the amount; feature flows (challenges,
// seeding) record earn and spend directly.
const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
	TypeEarn   TransactionType = "earn"
	TypeSpend  TransactionType = "spend"
)

// DefaultAdjustmentNote is recorded when a balance change carries no description
const DefaultAdjustmentNote = "Admin adjustment"

// Transaction is an immutable ledger entry. Rows are created exactly
// once, atomically with the balance change they represent, and never
// updated or deleted.
type Transaction struct {
	ID          uint64          // Unique identifier, monotonically increasing
	UserID      uint64          // Owning user
	AdminID     *uint64         // Acting administrator; nil for self-service flows
	Amount      int64           // Signed delta: positive credits, negative debits
	Type        TransactionType // Classification of the entry
	Description string          // Optional human-readable note
	RecipientID *uint64         // Peer-to-peer transfer target (schema only, unused)
	RequestID   *uint64         // Originating request (schema only, unused)
	CreatedAt   time.Time       // Defines ledger ordering
}

// NewTransaction creates a ledger entry for the given delta. An empty
// type is derived from the sign of the amount; an empty description
// falls back to the default adjustment note.
func NewTransaction(
	userID uint64,
	amount int64,
	txType TransactionType,
	description string,
	adminID *uint64,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if txType == "" {
		txType = DeriveType(amount)
	}
	if !isValidType(txType) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}
	if description == "" {
		description = DefaultAdjustmentNote
	}

	return &Transaction{
		UserID:      userID,
		AdminID:     adminID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// DeriveType maps a signed amount to the generic credit/debit classification
func DeriveType(amount int64) TransactionType {
	if amount > 0 {
		return TypeCredit
	}
	return TypeDebit
}

// IsCredit reports whether this entry increased the balance
func (t *Transaction) IsCredit() bool {
	return t.Amount > 0
}

func isValidType(t TransactionType) bool {
	switch t {
	case TypeCredit, TypeDebit, TypeEarn, TypeSpend:
		return true
	}
	return false
}
