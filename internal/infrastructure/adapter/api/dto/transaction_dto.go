package dto

import (
	"time"

	"github.com/campuspoints/points-api/internal/domain/entity"
)

// BalanceChangeRequest represents the API request for an admin balance
// mutation. Amount is the magnitude; the endpoint determines the sign.
type BalanceChangeRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
}

// TransactionResponse represents one ledger entry in API responses
type TransactionResponse struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	AdminID     *uint64   `json:"adminId,omitempty"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BalanceChangeResponse pairs the updated user with the mutation outcome
type BalanceChangeResponse struct {
	UserID  uint64 `json:"userId"`
	Balance int64  `json:"balance"`
}

// NewTransactionResponse maps a transaction entity to its API representation
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		UserID:      tx.UserID,
		AdminID:     tx.AdminID,
		Amount:      tx.Amount,
		Type:        string(tx.Type),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

// NewTransactionListResponse maps a slice of transactions
func NewTransactionListResponse(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
