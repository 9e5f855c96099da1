package entity

import "time"

// RequestStatus represents the lifecycle state of a peer-to-peer request
type RequestStatus string

// Request statuses. Only pending is ever written today; the state
// machine is not wired into business logic yet.
const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// Request is one user asking another for points. The schema exists and
// is migrated, but no transitions are implemented.
type Request struct {
	ID          uint64
	SenderID    uint64
	RecipientID uint64
	Amount      int64
	Status      RequestStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
