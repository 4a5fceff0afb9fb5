package domain

import (
	"strconv"
	"time"
)

// RecordType identifies a marketplace record emitted for external observers.
type RecordType string

const (
	RecordEventCreated   RecordType = "event.created"
	RecordTicketBought   RecordType = "ticket.bought"
	RecordTicketListed   RecordType = "ticket.listed"
	RecordTicketRedeemed RecordType = "ticket.redeemed"
	RecordFundsDeposited RecordType = "funds.deposited"
	RecordFundsWithdrawn RecordType = "funds.withdrawn"
)

// Record is an immutable fact about a committed marketplace operation.
// Records are observable in commit order.
type Record struct {
	ID        string     `json:"id"` // uuid, assigned at emission
	Type      RecordType `json:"type"`
	Timestamp time.Time  `json:"timestamp"`

	EventID     uint64 `json:"event_id,omitempty"`
	TicketID    uint64 `json:"ticket_id,omitempty"`
	Participant string `json:"participant,omitempty"`
	Name        string `json:"name,omitempty"`
	// Price is in nominal units for ticket records; Amount is in payment
	// currency for treasury records.
	Price  int64 `json:"price,omitempty"`
	Amount int64 `json:"amount,omitempty"`
}

// Key returns the partition key for the record, keeping records for the
// same ticket or event in order.
func (r *Record) Key() string {
	switch r.Type {
	case RecordEventCreated:
		return "event-" + strconv.FormatUint(r.EventID, 10)
	case RecordFundsDeposited, RecordFundsWithdrawn:
		return "treasury"
	default:
		return "ticket-" + strconv.FormatUint(r.TicketID, 10)
	}
}
