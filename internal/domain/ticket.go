package domain

import "fmt"

// TicketState is the lifecycle state of a ticket.
type TicketState int

const (
	TicketStateOwned TicketState = iota
	TicketStateListed
	TicketStateRedeemed
)

// String returns the canonical name of the state.
func (s TicketState) String() string {
	switch s {
	case TicketStateOwned:
		return "OWNED"
	case TicketStateListed:
		return "LISTED"
	case TicketStateRedeemed:
		return "REDEEMED"
	default:
		return "UNKNOWN"
	}
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// REDEEMED is terminal, and a listed ticket must be bought (reverting to
// OWNED) before it can be redeemed.
func (s TicketState) CanTransitionTo(next TicketState) bool {
	switch s {
	case TicketStateOwned:
		return next == TicketStateListed || next == TicketStateRedeemed
	case TicketStateListed:
		return next == TicketStateOwned
	default:
		return false
	}
}

// Category is a price category within an event.
type Category int

const (
	CategoryA Category = iota
	CategoryB
	CategoryC
)

// String returns the single-letter category name.
func (c Category) String() string {
	switch c {
	case CategoryA:
		return "A"
	case CategoryB:
		return "B"
	case CategoryC:
		return "C"
	default:
		return "?"
	}
}

// Ticket block layout. Each event owns one contiguous block of ticket ids
// (event id * TicketsPerEvent + slot), split across the three categories.
const (
	TicketsPerEvent = 200
	CategoryASeats  = 50
	CategoryBSeats  = 70
	CategoryCSeats  = 80
)

// SlotCategory returns the category of a slot within an event block.
func SlotCategory(slot int) Category {
	switch {
	case slot < CategoryASeats:
		return CategoryA
	case slot < CategoryASeats+CategoryBSeats:
		return CategoryB
	default:
		return CategoryC
	}
}

// SlotSeatLabel returns the seat label for a slot, e.g. "A1" or "C80".
func SlotSeatLabel(slot int) string {
	cat := SlotCategory(slot)
	switch cat {
	case CategoryA:
		return fmt.Sprintf("A%d", slot+1)
	case CategoryB:
		return fmt.Sprintf("B%d", slot-CategoryASeats+1)
	default:
		return fmt.Sprintf("C%d", slot-CategoryASeats-CategoryBSeats+1)
	}
}

// Ticket represents a unique, stateful ticket entity tied to an event.
// ID and EventID are immutable after creation.
type Ticket struct {
	ID              uint64      `json:"id"`
	EventID         uint64      `json:"event_id"`
	Category        Category    `json:"category"`
	SeatLabel       string      `json:"seat_label"`
	NominalPrice    int64       `json:"nominal_price"` // nominal units
	OwnerID         string      `json:"owner_id"`
	PreviousOwnerID string      `json:"previous_owner_id,omitempty"`
	ApprovedSpender string      `json:"approved_spender,omitempty"`
	State           TicketState `json:"state"`
}

// Listing is a seller-set resale offer for a ticket in marketplace custody.
type Listing struct {
	TicketID uint64 `json:"ticket_id"`
	SellerID string `json:"seller_id"`
	Price    int64  `json:"price"` // nominal units
}
