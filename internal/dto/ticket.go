package dto

import "github.com/rouvinerh/is4302-project/internal/domain"

// TransferTicketRequest represents the request to transfer a ticket
type TransferTicketRequest struct {
	To string `json:"to" binding:"required"`
}

// Validate validates the TransferTicketRequest
func (r *TransferTicketRequest) Validate() (bool, string) {
	if r.To == "" {
		return false, "Recipient is required"
	}
	return true, ""
}

// ApproveTicketRequest represents the request to approve a ticket spender
type ApproveTicketRequest struct {
	Spender string `json:"spender"`
}

// ListTicketRequest represents the request to list a ticket for resale
type ListTicketRequest struct {
	Price int64 `json:"price"`
}

// Validate validates the ListTicketRequest
func (r *ListTicketRequest) Validate() (bool, string) {
	if r.Price < 0 {
		return false, "Listing price cannot be negative"
	}
	return true, ""
}

// BuyTicketRequest represents the request to buy a ticket
type BuyTicketRequest struct {
	LoyaltyPoints int64 `json:"loyalty_points"`
	PaymentAmount int64 `json:"payment_amount"`
}

// Validate validates the BuyTicketRequest
func (r *BuyTicketRequest) Validate() (bool, string) {
	if r.LoyaltyPoints < 0 {
		return false, "Loyalty points cannot be negative"
	}
	if r.PaymentAmount < 0 {
		return false, "Payment amount cannot be negative"
	}
	return true, ""
}

// TicketResponse represents the response for a ticket
type TicketResponse struct {
	ID              uint64 `json:"id"`
	EventID         uint64 `json:"event_id"`
	Category        string `json:"category"`
	SeatLabel       string `json:"seat_label"`
	NominalPrice    int64  `json:"nominal_price"`
	OwnerID         string `json:"owner_id"`
	PreviousOwnerID string `json:"previous_owner_id,omitempty"`
	ApprovedSpender string `json:"approved_spender,omitempty"`
	State           string `json:"state"`
}

// ToTicketResponse converts a Ticket to a TicketResponse
func ToTicketResponse(ticket *domain.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:              ticket.ID,
		EventID:         ticket.EventID,
		Category:        ticket.Category.String(),
		SeatLabel:       ticket.SeatLabel,
		NominalPrice:    ticket.NominalPrice,
		OwnerID:         ticket.OwnerID,
		PreviousOwnerID: ticket.PreviousOwnerID,
		ApprovedSpender: ticket.ApprovedSpender,
		State:           ticket.State.String(),
	}
}

// PurchaseResponse represents the result of a ticket purchase
type PurchaseResponse struct {
	TicketID      uint64 `json:"ticket_id"`
	BuyerID       string `json:"buyer_id"`
	Price         int64  `json:"price"`
	PointsUsed    int64  `json:"points_used"`
	PaymentAmount int64  `json:"payment_amount"`
}
