package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rouvinerh/is4302-project/internal/dto"
	"github.com/rouvinerh/is4302-project/internal/service"
	"github.com/rouvinerh/is4302-project/pkg/middleware"
	"github.com/rouvinerh/is4302-project/pkg/response"
)

// TicketHandler handles ticket-related HTTP requests
type TicketHandler struct {
	marketplace *service.Marketplace
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(marketplace *service.Marketplace) *TicketHandler {
	return &TicketHandler{
		marketplace: marketplace,
	}
}

// Get handles GET /tickets/:id - retrieves a ticket
func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ticket, err := h.marketplace.Ticket(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, dto.ToTicketResponse(ticket))
}

// Transfer handles POST /tickets/:id/transfer - transfers a ticket. The
// recipient may be the custodian id, which escrows the ticket for sale.
func (h *TicketHandler) Transfer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.TransferTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.marketplace.TransferTicket(c.Request.Context(), callerID, id, req.To); err != nil {
		writeDomainError(c, err)
		return
	}

	ticket, err := h.marketplace.Ticket(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, dto.ToTicketResponse(ticket))
}

// Approve handles POST /tickets/:id/approve - sets the approved spender.
// An empty spender clears the approval.
func (h *TicketHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.ApproveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.marketplace.ApproveTicket(c.Request.Context(), callerID, id, req.Spender); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, gin.H{"ticket_id": id, "spender": req.Spender})
}

// List handles POST /tickets/:id/list - lists an escrowed ticket for resale
func (h *TicketHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.ListTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.marketplace.ListTicket(c.Request.Context(), callerID, id, req.Price); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, gin.H{"ticket_id": id, "price": req.Price})
}

// Buy handles POST /tickets/:id/buy - buys a custody-held ticket
func (h *TicketHandler) Buy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.BuyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	receipt, err := h.marketplace.BuyTicket(c.Request.Context(), callerID, id, req.LoyaltyPoints, req.PaymentAmount)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.PurchaseResponse{
		TicketID:      receipt.TicketID,
		BuyerID:       receipt.BuyerID,
		Price:         receipt.Price,
		PointsUsed:    receipt.PointsUsed,
		PaymentAmount: receipt.PaymentAmount,
	})
}

// Redeem handles POST /tickets/:id/redeem - redeems a ticket before expiry
func (h *TicketHandler) Redeem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	if err := h.marketplace.RedeemTicket(c.Request.Context(), callerID, id); err != nil {
		writeDomainError(c, err)
		return
	}

	ticket, err := h.marketplace.Ticket(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, dto.ToTicketResponse(ticket))
}
