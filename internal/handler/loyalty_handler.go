package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rouvinerh/is4302-project/internal/dto"
	"github.com/rouvinerh/is4302-project/internal/service"
	"github.com/rouvinerh/is4302-project/pkg/middleware"
	"github.com/rouvinerh/is4302-project/pkg/response"
)

// LoyaltyHandler handles loyalty point HTTP requests
type LoyaltyHandler struct {
	ledger *service.LoyaltyLedger
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(ledger *service.LoyaltyLedger) *LoyaltyHandler {
	return &LoyaltyHandler{
		ledger: ledger,
	}
}

// Balance handles GET /loyalty/balances/:participant - returns a point balance
func (h *LoyaltyHandler) Balance(c *gin.Context) {
	participant := c.Param("participant")
	if participant == "" {
		response.BadRequest(c, "Participant is required")
		return
	}

	balance, err := h.ledger.BalanceOf(c.Request.Context(), participant)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.BalanceResponse{
		Participant: participant,
		Balance:     balance,
	})
}

// Allowance handles GET /loyalty/balances/:participant/allowance/:spender
func (h *LoyaltyHandler) Allowance(c *gin.Context) {
	owner := c.Param("participant")
	spender := c.Param("spender")
	if owner == "" || spender == "" {
		response.BadRequest(c, "Owner and spender are required")
		return
	}

	allowance, err := h.ledger.AllowanceOf(c.Request.Context(), owner, spender)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.AllowanceResponse{
		Owner:     owner,
		Spender:   spender,
		Allowance: allowance,
	})
}

// Supply handles GET /loyalty/supply - returns the outstanding supply
func (h *LoyaltyHandler) Supply(c *gin.Context) {
	supply, err := h.ledger.TotalSupply(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.SupplyResponse{TotalSupply: supply})
}

// Approve handles POST /loyalty/approve - grants a spend allowance
func (h *LoyaltyHandler) Approve(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.ApprovePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.ledger.Approve(c.Request.Context(), callerID, req.Spender, req.Amount); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.AllowanceResponse{
		Owner:     callerID,
		Spender:   req.Spender,
		Allowance: req.Amount,
	})
}

// Transfer handles POST /loyalty/transfer - moves points between
// participants, consuming an allowance when the caller is not the owner
func (h *LoyaltyHandler) Transfer(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.TransferPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.ledger.TransferFrom(c.Request.Context(), callerID, req.Owner, req.To, req.Amount); err != nil {
		writeDomainError(c, err)
		return
	}

	balance, err := h.ledger.BalanceOf(c.Request.Context(), req.To)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.BalanceResponse{
		Participant: req.To,
		Balance:     balance,
	})
}

// Burn handles POST /loyalty/burn - destroys points from the caller's balance
func (h *LoyaltyHandler) Burn(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.BurnPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.ledger.Burn(c.Request.Context(), callerID, req.Amount); err != nil {
		writeDomainError(c, err)
		return
	}

	balance, err := h.ledger.BalanceOf(c.Request.Context(), callerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.BalanceResponse{
		Participant: callerID,
		Balance:     balance,
	})
}
