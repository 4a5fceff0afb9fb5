package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/dto"
	"github.com/rouvinerh/is4302-project/internal/service"
	"github.com/rouvinerh/is4302-project/pkg/middleware"
	"github.com/rouvinerh/is4302-project/pkg/response"
)

// AdminHandler handles administrative HTTP requests: role assignment,
// loyalty overrides and treasury management.
type AdminHandler struct {
	marketplace *service.Marketplace
	ledger      *service.LoyaltyLedger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(marketplace *service.Marketplace, ledger *service.LoyaltyLedger) *AdminHandler {
	return &AdminHandler{
		marketplace: marketplace,
		ledger:      ledger,
	}
}

// SetRole handles POST /admin/roles - assigns a role to a participant
func (h *AdminHandler) SetRole(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.marketplace.SetUserRole(c.Request.Context(), callerID, req.Participant, role); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.RoleResponse{
		Participant: req.Participant,
		Role:        role.String(),
	})
}

// MintPoints handles POST /admin/loyalty/mint - mints loyalty points
func (h *AdminHandler) MintPoints(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.MintPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.ledger.Mint(c.Request.Context(), callerID, req.To, req.Amount); err != nil {
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

// SetLoyaltyPoints handles POST /admin/loyalty - overrides a balance
func (h *AdminHandler) SetLoyaltyPoints(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.SetLoyaltyPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.marketplace.SetLoyaltyPoints(c.Request.Context(), callerID, req.Participant, req.Amount); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.BalanceResponse{
		Participant: req.Participant,
		Balance:     req.Amount,
	})
}

// Deposit handles POST /admin/treasury/deposit - deposits treasury funds
func (h *AdminHandler) Deposit(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	var req dto.DepositFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	if err := h.marketplace.DepositFunds(c.Request.Context(), callerID, req.Amount); err != nil {
		writeDomainError(c, err)
		return
	}

	reserve, err := h.marketplace.Reserve(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	minReserve, err := h.marketplace.MinimumReserve(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.TreasuryResponse{
		Reserve:        reserve,
		MinimumReserve: minReserve,
	})
}

// Withdraw handles POST /admin/treasury/withdraw - withdraws all excess
// reserve above the solvency floor
func (h *AdminHandler) Withdraw(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Participant identity not found in token")
		return
	}

	amount, err := h.marketplace.WithdrawFunds(c.Request.Context(), callerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.WithdrawFundsResponse{Amount: amount})
}

// Treasury handles GET /admin/treasury - returns the treasury state
func (h *AdminHandler) Treasury(c *gin.Context) {
	reserve, err := h.marketplace.Reserve(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	minReserve, err := h.marketplace.MinimumReserve(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, &dto.TreasuryResponse{
		Reserve:        reserve,
		MinimumReserve: minReserve,
	})
}

// Convert handles GET /rates/convert?amount=N - converts nominal units to
// payment currency
func (h *AdminHandler) Convert(c *gin.Context) {
	amountStr := c.Query("amount")
	if amountStr == "" {
		response.BadRequest(c, "Amount is required")
		return
	}

	amount, err := parseInt64(amountStr)
	if err != nil || amount < 0 {
		response.BadRequest(c, "Invalid amount")
		return
	}

	response.Success(c, &dto.ConvertResponse{
		Nominal: amount,
		Wei:     h.marketplace.NominalToWei(amount),
	})
}
