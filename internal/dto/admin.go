package dto

import "github.com/rouvinerh/is4302-project/internal/domain"

// SetRoleRequest represents the request to assign a role
type SetRoleRequest struct {
	Participant string `json:"participant" binding:"required"`
	Role        string `json:"role" binding:"required"`
}

// Validate validates the SetRoleRequest
func (r *SetRoleRequest) Validate() (bool, string) {
	if r.Participant == "" {
		return false, "Participant is required"
	}
	if _, err := domain.ParseRole(r.Role); err != nil {
		return false, "Unknown role"
	}
	return true, ""
}

// SetLoyaltyPointsRequest represents the request to override a balance
type SetLoyaltyPointsRequest struct {
	Participant string `json:"participant" binding:"required"`
	Amount      int64  `json:"amount"`
}

// Validate validates the SetLoyaltyPointsRequest
func (r *SetLoyaltyPointsRequest) Validate() (bool, string) {
	if r.Participant == "" {
		return false, "Participant is required"
	}
	if r.Amount < 0 {
		return false, "Amount cannot be negative"
	}
	return true, ""
}

// DepositFundsRequest represents the request to deposit treasury funds
type DepositFundsRequest struct {
	Amount int64 `json:"amount"`
}

// Validate validates the DepositFundsRequest
func (r *DepositFundsRequest) Validate() (bool, string) {
	if r.Amount < 0 {
		return false, "Amount cannot be negative"
	}
	return true, ""
}

// WithdrawFundsResponse represents the result of a treasury withdrawal
type WithdrawFundsResponse struct {
	Amount int64 `json:"amount"`
}

// TreasuryResponse represents the treasury state
type TreasuryResponse struct {
	Reserve        int64 `json:"reserve"`
	MinimumReserve int64 `json:"minimum_reserve"`
}

// RoleResponse represents a participant's role
type RoleResponse struct {
	Participant string `json:"participant"`
	Role        string `json:"role"`
}

// ConvertResponse represents a nominal-to-payment-currency conversion
type ConvertResponse struct {
	Nominal int64 `json:"nominal"`
	Wei     int64 `json:"wei"`
}
