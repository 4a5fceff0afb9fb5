package dto

// MintPointsRequest represents the request to mint loyalty points
type MintPointsRequest struct {
	To     string `json:"to" binding:"required"`
	Amount int64  `json:"amount"`
}

// Validate validates the MintPointsRequest
func (r *MintPointsRequest) Validate() (bool, string) {
	if r.To == "" {
		return false, "Recipient is required"
	}
	if r.Amount < 0 {
		return false, "Amount cannot be negative"
	}
	return true, ""
}

// BurnPointsRequest represents the request to burn the caller's points
type BurnPointsRequest struct {
	Amount int64 `json:"amount"`
}

// Validate validates the BurnPointsRequest
func (r *BurnPointsRequest) Validate() (bool, string) {
	if r.Amount < 0 {
		return false, "Amount cannot be negative"
	}
	return true, ""
}

// ApprovePointsRequest represents the request to grant a spend allowance
type ApprovePointsRequest struct {
	Spender string `json:"spender" binding:"required"`
	Amount  int64  `json:"amount"`
}

// Validate validates the ApprovePointsRequest
func (r *ApprovePointsRequest) Validate() (bool, string) {
	if r.Spender == "" {
		return false, "Spender is required"
	}
	if r.Amount < 0 {
		return false, "Amount cannot be negative"
	}
	return true, ""
}

// TransferPointsRequest represents the request to move points
type TransferPointsRequest struct {
	Owner  string `json:"owner" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount int64  `json:"amount"`
}

// Validate validates the TransferPointsRequest
func (r *TransferPointsRequest) Validate() (bool, string) {
	if r.Owner == "" {
		return false, "Owner is required"
	}
	if r.To == "" {
		return false, "Recipient is required"
	}
	if r.Amount < 0 {
		return false, "Amount cannot be negative"
	}
	return true, ""
}

// BalanceResponse represents a loyalty point balance
type BalanceResponse struct {
	Participant string `json:"participant"`
	Balance     int64  `json:"balance"`
}

// AllowanceResponse represents a loyalty point allowance
type AllowanceResponse struct {
	Owner     string `json:"owner"`
	Spender   string `json:"spender"`
	Allowance int64  `json:"allowance"`
}

// SupplyResponse represents the outstanding loyalty point supply
type SupplyResponse struct {
	TotalSupply int64 `json:"total_supply"`
}
