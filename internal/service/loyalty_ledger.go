package service

import (
	"context"
	"sync"

	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/repository"
)

// LoyaltyLedger owns fungible loyalty point balances. Every operation keeps
// the conservation law intact: the sum of all balances equals total minted
// minus total burned.
type LoyaltyLedger struct {
	loyaltyRepo repository.LoyaltyRepository
	access      *AccessControl

	// mu serializes balance mutations so balance and supply always move
	// together.
	mu sync.Mutex
}

// NewLoyaltyLedger creates a new LoyaltyLedger.
func NewLoyaltyLedger(loyaltyRepo repository.LoyaltyRepository, access *AccessControl) *LoyaltyLedger {
	return &LoyaltyLedger{
		loyaltyRepo: loyaltyRepo,
		access:      access,
	}
}

// Mint creates amount new points for a participant. Admin only.
func (l *LoyaltyLedger) Mint(ctx context.Context, callerID, toID string, amount int64) error {
	if err := l.access.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	if amount < 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.credit(ctx, toID, amount)
}

// Burn destroys amount points from the caller's own balance.
func (l *LoyaltyLedger) Burn(ctx context.Context, callerID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.debit(ctx, callerID, amount)
}

// Approve registers a delegated-spend allowance from owner to spender,
// overwriting any prior allowance.
func (l *LoyaltyLedger) Approve(ctx context.Context, ownerID, spenderID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}
	return l.loyaltyRepo.SetAllowance(ctx, ownerID, spenderID, amount)
}

// TransferFrom moves points between participants. The caller must be the
// owner, or hold an allowance covering the amount; a consumed allowance is
// decremented unless the owner moves their own points.
func (l *LoyaltyLedger) TransferFrom(ctx context.Context, callerID, ownerID, toID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if callerID != ownerID {
		allowance, err := l.loyaltyRepo.GetAllowance(ctx, ownerID, callerID)
		if err != nil {
			return err
		}
		if allowance < amount {
			return domain.ErrInsufficientAllowance
		}
		if err := l.loyaltyRepo.SetAllowance(ctx, ownerID, callerID, allowance-amount); err != nil {
			return err
		}
	}

	balance, err := l.loyaltyRepo.GetBalance(ctx, ownerID)
	if err != nil {
		return err
	}
	if balance < amount {
		return domain.ErrInsufficientBalance
	}

	if err := l.loyaltyRepo.SetBalance(ctx, ownerID, balance-amount); err != nil {
		return err
	}

	toBalance, err := l.loyaltyRepo.GetBalance(ctx, toID)
	if err != nil {
		return err
	}

	return l.loyaltyRepo.SetBalance(ctx, toID, toBalance+amount)
}

// BalanceOf returns the point balance of a participant.
func (l *LoyaltyLedger) BalanceOf(ctx context.Context, participantID string) (int64, error) {
	return l.loyaltyRepo.GetBalance(ctx, participantID)
}

// AllowanceOf returns the allowance granted by owner to spender.
func (l *LoyaltyLedger) AllowanceOf(ctx context.Context, ownerID, spenderID string) (int64, error) {
	return l.loyaltyRepo.GetAllowance(ctx, ownerID, spenderID)
}

// TotalSupply returns the outstanding point supply.
func (l *LoyaltyLedger) TotalSupply(ctx context.Context) (int64, error) {
	return l.loyaltyRepo.TotalSupply(ctx)
}

// spend burns amount points from a buyer's balance at purchase time. The
// spent points' backing liability is settled against the treasury, so they
// leave the supply. Fails with ErrInsufficientLoyaltyPoints.
func (l *LoyaltyLedger) spend(ctx context.Context, ownerID string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, err := l.loyaltyRepo.GetBalance(ctx, ownerID)
	if err != nil {
		return err
	}
	if balance < amount {
		return domain.ErrInsufficientLoyaltyPoints
	}

	if err := l.loyaltyRepo.SetBalance(ctx, ownerID, balance-amount); err != nil {
		return err
	}

	return l.loyaltyRepo.AddSupply(ctx, -amount)
}

// award mints amount points to a participant at redemption time. Privileged:
// reachable only through the orchestrator.
func (l *LoyaltyLedger) award(ctx context.Context, toID string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.credit(ctx, toID, amount)
}

// setBalance overrides a participant's balance, accounting the delta as an
// administrative mint or burn so conservation holds. Privileged: reachable
// only through the orchestrator.
func (l *LoyaltyLedger) setBalance(ctx context.Context, participantID string, amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, err := l.loyaltyRepo.GetBalance(ctx, participantID)
	if err != nil {
		return err
	}

	if err := l.loyaltyRepo.SetBalance(ctx, participantID, amount); err != nil {
		return err
	}

	return l.loyaltyRepo.AddSupply(ctx, amount-balance)
}

// credit adds points to a balance and the supply. Callers hold l.mu.
func (l *LoyaltyLedger) credit(ctx context.Context, toID string, amount int64) error {
	balance, err := l.loyaltyRepo.GetBalance(ctx, toID)
	if err != nil {
		return err
	}

	if err := l.loyaltyRepo.SetBalance(ctx, toID, balance+amount); err != nil {
		return err
	}

	return l.loyaltyRepo.AddSupply(ctx, amount)
}

// debit removes points from a balance and the supply. Callers hold l.mu.
func (l *LoyaltyLedger) debit(ctx context.Context, fromID string, amount int64) error {
	balance, err := l.loyaltyRepo.GetBalance(ctx, fromID)
	if err != nil {
		return err
	}
	if balance < amount {
		return domain.ErrInsufficientBalance
	}

	if err := l.loyaltyRepo.SetBalance(ctx, fromID, balance-amount); err != nil {
		return err
	}

	return l.loyaltyRepo.AddSupply(ctx, -amount)
}
