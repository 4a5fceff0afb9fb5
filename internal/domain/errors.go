package domain

import "errors"

// Domain errors
var (
	// Authorization errors
	ErrUnauthorized = errors.New("caller is not authorized for this action")
	ErrNotOrganiser = errors.New("caller does not hold the organiser role")
	ErrNotAdmin     = errors.New("caller does not hold the admin role")

	// Lookup errors
	ErrEventNotFound       = errors.New("event not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrParticipantNotFound = errors.New("participant not found")

	// Ticket lifecycle errors
	ErrInvalidTicketState = errors.New("invalid ticket state transition")
	ErrAlreadyRedeemed    = errors.New("ticket has already been redeemed")
	ErrNotInCustody       = errors.New("ticket has not been transferred into marketplace custody")

	// Purchase errors
	ErrEventExpired              = errors.New("event is expired")
	ErrIncorrectPayment          = errors.New("payment amount does not match the required price")
	ErrInsufficientLoyaltyPoints = errors.New("not enough loyalty points")
	ErrPurchaseLimitExceeded     = errors.New("purchase limit exceeded")

	// Loyalty ledger errors
	ErrInsufficientBalance   = errors.New("insufficient loyalty point balance")
	ErrInsufficientAllowance = errors.New("insufficient loyalty point allowance")

	// Treasury errors
	ErrNoExcessLiquidity = errors.New("no excess liquidity above the minimum reserve")

	// Validation errors
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrInvalidEventTime = errors.New("event time is required")
	ErrInvalidRole      = errors.New("unknown role")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrParticipantNotFound)
}

// IsAuthorizationError checks if the error is an authorization error
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotOrganiser) ||
		errors.Is(err, ErrNotAdmin)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrInvalidTicketState) ||
		errors.Is(err, ErrAlreadyRedeemed) ||
		errors.Is(err, ErrNotInCustody) ||
		errors.Is(err, ErrEventExpired) ||
		errors.Is(err, ErrPurchaseLimitExceeded) ||
		errors.Is(err, ErrNoExcessLiquidity)
}

// IsPaymentError checks if the error is a payment or balance error
func IsPaymentError(err error) bool {
	return errors.Is(err, ErrIncorrectPayment) ||
		errors.Is(err, ErrInsufficientLoyaltyPoints) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInsufficientAllowance)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidEventTime) ||
		errors.Is(err, ErrInvalidRole)
}
