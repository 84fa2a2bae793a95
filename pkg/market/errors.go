package market

import "errors"

// Errors surfaced by marketplace operations. All of them are precondition
// failures, a call that returns one leaves no state change behind.
var (
	// ErrUnauthorized is returned when the caller lacks the role the
	// operation requires.
	ErrUnauthorized = errors.New("caller not authorized")
	// ErrArityMismatch is returned when the factory input sequences have
	// different lengths.
	ErrArityMismatch = errors.New("token ids, amounts and prices must have equal length")
	// ErrUnknownCollection is returned for collections the registry has
	// never seen.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrNotForSale is returned when the requested token has no price.
	ErrNotForSale = errors.New("token is not for sale")
	// ErrNoSeller is returned when a collection has no payout address.
	ErrNoSeller = errors.New("no seller payout address")
	// ErrNoPayment is returned for purchases with no attached value.
	ErrNoPayment = errors.New("no payment attached")
	// ErrInsufficientPayment is returned when the attached value doesn't
	// cover the total cost.
	ErrInsufficientPayment = errors.New("insufficient payment")
	// ErrCollectionExists is returned when the factory derives an address
	// that is already registered.
	ErrCollectionExists = errors.New("collection already exists")
	// ErrUnrecognizedSender is returned by the receipt validator for
	// inbound transfers from unregistered collections.
	ErrUnrecognizedSender = errors.New("inbound transfer from unrecognized collection")
	// ErrReentrantCall is returned when a public mutator is invoked from
	// inside a pending call.
	ErrReentrantCall = errors.New("reentrant call")
	// ErrZeroAmount is returned for purchases of zero tokens.
	ErrZeroAmount = errors.New("zero purchase amount")
	// ErrRepricingDisabled is returned by SetPrice when the configuration
	// keeps prices write-once.
	ErrRepricingDisabled = errors.New("re-pricing is disabled")
	// ErrEmptyService is returned when rotating the service role to the
	// zero address.
	ErrEmptyService = errors.New("service address is empty")
	// ErrAmountOverflow is returned when the total cost doesn't fit the
	// money type.
	ErrAmountOverflow = errors.New("total cost overflows")
)
