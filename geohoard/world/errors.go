package world

import "errors"

// Mutation rejections. All are local and recoverable: the store reports the
// reason and leaves state untouched, it never faults.
var (
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrAlreadyOwned      = errors.New("entity already owned")
	ErrNotInStock        = errors.New("entity not in stock")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotOwned          = errors.New("entity not owned")
)
