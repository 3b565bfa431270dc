package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")

	// ErrAuthentication is returned when credentials do not match a stored account.
	ErrAuthentication = errors.New("invalid account number or password")

	// ErrInsufficientFunds is returned when an account has insufficient funds
	// for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrRecipientNotFound is returned when a transfer target account does not exist.
	ErrRecipientNotFound = errors.New("recipient account not found")

	// ErrAmountMustBePositive is returned when a deposit, withdrawal or
	// transfer amount is not strictly positive.
	ErrAmountMustBePositive = fmt.Errorf("%w: amount must be positive", ErrValidation)

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted
	// from an account to itself.
	ErrCannotTransferToSameAccount = fmt.Errorf("%w: cannot transfer to same account", ErrValidation)

	// ErrNilAccount is returned when a nil account is provided to an operation.
	ErrNilAccount = errors.New("nil account")
)

// StoreError wraps a failure from the ledger store with the operation that
// caused it. Callers can unwrap it to reach the driver error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ledger store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err as a StoreError for the given operation.
// A nil err returns nil so repository code can wrap unconditionally.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
