package ledger

import (
	"errors"
)

// Validation errors. These are returned before any mutation happens.
var (
	ErrAmountRange       = errors.New("the amount paid must be greater than zero and less than the transaction amount")
	ErrBalanceMismatch   = errors.New("the remaining balance must equal the transaction amount minus the amount paid")
	ErrDueDateRequired   = errors.New("a new due date for the remaining balance must be set")
	ErrDueDatePast       = errors.New("the new due date must not be in the past")
	ErrNotPending        = errors.New("only pending transactions can be partially paid")
	ErrStatusNotEditable = errors.New("the status cannot be set to this value directly")
	ErrStatusInvalid     = errors.New("the specified status is not a valid lifecycle status")
)

// Lifecycle errors. Operations fail closed: when the record is not in the
// state the operation requires, nothing is mutated.
var (
	ErrNotRemainderChild = errors.New("this transaction is not the remaining balance of a partial payment")
	ErrRemainderExists   = errors.New("the paid portion cannot be deleted while the remaining balance exists, reverse the partial payment instead")
	ErrSplitParent       = errors.New("a split transaction cannot be changed directly, use the remainder or reverse operations on its children")
	ErrAlreadyResolved   = errors.New("this record has already been resolved")
	ErrUnsettled         = errors.New("a bank transaction that is pending settlement cannot be reconciled")
	ErrMatchIncomplete   = errors.New("the match does not reference a payable or receivable")
)
