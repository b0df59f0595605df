package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrAlreadyArchived protects the archive-once guarantee: a bank
	// transaction can be written to the archive exactly once.
	ErrAlreadyArchived = errors.New("this bank transaction has already been archived")

	ErrVendorAmountNotPositive = errors.New("the amount of a vendor transaction must be positive")
	ErrIncomeAmountNotPositive = errors.New("the amount of an income item must be positive")
	ErrCreditLimitNegative     = errors.New("the credit limit of a credit card must not be negative")
)
