package v1

import (
	"errors"
	"net/http"

	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error raised while
// working on the ledger.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	// Conflicts with the current state of a record
	for _, conflict := range []error{
		models.ErrAlreadyArchived,
		ledger.ErrAlreadyResolved,
		ledger.ErrRemainderExists,
		ledger.ErrSplitParent,
	} {
		if errors.Is(err, conflict) {
			return http.StatusConflict
		}
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Matching errors
var (
	errMatchTypeInvalid   = errors.New("the specified match type is invalid")
	errMatchTargetMissing = errors.New("a match must reference the ID of a payable or receivable")
)

// Partial payment errors
var (
	errDeletionModeInvalid = errors.New("the deletion mode must be either remaining_only or reverse_all")
)

// Vendor transaction errors
var (
	errVendorStatusInvalid = errors.New("the specified vendor transaction status is invalid")
)

// Income item errors
var (
	errIncomeStatusInvalid = errors.New("the specified income item status is invalid")
)
