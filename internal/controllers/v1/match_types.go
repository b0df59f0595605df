package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/matching"
	"github.com/sellerledger/backend/internal/models"
	ledger_uuid "github.com/sellerledger/backend/internal/uuid"
)

// Match is the representation of a proposed pairing in API v1. Matches
// are computed on demand and never persisted, so they carry no ID.
type Match struct {
	BankTransactionID   uuid.UUID     `json:"bankTransactionId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"`   // ID of the bank transaction
	Type                matching.Type `json:"type" example:"vendor"`                                              // Whether the counterpart is a payable or a receivable
	VendorTransactionID *uuid.UUID    `json:"vendorTransactionId" example:"6b40ff9f-0389-4dbd-8e19-8dbb20634a5c"` // ID of the vendor transaction, if type is vendor
	IncomeItemID        *uuid.UUID    `json:"incomeItemId" example:"eb4ed4b2-4e22-4f32-8efa-ba5e0cf7c826"`        // ID of the income item, if type is income

	Score       float64 `json:"score" example:"0.93"`       // Composite confidence on a 0 to 1 scale
	AmountScore float64 `json:"amountScore" example:"1"`    // Amount component of the score
	DateScore   float64 `json:"dateScore" example:"0.87"`   // Date component of the score
	NameScore   float64 `json:"nameScore" example:"0.91"`   // Name similarity component of the score
}

// newMatch returns the API v1 representation of a computed match
func newMatch(m matching.Match) Match {
	match := Match{
		BankTransactionID: m.BankTransaction.ID,
		Type:              m.Type,
		Score:             m.Score,
		AmountScore:       m.AmountScore,
		DateScore:         m.DateScore,
		NameScore:         m.NameScore,
	}

	if m.VendorTransaction != nil {
		match.VendorTransactionID = &m.VendorTransaction.ID
	}
	if m.IncomeItem != nil {
		match.IncomeItemID = &m.IncomeItem.ID
	}

	return match
}

type MatchListResponse struct {
	Data  []Match `json:"data"`                                                          // List of computed matches, ordered by score
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// MatchConfirmation is the request body for accepting a match. Clients
// send back the identifying fields of a computed match.
type MatchConfirmation struct {
	BankTransactionID   ledger_uuid.UUID `json:"bankTransactionId" binding:"required"` // ID of the bank transaction
	Type                matching.Type    `json:"type" binding:"required"`              // Whether the counterpart is a payable or a receivable
	VendorTransactionID *uuid.UUID       `json:"vendorTransactionId"`                  // ID of the vendor transaction, required if type is vendor
	IncomeItemID        *uuid.UUID       `json:"incomeItemId"`                         // ID of the income item, required if type is income
	Score               float64          `json:"score"`                                // The score shown to the user, recorded in the archive
}

// match converts the confirmation into the matching engine's type.
// Only the IDs and the score are carried over, the reconciler re-reads
// both sides from the database.
func (confirmation MatchConfirmation) match() (matching.Match, error) {
	m := matching.Match{
		BankTransaction: models.BankTransaction{
			DefaultModel: models.DefaultModel{ID: confirmation.BankTransactionID.UUID},
		},
		Type:  confirmation.Type,
		Score: confirmation.Score,
	}

	switch confirmation.Type {
	case matching.TypeVendor:
		if confirmation.VendorTransactionID == nil {
			return matching.Match{}, errMatchTargetMissing
		}
		m.VendorTransaction = &models.VendorTransaction{
			DefaultModel: models.DefaultModel{ID: *confirmation.VendorTransactionID},
		}

	case matching.TypeIncome:
		if confirmation.IncomeItemID == nil {
			return matching.Match{}, errMatchTargetMissing
		}
		m.IncomeItem = &models.IncomeItem{
			DefaultModel: models.DefaultModel{ID: *confirmation.IncomeItemID},
		}

	default:
		return matching.Match{}, errMatchTypeInvalid
	}

	return m, nil
}

type MatchAcceptResponse struct {
	Error *string              `json:"error" example:"this bank transaction is already archived"` // The error, if any occurred
	Data  *ArchivedTransaction `json:"data"`                                                      // The archive record written for the accepted match
}

// MatchAcceptAllResponse reports the outcome per match. Failures do not
// stop the batch.
type MatchAcceptAllResponse struct {
	Error *string             `json:"error" example:"the request body was invalid"` // The error, if the whole request failed
	Data  []MatchAcceptResult `json:"data"`                                         // Per-match results
}

type MatchAcceptResult struct {
	BankTransactionID uuid.UUID            `json:"bankTransactionId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the bank transaction of this match
	Error             *string              `json:"error" example:"this bank transaction is already archived"`        // The error, if this match failed
	Data              *ArchivedTransaction `json:"data"`                                                             // The archive record, if this match was reconciled
}

func (r *MatchAcceptAllResponse) append(c *gin.Context, result ledger.AcceptResult) {
	entry := MatchAcceptResult{
		BankTransactionID: result.BankTransactionID,
	}

	if result.Error != nil {
		s := result.Error.Error()
		entry.Error = &s
	}

	if result.Archived != nil {
		data := newArchivedTransaction(c, *result.Archived)
		entry.Data = &data
	}

	r.Data = append(r.Data, entry)
}
