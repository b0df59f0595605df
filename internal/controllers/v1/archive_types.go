package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellerledger/backend/internal/models"
	ledger_uuid "github.com/sellerledger/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type ArchivedTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/archive/d430d7c3-d14c-4712-9336-ee56965a6673"` // The archive record itself
}

// ArchivedTransaction is the representation of an archive record in API
// v1. The archive is append only, records are never updated or deleted.
type ArchivedTransaction struct {
	models.DefaultModel
	OriginalID uuid.UUID `json:"originalId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID the bank transaction had in the active set

	AccountID    string          `json:"accountId" example:"chk-0001"`         // Account identifier of the archived bank transaction
	Amount       decimal.Decimal `json:"amount" example:"-250"`                // Signed amount of the archived bank transaction
	Description  string          `json:"description" example:"ACH WITHDRAWAL 8841"` // Statement line description
	MerchantName string          `json:"merchantName" example:"ACME WHOLESALE"`     // Merchant name reported by the sync provider
	Date         time.Time       `json:"date" example:"2024-08-20T00:00:00Z"`       // Date of the movement

	MatchedType models.ArchiveMatchType `json:"matchedType" example:"vendor"`                              // What the transaction was resolved against
	MatchedID   *uuid.UUID              `json:"matchedId" example:"6b40ff9f-0389-4dbd-8e19-8dbb20634a5c"`  // ID of the payable or receivable, if any
	MatchScore  float64                 `json:"matchScore" example:"0.93"`                                 // Score of the accepted match
	Reason      string                  `json:"reason" example:"deleted" default:""`                       // Why the transaction was removed, for manual deletions

	Links ArchivedTransactionLinks `json:"links"`
}

// newArchivedTransaction returns the API v1 representation of the resource
func newArchivedTransaction(c *gin.Context, model models.ArchivedTransaction) ArchivedTransaction {
	url := c.GetString(string(models.DBContextURL))

	return ArchivedTransaction{
		DefaultModel: model.DefaultModel,
		OriginalID:   model.OriginalID,
		AccountID:    model.AccountID,
		Amount:       model.Amount,
		Description:  model.Description,
		MerchantName: model.MerchantName,
		Date:         model.Date,
		MatchedType:  model.MatchedType,
		MatchedID:    model.MatchedID,
		MatchScore:   model.MatchScore,
		Reason:       model.Reason,
		Links: ArchivedTransactionLinks{
			Self: fmt.Sprintf("%s/v1/archive/%s", url, model.ID),
		},
	}
}

type ArchivedTransactionListResponse struct {
	Data       []ArchivedTransaction `json:"data"`                                                          // List of archive records
	Error      *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination           `json:"pagination"`                                                    // Pagination information
}

type ArchivedTransactionResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *ArchivedTransaction `json:"data"`                                                          // The archive record, if the request was successful
}

type ArchivedTransactionQueryFilter struct {
	OriginalID  ledger_uuid.UUID        `form:"original"`                     // Filter by the active-set ID of the bank transaction
	AccountID   string                  `form:"account"`                      // Filter by account identifier
	MatchedType models.ArchiveMatchType `form:"matchedType"`                  // Filter by what the transaction was resolved against
	FromDate    time.Time               `form:"fromDate" filterField:"false"` // Movements at and after this date. Time is ignored.
	UntilDate   time.Time               `form:"untilDate" filterField:"false"` // Movements before and at this date. Time is ignored.
	Offset      uint                    `form:"offset" filterField:"false"`   // The offset of the first archive record returned. Defaults to 0.
	Limit       int                     `form:"limit" filterField:"false"`    // Maximum number of archive records to return. Defaults to 50.
}

func (f ArchivedTransactionQueryFilter) model() (models.ArchivedTransaction, error) {
	// This does not set the date fields since they are
	// handled in the controller function
	return models.ArchivedTransaction{
		OriginalID:  f.OriginalID.UUID,
		AccountID:   f.AccountID,
		MatchedType: f.MatchedType,
	}, nil
}
