package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

type BankTransactionEditable struct {
	AccountID string `json:"accountId" example:"chk-0001" default:""` // Identifier of the synced bank or card account

	// Negative amounts are debits (outflows), positive amounts are credits (inflows).
	Amount decimal.Decimal `json:"amount" example:"-250"` // The signed amount of the movement

	Description  string    `json:"description" example:"ACH WITHDRAWAL 8841" default:""` // Statement line description
	MerchantName string    `json:"merchantName" example:"ACME WHOLESALE" default:""`     // Merchant name reported by the sync provider
	Date         time.Time `json:"date" example:"2024-08-20T00:00:00Z"`                  // Date of the movement
	Pending      bool      `json:"pending" example:"false" default:"false"`              // Settlement flag set by the sync provider
}

// model returns the database resource for the API representation of the editable fields
func (editable BankTransactionEditable) model() models.BankTransaction {
	return models.BankTransaction{
		AccountID:    editable.AccountID,
		Amount:       editable.Amount,
		Description:  editable.Description,
		MerchantName: editable.MerchantName,
		Date:         editable.Date,
		Pending:      editable.Pending,
	}
}

type BankTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/bank-transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The bank transaction itself
}

// BankTransaction is the representation of a BankTransaction in API v1.
type BankTransaction struct {
	models.DefaultModel
	BankTransactionEditable
	Links BankTransactionLinks `json:"links"`
}

// newBankTransaction returns the API v1 representation of the resource
func newBankTransaction(c *gin.Context, model models.BankTransaction) BankTransaction {
	url := c.GetString(string(models.DBContextURL))

	return BankTransaction{
		DefaultModel: model.DefaultModel,
		BankTransactionEditable: BankTransactionEditable{
			AccountID:    model.AccountID,
			Amount:       model.Amount,
			Description:  model.Description,
			MerchantName: model.MerchantName,
			Date:         model.Date,
			Pending:      model.Pending,
		},
		Links: BankTransactionLinks{
			Self: fmt.Sprintf("%s/v1/bank-transactions/%s", url, model.ID),
		},
	}
}

type BankTransactionListResponse struct {
	Data       []BankTransaction `json:"data"`                                                          // List of bank transactions
	Error      *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination       `json:"pagination"`                                                    // Pagination information
}

type BankTransactionCreateResponse struct {
	Error *string                   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BankTransactionResponse `json:"data"`                                                          // List of imported bank transactions
}

func (t *BankTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, BankTransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BankTransactionResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this bank transaction
	Data  *BankTransaction `json:"data"`                                                          // The bank transaction data, if the request was successful
}

type BankTransactionQueryFilter struct {
	AccountID    string          `form:"account"`                          // Filter by account identifier
	Amount       decimal.Decimal `form:"amount"`                           // Filter by exact amount
	Description  string          `form:"description" filterField:"false"`  // Filter by description, fuzzy
	MerchantName string          `form:"merchantName" filterField:"false"` // Filter by merchant name, fuzzy
	Pending      bool            `form:"pending"`                          // Filter by settlement flag
	FromDate     time.Time       `form:"fromDate" filterField:"false"`     // Movements at and after this date. Time is ignored.
	UntilDate    time.Time       `form:"untilDate" filterField:"false"`    // Movements before and at this date. Time is ignored.
	Offset       uint            `form:"offset" filterField:"false"`       // The offset of the first bank transaction returned. Defaults to 0.
	Limit        int             `form:"limit" filterField:"false"`        // Maximum number of bank transactions to return. Defaults to 50.
}

func (f BankTransactionQueryFilter) model() (models.BankTransaction, error) {
	// This does not set the string or date fields since they are
	// handled in the controller function
	return models.BankTransaction{
		AccountID: f.AccountID,
		Amount:    f.Amount,
		Pending:   f.Pending,
	}, nil
}
