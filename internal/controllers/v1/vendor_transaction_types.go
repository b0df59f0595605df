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

type VendorTransactionEditable struct {
	VendorID    string `json:"vendorId" example:"V-1042" default:""`                 // Marketplace reference of the vendor
	VendorName  string `json:"vendorName" example:"Acme Wholesale" default:""`       // Display name of the vendor, used for matching
	Description string `json:"description" example:"PO-2024-0815 restock" default:""` // Purchase order reference

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"1000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount owed to the vendor

	DueDate      *time.Time                     `json:"dueDate" example:"2024-09-30T00:00:00Z"`                      // Date the payment is due
	Status       models.VendorTransactionStatus `json:"status" example:"pending" default:"pending"`                  // Lifecycle status
	CreditCardID *uuid.UUID                     `json:"creditCardId" example:"d3c0d8e2-61a8-4be5-b20f-9f915ae1a151"` // ID of the credit card the payable settles against
	Remarks      string                         `json:"remarks" example:"expedite" default:""`                       // Free-form workflow tag
}

// model returns the database resource for the API representation of the editable fields
func (editable VendorTransactionEditable) model() models.VendorTransaction {
	return models.VendorTransaction{
		VendorID:     editable.VendorID,
		VendorName:   editable.VendorName,
		Description:  editable.Description,
		Amount:       editable.Amount,
		DueDate:      editable.DueDate,
		Status:       editable.Status,
		CreditCardID: editable.CreditCardID,
		Remarks:      editable.Remarks,
	}
}

type VendorTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/vendor-transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The vendor transaction itself
}

// VendorTransaction is the representation of a VendorTransaction in API v1.
type VendorTransaction struct {
	models.DefaultModel
	VendorTransactionEditable
	ParentID    *uuid.UUID                `json:"parentId" example:"6b40ff9f-0389-4dbd-8e19-8dbb20634a5c"` // ID of the split parent, if this is a partial payment child
	PartialRole models.PartialPaymentRole `json:"partialRole" example:"remaining_portion"`                 // Role in a partial payment split, empty otherwise
	Links       VendorTransactionLinks    `json:"links"`
}

// newVendorTransaction returns the API v1 representation of the resource
func newVendorTransaction(c *gin.Context, model models.VendorTransaction) VendorTransaction {
	url := c.GetString(string(models.DBContextURL))

	return VendorTransaction{
		DefaultModel: model.DefaultModel,
		VendorTransactionEditable: VendorTransactionEditable{
			VendorID:     model.VendorID,
			VendorName:   model.VendorName,
			Description:  model.Description,
			Amount:       model.Amount,
			DueDate:      model.DueDate,
			Status:       model.Status,
			CreditCardID: model.CreditCardID,
			Remarks:      model.Remarks,
		},
		ParentID:    model.ParentID,
		PartialRole: model.PartialRole,
		Links: VendorTransactionLinks{
			Self: fmt.Sprintf("%s/v1/vendor-transactions/%s", url, model.ID),
		},
	}
}

type VendorTransactionListResponse struct {
	Data       []VendorTransaction `json:"data"`                                                          // List of vendor transactions
	Error      *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination         `json:"pagination"`                                                    // Pagination information
}

type VendorTransactionCreateResponse struct {
	Error *string                     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []VendorTransactionResponse `json:"data"`                                                          // List of created vendor transactions
}

func (t *VendorTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, VendorTransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type VendorTransactionResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *VendorTransaction `json:"data"`                                                          // The vendor transaction data, if the request was successful
}

// SplitRequest is the request body for splitting a payable into a paid
// portion and a remaining balance.
type SplitRequest struct {
	AmountPaid       decimal.Decimal `json:"amountPaid" example:"400" binding:"required"`       // The amount that was paid
	RemainingBalance decimal.Decimal `json:"remainingBalance" example:"600" binding:"required"` // The amount still owed, must equal amount minus amountPaid
	NewDueDate       time.Time       `json:"newDueDate" example:"2024-10-31T00:00:00Z"`         // Due date for the remaining balance
}

// SplitResponse carries the three records of a completed split.
type SplitResponse struct {
	Error *string `json:"error" example:"the remaining balance does not equal the amount minus the paid amount"` // The error, if any occurred
	Data  *Split  `json:"data"`                                                                                  // The split data, if the request was successful
}

type Split struct {
	Parent         VendorTransaction `json:"parent"`         // The retired original transaction
	PaidChild      VendorTransaction `json:"paidChild"`      // The settled paid portion
	RemainderChild VendorTransaction `json:"remainderChild"` // The still pending remaining balance
}

type VendorTransactionQueryFilter struct {
	VendorID     string                         `form:"vendor"`                      // Filter by marketplace reference of the vendor
	VendorName   string                         `form:"vendorName" filterField:"false"` // Filter by vendor name, fuzzy
	Description  string                         `form:"description" filterField:"false"` // Filter by description, fuzzy
	Amount       decimal.Decimal                `form:"amount"`                      // Filter by exact amount
	Status       models.VendorTransactionStatus `form:"status"`                      // Filter by lifecycle status
	CreditCardID ledger_uuid.UUID               `form:"creditCard"`                  // Filter by ID of the credit card
	Active       bool                           `form:"active" filterField:"false"`  // Only active transactions, excludes retired split parents
	Offset       uint                           `form:"offset" filterField:"false"`  // The offset of the first transaction returned. Defaults to 0.
	Limit        int                            `form:"limit" filterField:"false"`   // Maximum number of transactions to return. Defaults to 50.
}

func (f VendorTransactionQueryFilter) model() (models.VendorTransaction, error) {
	// If the card ID is not set, use an actual nil, not uuid.Nil
	var cardID *uuid.UUID
	if f.CreditCardID != ledger_uuid.Nil {
		cardID = &f.CreditCardID.UUID
	}

	if f.Status != "" && !f.Status.Valid() {
		return models.VendorTransaction{}, errVendorStatusInvalid
	}

	// This does not set the string fields since they are
	// handled in the controller function
	return models.VendorTransaction{
		VendorID:     f.VendorID,
		Amount:       f.Amount,
		Status:       f.Status,
		CreditCardID: cardID,
	}, nil
}
