package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

type IncomeItemEditable struct {
	Description string `json:"description" example:"August payout" default:""` // What the money is for

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"250" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount owed to the business

	PaymentDate time.Time               `json:"paymentDate" example:"2024-09-15T00:00:00Z"` // Date the payment is expected or was received
	Source      string                  `json:"source" example:"Marketplace Payments" default:""` // Name of the payer, used for matching
	Status      models.IncomeItemStatus `json:"status" example:"pending" default:"pending"`       // Lifecycle status
}

// model returns the database resource for the API representation of the editable fields
func (editable IncomeItemEditable) model() models.IncomeItem {
	return models.IncomeItem{
		Description: editable.Description,
		Amount:      editable.Amount,
		PaymentDate: editable.PaymentDate,
		Source:      editable.Source,
		Status:      editable.Status,
	}
}

type IncomeItemLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/income-items/d430d7c3-d14c-4712-9336-ee56965a6673"` // The income item itself
}

// IncomeItem is the representation of an IncomeItem in API v1.
type IncomeItem struct {
	models.DefaultModel
	IncomeItemEditable
	Overdue bool            `json:"overdue" example:"false"` // True when the item is pending past its payment date. Derived, never stored.
	Links   IncomeItemLinks `json:"links"`
}

// newIncomeItem returns the API v1 representation of the resource
func newIncomeItem(c *gin.Context, model models.IncomeItem) IncomeItem {
	url := c.GetString(string(models.DBContextURL))

	return IncomeItem{
		DefaultModel: model.DefaultModel,
		IncomeItemEditable: IncomeItemEditable{
			Description: model.Description,
			Amount:      model.Amount,
			PaymentDate: model.PaymentDate,
			Source:      model.Source,
			Status:      model.Status,
		},
		Overdue: model.Overdue(time.Now()),
		Links: IncomeItemLinks{
			Self: fmt.Sprintf("%s/v1/income-items/%s", url, model.ID),
		},
	}
}

type IncomeItemListResponse struct {
	Data       []IncomeItem `json:"data"`                                                          // List of income items
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type IncomeItemCreateResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []IncomeItemResponse `json:"data"`                                                          // List of created income items
}

func (t *IncomeItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, IncomeItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type IncomeItemResponse struct {
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this income item
	Data  *IncomeItem `json:"data"`                                                          // The income item data, if the request was successful
}

type IncomeItemQueryFilter struct {
	Description string                  `form:"description" filterField:"false"` // Filter by description, fuzzy
	Amount      decimal.Decimal         `form:"amount"`                          // Filter by exact amount
	Source      string                  `form:"source" filterField:"false"`      // Filter by source, fuzzy
	Status      models.IncomeItemStatus `form:"status"`                          // Filter by lifecycle status
	Overdue     bool                    `form:"overdue" filterField:"false"`     // Only return pending items past their payment date
	Offset      uint                    `form:"offset" filterField:"false"`      // The offset of the first income item returned. Defaults to 0.
	Limit       int                     `form:"limit" filterField:"false"`       // Maximum number of income items to return. Defaults to 50.
}

func (f IncomeItemQueryFilter) model() (models.IncomeItem, error) {
	if f.Status != "" && !f.Status.Valid() {
		return models.IncomeItem{}, errIncomeStatusInvalid
	}

	// This does not set the string fields since they are
	// handled in the controller function
	return models.IncomeItem{
		Amount: f.Amount,
		Status: f.Status,
	}, nil
}
