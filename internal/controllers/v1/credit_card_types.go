package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// CreditCardEditable holds the fields a client may set. The balance is
// not among them: it only moves through the payable lifecycle.
type CreditCardEditable struct {
	Name        string          `json:"name" example:"Business Visa" default:""`                                                               // Display name of the card
	CreditLimit decimal.Decimal `json:"creditLimit" example:"10000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The credit limit of the card
}

// model returns the database resource for the API representation of the editable fields
func (editable CreditCardEditable) model() models.CreditCard {
	return models.CreditCard{
		Name:        editable.Name,
		CreditLimit: editable.CreditLimit,
	}
}

type CreditCardLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/credit-cards/d430d7c3-d14c-4712-9336-ee56965a6673"` // The credit card itself
}

// CreditCard is the representation of a CreditCard in API v1.
type CreditCard struct {
	models.DefaultModel
	CreditCardEditable
	Balance         decimal.Decimal `json:"balance" example:"400"`          // Current spend on the card. Read only.
	AvailableCredit decimal.Decimal `json:"availableCredit" example:"9600"` // Credit limit minus balance. Read only.
	Links           CreditCardLinks `json:"links"`
}

// newCreditCard returns the API v1 representation of the resource
func newCreditCard(c *gin.Context, model models.CreditCard) CreditCard {
	url := c.GetString(string(models.DBContextURL))

	return CreditCard{
		DefaultModel: model.DefaultModel,
		CreditCardEditable: CreditCardEditable{
			Name:        model.Name,
			CreditLimit: model.CreditLimit,
		},
		Balance:         model.Balance,
		AvailableCredit: model.AvailableCredit,
		Links: CreditCardLinks{
			Self: fmt.Sprintf("%s/v1/credit-cards/%s", url, model.ID),
		},
	}
}

type CreditCardListResponse struct {
	Data       []CreditCard `json:"data"`                                                          // List of credit cards
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type CreditCardCreateResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []CreditCardResponse `json:"data"`                                                          // List of created credit cards
}

func (t *CreditCardCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, CreditCardResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CreditCardResponse struct {
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this credit card
	Data  *CreditCard `json:"data"`                                                          // The credit card data, if the request was successful
}

type CreditCardQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // Filter by name, fuzzy
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first credit card returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of credit cards to return. Defaults to 50.
}
