package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sellerledger/backend/internal/controllers/v1"
	"github.com/sellerledger/backend/test"
)

func (suite *TestSuiteStandard) TestCreditCardsCreate() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{
		Name:        "Business Visa",
		CreditLimit: decimal.NewFromFloat(10000),
	})

	assert.Equal(suite.T(), "Business Visa", card.Data.Name)
	assert.True(suite.T(), card.Data.Balance.IsZero())
	assert.True(suite.T(), card.Data.AvailableCredit.Equal(decimal.NewFromFloat(10000)))
}

func (suite *TestSuiteStandard) TestCreditCardsCreateInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"broken JSON", `[{ "name": `},
		{"negative limit", []v1.CreditCardEditable{{Name: "foo", CreditLimit: decimal.NewFromFloat(-100)}}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/credit-cards", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCreditCardsGetSingle() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})

	r := test.Request(suite.T(), http.MethodGet, card.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CreditCardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), card.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestCreditCardsList() {
	createTestCreditCard(suite.T(), v1.CreditCardEditable{Name: "Business Visa"})
	createTestCreditCard(suite.T(), v1.CreditCardEditable{Name: "Fuel Card"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/credit-cards?name=Visa", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CreditCardListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Business Visa", response.Data[0].Name)
}

// Raising the limit recomputes the available credit against the current
// balance.
func (suite *TestSuiteStandard) TestCreditCardsUpdateLimit() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{
		CreditLimit: decimal.NewFromFloat(5000),
	})

	transaction := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{
		Amount:       decimal.NewFromFloat(1000),
		CreditCardID: &card.Data.ID,
	})

	// Completing the payable puts the charge on the card
	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"status": "completed",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, card.Data.Links.Self, map[string]any{
		"creditLimit": 8000,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CreditCardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(1000)), "Balance is %s", response.Data.Balance)
	assert.True(suite.T(), response.Data.AvailableCredit.Equal(decimal.NewFromFloat(7000)), "Available credit is %s", response.Data.AvailableCredit)
}

func (suite *TestSuiteStandard) TestCreditCardsUpdateNegativeLimit() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})

	r := test.Request(suite.T(), http.MethodPatch, card.Data.Links.Self, map[string]any{
		"creditLimit": -1,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// The balance only moves through the payable lifecycle. A patch trying
// to set it directly is ignored.
func (suite *TestSuiteStandard) TestCreditCardsBalanceReadOnly() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})

	r := test.Request(suite.T(), http.MethodPatch, card.Data.Links.Self, map[string]any{
		"balance": 9000,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CreditCardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.IsZero())
}

func (suite *TestSuiteStandard) TestCreditCardsDelete() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})

	r := test.Request(suite.T(), http.MethodDelete, card.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, card.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// The full lifecycle of the $1,000 example: split, pay in two portions,
// verify the card carries the full charge at the end.
func (suite *TestSuiteStandard) TestCreditCardsSplitLifecycle() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{
		CreditLimit: decimal.NewFromFloat(5000),
	})

	transaction := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{
		Amount:       decimal.NewFromFloat(1000),
		CreditCardID: &card.Data.ID,
	})

	body := v1.SplitRequest{
		AmountPaid:       decimal.NewFromFloat(400),
		RemainingBalance: decimal.NewFromFloat(600),
		NewDueDate:       time.Now().AddDate(0, 1, 0),
	}

	r := test.Request(suite.T(), http.MethodPost, transaction.Data.Links.Self+"/split", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var split v1.SplitResponse
	test.DecodeResponse(suite.T(), &r, &split)

	// Only the paid portion is on the card so far
	r = test.Request(suite.T(), http.MethodGet, card.Data.Links.Self, "")
	var response v1.CreditCardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(400)), "Balance is %s", response.Data.Balance)

	// Paying the remainder completes it and charges the rest
	r = test.Request(suite.T(), http.MethodPatch, split.Data.RemainderChild.Links.Self, map[string]any{
		"status": "completed",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, card.Data.Links.Self, "")
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(1000)), "Balance is %s", response.Data.Balance)
	assert.True(suite.T(), response.Data.AvailableCredit.Equal(decimal.NewFromFloat(4000)))
}
