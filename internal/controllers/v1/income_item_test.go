package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sellerledger/backend/internal/controllers/v1"
	"github.com/sellerledger/backend/internal/models"
	"github.com/sellerledger/backend/test"
)

func (suite *TestSuiteStandard) TestIncomeItemsCreate() {
	item := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{
		Description: "August payout",
		Source:      "Marketplace Payments",
		Amount:      decimal.NewFromFloat(1250),
	})

	assert.Equal(suite.T(), "Marketplace Payments", item.Data.Source)
	assert.Equal(suite.T(), models.IncomeItemPending, item.Data.Status)
	assert.False(suite.T(), item.Data.Overdue)
}

func (suite *TestSuiteStandard) TestIncomeItemsCreateInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"broken JSON", `[{ "source": `},
		{"not a list", `{ "source": "foo" }`},
		{"negative amount", []v1.IncomeItemEditable{{Source: "foo", Amount: decimal.NewFromFloat(-10)}}},
		{"unknown status", []v1.IncomeItemEditable{{Source: "foo", Amount: decimal.NewFromFloat(10), Status: "definitely_not_a_status"}}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/income-items", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomeItemsGetSingle() {
	item := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{})

	r := test.Request(suite.T(), http.MethodGet, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeItemResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), item.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestIncomeItemsList() {
	createTestIncomeItem(suite.T(), v1.IncomeItemEditable{Source: "Marketplace Payments"})
	createTestIncomeItem(suite.T(), v1.IncomeItemEditable{Source: "Direct Store"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"all", "", 2},
		{"by source fragment", "source=Marketplace", 1},
		{"by status", "status=pending", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/income-items?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.IncomeItemListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestIncomeItemsOverdueFilter() {
	overdue := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{
		Source:      "Late Payer",
		PaymentDate: time.Now().AddDate(0, 0, -10),
	})

	createTestIncomeItem(suite.T(), v1.IncomeItemEditable{
		Source:      "Punctual Payer",
		PaymentDate: time.Now().AddDate(0, 0, 10),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/income-items?overdue=true", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeItemListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), overdue.Data.ID, response.Data[0].ID)
	assert.True(suite.T(), response.Data[0].Overdue)
}

func (suite *TestSuiteStandard) TestIncomeItemsUpdate() {
	item := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{})

	r := test.Request(suite.T(), http.MethodPatch, item.Data.Links.Self, map[string]any{
		"description": "corrected payout",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeItemResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "corrected payout", response.Data.Description)
	assert.Equal(suite.T(), item.Data.Source, response.Data.Source)
}

func (suite *TestSuiteStandard) TestIncomeItemsUpdateInvalidStatus() {
	item := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{})

	r := test.Request(suite.T(), http.MethodPatch, item.Data.Links.Self, map[string]any{
		"status": "definitely_not_a_status",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// The stored status is untouched
	r = test.Request(suite.T(), http.MethodGet, item.Data.Links.Self, "")
	var response v1.IncomeItemResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.IncomeItemPending, response.Data.Status)
}

func (suite *TestSuiteStandard) TestIncomeItemsDelete() {
	item := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{})

	r := test.Request(suite.T(), http.MethodDelete, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, item.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestIncomeItemsReceive() {
	item := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{})

	r := test.Request(suite.T(), http.MethodPost, item.Data.Links.Self+"/receive", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.IncomeItemResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.IncomeItemReceived, response.Data.Status)

	// Receiving twice is a conflict
	r = test.Request(suite.T(), http.MethodPost, item.Data.Links.Self+"/receive", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestIncomeItemsOptions() {
	item := createTestIncomeItem(suite.T(), v1.IncomeItemEditable{})

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/income-items", "")
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, item.Data.Links.Self, "")
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, PATCH, DELETE", r.Header().Get("allow"))
}
