package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/sellerledger/backend/internal/controllers/v1"
	"github.com/sellerledger/backend/internal/models"
	ledger_uuid "github.com/sellerledger/backend/internal/uuid"
	"github.com/sellerledger/backend/test"
)

func (suite *TestSuiteStandard) TestMatchesGet() {
	vendor := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{
		VendorName: "Acme Wholesale",
		Amount:     decimal.NewFromFloat(250),
	})

	bank := createTestBankTransaction(suite.T(), v1.BankTransactionEditable{
		Amount:       decimal.NewFromFloat(-250),
		MerchantName: "ACME WHOLESALE",
		Date:         time.Now(),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/matches", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)

	match := response.Data[0]
	assert.Equal(suite.T(), bank.Data.ID, match.BankTransactionID)
	assert.Equal(suite.T(), vendor.Data.ID, *match.VendorTransactionID)
	assert.Greater(suite.T(), match.Score, 0.5)
}

func (suite *TestSuiteStandard) TestMatchesGetEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/matches", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Empty(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestMatchesAccept() {
	vendor := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{
		VendorName: "Acme Wholesale",
		Amount:     decimal.NewFromFloat(250),
	})

	bank := createTestBankTransaction(suite.T(), v1.BankTransactionEditable{
		Amount:       decimal.NewFromFloat(-250),
		MerchantName: "ACME WHOLESALE",
		Date:         time.Now(),
	})

	body := v1.MatchConfirmation{
		BankTransactionID:   ledger_uuid.UUID{UUID: bank.Data.ID},
		Type:                "vendor",
		VendorTransactionID: &vendor.Data.ID,
		Score:               0.95,
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/matches/accept", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.MatchAcceptResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), bank.Data.ID, response.Data.OriginalID)
	assert.Equal(suite.T(), models.ArchiveMatchVendor, response.Data.MatchedType)
	assert.InDelta(suite.T(), 0.95, response.Data.MatchScore, 0.001)

	// The payable is completed
	getR := test.Request(suite.T(), http.MethodGet, vendor.Data.Links.Self, "")
	var vendorResponse v1.VendorTransactionResponse
	test.DecodeResponse(suite.T(), &getR, &vendorResponse)
	assert.Equal(suite.T(), models.VendorTransactionCompleted, vendorResponse.Data.Status)

	// Accepting the same match again is a conflict: the bank transaction
	// is no longer in the active set
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/matches/accept", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMatchesAcceptInvalid() {
	vendor := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{})

	bank := createTestBankTransaction(suite.T(), v1.BankTransactionEditable{
		Date: time.Now(),
	})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"broken JSON", `{ "type": `, http.StatusBadRequest},
		{
			"unknown type",
			v1.MatchConfirmation{BankTransactionID: ledger_uuid.UUID{UUID: bank.Data.ID}, Type: "sideways", VendorTransactionID: &vendor.Data.ID},
			http.StatusBadRequest,
		},
		{
			"vendor type without vendor ID",
			v1.MatchConfirmation{BankTransactionID: ledger_uuid.UUID{UUID: bank.Data.ID}, Type: "vendor"},
			http.StatusBadRequest,
		},
		{
			"income type without income ID",
			v1.MatchConfirmation{BankTransactionID: ledger_uuid.UUID{UUID: bank.Data.ID}, Type: "income"},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/matches/accept", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestMatchesAcceptAll() {
	vendor := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{
		VendorName: "Acme Wholesale",
		Amount:     decimal.NewFromFloat(250),
	})

	settled := createTestBankTransaction(suite.T(), v1.BankTransactionEditable{
		Amount:       decimal.NewFromFloat(-250),
		MerchantName: "ACME WHOLESALE",
		Date:         time.Now(),
	})

	other := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{
		VendorName: "Office Depot",
		Amount:     decimal.NewFromFloat(100),
	})

	unsettled := createTestBankTransaction(suite.T(), v1.BankTransactionEditable{
		Amount:  decimal.NewFromFloat(-100),
		Date:    time.Now(),
		Pending: true,
	})

	body := []v1.MatchConfirmation{
		{BankTransactionID: ledger_uuid.UUID{UUID: settled.Data.ID}, Type: "vendor", VendorTransactionID: &vendor.Data.ID, Score: 0.9},
		{BankTransactionID: ledger_uuid.UUID{UUID: unsettled.Data.ID}, Type: "vendor", VendorTransactionID: &other.Data.ID, Score: 0.8},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/matches/accept-all", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchAcceptAllResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)

	assert.Nil(suite.T(), response.Data[0].Error)
	assert.Equal(suite.T(), settled.Data.ID, response.Data[0].Data.OriginalID)

	// The unsettled movement is reported, not silently skipped
	assert.NotNil(suite.T(), response.Data[1].Error)
	assert.Nil(suite.T(), response.Data[1].Data)
}

func (suite *TestSuiteStandard) TestMatchesAcceptAllSuccess() {
	vendor := createTestVendorTransaction(suite.T(), v1.VendorTransactionEditable{
		VendorName: "Acme Wholesale",
		Amount:     decimal.NewFromFloat(250),
	})

	bank := createTestBankTransaction(suite.T(), v1.BankTransactionEditable{
		Amount:       decimal.NewFromFloat(-250),
		MerchantName: "ACME WHOLESALE",
		Date:         time.Now(),
	})

	body := []v1.MatchConfirmation{
		{BankTransactionID: ledger_uuid.UUID{UUID: bank.Data.ID}, Type: "vendor", VendorTransactionID: &vendor.Data.ID, Score: 0.9},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/matches/accept-all", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
}
