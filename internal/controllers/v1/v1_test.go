package v1_test

import (
	"net/http"

	"github.com/stretchr/testify/assert"

	v1 "github.com/sellerledger/backend/internal/controllers/v1"
	"github.com/sellerledger/backend/test"
)

func (suite *TestSuiteStandard) TestV1Get() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.V1Response
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "http://example.com/v1/vendor-transactions", response.Links.VendorTransactions)
	assert.Equal(suite.T(), "http://example.com/v1/income-items", response.Links.IncomeItems)
	assert.Equal(suite.T(), "http://example.com/v1/bank-transactions", response.Links.BankTransactions)
	assert.Equal(suite.T(), "http://example.com/v1/credit-cards", response.Links.CreditCards)
	assert.Equal(suite.T(), "http://example.com/v1/match-rules", response.Links.MatchRules)
	assert.Equal(suite.T(), "http://example.com/v1/matches", response.Links.Matches)
	assert.Equal(suite.T(), "http://example.com/v1/archive", response.Links.Archive)
}

func (suite *TestSuiteStandard) TestV1Options() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, DELETE", r.Header().Get("allow"))
}
