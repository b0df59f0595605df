package v1_test

import (
	"net/http"

	"github.com/stretchr/testify/assert"

	v1 "github.com/sellerledger/backend/internal/controllers/v1"
	"github.com/sellerledger/backend/test"
)

func (suite *TestSuiteStandard) TestMatchRulesCreate() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Priority: 1,
		Match:    "AMZN*",
		VendorID: "amazon",
	})

	assert.Equal(suite.T(), "AMZN*", rule.Data.Match)
	assert.Equal(suite.T(), uint(1), rule.Data.Priority)
}

func (suite *TestSuiteStandard) TestMatchRulesGetSingle() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{})

	r := test.Request(suite.T(), http.MethodGet, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), rule.Data.ID, response.Data.ID)
}

// Rules come back ordered by priority so clients apply them the same way
// the matching engine does.
func (suite *TestSuiteStandard) TestMatchRulesListOrder() {
	createTestMatchRule(suite.T(), v1.MatchRuleEditable{Priority: 2, Match: "PAYPAL*"})
	createTestMatchRule(suite.T(), v1.MatchRuleEditable{Priority: 1, Match: "AMZN*"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/match-rules", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "AMZN*", response.Data[0].Match)
	assert.Equal(suite.T(), "PAYPAL*", response.Data[1].Match)
}

func (suite *TestSuiteStandard) TestMatchRulesUpdate() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{Priority: 5})

	r := test.Request(suite.T(), http.MethodPatch, rule.Data.Links.Self, map[string]any{
		"priority": 1,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), uint(1), response.Data.Priority)
	assert.Equal(suite.T(), rule.Data.Match, response.Data.Match)
}

func (suite *TestSuiteStandard) TestMatchRulesDelete() {
	rule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{})

	r := test.Request(suite.T(), http.MethodDelete, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
