package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/httputil"
	"github.com/sellerledger/backend/internal/models"
)

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	VendorTransactions string `json:"vendorTransactions" example:"https://example.com/api/v1/vendor-transactions"` // Vendor payables
	IncomeItems        string `json:"incomeItems" example:"https://example.com/api/v1/income-items"`               // Receivables
	BankTransactions   string `json:"bankTransactions" example:"https://example.com/api/v1/bank-transactions"`     // Synced bank and card movements
	CreditCards        string `json:"creditCards" example:"https://example.com/api/v1/credit-cards"`               // Credit cards
	MatchRules         string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`                 // Merchant name match rules
	Matches            string `json:"matches" example:"https://example.com/api/v1/matches"`                        // Computed match candidates
	Archive            string `json:"archive" example:"https://example.com/api/v1/archive"`                        // Append-only archive of resolved bank transactions
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			VendorTransactions: url + "/v1/vendor-transactions",
			IncomeItems:        url + "/v1/income-items",
			BankTransactions:   url + "/v1/bank-transactions",
			CreditCards:        url + "/v1/credit-cards",
			MatchRules:         url + "/v1/match-rules",
			Matches:            url + "/v1/matches",
			Archive:            url + "/v1/archive",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
