package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/models"
)

type MatchRuleEditable struct {
	Priority uint   `json:"priority" example:"2" default:"0"`      // The priority of the rule. Lower number means higher priority.
	Match    string `json:"match" example:"AMZN*" default:""`      // The glob pattern merchant names are matched against
	VendorID string `json:"vendorId" example:"V-1042" default:""`  // The vendor reference the pattern maps to
}

// model returns the database resource for the API representation of the editable fields
func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		Priority: editable.Priority,
		Match:    editable.Match,
		VendorID: editable.VendorID,
	}
}

type MatchRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/match-rules/d430d7c3-d14c-4712-9336-ee56965a6673"` // The match rule itself
}

// MatchRule is the representation of a MatchRule in API v1.
type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
	Links MatchRuleLinks `json:"links"`
}

// newMatchRule returns the API v1 representation of the resource
func newMatchRule(c *gin.Context, model models.MatchRule) MatchRule {
	url := c.GetString(string(models.DBContextURL))

	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority: model.Priority,
			Match:    model.Match,
			VendorID: model.VendorID,
		},
		Links: MatchRuleLinks{
			Self: fmt.Sprintf("%s/v1/match-rules/%s", url, model.ID),
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of match rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []MatchRuleResponse `json:"data"`                                                          // List of created match rules
}

func (t *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this match rule
	Data  *MatchRule `json:"data"`                                                          // The match rule data, if the request was successful
}

type MatchRuleQueryFilter struct {
	Priority uint   `form:"priority"`                   // Filter by priority
	Match    string `form:"match" filterField:"false"`  // Filter by match pattern, fuzzy
	VendorID string `form:"vendor"`                     // Filter by vendor reference
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first match rule returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of match rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() (models.MatchRule, error) {
	// This does not set the match pattern since it is
	// handled in the controller function
	return models.MatchRule{
		Priority: f.Priority,
		VendorID: f.VendorID,
	}, nil
}
