package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/httputil"
	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/matching"
	"github.com/sellerledger/backend/internal/models"
)

// RegisterMatchRoutes registers the routes for the matching engine with
// the RouterGroup that is passed.
func RegisterMatchRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMatches)
		r.GET("", GetMatches)
		r.POST("/accept", AcceptMatch)
		r.POST("/accept-all", AcceptAllMatches)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Matches
// @Success		204
// @Router			/v1/matches [options]
func OptionsMatches(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get matches
// @Description	Computes match candidates between settled bank transactions and open payables and receivables. Matches are ordered by score and never persisted, repeat the request after any change to get fresh candidates.
// @Tags			Matches
// @Produce		json
// @Success		200	{object}	MatchListResponse
// @Failure		500	{object}	MatchListResponse
// @Router			/v1/matches [get]
func GetMatches(c *gin.Context) {
	snapshot, err := ledger.LoadSnapshot(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchListResponse{
			Error: &e,
		})
		return
	}

	matches := matching.ComputeMatches(snapshot, matching.DefaultConfig(), matching.LevenshteinScorer{})

	data := make([]Match, 0)
	for _, match := range matches {
		data = append(data, newMatch(match))
	}

	c.JSON(http.StatusOK, MatchListResponse{Data: data})
}

// @Summary		Accept match
// @Description	Reconciles a match: the payable is completed or the receivable received, the bank transaction is archived with the match metadata and removed from the active set. All of it happens or none of it. Accepting the same match twice fails with a conflict.
// @Tags			Matches
// @Accept			json
// @Produce		json
// @Success		201		{object}	MatchAcceptResponse
// @Failure		400		{object}	MatchAcceptResponse
// @Failure		404		{object}	MatchAcceptResponse
// @Failure		409		{object}	MatchAcceptResponse
// @Failure		500		{object}	MatchAcceptResponse
// @Param			match	body		MatchConfirmation	true	"Match"
// @Router			/v1/matches/accept [post]
func AcceptMatch(c *gin.Context) {
	var confirmation MatchConfirmation
	err := httputil.BindData(c, &confirmation)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchAcceptResponse{
			Error: &e,
		})
		return
	}

	match, err := confirmation.match()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MatchAcceptResponse{
			Error: &e,
		})
		return
	}

	archived, err := ledger.AcceptMatch(models.DB, match)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchAcceptResponse{
			Error: &e,
		})
		return
	}

	data := newArchivedTransaction(c, archived)
	c.JSON(http.StatusCreated, MatchAcceptResponse{Data: &data})
}

// @Summary		Accept all matches
// @Description	Reconciles all submitted matches in order. A failed match does not stop the batch, the response reports the outcome per match. The response code is 201 when all matches were reconciled and 200 otherwise.
// @Tags			Matches
// @Accept			json
// @Produce		json
// @Success		200		{object}	MatchAcceptAllResponse
// @Success		201		{object}	MatchAcceptAllResponse
// @Failure		400		{object}	MatchAcceptAllResponse
// @Failure		500		{object}	MatchAcceptAllResponse
// @Param			matches	body		[]MatchConfirmation	true	"Matches"
// @Router			/v1/matches/accept-all [post]
func AcceptAllMatches(c *gin.Context) {
	var confirmations []MatchConfirmation
	err := httputil.BindData(c, &confirmations)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchAcceptAllResponse{
			Error: &e,
		})
		return
	}

	matches := make([]matching.Match, 0, len(confirmations))
	for _, confirmation := range confirmations {
		match, err := confirmation.match()
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, MatchAcceptAllResponse{
				Error: &e,
			})
			return
		}

		matches = append(matches, match)
	}

	results := ledger.AcceptAll(models.DB, matches)

	httpStatus := http.StatusCreated
	r := MatchAcceptAllResponse{Data: make([]MatchAcceptResult, 0, len(results))}
	for _, result := range results {
		if result.Error != nil {
			httpStatus = http.StatusOK
		}
		r.append(c, result)
	}

	c.JSON(httpStatus, r)
}
