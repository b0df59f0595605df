package v1

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/httputil"
	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterArchiveRoutes registers the routes for the archive with the
// RouterGroup that is passed.
//
// The archive is append only: records are written by the reconciler and
// by bank transaction deletion, this API only reads them.
func RegisterArchiveRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsArchive)
		r.GET("", GetArchivedTransactions)
		r.GET("/feed", GetArchiveFeed)
	}

	{
		r.OPTIONS("/:id", OptionsArchiveDetail)
		r.GET("/:id", GetArchivedTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Archive
// @Success		204
// @Router			/v1/archive [options]
func OptionsArchive(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Archive
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/archive/{id} [options]
func OptionsArchiveDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var archived models.ArchivedTransaction
	err = models.DB.First(&archived, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get archive record
// @Description	Returns a specific archive record
// @Tags			Archive
// @Produce		json
// @Success		200	{object}	ArchivedTransactionResponse
// @Failure		400	{object}	ArchivedTransactionResponse
// @Failure		404	{object}	ArchivedTransactionResponse
// @Failure		500	{object}	ArchivedTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/archive/{id} [get]
func GetArchivedTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArchivedTransactionResponse{
			Error: &e,
		})
		return
	}

	var archived models.ArchivedTransaction
	err = models.DB.First(&archived, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArchivedTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newArchivedTransaction(c, archived)
	c.JSON(http.StatusOK, ArchivedTransactionResponse{Data: &data})
}

// @Summary		Get archive
// @Description	Returns a list of archive records
// @Tags			Archive
// @Produce		json
// @Success		200	{object}	ArchivedTransactionListResponse
// @Failure		400	{object}	ArchivedTransactionListResponse
// @Failure		500	{object}	ArchivedTransactionListResponse
// @Router			/v1/archive [get]
// @Param			original	query	string	false	"Filter by the active-set ID of the bank transaction"
// @Param			account		query	string	false	"Filter by account identifier"
// @Param			matchedType	query	string	false	"Filter by what the transaction was resolved against: vendor, income or none"
// @Param			fromDate	query	string	false	"Movements at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			untilDate	query	string	false	"Movements before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			offset		query	uint	false	"The offset of the first archive record returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of archive records to return. Defaults to 50."
func GetArchivedTransactions(c *gin.Context) {
	var filter ArchivedTransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ArchivedTransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArchivedTransactionListResponse{
			Error: &e,
		})
		return
	}

	var q *gorm.DB
	q = models.DB.Order("datetime(archived_transactions.created_at) DESC").Where(&model, queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("archived_transactions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("archived_transactions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 archive records and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var archived []models.ArchivedTransaction
	err = q.Find(&archived).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArchivedTransactionListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ArchivedTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]ArchivedTransaction, 0)
	for _, record := range archived {
		data = append(data, newArchivedTransaction(c, record))
	}

	c.JSON(http.StatusOK, ArchivedTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Archive feed
// @Description	Streams archive records as server-sent events. Every record written to the archive, by an accepted match or by a bank transaction deletion, is pushed to all connected clients. The stream stays open until the client disconnects.
// @Tags			Archive
// @Produce		text/event-stream
// @Success		200	{object}	ArchivedTransaction
// @Router			/v1/archive/feed [get]
func GetArchiveFeed(c *gin.Context) {
	events, cancel := ledger.Subscribe()
	defer cancel()

	c.Stream(func(_ io.Writer) bool {
		select {
		case archived, ok := <-events:
			if !ok {
				return false
			}

			c.SSEvent("archived", newArchivedTransaction(c, archived))
			return true

		case <-c.Request.Context().Done():
			return false
		}
	})
}
