package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/httputil"
	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBankTransactionRoutes registers the routes for bank transactions
// with the RouterGroup that is passed.
//
// Bank transactions are immutable once imported, so there is no PATCH.
// Deleting one archives it.
func RegisterBankTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBankTransactions)
		r.GET("", GetBankTransactions)
		r.POST("", CreateBankTransactions)
	}

	// Bank transaction with ID
	{
		r.OPTIONS("/:id", OptionsBankTransactionDetail)
		r.GET("/:id", GetBankTransaction)
		r.DELETE("/:id", DeleteBankTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BankTransactions
// @Success		204
// @Router			/v1/bank-transactions [options]
func OptionsBankTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			BankTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/bank-transactions/{id} [options]
func OptionsBankTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.BankTransaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Get bank transaction
// @Description	Returns a specific bank transaction
// @Tags			BankTransactions
// @Produce		json
// @Success		200	{object}	BankTransactionResponse
// @Failure		400	{object}	BankTransactionResponse
// @Failure		404	{object}	BankTransactionResponse
// @Failure		500	{object}	BankTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/bank-transactions/{id} [get]
func GetBankTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankTransactionResponse{
			Error: &e,
		})
		return
	}

	var transaction models.BankTransaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newBankTransaction(c, transaction)
	c.JSON(http.StatusOK, BankTransactionResponse{Data: &data})
}

// @Summary		Get bank transactions
// @Description	Returns a list of bank transactions
// @Tags			BankTransactions
// @Produce		json
// @Success		200	{object}	BankTransactionListResponse
// @Failure		400	{object}	BankTransactionListResponse
// @Failure		500	{object}	BankTransactionListResponse
// @Router			/v1/bank-transactions [get]
// @Param			account			query	string	false	"Filter by account identifier"
// @Param			amount			query	string	false	"Filter by amount"
// @Param			description		query	string	false	"Filter by description"
// @Param			merchantName	query	string	false	"Filter by merchant name"
// @Param			pending			query	bool	false	"Filter by settlement flag"
// @Param			fromDate		query	string	false	"Movements at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			untilDate		query	string	false	"Movements before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			offset			query	uint	false	"The offset of the first bank transaction returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of bank transactions to return. Defaults to 50."
func GetBankTransactions(c *gin.Context) {
	var filter BankTransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BankTransactionListResponse{
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
		c.JSON(status(err), BankTransactionListResponse{
			Error: &e,
		})
		return
	}

	var q *gorm.DB
	q = models.DB.Order("datetime(bank_transactions.date) DESC, datetime(bank_transactions.created_at) DESC").Where(&model, queryFields...)

	if filter.Description != "" {
		q = q.Where("bank_transactions.description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	}

	if filter.MerchantName != "" {
		q = q.Where("bank_transactions.merchant_name LIKE ?", fmt.Sprintf("%%%s%%", filter.MerchantName))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("bank_transactions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("bank_transactions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 bank transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.BankTransaction
	err = q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankTransactionListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]BankTransaction, 0)
	for _, transaction := range transactions {
		data = append(data, newBankTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, BankTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Import bank transactions
// @Description	Imports bank transactions from the list of submitted data, e.g. a statement sync. The response code is the highest response code number that a single import would have caused. If it is not equal to 201, at least one transaction has an error.
// @Tags			BankTransactions
// @Produce		json
// @Success		201				{object}	BankTransactionCreateResponse
// @Failure		400				{object}	BankTransactionCreateResponse
// @Failure		500				{object}	BankTransactionCreateResponse
// @Param			transactions	body		[]BankTransactionEditable	true	"Bank transactions"
// @Router			/v1/bank-transactions [post]
func CreateBankTransactions(c *gin.Context) {
	var editables []BankTransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BankTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BankTransactionCreateResponse{}

	for _, editable := range editables {
		transaction := editable.model()
		err := models.DB.Create(&transaction).Error
		// Append the error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBankTransaction(c, transaction)
		r.Data = append(r.Data, BankTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Delete bank transaction
// @Description	Removes a bank transaction from the active set. The transaction is archived with the given reason before deletion, exactly once.
// @Tags			BankTransactions
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		409		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			reason	query	string	false	"Why the transaction is removed. Defaults to \"deleted\"."
// @Router			/v1/bank-transactions/{id} [delete]
func DeleteBankTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = ledger.DeleteBankTransaction(models.DB, uri.ID.UUID, c.Query("reason"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
