package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/httputil"
	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterVendorTransactionRoutes registers the routes for vendor
// transactions with the RouterGroup that is passed.
func RegisterVendorTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsVendorTransactions)
		r.GET("", GetVendorTransactions)
		r.POST("", CreateVendorTransactions)
	}

	// Vendor transaction with ID
	{
		r.OPTIONS("/:id", OptionsVendorTransactionDetail)
		r.GET("/:id", GetVendorTransaction)
		r.PATCH("/:id", UpdateVendorTransaction)
		r.DELETE("/:id", DeleteVendorTransaction)
	}

	// Partial payment lifecycle
	{
		r.POST("/:id/split", SplitVendorTransaction)
		r.POST("/:id/reverse", ReverseVendorTransactionSplit)
		r.DELETE("/:id/remainder", DeleteVendorTransactionRemainder)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			VendorTransactions
// @Success		204
// @Router			/v1/vendor-transactions [options]
func OptionsVendorTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			VendorTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendor-transactions/{id} [options]
func OptionsVendorTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.VendorTransaction{})
}

// @Summary		Get vendor transaction
// @Description	Returns a specific vendor transaction
// @Tags			VendorTransactions
// @Produce		json
// @Success		200	{object}	VendorTransactionResponse
// @Failure		400	{object}	VendorTransactionResponse
// @Failure		404	{object}	VendorTransactionResponse
// @Failure		500	{object}	VendorTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendor-transactions/{id} [get]
func GetVendorTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionResponse{
			Error: &e,
		})
		return
	}

	var transaction models.VendorTransaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newVendorTransaction(c, transaction)
	c.JSON(http.StatusOK, VendorTransactionResponse{Data: &data})
}

// @Summary		Get vendor transactions
// @Description	Returns a list of vendor transactions
// @Tags			VendorTransactions
// @Produce		json
// @Success		200	{object}	VendorTransactionListResponse
// @Failure		400	{object}	VendorTransactionListResponse
// @Failure		500	{object}	VendorTransactionListResponse
// @Router			/v1/vendor-transactions [get]
// @Param			vendor		query	string	false	"Filter by marketplace reference of the vendor"
// @Param			vendorName	query	string	false	"Filter by vendor name"
// @Param			description	query	string	false	"Filter by description"
// @Param			amount		query	string	false	"Filter by amount"
// @Param			status		query	string	false	"Filter by lifecycle status"
// @Param			creditCard	query	string	false	"Filter by credit card ID"
// @Param			active		query	bool	false	"Only return active transactions, excluding retired split parents"
// @Param			offset		query	uint	false	"The offset of the first vendor transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of vendor transactions to return. Defaults to 50."
func GetVendorTransactions(c *gin.Context) {
	var filter VendorTransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, VendorTransactionListResponse{
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
		c.JSON(status(err), VendorTransactionListResponse{
			Error: &e,
		})
		return
	}

	var q *gorm.DB
	q = models.DB.Order("datetime(vendor_transactions.created_at) DESC").Where(&model, queryFields...)

	if filter.VendorName != "" {
		q = q.Where("vendor_transactions.vendor_name LIKE ?", fmt.Sprintf("%%%s%%", filter.VendorName))
	}

	if filter.Description != "" {
		q = q.Where("vendor_transactions.description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	}

	// Split parents are retired, only their children are active
	if filter.Active {
		q = q.Where("vendor_transactions.status != ?", models.VendorTransactionPartiallyPaid)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 vendor transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.VendorTransaction
	err = q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]VendorTransaction, 0)
	for _, transaction := range transactions {
		data = append(data, newVendorTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, VendorTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create vendor transactions
// @Description	Creates vendor transactions from the list of submitted transaction data. The response code is the highest response code number that a single transaction creation would have caused. If it is not equal to 201, at least one transaction has an error.
// @Tags			VendorTransactions
// @Produce		json
// @Success		201				{object}	VendorTransactionCreateResponse
// @Failure		400				{object}	VendorTransactionCreateResponse
// @Failure		404				{object}	VendorTransactionCreateResponse
// @Failure		500				{object}	VendorTransactionCreateResponse
// @Param			transactions	body		[]VendorTransactionEditable	true	"Vendor transactions"
// @Router			/v1/vendor-transactions [post]
func CreateVendorTransactions(c *gin.Context) {
	var editables []VendorTransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := VendorTransactionCreateResponse{}

	for _, editable := range editables {
		// Splits are created through the split endpoint, never directly
		if editable.Status == models.VendorTransactionPartiallyPaid {
			status = r.appendError(ledger.ErrStatusNotEditable, status)
			continue
		}

		if editable.Status != "" && !editable.Status.Valid() {
			status = r.appendError(errVendorStatusInvalid, status)
			continue
		}

		transaction := editable.model()
		err := models.DB.Create(&transaction).Error
		// Append the error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newVendorTransaction(c, transaction)
		r.Data = append(r.Data, VendorTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Update vendor transaction
// @Description	Updates an existing vendor transaction. Only values to be updated need to be specified. Amount and status changes keep the linked credit card balance in step.
// @Tags			VendorTransactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	VendorTransactionResponse
// @Failure		400			{object}	VendorTransactionResponse
// @Failure		404			{object}	VendorTransactionResponse
// @Failure		500			{object}	VendorTransactionResponse
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		VendorTransactionEditable	true	"Vendor transaction"
// @Router			/v1/vendor-transactions/{id} [patch]
func UpdateVendorTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, VendorTransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update VendorTransactionEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionResponse{
			Error: &e,
		})
		return
	}

	fields := make([]string, 0, len(updateFields))
	for _, field := range updateFields {
		fields = append(fields, field.(string))
	}

	transaction, err := ledger.EditVendorTransaction(models.DB, uri.ID.UUID, update.model(), fields)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newVendorTransaction(c, transaction)
	c.JSON(http.StatusOK, VendorTransactionResponse{Data: &data})
}

// @Summary		Delete vendor transaction
// @Description	Deletes a vendor transaction. Retired split parents and remainder children cannot be deleted here, paid children only once their sibling remainder is gone. Completed card-linked transactions revert their card spend.
// @Tags			VendorTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendor-transactions/{id} [delete]
func DeleteVendorTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = ledger.DeleteVendorTransaction(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Split vendor transaction
// @Description	Splits a pending vendor transaction into a settled paid portion and a pending remainder with a new due date. The paid amount is charged to the linked credit card.
// @Tags			VendorTransactions
// @Accept			json
// @Produce		json
// @Success		201		{object}	SplitResponse
// @Failure		400		{object}	SplitResponse
// @Failure		404		{object}	SplitResponse
// @Failure		500		{object}	SplitResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			split	body		SplitRequest	true	"Split"
// @Router			/v1/vendor-transactions/{id}/split [post]
func SplitVendorTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitResponse{
			Error: &e,
		})
		return
	}

	var request SplitRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitResponse{
			Error: &e,
		})
		return
	}

	result, err := ledger.MarkPartiallyPaid(models.DB, uri.ID.UUID, request.AmountPaid, request.RemainingBalance, request.NewDueDate)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitResponse{
			Error: &e,
		})
		return
	}

	data := Split{
		Parent:         newVendorTransaction(c, result.Parent),
		PaidChild:      newVendorTransaction(c, result.PaidChild),
		RemainderChild: newVendorTransaction(c, result.RemainderChild),
	}
	c.JSON(http.StatusCreated, SplitResponse{Data: &data})
}

// @Summary		Reverse partial payment
// @Description	Reverses a partial payment split. The ID must be the remainder child. Both children are deleted, the parent is reopened with its original amount and due date and the card spend of the paid portion is reverted.
// @Tags			VendorTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/vendor-transactions/{id}/reverse [post]
func ReverseVendorTransactionSplit(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = ledger.DeleteRemainder(models.DB, uri.ID.UUID, ledger.ReverseEntirePayment)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Delete remaining balance
// @Description	Deletes the remaining balance of a partial payment. With mode "remaining_only" the remainder is dropped and the paid portion stays as the record of the settled amount. With mode "reverse_all" the whole split is reversed.
// @Tags			VendorTransactions
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			mode	query	string	true	"Deletion mode, remaining_only or reverse_all"
// @Router			/v1/vendor-transactions/{id}/remainder [delete]
func DeleteVendorTransactionRemainder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	mode := ledger.RemainderDeletionMode(c.Query("mode"))
	if mode != ledger.DeleteRemainingOnly && mode != ledger.ReverseEntirePayment {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errDeletionModeInvalid.Error(),
		})
		return
	}

	err = ledger.DeleteRemainder(models.DB, uri.ID.UUID, mode)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
