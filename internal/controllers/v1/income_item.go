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

// RegisterIncomeItemRoutes registers the routes for income items with
// the RouterGroup that is passed.
func RegisterIncomeItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomeItems)
		r.GET("", GetIncomeItems)
		r.POST("", CreateIncomeItems)
	}

	// Income item with ID
	{
		r.OPTIONS("/:id", OptionsIncomeItemDetail)
		r.GET("/:id", GetIncomeItem)
		r.PATCH("/:id", UpdateIncomeItem)
		r.DELETE("/:id", DeleteIncomeItem)
	}

	// Lifecycle
	{
		r.POST("/:id/receive", ReceiveIncomeItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			IncomeItems
// @Success		204
// @Router			/v1/income-items [options]
func OptionsIncomeItems(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			IncomeItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income-items/{id} [options]
func OptionsIncomeItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.IncomeItem{})
}

// @Summary		Get income item
// @Description	Returns a specific income item
// @Tags			IncomeItems
// @Produce		json
// @Success		200	{object}	IncomeItemResponse
// @Failure		400	{object}	IncomeItemResponse
// @Failure		404	{object}	IncomeItemResponse
// @Failure		500	{object}	IncomeItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income-items/{id} [get]
func GetIncomeItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	var item models.IncomeItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	data := newIncomeItem(c, item)
	c.JSON(http.StatusOK, IncomeItemResponse{Data: &data})
}

// @Summary		Get income items
// @Description	Returns a list of income items
// @Tags			IncomeItems
// @Produce		json
// @Success		200	{object}	IncomeItemListResponse
// @Failure		400	{object}	IncomeItemListResponse
// @Failure		500	{object}	IncomeItemListResponse
// @Router			/v1/income-items [get]
// @Param			description	query	string	false	"Filter by description"
// @Param			amount		query	string	false	"Filter by amount"
// @Param			source		query	string	false	"Filter by source"
// @Param			status		query	string	false	"Filter by lifecycle status"
// @Param			overdue		query	bool	false	"Only return pending items past their payment date"
// @Param			offset		query	uint	false	"The offset of the first income item returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of income items to return. Defaults to 50."
func GetIncomeItems(c *gin.Context) {
	var filter IncomeItemQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, IncomeItemListResponse{
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
		c.JSON(status(err), IncomeItemListResponse{
			Error: &e,
		})
		return
	}

	var q *gorm.DB
	q = models.DB.Order("datetime(income_items.payment_date) ASC, datetime(income_items.created_at) DESC").Where(&model, queryFields...)

	if filter.Description != "" {
		q = q.Where("income_items.description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	}

	if filter.Source != "" {
		q = q.Where("income_items.source LIKE ?", fmt.Sprintf("%%%s%%", filter.Source))
	}

	// Overdue is derived: pending and payment date before today
	if filter.Overdue {
		now := time.Now().In(time.UTC)
		q = q.
			Where("income_items.status = ?", models.IncomeItemPending).
			Where("income_items.payment_date < date(?)", time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 income items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var items []models.IncomeItem
	err = q.Find(&items).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemListResponse{
			Error: &e,
		})
		return
	}

	data := make([]IncomeItem, 0)
	for _, item := range items {
		data = append(data, newIncomeItem(c, item))
	}

	c.JSON(http.StatusOK, IncomeItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create income items
// @Description	Creates income items from the list of submitted data. The response code is the highest response code number that a single creation would have caused. If it is not equal to 201, at least one income item has an error.
// @Tags			IncomeItems
// @Produce		json
// @Success		201		{object}	IncomeItemCreateResponse
// @Failure		400		{object}	IncomeItemCreateResponse
// @Failure		500		{object}	IncomeItemCreateResponse
// @Param			items	body		[]IncomeItemEditable	true	"Income items"
// @Router			/v1/income-items [post]
func CreateIncomeItems(c *gin.Context) {
	var editables []IncomeItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := IncomeItemCreateResponse{}

	for _, editable := range editables {
		if editable.Status != "" && !editable.Status.Valid() {
			status = r.appendError(errIncomeStatusInvalid, status)
			continue
		}

		item := editable.model()
		err := models.DB.Create(&item).Error
		// Append the error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newIncomeItem(c, item)
		r.Data = append(r.Data, IncomeItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Update income item
// @Description	Updates an existing income item. Only values to be updated need to be specified.
// @Tags			IncomeItems
// @Accept			json
// @Produce		json
// @Success		200		{object}	IncomeItemResponse
// @Failure		400		{object}	IncomeItemResponse
// @Failure		404		{object}	IncomeItemResponse
// @Failure		500		{object}	IncomeItemResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		IncomeItemEditable	true	"Income item"
// @Router			/v1/income-items/{id} [patch]
func UpdateIncomeItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	// Get the income item resource
	var item models.IncomeItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, IncomeItemEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update IncomeItemEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	if update.Status != "" && !update.Status.Valid() {
		e := errIncomeStatusInvalid.Error()
		c.JSON(http.StatusBadRequest, IncomeItemResponse{
			Error: &e,
		})
		return
	}

	// If the amount set via the API request is not existent or
	// is 0, we use the old amount
	if update.Amount.IsZero() {
		update.Amount = item.Amount
	}

	err = models.DB.Model(&item).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	data := newIncomeItem(c, item)
	c.JSON(http.StatusOK, IncomeItemResponse{Data: &data})
}

// @Summary		Delete income item
// @Description	Deletes an income item
// @Tags			IncomeItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income-items/{id} [delete]
func DeleteIncomeItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var item models.IncomeItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&item).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Receive income item
// @Description	Marks a pending income item as received. Already received items fail with a conflict.
// @Tags			IncomeItems
// @Produce		json
// @Success		200	{object}	IncomeItemResponse
// @Failure		400	{object}	IncomeItemResponse
// @Failure		404	{object}	IncomeItemResponse
// @Failure		409	{object}	IncomeItemResponse
// @Failure		500	{object}	IncomeItemResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/income-items/{id}/receive [post]
func ReceiveIncomeItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	item, err := ledger.ReceiveIncome(models.DB, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeItemResponse{
			Error: &e,
		})
		return
	}

	data := newIncomeItem(c, item)
	c.JSON(http.StatusOK, IncomeItemResponse{Data: &data})
}
