package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerledger/backend/internal/httputil"
	"github.com/sellerledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterCreditCardRoutes registers the routes for credit cards with
// the RouterGroup that is passed.
func RegisterCreditCardRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCreditCards)
		r.GET("", GetCreditCards)
		r.POST("", CreateCreditCards)
	}

	// Credit card with ID
	{
		r.OPTIONS("/:id", OptionsCreditCardDetail)
		r.GET("/:id", GetCreditCard)
		r.PATCH("/:id", UpdateCreditCard)
		r.DELETE("/:id", DeleteCreditCard)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CreditCards
// @Success		204
// @Router			/v1/credit-cards [options]
func OptionsCreditCards(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CreditCards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credit-cards/{id} [options]
func OptionsCreditCardDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CreditCard{})
}

// @Summary		Get credit card
// @Description	Returns a specific credit card
// @Tags			CreditCards
// @Produce		json
// @Success		200	{object}	CreditCardResponse
// @Failure		400	{object}	CreditCardResponse
// @Failure		404	{object}	CreditCardResponse
// @Failure		500	{object}	CreditCardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credit-cards/{id} [get]
func GetCreditCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &e,
		})
		return
	}

	var card models.CreditCard
	err = models.DB.First(&card, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &e,
		})
		return
	}

	data := newCreditCard(c, card)
	c.JSON(http.StatusOK, CreditCardResponse{Data: &data})
}

// @Summary		Get credit cards
// @Description	Returns a list of credit cards
// @Tags			CreditCards
// @Produce		json
// @Success		200	{object}	CreditCardListResponse
// @Failure		400	{object}	CreditCardListResponse
// @Failure		500	{object}	CreditCardListResponse
// @Router			/v1/credit-cards [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			offset	query	uint	false	"The offset of the first credit card returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of credit cards to return. Defaults to 50."
func GetCreditCards(c *gin.Context) {
	var filter CreditCardQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CreditCardListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var q *gorm.DB
	q = models.DB.Order("credit_cards.name ASC")

	if filter.Name != "" {
		q = q.Where("credit_cards.name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("credit_cards.name = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 credit cards and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var cards []models.CreditCard
	err := q.Find(&cards).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardListResponse{
			Error: &e,
		})
		return
	}

	data := make([]CreditCard, 0)
	for _, card := range cards {
		data = append(data, newCreditCard(c, card))
	}

	c.JSON(http.StatusOK, CreditCardListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create credit cards
// @Description	Creates credit cards from the list of submitted data. New cards start with a zero balance. The response code is the highest response code number that a single creation would have caused. If it is not equal to 201, at least one card has an error.
// @Tags			CreditCards
// @Produce		json
// @Success		201		{object}	CreditCardCreateResponse
// @Failure		400		{object}	CreditCardCreateResponse
// @Failure		500		{object}	CreditCardCreateResponse
// @Param			cards	body		[]CreditCardEditable	true	"Credit cards"
// @Router			/v1/credit-cards [post]
func CreateCreditCards(c *gin.Context) {
	var editables []CreditCardEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CreditCardCreateResponse{}

	for _, editable := range editables {
		card := editable.model()
		err := models.DB.Create(&card).Error
		// Append the error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCreditCard(c, card)
		r.Data = append(r.Data, CreditCardResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Update credit card
// @Description	Updates the name or credit limit of a card. The balance cannot be set directly, it only moves through the payable lifecycle. The available credit is recomputed from the new limit.
// @Tags			CreditCards
// @Accept			json
// @Produce		json
// @Success		200		{object}	CreditCardResponse
// @Failure		400		{object}	CreditCardResponse
// @Failure		404		{object}	CreditCardResponse
// @Failure		500		{object}	CreditCardResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			card	body		CreditCardEditable	true	"Credit card"
// @Router			/v1/credit-cards/{id} [patch]
func UpdateCreditCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &e,
		})
		return
	}

	// Get the credit card resource
	var card models.CreditCard
	err = models.DB.First(&card, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, CreditCardEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update CreditCardEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &e,
		})
		return
	}

	model := update.model()

	// Changing the limit moves the available credit, the balance stays
	if slices.Contains(updateFields, any("CreditLimit")) {
		if model.CreditLimit.IsNegative() {
			e := models.ErrCreditLimitNegative.Error()
			c.JSON(http.StatusBadRequest, CreditCardResponse{
				Error: &e,
			})
			return
		}

		model.AvailableCredit = model.CreditLimit.Sub(card.Balance)
		updateFields = append(updateFields, "AvailableCredit")
	}

	err = models.DB.Model(&card).Select("", updateFields...).Updates(model).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &e,
		})
		return
	}

	data := newCreditCard(c, card)
	c.JSON(http.StatusOK, CreditCardResponse{Data: &data})
}

// @Summary		Delete credit card
// @Description	Deletes a credit card
// @Tags			CreditCards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credit-cards/{id} [delete]
func DeleteCreditCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var card models.CreditCard
	err = models.DB.First(&card, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&card).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
