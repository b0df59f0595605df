package ledger_test

import (
	"github.com/stretchr/testify/assert"

	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestEditVendorTransaction() {
	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName: "Acme Wholesale",
		Amount:     amount(250),
	})

	updated, err := ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Description: "PO-1042", Amount: amount(300)},
		[]string{"Description", "Amount"})
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "PO-1042", updated.Description)
	assert.True(suite.T(), updated.Amount.Equal(amount(300)))

	// Fields outside the update are untouched
	assert.Equal(suite.T(), "Acme Wholesale", updated.VendorName)
}

func (suite *TestSuiteStandard) TestEditVendorTransactionCompletes() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})

	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName:   "Acme Wholesale",
		Amount:       amount(250),
		CreditCardID: &card.ID,
	})

	// Completing charges the card
	_, err := ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Status: models.VendorTransactionCompleted},
		[]string{"Status"})
	assert.Nil(suite.T(), err)

	reloaded := suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.Equal(amount(250)), "Balance is %s", reloaded.Balance)

	// Reopening reverts the charge
	_, err = ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Status: models.VendorTransactionPending},
		[]string{"Status"})
	assert.Nil(suite.T(), err)

	reloaded = suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.IsZero(), "Balance is %s", reloaded.Balance)
	assert.True(suite.T(), reloaded.AvailableCredit.Equal(amount(5000)))
}

func (suite *TestSuiteStandard) TestEditVendorTransactionAmountDelta() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})

	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName:   "Acme Wholesale",
		Amount:       amount(250),
		CreditCardID: &card.ID,
	})

	_, err := ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Status: models.VendorTransactionCompleted},
		[]string{"Status"})
	assert.Nil(suite.T(), err)

	// Raising the amount of a completed transaction moves the card by
	// the difference
	_, err = ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Amount: amount(300)},
		[]string{"Amount"})
	assert.Nil(suite.T(), err)

	reloaded := suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.Equal(amount(300)), "Balance is %s", reloaded.Balance)

	// Lowering it moves the card back by the same difference
	_, err = ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Amount: amount(250)},
		[]string{"Amount"})
	assert.Nil(suite.T(), err)

	reloaded = suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.Equal(amount(250)), "Balance is %s", reloaded.Balance)
}

func (suite *TestSuiteStandard) TestEditVendorTransactionPendingAmount() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})

	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName:   "Acme Wholesale",
		Amount:       amount(250),
		CreditCardID: &card.ID,
	})

	// Amount changes on a pending transaction never touch the card
	_, err := ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Amount: amount(400)},
		[]string{"Amount"})
	assert.Nil(suite.T(), err)

	reloaded := suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.IsZero(), "Balance is %s", reloaded.Balance)
}

func (suite *TestSuiteStandard) TestEditVendorTransactionGuards() {
	result := suite.splitTransaction(nil, 1000, 400)

	// The retired parent of a split is frozen
	_, err := ledger.EditVendorTransaction(models.DB, result.Parent.ID,
		models.VendorTransaction{Description: "changed"},
		[]string{"Description"})
	assert.ErrorIs(suite.T(), err, ledger.ErrSplitParent)

	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName: "Acme Wholesale",
		Amount:     amount(250),
	})

	// The partially paid status only comes from a split
	_, err = ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Status: models.VendorTransactionPartiallyPaid},
		[]string{"Status"})
	assert.ErrorIs(suite.T(), err, ledger.ErrStatusNotEditable)

	// Amounts stay strictly positive
	_, err = ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Amount: amount(0)},
		[]string{"Amount"})
	assert.ErrorIs(suite.T(), err, models.ErrVendorAmountNotPositive)
}

func (suite *TestSuiteStandard) TestEditVendorTransactionStatusInvalid() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})

	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName:   "Acme Wholesale",
		Amount:       amount(250),
		CreditCardID: &card.ID,
	})

	// A status outside the lifecycle never reaches the database
	_, err := ledger.EditVendorTransaction(models.DB, transaction.ID,
		models.VendorTransaction{Status: "definitely_not_a_status"},
		[]string{"Status"})
	assert.ErrorIs(suite.T(), err, ledger.ErrStatusInvalid)

	var reloaded models.VendorTransaction
	assert.Nil(suite.T(), models.DB.First(&reloaded, transaction.ID).Error)
	assert.Equal(suite.T(), models.VendorTransactionPending, reloaded.Status)

	reloadedCard := suite.reloadCard(card)
	assert.True(suite.T(), reloadedCard.Balance.IsZero(), "Balance is %s", reloadedCard.Balance)
}

func (suite *TestSuiteStandard) TestReceiveIncome() {
	item := suite.createTestIncomeItem(models.IncomeItem{
		Source: "Marketplace Payout",
		Amount: amount(1250),
	})

	received, err := ledger.ReceiveIncome(models.DB, item.ID)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.IncomeItemReceived, received.Status)

	// Receiving twice fails closed
	_, err = ledger.ReceiveIncome(models.DB, item.ID)
	assert.ErrorIs(suite.T(), err, ledger.ErrAlreadyResolved)
}
