package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/models"
)

func (suite *TestSuiteStandard) splitTransaction(card *models.CreditCard, total, paid float64) ledger.SplitResult {
	transaction := models.VendorTransaction{
		VendorName:  "Acme Wholesale",
		Description: "PO-1042",
		Amount:      amount(total),
	}
	if card != nil {
		transaction.CreditCardID = &card.ID
	}
	transaction = suite.createTestVendorTransaction(transaction)

	result, err := ledger.MarkPartiallyPaid(models.DB, transaction.ID, amount(paid), amount(total-paid), futureDate())
	if err != nil {
		suite.Assert().FailNow("Partial payment failed", "Error: %s", err)
	}

	return result
}

func (suite *TestSuiteStandard) TestMarkPartiallyPaid() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})
	newDueDate := futureDate()

	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName:   "Acme Wholesale",
		Description:  "PO-1042",
		Amount:       amount(1000),
		CreditCardID: &card.ID,
	})

	result, err := ledger.MarkPartiallyPaid(models.DB, transaction.ID, amount(400), amount(600), newDueDate)
	assert.Nil(suite.T(), err)

	// Parent is retired, children sum to the original amount
	assert.Equal(suite.T(), models.VendorTransactionPartiallyPaid, result.Parent.Status)
	assert.True(suite.T(), result.PaidChild.Amount.Add(result.RemainderChild.Amount).Equal(transaction.Amount))

	assert.Equal(suite.T(), models.VendorTransactionCompleted, result.PaidChild.Status)
	assert.Equal(suite.T(), models.PartialRolePaid, result.PaidChild.PartialRole)
	assert.Equal(suite.T(), transaction.ID, *result.PaidChild.ParentID)

	assert.Equal(suite.T(), models.VendorTransactionPending, result.RemainderChild.Status)
	assert.Equal(suite.T(), models.PartialRoleRemaining, result.RemainderChild.PartialRole)
	assert.True(suite.T(), result.RemainderChild.DueDate.Equal(newDueDate.In(time.UTC)))

	// Only the settled portion moves the card
	reloaded := suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.Equal(amount(400)), "Balance is %s", reloaded.Balance)
	assert.True(suite.T(), reloaded.AvailableCredit.Equal(amount(4600)), "Available credit is %s", reloaded.AvailableCredit)
}

func (suite *TestSuiteStandard) TestMarkPartiallyPaidValidation() {
	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName: "Acme Wholesale",
		Amount:     amount(1000),
	})

	completed := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName: "Acme Wholesale",
		Amount:     amount(1000),
		Status:     models.VendorTransactionCompleted,
	})

	tests := []struct {
		name        string
		transaction models.VendorTransaction
		paid        decimal.Decimal
		remaining   decimal.Decimal
		dueDate     time.Time
		expected    error
	}{
		{"zero paid amount", transaction, amount(0), amount(1000), futureDate(), ledger.ErrAmountRange},
		{"negative paid amount", transaction, amount(-50), amount(1050), futureDate(), ledger.ErrAmountRange},
		{"paid equals total", transaction, amount(1000), amount(0), futureDate(), ledger.ErrAmountRange},
		{"paid exceeds total", transaction, amount(1200), amount(-200), futureDate(), ledger.ErrAmountRange},
		{"balance mismatch", transaction, amount(400), amount(500), futureDate(), ledger.ErrBalanceMismatch},
		{"missing due date", transaction, amount(400), amount(600), time.Time{}, ledger.ErrDueDateRequired},
		{"due date in the past", transaction, amount(400), amount(600), time.Now().AddDate(0, 0, -1), ledger.ErrDueDatePast},
		{"not pending", completed, amount(400), amount(600), futureDate(), ledger.ErrNotPending},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := ledger.MarkPartiallyPaid(models.DB, tt.transaction.ID, tt.paid, tt.remaining, tt.dueDate)
			assert.ErrorIs(t, err, tt.expected)
		})
	}

	// Failed attempts must not have mutated the transaction
	var reloaded models.VendorTransaction
	assert.Nil(suite.T(), models.DB.First(&reloaded, transaction.ID).Error)
	assert.Equal(suite.T(), models.VendorTransactionPending, reloaded.Status)

	var count int64
	models.DB.Model(&models.VendorTransaction{}).Where("parent_id IS NOT NULL").Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDeleteRemainderRemainingOnly() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})
	result := suite.splitTransaction(&card, 1000, 400)

	err := ledger.DeleteRemainder(models.DB, result.RemainderChild.ID, ledger.DeleteRemainingOnly)
	assert.Nil(suite.T(), err)

	// The remainder is gone, the paid child stays as the record
	var count int64
	models.DB.Model(&models.VendorTransaction{}).Where("id = ?", result.RemainderChild.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	var paid models.VendorTransaction
	assert.Nil(suite.T(), models.DB.First(&paid, result.PaidChild.ID).Error)
	assert.Equal(suite.T(), models.VendorTransactionCompleted, paid.Status)

	// The remainder never hit the card, so the balance stays at the paid
	// portion
	reloaded := suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.Equal(amount(400)), "Balance is %s", reloaded.Balance)
}

func (suite *TestSuiteStandard) TestDeleteRemainderReverseAll() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})
	result := suite.splitTransaction(&card, 1000, 400)

	err := ledger.DeleteRemainder(models.DB, result.RemainderChild.ID, ledger.ReverseEntirePayment)
	assert.Nil(suite.T(), err)

	// Both children are gone
	var count int64
	models.DB.Model(&models.VendorTransaction{}).Where("parent_id = ?", result.Parent.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	// The parent is pending again over the full original amount
	var parent models.VendorTransaction
	assert.Nil(suite.T(), models.DB.First(&parent, result.Parent.ID).Error)
	assert.Equal(suite.T(), models.VendorTransactionPending, parent.Status)
	assert.True(suite.T(), parent.Amount.Equal(amount(1000)))

	// The card is back to zero
	reloaded := suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.IsZero(), "Balance is %s", reloaded.Balance)
	assert.True(suite.T(), reloaded.AvailableCredit.Equal(amount(5000)))
}

func (suite *TestSuiteStandard) TestDeleteRemainderGuards() {
	plain := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName: "Acme Wholesale",
		Amount:     amount(100),
	})

	result := suite.splitTransaction(nil, 1000, 400)

	// A transaction that is not a remainder child fails closed
	err := ledger.DeleteRemainder(models.DB, plain.ID, ledger.DeleteRemainingOnly)
	assert.ErrorIs(suite.T(), err, ledger.ErrNotRemainderChild)

	// The paid child is not a remainder either
	err = ledger.DeleteRemainder(models.DB, result.PaidChild.ID, ledger.DeleteRemainingOnly)
	assert.ErrorIs(suite.T(), err, ledger.ErrNotRemainderChild)

	// An unknown mode does not delete anything
	err = ledger.DeleteRemainder(models.DB, result.RemainderChild.ID, "casually_forget")
	assert.ErrorIs(suite.T(), err, ledger.ErrNotRemainderChild)

	var count int64
	models.DB.Model(&models.VendorTransaction{}).Where("parent_id = ?", result.Parent.ID).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *TestSuiteStandard) TestDeleteVendorTransaction() {
	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName: "Acme Wholesale",
		Amount:     amount(100),
	})

	err := ledger.DeleteVendorTransaction(models.DB, transaction.ID)
	assert.Nil(suite.T(), err)

	var count int64
	models.DB.Model(&models.VendorTransaction{}).Where("id = ?", transaction.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDeleteVendorTransactionRevertsCard() {
	card := suite.createTestCreditCard(models.CreditCard{Name: "Business Card", CreditLimit: amount(5000)})

	transaction := suite.createTestVendorTransaction(models.VendorTransaction{
		VendorName:   "Acme Wholesale",
		Amount:       amount(300),
		Status:       models.VendorTransactionCompleted,
		CreditCardID: &card.ID,
	})

	// Put the charge on the card the way completing the payable would
	assert.Nil(suite.T(), models.DB.Model(&card).Select("Balance", "AvailableCredit").
		Updates(models.CreditCard{Balance: amount(300), AvailableCredit: amount(4700)}).Error)

	err := ledger.DeleteVendorTransaction(models.DB, transaction.ID)
	assert.Nil(suite.T(), err)

	reloaded := suite.reloadCard(card)
	assert.True(suite.T(), reloaded.Balance.IsZero(), "Balance is %s", reloaded.Balance)
	assert.True(suite.T(), reloaded.AvailableCredit.Equal(amount(5000)))
}

func (suite *TestSuiteStandard) TestDeleteVendorTransactionGuards() {
	result := suite.splitTransaction(nil, 1000, 400)

	// The retired parent of an open split cannot be deleted
	err := ledger.DeleteVendorTransaction(models.DB, result.Parent.ID)
	assert.ErrorIs(suite.T(), err, ledger.ErrSplitParent)

	// The remainder has its own two-mode deletion
	err = ledger.DeleteVendorTransaction(models.DB, result.RemainderChild.ID)
	assert.ErrorIs(suite.T(), err, ledger.ErrNotRemainderChild)

	// The paid child is locked while its sibling remainder exists
	err = ledger.DeleteVendorTransaction(models.DB, result.PaidChild.ID)
	assert.ErrorIs(suite.T(), err, ledger.ErrRemainderExists)

	// Once the remainder is resolved the paid child can go
	assert.Nil(suite.T(), ledger.DeleteRemainder(models.DB, result.RemainderChild.ID, ledger.DeleteRemainingOnly))
	assert.Nil(suite.T(), ledger.DeleteVendorTransaction(models.DB, result.PaidChild.ID))
}

// A remainder child can itself be split again. The second split hangs off
// the remainder, not off the original parent.
func (suite *TestSuiteStandard) TestNestedSplit() {
	first := suite.splitTransaction(nil, 1000, 400)

	second, err := ledger.MarkPartiallyPaid(models.DB, first.RemainderChild.ID, amount(200), amount(400), futureDate())
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), first.RemainderChild.ID, *second.PaidChild.ParentID)
	assert.True(suite.T(), second.PaidChild.Amount.Add(second.RemainderChild.Amount).Equal(first.RemainderChild.Amount))
}
