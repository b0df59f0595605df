package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/sellerledger/backend/internal/models"
)

// EditVendorTransaction applies a partial update to a vendor transaction,
// keeping the linked credit card in step.
//
// Fields names the model fields present in the update. Amount changes on
// a completed card-linked transaction move the card by the difference; a
// status change to completed charges the card, reopening a completed
// transaction reverts the charge. Balance and available credit are
// written together with the transaction in a single database transaction,
// so a failure leaves neither side changed.
func EditVendorTransaction(db *gorm.DB, id uuid.UUID, update models.VendorTransaction, fields []string) (models.VendorTransaction, error) {
	var transaction models.VendorTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&transaction, id).Error
		if err != nil {
			return err
		}

		if transaction.Status == models.VendorTransactionPartiallyPaid {
			return ErrSplitParent
		}

		oldAmount := transaction.Amount
		oldStatus := transaction.Status

		newAmount := oldAmount
		if slices.Contains(fields, "Amount") {
			newAmount = update.Amount
		}

		newStatus := oldStatus
		if slices.Contains(fields, "Status") {
			newStatus = update.Status
		}

		// Splits go through MarkPartiallyPaid, never through an edit
		if newStatus == models.VendorTransactionPartiallyPaid {
			return ErrStatusNotEditable
		}

		// Out-of-lifecycle statuses must never reach the database, the
		// card delta below only knows pending and completed
		if !newStatus.Valid() {
			return ErrStatusInvalid
		}

		if !newAmount.IsPositive() {
			return models.ErrVendorAmountNotPositive
		}

		// Work out how the edit moves the linked card. Completed
		// transactions are the only ones with card spend on the books.
		delta := decimal.Zero
		switch {
		case oldStatus == models.VendorTransactionCompleted && newStatus == models.VendorTransactionCompleted:
			delta = newAmount.Sub(oldAmount)
		case oldStatus == models.VendorTransactionPending && newStatus == models.VendorTransactionCompleted:
			delta = newAmount
		case oldStatus == models.VendorTransactionCompleted && newStatus == models.VendorTransactionPending:
			delta = oldAmount.Neg()
		}

		err = tx.Model(&transaction).Select(fields).Updates(update).Error
		if err != nil {
			return err
		}

		err = chargeCard(tx, transaction.CreditCardID, delta)
		if err != nil {
			return err
		}

		return tx.First(&transaction, id).Error
	})
	if err != nil {
		return models.VendorTransaction{}, err
	}

	return transaction, nil
}

// ReceiveIncome marks a pending income item as received.
// Already received items fail closed.
func ReceiveIncome(db *gorm.DB, id uuid.UUID) (models.IncomeItem, error) {
	var item models.IncomeItem

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&item, id).Error
		if err != nil {
			return err
		}

		if item.Status == models.IncomeItemReceived {
			return ErrAlreadyResolved
		}

		item.Status = models.IncomeItemReceived
		return tx.Model(&item).Select("Status").Updates(item).Error
	})
	if err != nil {
		return models.IncomeItem{}, err
	}

	return item, nil
}
