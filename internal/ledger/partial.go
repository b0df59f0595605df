package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sellerledger/backend/internal/models"
)

// SplitResult carries the records of a completed partial payment split.
type SplitResult struct {
	Parent         models.VendorTransaction
	PaidChild      models.VendorTransaction
	RemainderChild models.VendorTransaction
}

// Suffixes appended to the parent description so the children can be told
// apart at a glance. Correlation logic keys on ParentID and PartialRole,
// never on the description.
const (
	paidSuffix      = " (paid portion)"
	remainderSuffix = " (remaining balance)"
)

// MarkPartiallyPaid splits a pending vendor transaction into a settled
// paid portion and a pending remainder.
//
// The parent is retired (status partially_paid) and two children are
// created: the paid child completes immediately with the original due
// date, the remainder stays pending with the new due date. The paid
// amount is charged to the linked credit card, the remainder has no card
// impact until it is paid itself. All writes happen in one database
// transaction.
func MarkPartiallyPaid(db *gorm.DB, id uuid.UUID, amountPaid, remainingBalance decimal.Decimal, newDueDate time.Time) (SplitResult, error) {
	var result SplitResult

	if newDueDate.IsZero() {
		return result, ErrDueDateRequired
	}

	if newDueDate.Before(today()) {
		return result, ErrDueDatePast
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var parent models.VendorTransaction
		err := tx.First(&parent, id).Error
		if err != nil {
			return err
		}

		if parent.Status != models.VendorTransactionPending {
			return ErrNotPending
		}

		if !amountPaid.IsPositive() || amountPaid.GreaterThanOrEqual(parent.Amount) {
			return ErrAmountRange
		}

		// The two children must sum to the parent exactly
		if !parent.Amount.Sub(amountPaid).Equal(remainingBalance) {
			return ErrBalanceMismatch
		}

		err = tx.Model(&parent).Select("Status").Updates(models.VendorTransaction{Status: models.VendorTransactionPartiallyPaid}).Error
		if err != nil {
			return err
		}

		paid := models.VendorTransaction{
			VendorID:     parent.VendorID,
			VendorName:   parent.VendorName,
			Description:  parent.Description + paidSuffix,
			Amount:       amountPaid,
			DueDate:      parent.DueDate,
			Status:       models.VendorTransactionCompleted,
			CreditCardID: parent.CreditCardID,
			Remarks:      parent.Remarks,
			ParentID:     &parent.ID,
			PartialRole:  models.PartialRolePaid,
		}

		err = tx.Create(&paid).Error
		if err != nil {
			return err
		}

		remainder := models.VendorTransaction{
			VendorID:     parent.VendorID,
			VendorName:   parent.VendorName,
			Description:  parent.Description + remainderSuffix,
			Amount:       remainingBalance,
			DueDate:      &newDueDate,
			Status:       models.VendorTransactionPending,
			CreditCardID: parent.CreditCardID,
			Remarks:      parent.Remarks,
			ParentID:     &parent.ID,
			PartialRole:  models.PartialRoleRemaining,
		}

		err = tx.Create(&remainder).Error
		if err != nil {
			return err
		}

		// Only the settled portion is card spend
		err = chargeCard(tx, parent.CreditCardID, amountPaid)
		if err != nil {
			return err
		}

		parent.Status = models.VendorTransactionPartiallyPaid
		result = SplitResult{Parent: parent, PaidChild: paid, RemainderChild: remainder}
		return nil
	})
	if err != nil {
		return SplitResult{}, err
	}

	return result, nil
}

// RemainderDeletionMode selects one of the two explicit ways to delete
// the remaining balance of a partial payment.
type RemainderDeletionMode string

const (
	// DeleteRemainingOnly removes the remainder child and treats the
	// logical original as settled. The paid child stays as the record of
	// the money that moved.
	DeleteRemainingOnly RemainderDeletionMode = "remaining_only"

	// ReverseEntirePayment removes both children and restores a single
	// pending transaction over the full original amount.
	ReverseEntirePayment RemainderDeletionMode = "reverse_all"
)

// DeleteRemainder resolves the remaining balance of a partial payment.
// The transaction must be identifiable as a remainder child, otherwise
// the operation fails closed without mutation.
func DeleteRemainder(db *gorm.DB, id uuid.UUID, mode RemainderDeletionMode) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var remainder models.VendorTransaction
		err := tx.First(&remainder, id).Error
		if err != nil {
			return err
		}

		if remainder.PartialRole != models.PartialRoleRemaining || remainder.ParentID == nil {
			return ErrNotRemainderChild
		}

		if remainder.Status != models.VendorTransactionPending {
			return ErrAlreadyResolved
		}

		var parent models.VendorTransaction
		err = tx.First(&parent, *remainder.ParentID).Error
		if err != nil {
			return err
		}

		switch mode {
		case DeleteRemainingOnly:
			// The remainder was never charged to the card, so deleting it
			// has no card impact. The paid child remains the system of
			// record for the settled portion.
			return tx.Delete(&remainder).Error

		case ReverseEntirePayment:
			var paid models.VendorTransaction
			err = tx.Where(&models.VendorTransaction{
				ParentID:    remainder.ParentID,
				PartialRole: models.PartialRolePaid,
			}).First(&paid).Error
			if err != nil {
				return err
			}

			err = tx.Delete(&remainder).Error
			if err != nil {
				return err
			}

			err = tx.Delete(&paid).Error
			if err != nil {
				return err
			}

			// Undo the card spend of the settled portion, bringing the
			// net card impact of the whole split back to zero
			err = chargeCard(tx, paid.CreditCardID, paid.Amount.Neg())
			if err != nil {
				return err
			}

			// The parent still carries the original amount and due date,
			// reopening it restores the pre-split state
			return tx.Model(&parent).Select("Status").Updates(models.VendorTransaction{Status: models.VendorTransactionPending}).Error

		default:
			return ErrNotRemainderChild
		}
	})
}

// DeleteVendorTransaction deletes a transaction that is not part of an
// open split. Completed card-linked transactions revert their card spend.
//
// A paid child can only be deleted once its sibling remainder is gone,
// otherwise the remainder would be orphaned.
func DeleteVendorTransaction(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var transaction models.VendorTransaction
		err := tx.First(&transaction, id).Error
		if err != nil {
			return err
		}

		if transaction.Status == models.VendorTransactionPartiallyPaid {
			return ErrSplitParent
		}

		if transaction.PartialRole == models.PartialRoleRemaining {
			return ErrNotRemainderChild
		}

		if transaction.PartialRole == models.PartialRolePaid {
			var count int64
			err = tx.Model(&models.VendorTransaction{}).
				Where(&models.VendorTransaction{
					ParentID:    transaction.ParentID,
					PartialRole: models.PartialRoleRemaining,
				}).
				Count(&count).Error
			if err != nil {
				return err
			}

			if count > 0 {
				return ErrRemainderExists
			}
		}

		if transaction.Status == models.VendorTransactionCompleted {
			err = chargeCard(tx, transaction.CreditCardID, transaction.Amount.Neg())
			if err != nil {
				return err
			}
		}

		return tx.Delete(&transaction).Error
	})
}

func today() time.Time {
	now := time.Now().In(time.UTC)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
