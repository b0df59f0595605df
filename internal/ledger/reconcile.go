package ledger

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellerledger/backend/internal/matching"
	"github.com/sellerledger/backend/internal/models"
)

// AcceptMatch reconciles a match: the payable or receivable is closed,
// the bank transaction is archived with the match metadata and removed
// from the active set. The three steps run in one database transaction,
// so either all of them happen or none does.
//
// Accepting the same match twice fails closed: the unique index on the
// archive's original ID rejects the second insert before any step of the
// retry is committed, so a bank transaction is archived exactly once.
func AcceptMatch(db *gorm.DB, match matching.Match) (models.ArchivedTransaction, error) {
	var archived models.ArchivedTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var bank models.BankTransaction
		err := tx.First(&bank, match.BankTransaction.ID).Error
		if err != nil {
			return err
		}

		if bank.Pending {
			return ErrUnsettled
		}

		archived = models.Snapshot(bank)
		archived.MatchScore = match.Score

		switch {
		case match.Type == matching.TypeVendor && match.VendorTransaction != nil:
			var vendor models.VendorTransaction
			err = tx.First(&vendor, match.VendorTransaction.ID).Error
			if err != nil {
				return err
			}

			if vendor.Status != models.VendorTransactionPending {
				return ErrAlreadyResolved
			}

			err = tx.Model(&vendor).Select("Status").Updates(models.VendorTransaction{Status: models.VendorTransactionCompleted}).Error
			if err != nil {
				return err
			}

			// Paying the payable in full puts it on the linked card
			err = chargeCard(tx, vendor.CreditCardID, vendor.Amount)
			if err != nil {
				return err
			}

			archived.MatchedType = models.ArchiveMatchVendor
			archived.MatchedID = &vendor.ID

		case match.Type == matching.TypeIncome && match.IncomeItem != nil:
			var income models.IncomeItem
			err = tx.First(&income, match.IncomeItem.ID).Error
			if err != nil {
				return err
			}

			if income.Status != models.IncomeItemPending {
				return ErrAlreadyResolved
			}

			err = tx.Model(&income).Select("Status").Updates(models.IncomeItem{Status: models.IncomeItemReceived}).Error
			if err != nil {
				return err
			}

			archived.MatchedType = models.ArchiveMatchIncome
			archived.MatchedID = &income.ID

		default:
			return ErrMatchIncomplete
		}

		err = tx.Create(&archived).Error
		if err != nil {
			return err
		}

		return tx.Delete(&bank).Error
	})
	if err != nil {
		return models.ArchivedTransaction{}, err
	}

	publish(archived)
	return archived, nil
}

// AcceptResult reports the outcome of one match inside AcceptAll.
type AcceptResult struct {
	BankTransactionID uuid.UUID
	Archived          *models.ArchivedTransaction
	Error             error
}

// AcceptAll applies AcceptMatch to every match in order. A failure does
// not stop the sequence: the result slice reports per match which ones
// were reconciled and which were not.
func AcceptAll(db *gorm.DB, matches []matching.Match) []AcceptResult {
	results := make([]AcceptResult, 0, len(matches))

	for _, match := range matches {
		archived, err := AcceptMatch(db, match)

		result := AcceptResult{
			BankTransactionID: match.BankTransaction.ID,
			Error:             err,
		}
		if err == nil {
			result.Archived = &archived
		}

		results = append(results, result)
	}

	return results
}

// DeleteBankTransaction removes a bank transaction from the active set
// without a match, archiving it with the given reason. The archive-once
// guarantee holds here exactly as for accepted matches.
func DeleteBankTransaction(db *gorm.DB, id uuid.UUID, reason string) (models.ArchivedTransaction, error) {
	var archived models.ArchivedTransaction

	if reason == "" {
		reason = "deleted"
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var bank models.BankTransaction
		err := tx.First(&bank, id).Error
		if err != nil {
			return err
		}

		archived = models.Snapshot(bank)
		archived.MatchedType = models.ArchiveMatchNone
		archived.Reason = reason

		err = tx.Create(&archived).Error
		if err != nil {
			return err
		}

		return tx.Delete(&bank).Error
	})
	if err != nil {
		return models.ArchivedTransaction{}, err
	}

	publish(archived)
	return archived, nil
}

// LoadSnapshot reads the current live record sets for the matching
// engine. Match rules are loaded in priority order.
func LoadSnapshot(db *gorm.DB) (matching.Snapshot, error) {
	var snapshot matching.Snapshot

	err := db.Find(&snapshot.BankTransactions).Error
	if err != nil {
		return matching.Snapshot{}, err
	}

	err = db.Where(&models.VendorTransaction{Status: models.VendorTransactionPending}).Find(&snapshot.VendorTransactions).Error
	if err != nil {
		return matching.Snapshot{}, err
	}

	err = db.Where(&models.IncomeItem{Status: models.IncomeItemPending}).Find(&snapshot.IncomeItems).Error
	if err != nil {
		return matching.Snapshot{}, err
	}

	err = db.Order("priority ASC").Find(&snapshot.Rules).Error
	if err != nil {
		return matching.Snapshot{}, err
	}

	return snapshot, nil
}
