package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ArchiveMatchType describes what an archived bank transaction was
// resolved against.
type ArchiveMatchType string

const (
	ArchiveMatchVendor ArchiveMatchType = "vendor"
	ArchiveMatchIncome ArchiveMatchType = "income"
	// ArchiveMatchNone is used for manual deletions without a match.
	ArchiveMatchNone ArchiveMatchType = "none"
)

// ArchivedTransaction is the append-only archive of bank transactions that
// were removed from the active set, either by an accepted match or by a
// manual delete.
//
// OriginalID carries a unique index: it is the idempotency key that
// guarantees a bank transaction is archived exactly once. Rows are never
// updated after insert.
type ArchivedTransaction struct {
	DefaultModel
	OriginalID uuid.UUID `gorm:"uniqueIndex"` // ID of the archived bank transaction

	// Denormalized snapshot of the bank transaction
	AccountID    string
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description  string
	MerchantName string
	Date         time.Time

	// Match metadata: what the transaction was resolved against,
	// or the reason it was deleted
	MatchedType ArchiveMatchType
	MatchedID   *uuid.UUID
	MatchScore  float64
	Reason      string
}

func (a ArchivedTransaction) Self() string {
	return "Archived Transaction"
}

// Snapshot returns an ArchivedTransaction prefilled with the denormalized
// fields of the bank transaction.
func Snapshot(t BankTransaction) ArchivedTransaction {
	return ArchivedTransaction{
		OriginalID:   t.ID,
		AccountID:    t.AccountID,
		Amount:       t.Amount,
		Description:  t.Description,
		MerchantName: t.MerchantName,
		Date:         t.Date,
	}
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (a *ArchivedTransaction) AfterFind(tx *gorm.DB) (err error) {
	err = a.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	a.Date = a.Date.In(time.UTC)
	return
}

// BeforeSave sets the timezone for the Date to UTC.
func (a *ArchivedTransaction) BeforeSave(_ *gorm.DB) (err error) {
	a.Date = a.Date.In(time.UTC)

	if a.MatchedType == "" {
		a.MatchedType = ArchiveMatchNone
	}

	return
}
