package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BankTransaction is an externally observed money movement from bank or
// credit card sync. Negative amounts are debits (outflows), positive
// amounts are credits (inflows).
//
// Bank transactions are immutable except for deletion and archival.
type BankTransaction struct {
	DefaultModel
	AccountID    string          // Identifier of the synced bank or card account
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description  string
	MerchantName string
	Date         time.Time
	Pending      bool // Settlement flag set by the sync provider
}

func (t BankTransaction) Self() string {
	return "Bank Transaction"
}

// Debit reports whether the transaction is an outflow.
func (t BankTransaction) Debit() bool {
	return t.Amount.IsNegative()
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *BankTransaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave sets the timezone for the Date to UTC and trims whitespace
// from string fields.
func (t *BankTransaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.MerchantName = strings.TrimSpace(t.MerchantName)
	t.AccountID = strings.TrimSpace(t.AccountID)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return
}
