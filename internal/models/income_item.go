package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeItemStatus is the lifecycle state of a receivable.
// "overdue" is derived from PaymentDate and never persisted.
type IncomeItemStatus string

const (
	IncomeItemPending  IncomeItemStatus = "pending"
	IncomeItemReceived IncomeItemStatus = "received"
)

// Valid reports whether the status is part of the lifecycle.
func (s IncomeItemStatus) Valid() bool {
	return s == IncomeItemPending || s == IncomeItemReceived
}

// IncomeItem represents money owed to the business, e.g. a marketplace payout.
type IncomeItem struct {
	DefaultModel
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8);check:income_amount_positive,amount > 0"`
	PaymentDate time.Time       // Date the payment is expected or was received
	Source      string          // Name of the payer, used for matching against bank merchant names
	Status      IncomeItemStatus `gorm:"default:pending"`
}

func (i IncomeItem) Self() string {
	return "Income Item"
}

// Overdue reports whether the receivable is pending past its payment date.
// This is derived state, it is never written to the database.
func (i IncomeItem) Overdue(now time.Time) bool {
	return i.Status == IncomeItemPending && i.PaymentDate.Before(now.Truncate(24*time.Hour))
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (i *IncomeItem) AfterFind(tx *gorm.DB) (err error) {
	err = i.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	i.PaymentDate = i.PaymentDate.In(time.UTC)
	return
}

// BeforeSave sets the timezone for the PaymentDate to UTC and trims
// whitespace from string fields.
func (i *IncomeItem) BeforeSave(_ *gorm.DB) (err error) {
	i.Description = strings.TrimSpace(i.Description)
	i.Source = strings.TrimSpace(i.Source)

	if i.Status == "" {
		i.Status = IncomeItemPending
	}

	if i.PaymentDate.IsZero() {
		i.PaymentDate = time.Now().In(time.UTC)
	} else {
		i.PaymentDate = i.PaymentDate.In(time.UTC)
	}

	return
}
