package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditCard tracks the running balance of a card that vendor payables
// settle against.
//
// Balance and AvailableCredit are an invariant pair: AvailableCredit is
// always CreditLimit minus Balance and the two are only ever written
// together. All balance changes go through ApplyCharge.
type CreditCard struct {
	DefaultModel
	Name            string
	Balance         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CreditLimit     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AvailableCredit decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (c CreditCard) Self() string {
	return "Credit Card"
}

// ApplyCharge adds delta to the balance and recomputes the available
// credit. Pass a negative delta to revert spend.
func (c *CreditCard) ApplyCharge(delta decimal.Decimal) {
	c.Balance = c.Balance.Add(delta)
	c.AvailableCredit = c.CreditLimit.Sub(c.Balance)
}

// BeforeSave trims the name, validates the limit and keeps the
// available credit consistent with balance and limit.
func (c *CreditCard) BeforeSave(_ *gorm.DB) (err error) {
	c.Name = strings.TrimSpace(c.Name)

	if c.CreditLimit.IsNegative() {
		return ErrCreditLimitNegative
	}

	c.AvailableCredit = c.CreditLimit.Sub(c.Balance)
	return
}
