package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendorTransactionStatus is the lifecycle state of a vendor payable.
type VendorTransactionStatus string

const (
	VendorTransactionPending       VendorTransactionStatus = "pending"
	VendorTransactionPartiallyPaid VendorTransactionStatus = "partially_paid"
	VendorTransactionCompleted     VendorTransactionStatus = "completed"
)

// Valid reports whether the status is part of the lifecycle.
func (s VendorTransactionStatus) Valid() bool {
	return s == VendorTransactionPending ||
		s == VendorTransactionPartiallyPaid ||
		s == VendorTransactionCompleted
}

// PartialPaymentRole marks the role a child transaction plays in a split.
// It is empty for transactions that are not part of a partial payment.
type PartialPaymentRole string

const (
	PartialRolePaid      PartialPaymentRole = "paid_portion"
	PartialRoleRemaining PartialPaymentRole = "remaining_portion"
)

// VendorTransaction represents a purchase order payable to a vendor.
//
// A transaction with status "partially_paid" is a retired parent: it has
// exactly two children linked via ParentID, one with the paid portion and
// one with the remaining balance. Parents are excluded from active views.
type VendorTransaction struct {
	DefaultModel
	VendorID     string                  // Marketplace reference of the vendor
	VendorName   string                  // Display name used for matching against bank merchant names
	Description  string                  // Human readable purchase order reference
	Amount       decimal.Decimal         `gorm:"type:DECIMAL(20,8);check:vendor_amount_positive,amount > 0"`
	DueDate      *time.Time              // Optional payment due date
	Status       VendorTransactionStatus `gorm:"default:pending"`
	CreditCardID *uuid.UUID              // Card the payable settles against. Cash purchase when nil.
	CreditCard   CreditCard
	Remarks      string // Free-form workflow tag

	ParentID    *uuid.UUID         // Set on children created by a partial payment
	PartialRole PartialPaymentRole // paid_portion or remaining_portion on children
}

func (t VendorTransaction) Self() string {
	return "Vendor Transaction"
}

// Active reports whether the transaction shows up in active views.
// Split parents are retired and only their children are active.
func (t VendorTransaction) Active() bool {
	return t.Status != VendorTransactionPartiallyPaid
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *VendorTransaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	if t.DueDate != nil {
		date := t.DueDate.In(time.UTC)
		t.DueDate = &date
	}
	return
}

// BeforeSave
//   - sets the timezone for the DueDate to UTC
//   - defaults the status to pending
//   - trims whitespace from string fields
func (t *VendorTransaction) BeforeSave(_ *gorm.DB) (err error) {
	t.VendorName = strings.TrimSpace(t.VendorName)
	t.Description = strings.TrimSpace(t.Description)
	t.Remarks = strings.TrimSpace(t.Remarks)

	// Ensure that the CreditCardID is nil and not a pointer to a nil UUID
	if t.CreditCardID != nil && *t.CreditCardID == uuid.Nil {
		t.CreditCardID = nil
	}

	if t.ParentID != nil && *t.ParentID == uuid.Nil {
		t.ParentID = nil
	}

	if t.Status == "" {
		t.Status = VendorTransactionPending
	}

	if t.DueDate != nil {
		date := t.DueDate.In(time.UTC)
		t.DueDate = &date
	}

	return
}
