package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sellerledger/backend/internal/models"
)

// chargeCard applies delta to the card balance and writes balance and
// available credit together. Called inside the surrounding transaction so
// the card never moves without the vendor transaction that caused it.
//
// Card balances only ever change through this function: a card is charged
// when a card-linked payable completes and reverted when a completed
// card-linked payable is amended, deleted or reopened.
func chargeCard(tx *gorm.DB, cardID *uuid.UUID, delta decimal.Decimal) error {
	if cardID == nil || delta.IsZero() {
		return nil
	}

	var card models.CreditCard
	err := tx.First(&card, *cardID).Error
	if err != nil {
		return err
	}

	card.ApplyCharge(delta)

	return tx.Model(&card).Select("Balance", "AvailableCredit").Updates(card).Error
}
