package models_test

import (
	"time"

	"github.com/sellerledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestArchivedTransactionSnapshot() {
	bank := suite.createTestBankTransaction(models.BankTransaction{
		AccountID:    "chk-0001",
		Amount:       decimal.NewFromFloat(-250),
		Description:  "ACH WITHDRAWAL 8841",
		MerchantName: "ACME WHOLESALE",
		Date:         time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC),
	})

	archived := models.Snapshot(bank)

	assert.Equal(suite.T(), bank.ID, archived.OriginalID)
	assert.Equal(suite.T(), bank.AccountID, archived.AccountID)
	assert.True(suite.T(), archived.Amount.Equal(bank.Amount))
	assert.Equal(suite.T(), bank.Description, archived.Description)
	assert.Equal(suite.T(), bank.MerchantName, archived.MerchantName)
	assert.True(suite.T(), archived.Date.Equal(bank.Date))
}

func (suite *TestSuiteStandard) TestArchivedTransactionArchiveOnce() {
	bank := suite.createTestBankTransaction(models.BankTransaction{
		AccountID: "chk-0001",
		Amount:    decimal.NewFromFloat(-250),
	})

	first := models.Snapshot(bank)
	err := models.DB.Create(&first).Error
	assert.Nil(suite.T(), err)

	// The unique index on the original ID rejects a second archive row
	second := models.Snapshot(bank)
	err = models.DB.Create(&second).Error
	assert.ErrorIs(suite.T(), err, models.ErrAlreadyArchived)
}

func (suite *TestSuiteStandard) TestArchivedTransactionMatchTypeDefault() {
	bank := suite.createTestBankTransaction(models.BankTransaction{
		AccountID: "chk-0001",
		Amount:    decimal.NewFromFloat(-250),
	})

	archived := models.Snapshot(bank)
	err := models.DB.Create(&archived).Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.ArchiveMatchNone, archived.MatchedType)
}
