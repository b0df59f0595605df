package ledger_test

import (
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sellerledger/backend/internal/ledger"
	"github.com/sellerledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestFeedReceivesArchiveInserts() {
	events, cancel := ledger.Subscribe()
	defer cancel()

	bank := suite.createTestBankTransaction(models.BankTransaction{
		Amount: amount(-10),
		Date:   time.Now().In(time.UTC),
	})

	archived, err := ledger.DeleteBankTransaction(models.DB, bank.ID, "noise")
	assert.Nil(suite.T(), err)

	select {
	case event := <-events:
		assert.Equal(suite.T(), archived.ID, event.ID)
		assert.Equal(suite.T(), bank.ID, event.OriginalID)
		assert.Equal(suite.T(), "noise", event.Reason)
	case <-time.After(time.Second):
		suite.Assert().FailNow("No archive event received")
	}
}

func (suite *TestSuiteStandard) TestFeedCancel() {
	events, cancel := ledger.Subscribe()
	cancel()

	// The channel is closed and canceling again does not panic
	_, open := <-events
	assert.False(suite.T(), open)
	cancel()

	// Publishing after the cancel must not block the ledger operation
	bank := suite.createTestBankTransaction(models.BankTransaction{
		Amount: amount(-10),
		Date:   time.Now().In(time.UTC),
	})

	_, err := ledger.DeleteBankTransaction(models.DB, bank.ID, "")
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestFeedMultipleSubscribers() {
	first, cancelFirst := ledger.Subscribe()
	defer cancelFirst()

	second, cancelSecond := ledger.Subscribe()
	defer cancelSecond()

	bank := suite.createTestBankTransaction(models.BankTransaction{
		Amount: amount(-10),
		Date:   time.Now().In(time.UTC),
	})

	_, err := ledger.DeleteBankTransaction(models.DB, bank.ID, "")
	assert.Nil(suite.T(), err)

	for _, events := range []<-chan models.ArchivedTransaction{first, second} {
		select {
		case event := <-events:
			assert.Equal(suite.T(), bank.ID, event.OriginalID)
		case <-time.After(time.Second):
			suite.Assert().FailNow("No archive event received")
		}
	}
}
