package ledger

import (
	"sync"

	"github.com/sellerledger/backend/internal/models"
)

// The archive feed streams every archive insert to all open observers,
// independent of who performed the insert. It is an in-process broadcast,
// suitable for a single-instance deployment: the SQLite store has exactly
// one writer anyway.

var feed = struct {
	mu          sync.Mutex
	subscribers map[chan models.ArchivedTransaction]struct{}
}{
	subscribers: make(map[chan models.ArchivedTransaction]struct{}),
}

// feedBuffer is the number of archive events a slow subscriber can lag
// behind before events are dropped for it.
const feedBuffer = 16

// Subscribe registers an observer of archive inserts. The returned cancel
// function must be called when the observer goes away; it closes the
// channel.
func Subscribe() (<-chan models.ArchivedTransaction, func()) {
	ch := make(chan models.ArchivedTransaction, feedBuffer)

	feed.mu.Lock()
	feed.subscribers[ch] = struct{}{}
	feed.mu.Unlock()

	cancel := func() {
		feed.mu.Lock()
		defer feed.mu.Unlock()

		if _, ok := feed.subscribers[ch]; ok {
			delete(feed.subscribers, ch)
			close(ch)
		}
	}

	return ch, cancel
}

// publish fans an archive insert out to all subscribers. It is called
// after the surrounding database transaction has committed, so observers
// never see an archive row that was rolled back.
func publish(archived models.ArchivedTransaction) {
	feed.mu.Lock()
	defer feed.mu.Unlock()

	for ch := range feed.subscribers {
		select {
		case ch <- archived:
		default:
			// Slow subscribers drop events instead of blocking the
			// ledger operation that triggered the insert
		}
	}
}
