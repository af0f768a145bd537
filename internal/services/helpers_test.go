package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-core/internal/domain"
	"auction-core/internal/infrastructure/memory"
	"auction-core/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

// testClock returns a controllable time. With a non-zero step every reading
// advances the clock, which makes bid timestamps follow lock order.
type testClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newTestClock() *testClock {
	return &testClock{now: t0}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.AuctionEvent
}

func (p *recordingPublisher) PublishAuctionEvent(ctx context.Context, event *domain.AuctionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return nil
}

func (p *recordingPublisher) ofType(typ domain.AuctionEventType) []domain.AuctionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []domain.AuctionEvent
	for _, e := range p.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	store     *memory.Store
	events    *recordingPublisher
	clock     *testClock
	bids      *BidAcceptor
	lifecycle *LifecycleManager
	query     *QueryService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore(5 * time.Second)
	events := &recordingPublisher{}
	clock := newTestClock()
	log := logger.NewNop()

	h := &harness{
		store:     store,
		events:    events,
		clock:     clock,
		bids:      NewBidAcceptor(store, events, log),
		lifecycle: NewLifecycleManager(store, events, log),
		query:     NewQueryService(store),
	}
	h.bids.SetClock(clock.Now)
	h.lifecycle.SetClock(clock.Now)
	h.query.SetClock(clock.Now)
	return h
}

func (h *harness) startAuction(t *testing.T, catalogueID, starting string, d time.Duration) *domain.Auction {
	t.Helper()

	auction, err := h.lifecycle.StartAuction(context.Background(), StartAuctionRequest{
		CatalogueID:    catalogueID,
		StartingAmount: dec(starting),
		EndTime:        h.clock.Now().Add(d),
	})
	require.NoError(t, err)
	return auction
}

func (h *harness) bid(t *testing.T, auctionID, userID, amount string) domain.PlaceBidResult {
	t.Helper()

	result, err := h.bids.PlaceBid(context.Background(), PlaceBidRequest{
		Auction: domain.AuctionRef{AuctionID: auctionID},
		Bidder:  domain.BidderInfo{UserID: userID, Username: "user-" + userID},
		Amount:  dec(amount),
	})
	require.NoError(t, err)
	return result
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireAccepted(t *testing.T, result domain.PlaceBidResult) *domain.BidAccepted {
	t.Helper()
	accepted, ok := result.(*domain.BidAccepted)
	require.Truef(t, ok, "expected accepted bid, got %#v", result)
	return accepted
}

func requireRejected(t *testing.T, result domain.PlaceBidResult, reason domain.RejectReason) *domain.BidRejected {
	t.Helper()
	rejected, ok := result.(*domain.BidRejected)
	require.Truef(t, ok, "expected rejected bid, got %#v", result)
	require.Equal(t, reason, rejected.Reason)
	return rejected
}
