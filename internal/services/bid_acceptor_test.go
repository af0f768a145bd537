package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"auction-core/internal/domain"
	"auction-core/internal/domain/mocks"
	"auction-core/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestPlaceBidStartingAmountAndStrictIncrease(t *testing.T) {
	h := newHarness(t)
	auction := h.startAuction(t, "cat-1", "100", time.Hour)

	rejected := requireRejected(t, h.bid(t, auction.ID, "u1", "100"), domain.RejectBidTooLow)
	require.True(t, dec("100").Equal(rejected.CurrentAmount))

	requireAccepted(t, h.bid(t, auction.ID, "u1", "150"))

	rejected = requireRejected(t, h.bid(t, auction.ID, "u2", "120"), domain.RejectBidTooLow)
	require.True(t, dec("150").Equal(rejected.CurrentAmount))

	requireRejected(t, h.bid(t, auction.ID, "u2", "150"), domain.RejectBidTooLow)

	leader := requireAccepted(t, h.bid(t, auction.ID, "u2", "200"))

	status, err := h.query.GetAuctionStatus(context.Background(), domain.AuctionRef{AuctionID: auction.ID})
	require.NoError(t, err)
	require.Equal(t, leader.Bid.ID, status.LeadingBid.ID)
	require.True(t, dec("200").Equal(status.CurrentAmount))

	history, err := h.query.GetBidHistory(context.Background(), domain.AuctionRef{AuctionID: auction.ID})
	require.NoError(t, err)
	require.Len(t, history, 2)

	require.Len(t, h.events.ofType(domain.EventBidAccepted), 2)
}

func TestPlaceBidConcurrentPairFinalLeaderIsHighest(t *testing.T) {
	for i := 0; i < 20; i++ {
		h := newHarness(t)
		auction := h.startAuction(t, "cat-1", "100", time.Hour)

		var wg sync.WaitGroup
		results := make([]domain.PlaceBidResult, 2)
		for j, amount := range []string{"300", "250"} {
			wg.Add(1)
			go func(j int, amount string) {
				defer wg.Done()
				results[j] = h.bid(t, auction.ID, fmt.Sprintf("u%d", j), amount)
			}(j, amount)
		}
		wg.Wait()

		requireAccepted(t, results[0])

		status, err := h.query.GetAuctionStatus(context.Background(), domain.AuctionRef{AuctionID: auction.ID})
		require.NoError(t, err)
		require.True(t, dec("300").Equal(status.CurrentAmount))
		require.Equal(t, "u0", status.LeadingBid.Bidder.UserID)
	}
}

func TestPlaceBidAfterDeadlineIsRejected(t *testing.T) {
	h := newHarness(t)
	auction := h.startAuction(t, "cat-1", "100", time.Minute)

	h.clock.Advance(time.Minute)
	requireRejected(t, h.bid(t, auction.ID, "u1", "1000000"), domain.RejectAuctionEnded)

	h.clock.Advance(time.Second)
	requireRejected(t, h.bid(t, auction.ID, "u1", "150"), domain.RejectAuctionEnded)

	bids, err := h.store.ListBids(context.Background(), auction.ID)
	require.NoError(t, err)
	require.Empty(t, bids)
}

func TestPlaceBidMonotonicUnderContention(t *testing.T) {
	h := newHarness(t)
	h.clock.step = time.Microsecond
	auction := h.startAuction(t, "cat-1", "100", time.Hour)

	const bidders = 64
	var wg sync.WaitGroup
	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// amounts interleave so that late arrivals are often lower
			amount := 101 + (i*37)%bidders
			h.bid(t, auction.ID, fmt.Sprintf("u%d", i), fmt.Sprintf("%d", amount))
		}(i)
	}
	wg.Wait()

	history, err := h.query.GetBidHistory(context.Background(), domain.AuctionRef{AuctionID: auction.ID})
	require.NoError(t, err)
	require.NotEmpty(t, history)

	for i := 1; i < len(history); i++ {
		require.Truef(t, history[i].Amount.GreaterThan(history[i-1].Amount),
			"bid %d (%s) does not exceed bid %d (%s)", i, history[i].Amount, i-1, history[i-1].Amount)
	}

	status, err := h.query.GetAuctionStatus(context.Background(), domain.AuctionRef{AuctionID: auction.ID})
	require.NoError(t, err)
	require.Equal(t, history[len(history)-1].ID, status.LeadingBid.ID)
	require.True(t, dec(fmt.Sprintf("%d", 100+bidders)).Equal(status.CurrentAmount))
}

func TestPlaceBidNoLostUpdates(t *testing.T) {
	h := newHarness(t)
	auction := h.startAuction(t, "cat-1", "10", time.Hour)

	const bidders = 40
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted = map[string]string{}
	)
	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("u%d", i)
			result := h.bid(t, auction.ID, userID, fmt.Sprintf("%d.%02d", 20+i, i))
			if a, ok := result.(*domain.BidAccepted); ok {
				mu.Lock()
				accepted[a.Bid.ID] = userID
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	got, err := h.store.GetAuction(context.Background(), auction.ID)
	require.NoError(t, err)
	require.NotNil(t, got.HighestBidID)
	require.Equal(t, fmt.Sprintf("u%d", bidders-1), accepted[*got.HighestBidID])

	bids, err := h.store.ListBids(context.Background(), auction.ID)
	require.NoError(t, err)
	require.Len(t, bids, len(accepted))
}

func TestPlaceBidLowerThanCommittedIsAlwaysRejected(t *testing.T) {
	h := newHarness(t)
	auction := h.startAuction(t, "cat-1", "1", time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			h.bid(t, auction.ID, "high", fmt.Sprintf("%d", 1000+i))
		}(i)
		go func(i int) {
			defer wg.Done()
			h.bid(t, auction.ID, "low", fmt.Sprintf("%d", 2+i))
		}(i)
	}
	wg.Wait()

	status, err := h.query.GetAuctionStatus(context.Background(), domain.AuctionRef{AuctionID: auction.ID})
	require.NoError(t, err)

	for _, amount := range []string{"2", "999", status.CurrentAmount.String()} {
		rejected := requireRejected(t, h.bid(t, auction.ID, "late", amount), domain.RejectBidTooLow)
		require.True(t, status.CurrentAmount.Equal(rejected.CurrentAmount))
	}
}

func TestPlaceBidByCatalogue(t *testing.T) {
	h := newHarness(t)
	h.startAuction(t, "cat-1", "100", time.Hour)
	h.clock.Advance(time.Second)
	latest := h.startAuction(t, "cat-1", "5", time.Hour)

	result, err := h.bids.PlaceBid(context.Background(), PlaceBidRequest{
		Auction: domain.AuctionRef{CatalogueID: "cat-1"},
		Bidder:  domain.BidderInfo{UserID: "u1", Username: "alice", FirstName: "Alice", LastName: "Liddell"},
		Amount:  dec("6.50"),
	})
	require.NoError(t, err)
	accepted := requireAccepted(t, result)
	require.Equal(t, latest.ID, accepted.Bid.AuctionID)
	require.Equal(t, "Alice", accepted.Bid.Bidder.FirstName)

	result, err = h.bids.PlaceBid(context.Background(), PlaceBidRequest{
		Auction: domain.AuctionRef{CatalogueID: "cat-unknown"},
		Bidder:  domain.BidderInfo{UserID: "u1", Username: "alice"},
		Amount:  dec("6.50"),
	})
	require.NoError(t, err)
	requireRejected(t, result, domain.RejectAuctionNotFound)
}

func TestPlaceBidUnknownAuction(t *testing.T) {
	h := newHarness(t)
	requireRejected(t, h.bid(t, "missing", "u1", "10"), domain.RejectAuctionNotFound)
}

func TestPlaceBidValidationNeverTouchesStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: any store or publisher call fails the test
	store := mocks.NewMockAuctionStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)
	acceptor := NewBidAcceptor(store, pub, logger.NewNop())

	valid := PlaceBidRequest{
		Auction: domain.AuctionRef{AuctionID: "a-1"},
		Bidder:  domain.BidderInfo{UserID: "u1", Username: "alice"},
		Amount:  dec("10"),
	}

	tests := []struct {
		name   string
		mutate func(r *PlaceBidRequest)
	}{
		{"zero amount", func(r *PlaceBidRequest) { r.Amount = dec("0") }},
		{"negative amount", func(r *PlaceBidRequest) { r.Amount = dec("-5") }},
		{"too many decimals", func(r *PlaceBidRequest) { r.Amount = dec("10.001") }},
		{"missing user id", func(r *PlaceBidRequest) { r.Bidder.UserID = "" }},
		{"missing username", func(r *PlaceBidRequest) { r.Bidder.Username = "" }},
		{"missing auction", func(r *PlaceBidRequest) { r.Auction = domain.AuctionRef{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			result, err := acceptor.PlaceBid(context.Background(), req)
			require.NoError(t, err)
			requireRejected(t, result, domain.RejectInvalidBid)
		})
	}
}

func openAuction(id string) domain.Auction {
	return domain.Auction{
		ID:             id,
		CatalogueID:    "cat-" + id,
		StartTime:      t0,
		EndTime:        t0.Add(time.Hour),
		StartingAmount: dec("100"),
		Status:         domain.AuctionOpen,
		CreatedAt:      t0,
	}
}

// runLocked makes the mock store invoke the callback with tx and return its
// error, as a real store does.
func runLocked(tx domain.AuctionTx) func(ctx context.Context, id string, fn func(context.Context, domain.AuctionTx) error) error {
	return func(ctx context.Context, id string, fn func(context.Context, domain.AuctionTx) error) error {
		return fn(ctx, tx)
	}
}

func TestPlaceBidStorageFailureReturnsError(t *testing.T) {
	insertErr := errors.New("disk full")
	pointerErr := errors.New("constraint violation")

	tests := []struct {
		name    string
		setupTx func(tx *mocks.MockAuctionTx)
		wantErr error
	}{
		{
			name: "insert fails",
			setupTx: func(tx *mocks.MockAuctionTx) {
				tx.EXPECT().InsertBid(gomock.Any(), gomock.Any()).Return(insertErr)
			},
			wantErr: insertErr,
		},
		{
			name: "pointer update fails",
			setupTx: func(tx *mocks.MockAuctionTx) {
				tx.EXPECT().InsertBid(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().SetHighestBid(gomock.Any(), gomock.Any()).Return(pointerErr)
			},
			wantErr: pointerErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockAuctionStore(ctrl)
			tx := mocks.NewMockAuctionTx(ctrl)
			pub := mocks.NewMockEventPublisher(ctrl)

			tx.EXPECT().Auction().Return(openAuction("a-1"))
			tx.EXPECT().LeadingBid(gomock.Any()).Return(nil, nil)
			tt.setupTx(tx)
			store.EXPECT().WithAuctionLock(gomock.Any(), "a-1", gomock.Any()).DoAndReturn(runLocked(tx))

			acceptor := NewBidAcceptor(store, pub, logger.NewNop())
			acceptor.SetClock(func() time.Time { return t0.Add(time.Minute) })

			result, err := acceptor.PlaceBid(context.Background(), PlaceBidRequest{
				Auction: domain.AuctionRef{AuctionID: "a-1"},
				Bidder:  domain.BidderInfo{UserID: "u1", Username: "alice"},
				Amount:  dec("150"),
			})
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, result)
		})
	}
}

func TestPlaceBidTransientLockFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockAuctionStore(ctrl)
	store.EXPECT().WithAuctionLock(gomock.Any(), "a-1", gomock.Any()).
		Return(fmt.Errorf("lock auction: %w: lock wait timeout", domain.ErrTransient))

	acceptor := NewBidAcceptor(store, nil, logger.NewNop())
	result, err := acceptor.PlaceBid(context.Background(), PlaceBidRequest{
		Auction: domain.AuctionRef{AuctionID: "a-1"},
		Bidder:  domain.BidderInfo{UserID: "u1", Username: "alice"},
		Amount:  dec("150"),
	})
	require.Nil(t, result)
	require.True(t, domain.IsTransient(err))
}

func TestPlaceBidPublishFailureKeepsAcceptance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockAuctionStore(ctrl)
	tx := mocks.NewMockAuctionTx(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)

	leading := &domain.Bid{ID: "b-0", AuctionID: "a-1", Amount: dec("120")}
	tx.EXPECT().Auction().Return(openAuction("a-1"))
	tx.EXPECT().LeadingBid(gomock.Any()).Return(leading, nil)
	tx.EXPECT().InsertBid(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().SetHighestBid(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().WithAuctionLock(gomock.Any(), "a-1", gomock.Any()).DoAndReturn(runLocked(tx))
	pub.EXPECT().PublishAuctionEvent(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	acceptor := NewBidAcceptor(store, pub, logger.NewNop())
	acceptor.SetClock(func() time.Time { return t0.Add(time.Minute) })

	result, err := acceptor.PlaceBid(context.Background(), PlaceBidRequest{
		Auction: domain.AuctionRef{AuctionID: "a-1"},
		Bidder:  domain.BidderInfo{UserID: "u1", Username: "alice"},
		Amount:  dec("120.01"),
	})
	require.NoError(t, err)
	accepted := requireAccepted(t, result)
	require.True(t, dec("120.01").Equal(accepted.Bid.Amount))
}

func TestPlaceBidHistoryIsAppendOnly(t *testing.T) {
	h := newHarness(t)
	h.clock.step = time.Microsecond
	auction := h.startAuction(t, "cat-1", "1", time.Hour)

	var ids []string
	for _, amount := range []string{"2", "3", "4"} {
		ids = append(ids, requireAccepted(t, h.bid(t, auction.ID, "u1", amount)).Bid.ID)
	}

	history, err := h.query.GetBidHistory(context.Background(), domain.AuctionRef{AuctionID: auction.ID})
	require.NoError(t, err)

	got := make([]string, len(history))
	for i, b := range history {
		got[i] = b.ID
	}
	require.Equal(t, ids, got)
	require.True(t, sort.SliceIsSorted(history, func(i, j int) bool {
		return history[i].CreatedAt.Before(history[j].CreatedAt)
	}))
}

func TestAcceptedBidReportsOutbidLeader(t *testing.T) {
	h := newHarness(t)
	auction := h.startAuction(t, "cat-1", "10", time.Hour)

	first := requireAccepted(t, h.bid(t, auction.ID, "u1", "11"))
	require.Nil(t, first.Outbid)

	second := requireAccepted(t, h.bid(t, auction.ID, "u2", "12"))
	require.Equal(t, first.Bid.ID, second.Outbid.ID)

	// raising your own bid does not notify yourself
	requireAccepted(t, h.bid(t, auction.ID, "u2", "13"))

	events := h.events.ofType(domain.EventBidAccepted)
	require.Len(t, events, 3)
	require.Empty(t, events[0].OutbidUserID)
	require.Equal(t, "u1", events[1].OutbidUserID)
	require.Empty(t, events[2].OutbidUserID)
}
