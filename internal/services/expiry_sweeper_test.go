package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-core/internal/domain"
	"auction-core/internal/domain/mocks"
	"auction-core/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func newSweeper(h *harness, batchSize int) *ExpirySweeper {
	return NewExpirySweeper(h.store, h.lifecycle, "@every 1s", batchSize, logger.NewNop())
}

func TestSweepOnceClosesExpiredAuctions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	expired := h.startAuction(t, "cat-1", "100", time.Minute)
	winner := requireAccepted(t, h.bid(t, expired.ID, "u1", "101"))
	open := h.startAuction(t, "cat-2", "100", time.Hour)
	h.clock.Advance(2 * time.Minute)

	sweeper := newSweeper(h, 10)
	report, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, SweepReport{Claimed: 1, Closed: 1}, report)

	got, err := h.store.GetAuction(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AuctionClosed, got.Status)
	require.Equal(t, winner.Bid.ID, *got.HighestBidID)

	stillOpen, err := h.store.GetAuction(ctx, open.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AuctionOpen, stillOpen.Status)

	closedEvents := h.events.ofType(domain.EventAuctionClosed)
	require.Len(t, closedEvents, 1)
	require.Equal(t, winner.Bid.ID, closedEvents[0].BidID)

	// a second pass finds nothing to do and a direct close is a no-op
	report, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, SweepReport{}, report)

	result, err := h.lifecycle.CloseIfExpired(ctx, domain.AuctionRef{AuctionID: expired.ID})
	require.NoError(t, err)
	require.Equal(t, domain.CloseAlreadyClosed, result.Outcome)
	require.Len(t, h.events.ofType(domain.EventAuctionClosed), 1)
}

func TestSweepOnceDrainsBacklog(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 10; i++ {
		h.startAuction(t, fmt.Sprintf("cat-%d", i), "1", time.Minute)
	}
	h.clock.Advance(time.Hour)

	report, err := newSweeper(h, 3).SweepOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, report.Claimed)
	require.Equal(t, 10, report.Closed)
}

func TestConcurrentSweepersCloseEachAuctionOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	const auctions = 200
	for i := 0; i < auctions; i++ {
		h.startAuction(t, fmt.Sprintf("cat-%d", i), "1", time.Minute)
	}
	h.clock.Advance(time.Hour)

	sweepers := []*ExpirySweeper{newSweeper(h, 7), newSweeper(h, 7)}
	reports := make([]SweepReport, len(sweepers))

	var wg sync.WaitGroup
	for i, s := range sweepers {
		wg.Add(1)
		go func(i int, s *ExpirySweeper) {
			defer wg.Done()
			for {
				report, err := s.SweepOnce(ctx)
				require.NoError(t, err)
				reports[i].add(report)
				if report.Claimed == 0 {
					return
				}
			}
		}(i, s)
	}
	wg.Wait()

	total := SweepReport{}
	for _, r := range reports {
		total.add(r)
	}
	require.Equal(t, auctions, total.Closed)
	require.Zero(t, total.Failed)
	require.Zero(t, total.AlreadyClosed)

	seen := map[string]bool{}
	for _, e := range h.events.ofType(domain.EventAuctionClosed) {
		require.False(t, seen[e.AuctionID], "auction %s closed twice", e.AuctionID)
		seen[e.AuctionID] = true
	}
	require.Len(t, seen, auctions)
}

func TestSweepSkipsAuctionLockedByBidder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	busy := h.startAuction(t, "cat-1", "1", time.Minute)
	free := h.startAuction(t, "cat-2", "1", time.Minute)
	h.clock.Advance(time.Hour)

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.store.WithAuctionLock(ctx, busy.ID, func(ctx context.Context, tx domain.AuctionTx) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	start := time.Now()
	report, err := newSweeper(h, 10).SweepOnce(ctx)
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second, "sweeper must not wait on a held lock")
	require.Equal(t, 1, report.Closed)

	close(release)
	<-done

	got, err := h.store.GetAuction(ctx, free.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AuctionClosed, got.Status)

	got, err = h.store.GetAuction(ctx, busy.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AuctionOpen, got.Status)

	report, err = newSweeper(h, 10).SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Closed)
}

func TestSweepFailureIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockAuctionStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)
	failing := mocks.NewMockAuctionTx(ctrl)
	healthy := mocks.NewMockAuctionTx(ctrl)
	now := t0.Add(2 * time.Hour)

	failErr := errors.New("write failed")
	failing.EXPECT().Auction().Return(openAuction("a-1")).AnyTimes()
	failing.EXPECT().LeadingBid(gomock.Any()).Return(nil, nil)
	failing.EXPECT().MarkClosed(gomock.Any(), now).Return(failErr)

	closed := openAuction("a-2")
	closed.Status = domain.AuctionClosed
	closed.ClosedAt = &now
	gomock.InOrder(
		healthy.EXPECT().Auction().Return(openAuction("a-2")),
		healthy.EXPECT().Auction().Return(closed),
	)
	healthy.EXPECT().LeadingBid(gomock.Any()).Return(nil, nil)
	healthy.EXPECT().MarkClosed(gomock.Any(), now).Return(nil)

	store.EXPECT().ClaimExpired(gomock.Any(), now, 10, gomock.Any()).DoAndReturn(
		func(ctx context.Context, now time.Time, limit int, fn func(context.Context, domain.AuctionTx) error) (int, error) {
			for _, tx := range []domain.AuctionTx{failing, healthy} {
				_ = fn(ctx, tx)
			}
			return 2, nil
		})
	pub.EXPECT().PublishAuctionEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, event *domain.AuctionEvent) error {
			require.Equal(t, domain.EventAuctionClosed, event.Type)
			require.Equal(t, "a-2", event.AuctionID)
			return nil
		})

	lifecycle := NewLifecycleManager(store, pub, logger.NewNop())
	lifecycle.SetClock(func() time.Time { return now })
	sweeper := NewExpirySweeper(store, lifecycle, "@every 10s", 10, logger.NewNop())

	report, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, SweepReport{Claimed: 2, Closed: 1, Failed: 1}, report)
}

func TestSweepClaimFailureReportsNothingClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockAuctionStore(ctrl)
	store.EXPECT().ClaimExpired(gomock.Any(), gomock.Any(), 5, gomock.Any()).
		Return(0, fmt.Errorf("claim: %w: deadlock", domain.ErrTransient))

	lifecycle := NewLifecycleManager(store, nil, logger.NewNop())
	sweeper := NewExpirySweeper(store, lifecycle, "@every 10s", 5, logger.NewNop())

	report, err := sweeper.SweepOnce(context.Background())
	require.True(t, domain.IsTransient(err))
	require.Equal(t, SweepReport{}, report)
}

func TestSweeperStartStop(t *testing.T) {
	h := newHarness(t)
	auction := h.startAuction(t, "cat-1", "1", time.Minute)
	h.clock.Advance(time.Hour)

	sweeper := newSweeper(h, 10)
	require.NoError(t, sweeper.Start(context.Background()))
	require.Error(t, sweeper.Start(context.Background()))

	require.Eventually(t, func() bool {
		got, err := h.store.GetAuction(context.Background(), auction.ID)
		return err == nil && got.Status == domain.AuctionClosed
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, sweeper.Stop())
}

func TestSweeperRejectsBadSchedule(t *testing.T) {
	h := newHarness(t)
	sweeper := NewExpirySweeper(h.store, h.lifecycle, "whenever", 10, logger.NewNop())
	require.Error(t, sweeper.Start(context.Background()))
}
