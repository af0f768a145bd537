package services

import (
	"context"
	"fmt"
	"time"

	"auction-core/internal/domain"

	"github.com/shopspring/decimal"
)

type AuctionStatusView struct {
	Auction       domain.Auction
	CurrentAmount decimal.Decimal
	LeadingBid    *domain.Bid
	Remaining     time.Duration
}

type WinnerView struct {
	Auction domain.Auction
	Bid     domain.Bid
}

// QueryService answers read-only questions from committed state. Nothing is
// cached; every value is derived from the store on each call.
type QueryService struct {
	store domain.AuctionStore
	clock clock
}

func NewQueryService(store domain.AuctionStore) *QueryService {
	return &QueryService{store: store, clock: time.Now}
}

func (q *QueryService) SetClock(now func() time.Time) {
	q.clock = now
}

func (q *QueryService) GetAuctionStatus(ctx context.Context, ref domain.AuctionRef) (*AuctionStatusView, error) {
	auction, err := resolveAuction(ctx, q.store, ref)
	if err != nil {
		return nil, fmt.Errorf("get auction status %s: %w", ref, err)
	}

	leading, err := q.leadingBid(ctx, auction)
	if err != nil {
		return nil, err
	}

	view := &AuctionStatusView{
		Auction:       *auction,
		CurrentAmount: auction.StartingAmount,
		LeadingBid:    leading,
	}
	if leading != nil {
		view.CurrentAmount = leading.Amount
	}
	if auction.Status == domain.AuctionOpen {
		if remaining := auction.EndTime.Sub(q.clock.now()); remaining > 0 {
			view.Remaining = remaining
		}
	}
	return view, nil
}

func (q *QueryService) GetAuctionEnd(ctx context.Context, ref domain.AuctionRef) (time.Time, error) {
	auction, err := resolveAuction(ctx, q.store, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("get auction end %s: %w", ref, err)
	}
	return auction.EndTime, nil
}

func (q *QueryService) GetBidHistory(ctx context.Context, ref domain.AuctionRef) ([]*domain.Bid, error) {
	auction, err := resolveAuction(ctx, q.store, ref)
	if err != nil {
		return nil, fmt.Errorf("get bid history %s: %w", ref, err)
	}

	bids, err := q.store.ListBids(ctx, auction.ID)
	if err != nil {
		return nil, fmt.Errorf("get bid history %s: %w", auction.ID, err)
	}
	return bids, nil
}

// GetAuctionWinner reports the bid frozen by the close. It returns
// domain.ErrAuctionNotClosed while bidding is open and domain.ErrNoBids when
// the auction closed without bids.
func (q *QueryService) GetAuctionWinner(ctx context.Context, ref domain.AuctionRef) (*WinnerView, error) {
	auction, err := resolveAuction(ctx, q.store, ref)
	if err != nil {
		return nil, fmt.Errorf("get auction winner %s: %w", ref, err)
	}

	if auction.Status != domain.AuctionClosed {
		return nil, domain.ErrAuctionNotClosed
	}

	leading, err := q.leadingBid(ctx, auction)
	if err != nil {
		return nil, err
	}
	if leading == nil {
		return nil, domain.ErrNoBids
	}

	return &WinnerView{Auction: *auction, Bid: *leading}, nil
}

func (q *QueryService) leadingBid(ctx context.Context, auction *domain.Auction) (*domain.Bid, error) {
	if auction.HighestBidID == nil {
		return nil, nil
	}
	bid, err := q.store.GetBid(ctx, *auction.HighestBidID)
	if err != nil {
		return nil, fmt.Errorf("leading bid of auction %s: %w", auction.ID, err)
	}
	return bid, nil
}
