package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-core/internal/domain"
	"auction-core/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlaceBidRequest struct {
	Auction domain.AuctionRef
	Bidder  domain.BidderInfo
	Amount  decimal.Decimal
}

// BidAcceptor accepts a bid only while holding the auction's row lock, so the
// leading amount can only ever increase in commit order.
type BidAcceptor struct {
	store    domain.AuctionStore
	eventPub domain.EventPublisher
	clock    clock
	log      logger.Logger
}

func NewBidAcceptor(store domain.AuctionStore, eventPub domain.EventPublisher, log logger.Logger) *BidAcceptor {
	return &BidAcceptor{
		store:    store,
		eventPub: eventPub,
		clock:    time.Now,
		log:      log,
	}
}

func (s *BidAcceptor) SetClock(now func() time.Time) {
	s.clock = now
}

// PlaceBid returns *domain.BidAccepted or *domain.BidRejected. The error is
// non-nil only for storage failures, in which case nothing was written.
func (s *BidAcceptor) PlaceBid(ctx context.Context, req PlaceBidRequest) (domain.PlaceBidResult, error) {
	if rejected := validateBid(req); rejected != nil {
		return rejected, nil
	}

	auctionID, err := resolveAuctionID(ctx, s.store, req.Auction)
	if errors.Is(err, domain.ErrAuctionNotFound) {
		return notFound(req.Auction), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve auction %s: %w", req.Auction, err)
	}

	var result domain.PlaceBidResult
	err = s.store.WithAuctionLock(ctx, auctionID, func(ctx context.Context, tx domain.AuctionTx) error {
		var err error
		result, err = s.placeLocked(ctx, tx, req)
		return err
	})
	if errors.Is(err, domain.ErrAuctionNotFound) {
		return notFound(req.Auction), nil
	}
	if err != nil {
		s.log.Error("Failed to place bid", "auction_id", auctionID, "user_id", req.Bidder.UserID, "error", err)
		return nil, fmt.Errorf("place bid on auction %s: %w", auctionID, err)
	}

	switch r := result.(type) {
	case *domain.BidAccepted:
		s.log.Info("Bid accepted", "auction_id", auctionID, "bid_id", r.Bid.ID,
			"user_id", r.Bid.Bidder.UserID, "amount", r.Bid.Amount.StringFixed(domain.AmountScale))
		s.publishAccepted(ctx, r)
	case *domain.BidRejected:
		s.log.Debug("Bid rejected", "auction_id", auctionID, "user_id", req.Bidder.UserID,
			"reason", r.Reason, "amount", req.Amount.String())
	}

	return result, nil
}

func (s *BidAcceptor) placeLocked(ctx context.Context, tx domain.AuctionTx, req PlaceBidRequest) (domain.PlaceBidResult, error) {
	auction := tx.Auction()
	now := s.clock.now()

	// The deadline may have passed while we waited for the lock.
	if !auction.AcceptsBidsAt(now) {
		return &domain.BidRejected{
			Reason: domain.RejectAuctionEnded,
			Detail: "auction has ended",
		}, nil
	}

	leading, err := tx.LeadingBid(ctx)
	if err != nil {
		return nil, err
	}

	// The starting amount acts as a bid nobody can tie.
	current := auction.StartingAmount
	if leading != nil {
		current = leading.Amount
	}
	if req.Amount.LessThanOrEqual(current) {
		return &domain.BidRejected{
			Reason:        domain.RejectBidTooLow,
			Detail:        fmt.Sprintf("bid must be greater than %s", current.StringFixed(domain.AmountScale)),
			CurrentAmount: current,
		}, nil
	}

	bid := &domain.Bid{
		ID:        uuid.New().String(),
		AuctionID: auction.ID,
		Bidder:    req.Bidder,
		Amount:    req.Amount,
		CreatedAt: now,
	}
	if err := tx.InsertBid(ctx, bid); err != nil {
		return nil, err
	}
	if err := tx.SetHighestBid(ctx, bid.ID); err != nil {
		return nil, err
	}

	return &domain.BidAccepted{Bid: *bid, Outbid: leading}, nil
}

func (s *BidAcceptor) publishAccepted(ctx context.Context, accepted *domain.BidAccepted) {
	if s.eventPub == nil {
		return
	}

	bid := &accepted.Bid

	event := &domain.AuctionEvent{
		Type:      domain.EventBidAccepted,
		AuctionID: bid.AuctionID,
		BidID:     bid.ID,
		UserID:    bid.Bidder.UserID,
		Amount:    bid.Amount,
		Timestamp: bid.CreatedAt,
	}
	if accepted.Outbid != nil && accepted.Outbid.Bidder.UserID != bid.Bidder.UserID {
		event.OutbidUserID = accepted.Outbid.Bidder.UserID
	}
	if err := s.eventPub.PublishAuctionEvent(ctx, event); err != nil {
		s.log.Error("Failed to publish bid event", "auction_id", bid.AuctionID, "bid_id", bid.ID, "error", err)
	}
}

func validateBid(req PlaceBidRequest) *domain.BidRejected {
	invalid := func(detail string) *domain.BidRejected {
		return &domain.BidRejected{Reason: domain.RejectInvalidBid, Detail: detail}
	}

	switch {
	case req.Auction.IsZero():
		return invalid("auction id or catalogue id is required")
	case req.Bidder.UserID == "":
		return invalid("user id is required")
	case req.Bidder.Username == "":
		return invalid("username is required")
	case !req.Amount.IsPositive():
		return invalid("amount must be positive")
	case !domain.ValidAmount(req.Amount):
		return invalid(fmt.Sprintf("amount may have at most %d decimal places", domain.AmountScale))
	}
	return nil
}

func notFound(ref domain.AuctionRef) *domain.BidRejected {
	return &domain.BidRejected{
		Reason: domain.RejectAuctionNotFound,
		Detail: fmt.Sprintf("auction %s not found", ref),
	}
}
