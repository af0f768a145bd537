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

type StartAuctionRequest struct {
	CatalogueID    string
	StartingAmount decimal.Decimal
	EndTime        time.Time
}

// LifecycleManager owns the OPEN -> CLOSED transition. Every close takes the
// same per-auction lock as bid placement, so a close and a bid on one auction
// are always serialized.
type LifecycleManager struct {
	store    domain.AuctionStore
	eventPub domain.EventPublisher
	clock    clock
	log      logger.Logger
}

func NewLifecycleManager(store domain.AuctionStore, eventPub domain.EventPublisher, log logger.Logger) *LifecycleManager {
	return &LifecycleManager{
		store:    store,
		eventPub: eventPub,
		clock:    time.Now,
		log:      log,
	}
}

func (m *LifecycleManager) SetClock(now func() time.Time) {
	m.clock = now
}

func (m *LifecycleManager) StartAuction(ctx context.Context, req StartAuctionRequest) (*domain.Auction, error) {
	now := m.clock.now()

	switch {
	case req.CatalogueID == "":
		return nil, domain.NewValidationError("catalogue_id", "is required")
	case !req.StartingAmount.IsPositive():
		return nil, domain.NewValidationError("starting_amount", "must be positive")
	case !domain.ValidAmount(req.StartingAmount):
		return nil, domain.NewValidationError("starting_amount",
			fmt.Sprintf("may have at most %d decimal places", domain.AmountScale))
	}

	endTime := domain.NormalizeTime(req.EndTime)
	if !endTime.After(now) {
		return nil, domain.NewValidationError("end_time", "must be in the future")
	}

	auction := &domain.Auction{
		ID:             uuid.New().String(),
		CatalogueID:    req.CatalogueID,
		StartTime:      now,
		EndTime:        endTime,
		StartingAmount: req.StartingAmount,
		Status:         domain.AuctionOpen,
		CreatedAt:      now,
	}

	if err := m.store.CreateAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}

	m.log.Info("Auction started", "auction_id", auction.ID, "catalogue_id", auction.CatalogueID,
		"end_time", auction.EndTime)

	m.publish(ctx, &domain.AuctionEvent{
		Type:        domain.EventAuctionStarted,
		AuctionID:   auction.ID,
		CatalogueID: auction.CatalogueID,
		Amount:      auction.StartingAmount,
		Timestamp:   now,
	})

	return auction, nil
}

// CloseIfExpired closes the auction once its deadline has passed. Calling it
// again reports CloseAlreadyClosed without touching the record.
func (m *LifecycleManager) CloseIfExpired(ctx context.Context, ref domain.AuctionRef) (domain.CloseResult, error) {
	return m.closeRef(ctx, ref, false)
}

// CloseAuction is the external close signal: it closes an OPEN auction even
// before its deadline.
func (m *LifecycleManager) CloseAuction(ctx context.Context, ref domain.AuctionRef) (domain.CloseResult, error) {
	return m.closeRef(ctx, ref, true)
}

// CloseClaimed closes an auction whose lock the caller already holds inside
// tx. Nothing is published; call Announce once the transaction has committed.
func (m *LifecycleManager) CloseClaimed(ctx context.Context, tx domain.AuctionTx) (domain.CloseResult, error) {
	return m.closeLocked(ctx, tx, false)
}

// Announce publishes auction_closed for a committed close.
func (m *LifecycleManager) Announce(ctx context.Context, result domain.CloseResult) {
	if result.Outcome != domain.CloseClosed {
		return
	}

	event := &domain.AuctionEvent{
		Type:        domain.EventAuctionClosed,
		AuctionID:   result.Auction.ID,
		CatalogueID: result.Auction.CatalogueID,
		Amount:      result.Auction.StartingAmount,
		Timestamp:   m.clock.now(),
	}
	if result.Auction.ClosedAt != nil {
		event.Timestamp = *result.Auction.ClosedAt
	}
	if result.Winner != nil {
		event.BidID = result.Winner.ID
		event.UserID = result.Winner.Bidder.UserID
		event.Amount = result.Winner.Amount
	}

	m.publish(ctx, event)
}

func (m *LifecycleManager) closeRef(ctx context.Context, ref domain.AuctionRef, force bool) (domain.CloseResult, error) {
	auctionID, err := resolveAuctionID(ctx, m.store, ref)
	if err != nil {
		return domain.CloseResult{}, fmt.Errorf("resolve auction %s: %w", ref, err)
	}

	var result domain.CloseResult
	err = m.store.WithAuctionLock(ctx, auctionID, func(ctx context.Context, tx domain.AuctionTx) error {
		var err error
		result, err = m.closeLocked(ctx, tx, force)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAuctionNotFound) {
			m.log.Error("Failed to close auction", "auction_id", auctionID, "error", err)
		}
		return domain.CloseResult{}, fmt.Errorf("close auction %s: %w", auctionID, err)
	}

	if result.Outcome == domain.CloseClosed {
		m.logClosed(result, force)
		m.Announce(ctx, result)
	}
	return result, nil
}

func (m *LifecycleManager) closeLocked(ctx context.Context, tx domain.AuctionTx, force bool) (domain.CloseResult, error) {
	auction := tx.Auction()

	if auction.Status == domain.AuctionClosed {
		winner, err := tx.LeadingBid(ctx)
		if err != nil {
			return domain.CloseResult{}, err
		}
		return domain.CloseResult{Outcome: domain.CloseAlreadyClosed, Auction: auction, Winner: winner}, nil
	}

	now := m.clock.now()
	if !force && !auction.ExpiredAt(now) {
		return domain.CloseResult{Outcome: domain.CloseNotYetExpired, Auction: auction}, nil
	}

	// The winner is frozen here: whatever the pointer resolves to under this lock.
	winner, err := tx.LeadingBid(ctx)
	if err != nil {
		return domain.CloseResult{}, err
	}

	if err := tx.MarkClosed(ctx, now); err != nil {
		return domain.CloseResult{}, err
	}

	return domain.CloseResult{Outcome: domain.CloseClosed, Auction: tx.Auction(), Winner: winner}, nil
}

func (m *LifecycleManager) logClosed(result domain.CloseResult, manual bool) {
	fields := []interface{}{"auction_id", result.Auction.ID, "manual", manual}
	if result.Winner != nil {
		fields = append(fields, "winner_bid_id", result.Winner.ID,
			"amount", result.Winner.Amount.StringFixed(domain.AmountScale))
	}
	m.log.Info("Auction closed", fields...)
}

func (m *LifecycleManager) publish(ctx context.Context, event *domain.AuctionEvent) {
	if m.eventPub == nil {
		return
	}
	if err := m.eventPub.PublishAuctionEvent(ctx, event); err != nil {
		m.log.Error("Failed to publish auction event", "type", event.Type,
			"auction_id", event.AuctionID, "error", err)
	}
}
