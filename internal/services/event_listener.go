package services

import (
	"context"
	"fmt"

	"auction-core/internal/domain"
	"auction-core/pkg/logger"
)

// EventListener relays auction events to websocket watchers.
type EventListener struct {
	broadcaster       domain.AuctionBroadcaster
	notifier          domain.UserNotifier
	connectionManager domain.ConnectionManager
	log               logger.Logger
}

func NewEventListener(connectionManager domain.ConnectionManager, broadcaster domain.AuctionBroadcaster,
	notifier domain.UserNotifier, log logger.Logger) *EventListener {
	return &EventListener{
		broadcaster:       broadcaster,
		notifier:          notifier,
		connectionManager: connectionManager,
		log:               log,
	}
}

// Start blocks until ctx is cancelled or the subscription fails.
func (el *EventListener) Start(ctx context.Context, subscriber domain.EventSubscriber) error {
	el.log.Info("Starting event listener")
	return subscriber.SubscribeToAuctionEvents(ctx, el.HandleEvent)
}

func (el *EventListener) HandleEvent(event *domain.AuctionEvent) error {
	el.log.Debug("Handling auction event", "type", event.Type, "auction_id", event.AuctionID)

	switch event.Type {
	case domain.EventBidAccepted:
		return el.handleBidAccepted(event)
	case domain.EventAuctionClosed:
		return el.handleAuctionClosed(event)
	case domain.EventAuctionStarted:
		// nobody can be watching an auction that did not exist yet
		return nil
	}

	return fmt.Errorf("unknown event type %q", event.Type)
}

func (el *EventListener) handleBidAccepted(event *domain.AuctionEvent) error {
	ctx := context.Background()
	amount := event.Amount.StringFixed(domain.AmountScale)

	err := el.broadcaster.BroadcastToAuction(ctx, event.AuctionID, map[string]interface{}{
		"type":           "bid_update",
		"auction_id":     event.AuctionID,
		"bid_id":         event.BidID,
		"current_bid":    amount,
		"current_winner": event.UserID,
		"timestamp":      event.Timestamp,
	})
	if err != nil {
		return err
	}

	if event.OutbidUserID == "" || el.notifier == nil {
		return nil
	}
	if err := el.notifier.NotifyUser(ctx, event.OutbidUserID, map[string]interface{}{
		"type":        "outbid",
		"auction_id":  event.AuctionID,
		"current_bid": amount,
		"timestamp":   event.Timestamp,
	}); err != nil {
		el.log.Warn("Failed to notify outbid user", "user_id", event.OutbidUserID,
			"auction_id", event.AuctionID, "error", err)
	}
	return nil
}

func (el *EventListener) handleAuctionClosed(event *domain.AuctionEvent) error {
	message := map[string]interface{}{
		"type":       "auction_closed",
		"auction_id": event.AuctionID,
		"timestamp":  event.Timestamp,
	}
	if event.BidID != "" {
		message["winning_bid_id"] = event.BidID
		message["winner"] = event.UserID
		message["amount"] = event.Amount.StringFixed(domain.AmountScale)
	}

	if err := el.broadcaster.BroadcastToAuction(context.Background(), event.AuctionID, message); err != nil {
		el.log.Error("Failed to broadcast auction closed event", "auction_id", event.AuctionID, "error", err)
		return err
	}

	if err := el.connectionManager.CloseAndUnregisterConnections(event.AuctionID); err != nil {
		el.log.Error("Failed to finalize connections for auction", "auction_id",
			event.AuctionID, "error", err)
		return err
	}
	return nil
}
