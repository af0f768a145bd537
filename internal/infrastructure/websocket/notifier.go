package websocket

import (
	"context"

	"auction-core/internal/domain"
)

// Notifier adapts a ConnectionManager to the context-aware notification
// interfaces the event listener depends on.
type Notifier struct {
	connManager domain.ConnectionManager
}

var (
	_ domain.UserNotifier       = (*Notifier)(nil)
	_ domain.AuctionBroadcaster = (*Notifier)(nil)
)

func NewNotifier(connManager domain.ConnectionManager) *Notifier {
	return &Notifier{connManager: connManager}
}

func (n *Notifier) NotifyUser(ctx context.Context, userID string, message interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.connManager.NotifyUser(userID, message)
}

func (n *Notifier) BroadcastToAuction(ctx context.Context, auctionID string, message interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.connManager.BroadcastToAuction(auctionID, message)
}
