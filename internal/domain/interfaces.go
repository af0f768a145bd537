package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// AuctionStore persists auctions and bids. Every mutation of an existing
// auction happens inside WithAuctionLock or ClaimExpired, which hold the
// auction's exclusive record lock for the duration of the callback.
type AuctionStore interface {
	CreateAuction(ctx context.Context, auction *Auction) error
	GetAuction(ctx context.Context, auctionID string) (*Auction, error)
	// FindAuctionByCatalogue returns the most recently created auction for the item.
	FindAuctionByCatalogue(ctx context.Context, catalogueID string) (*Auction, error)
	GetBid(ctx context.Context, bidID string) (*Bid, error)
	ListBids(ctx context.Context, auctionID string) ([]*Bid, error)

	// WithAuctionLock blocks until the auction's lock is held, then runs fn in
	// the same transaction. A nil return commits, anything else rolls back.
	WithAuctionLock(ctx context.Context, auctionID string, fn func(ctx context.Context, tx AuctionTx) error) error

	// ClaimExpired locks up to limit OPEN auctions with end time at or before
	// now, skipping any that another transaction holds, and runs fn once per
	// claimed auction. An error from fn undoes that auction's changes only.
	// It returns the number of auctions claimed.
	ClaimExpired(ctx context.Context, now time.Time, limit int, fn func(ctx context.Context, tx AuctionTx) error) (int, error)
}

// AuctionTx is one locked auction inside a store transaction.
type AuctionTx interface {
	Auction() Auction
	// LeadingBid resolves HighestBidID, nil when there are no bids.
	LeadingBid(ctx context.Context) (*Bid, error)
	InsertBid(ctx context.Context, bid *Bid) error
	SetHighestBid(ctx context.Context, bidID string) error
	MarkClosed(ctx context.Context, closedAt time.Time) error
}

// Event interfaces
type EventPublisher interface {
	PublishAuctionEvent(ctx context.Context, event *AuctionEvent) error
}

type EventSubscriber interface {
	SubscribeToAuctionEvents(ctx context.Context, handler EventHandler) error
}

type EventHandler func(event *AuctionEvent) error

// Notification interfaces
type UserNotifier interface {
	NotifyUser(ctx context.Context, userID string, message interface{}) error
}

type AuctionBroadcaster interface {
	BroadcastToAuction(ctx context.Context, auctionID string, message interface{}) error
}

// WebSocket interfaces
type WebSocketConnection interface {
	Send(message interface{}) error
	Close() error
	UserID() string
	AuctionID() string
}

type ConnectionManager interface {
	RegisterConnection(userID, auctionID string, conn WebSocketConnection) error
	UnregisterConnection(userID, auctionID string) error
	GetConnectionsForAuction(auctionID string) []WebSocketConnection
	GetConnectionsForUser(userID string) []WebSocketConnection
	BroadcastToAuction(auctionID string, message interface{}) error
	NotifyUser(userID string, message interface{}) error
	CloseAndUnregisterConnections(auctionID string) error
}
