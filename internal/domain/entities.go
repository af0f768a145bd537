package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits an amount may carry.
const AmountScale = 2

type Auction struct {
	ID             string
	CatalogueID    string
	StartTime      time.Time
	EndTime        time.Time
	StartingAmount decimal.Decimal
	HighestBidID   *string
	Status         AuctionStatus
	ClosedAt       *time.Time
	CreatedAt      time.Time
}

// AcceptsBidsAt reports whether the auction is still open for bidding at now.
func (a *Auction) AcceptsBidsAt(now time.Time) bool {
	return a.Status == AuctionOpen && now.Before(a.EndTime)
}

// ExpiredAt reports whether the deadline has been reached at now.
func (a *Auction) ExpiredAt(now time.Time) bool {
	return !now.Before(a.EndTime)
}

type AuctionStatus string

const (
	AuctionOpen   AuctionStatus = "OPEN"
	AuctionClosed AuctionStatus = "CLOSED"
)

func (s AuctionStatus) String() string {
	return string(s)
}

func (s AuctionStatus) Valid() bool {
	return s == AuctionOpen || s == AuctionClosed
}

type BidderInfo struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type Bid struct {
	ID        string
	AuctionID string
	Bidder    BidderInfo
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// AuctionRef addresses an auction directly or through its catalogue item.
// AuctionID wins when both are set.
type AuctionRef struct {
	AuctionID   string
	CatalogueID string
}

func (r AuctionRef) IsZero() bool {
	return r.AuctionID == "" && r.CatalogueID == ""
}

func (r AuctionRef) String() string {
	if r.AuctionID != "" {
		return r.AuctionID
	}
	return "catalogue:" + r.CatalogueID
}

type AuctionEvent struct {
	Type        AuctionEventType `json:"type"`
	AuctionID   string           `json:"auction_id"`
	CatalogueID string           `json:"catalogue_id,omitempty"`
	BidID       string           `json:"bid_id,omitempty"`
	UserID      string           `json:"user_id,omitempty"`
	// OutbidUserID is set on bid_accepted when another bidder lost the lead.
	OutbidUserID string          `json:"outbid_user_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
}

type AuctionEventType string

const (
	EventAuctionStarted AuctionEventType = "auction_started"
	EventBidAccepted    AuctionEventType = "bid_accepted"
	EventAuctionClosed  AuctionEventType = "auction_closed"
)

// NormalizeTime brings a timestamp to the precision the stores persist.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// ValidAmount reports whether amount is positive and within AmountScale.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(AmountScale))
}
