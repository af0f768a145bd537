package domain

import "github.com/shopspring/decimal"

// PlaceBidResult is either *BidAccepted or *BidRejected.
type PlaceBidResult interface {
	placeBidResult()
}

type BidAccepted struct {
	Bid Bid
	// Outbid is the leader this bid displaced, nil for the first bid.
	Outbid *Bid
}

type BidRejected struct {
	Reason RejectReason
	Detail string
	// CurrentAmount is the amount a new bid had to beat, when known.
	CurrentAmount decimal.Decimal
}

func (*BidAccepted) placeBidResult() {}
func (*BidRejected) placeBidResult() {}

type RejectReason string

const (
	RejectInvalidBid      RejectReason = "invalid_bid"
	RejectAuctionNotFound RejectReason = "auction_not_found"
	RejectAuctionEnded    RejectReason = "auction_ended"
	RejectBidTooLow       RejectReason = "bid_too_low"
)

func (r RejectReason) String() string {
	return string(r)
}

type CloseOutcome int

const (
	CloseClosed CloseOutcome = iota + 1
	CloseAlreadyClosed
	CloseNotYetExpired
)

func (o CloseOutcome) String() string {
	switch o {
	case CloseClosed:
		return "closed"
	case CloseAlreadyClosed:
		return "already_closed"
	case CloseNotYetExpired:
		return "not_yet_expired"
	default:
		return "unknown"
	}
}

type CloseResult struct {
	Outcome CloseOutcome
	Auction Auction
	// Winner is the leading bid frozen by the close, nil when nobody bid.
	Winner *Bid
}
