package handlers

import (
	"time"

	"auction-core/internal/domain"
	"auction-core/internal/services"

	"github.com/shopspring/decimal"
)

type CreateAuctionRequest struct {
	CatalogueID    string          `json:"catalogue_id"`
	StartingAmount decimal.Decimal `json:"starting_amount"`
	EndTime        time.Time       `json:"end_time"`
}

type PlaceBidRequest struct {
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type AuctionResponse struct {
	AuctionID      string     `json:"auction_id"`
	CatalogueID    string     `json:"catalogue_id"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	StartingAmount string     `json:"starting_amount"`
	Status         string     `json:"status"`
	HighestBidID   *string    `json:"highest_bid_id,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

type AuctionStatusResponse struct {
	AuctionResponse
	CurrentAmount    string       `json:"current_amount"`
	LeadingBid       *BidResponse `json:"leading_bid,omitempty"`
	RemainingSeconds int64        `json:"remaining_seconds"`
}

type AuctionEndResponse struct {
	AuctionID string    `json:"auction_id,omitempty"`
	EndTime   time.Time `json:"end_time"`
}

type BidResponse struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type BidRejectedResponse struct {
	Reason        string `json:"reason"`
	CurrentAmount string `json:"current_amount,omitempty"`
}

type CloseResponse struct {
	Outcome string          `json:"outcome"`
	Auction AuctionResponse `json:"auction"`
	Winner  *BidResponse    `json:"winner,omitempty"`
}

func toAuctionResponse(a *domain.Auction) AuctionResponse {
	return AuctionResponse{
		AuctionID:      a.ID,
		CatalogueID:    a.CatalogueID,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		StartingAmount: a.StartingAmount.StringFixed(domain.AmountScale),
		Status:         a.Status.String(),
		HighestBidID:   a.HighestBidID,
		ClosedAt:       a.ClosedAt,
	}
}

func toBidResponse(b *domain.Bid) *BidResponse {
	if b == nil {
		return nil
	}
	return &BidResponse{
		BidID:     b.ID,
		AuctionID: b.AuctionID,
		UserID:    b.Bidder.UserID,
		Username:  b.Bidder.Username,
		FirstName: b.Bidder.FirstName,
		LastName:  b.Bidder.LastName,
		Amount:    b.Amount.StringFixed(domain.AmountScale),
		CreatedAt: b.CreatedAt,
	}
}

func toStatusResponse(v *services.AuctionStatusView) AuctionStatusResponse {
	return AuctionStatusResponse{
		AuctionResponse:  toAuctionResponse(&v.Auction),
		CurrentAmount:    v.CurrentAmount.StringFixed(domain.AmountScale),
		LeadingBid:       toBidResponse(v.LeadingBid),
		RemainingSeconds: int64(v.Remaining / time.Second),
	}
}
