package postgres

import (
	"time"

	"auction-core/internal/domain"

	"github.com/shopspring/decimal"
)

type auctionModel struct {
	ID             string          `gorm:"type:uuid;primaryKey"`
	CatalogueID    string          `gorm:"type:text;not null;index:idx_auctions_catalogue,priority:1"`
	StartTime      time.Time       `gorm:"type:timestamptz;not null"`
	EndTime        time.Time       `gorm:"type:timestamptz;not null;index:idx_auctions_status_end,priority:2"`
	StartingAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	HighestBidID   *string         `gorm:"type:uuid"`
	Status         string          `gorm:"type:text;not null;index:idx_auctions_status_end,priority:1"`
	ClosedAt       *time.Time      `gorm:"type:timestamptz"`
	CreatedAt      time.Time       `gorm:"type:timestamptz;not null;index:idx_auctions_catalogue,priority:2"`
}

func (auctionModel) TableName() string { return "auctions" }

type bidModel struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	AuctionID string          `gorm:"type:uuid;not null;index:idx_bids_auction_created,priority:1"`
	UserID    string          `gorm:"type:text;not null"`
	Username  string          `gorm:"type:text;not null"`
	FirstName string          `gorm:"type:text;not null;default:''"`
	LastName  string          `gorm:"type:text;not null;default:''"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	CreatedAt time.Time       `gorm:"type:timestamptz;not null;index:idx_bids_auction_created,priority:2"`
}

func (bidModel) TableName() string { return "bids" }

func toAuctionModel(a *domain.Auction) *auctionModel {
	return &auctionModel{
		ID:             a.ID,
		CatalogueID:    a.CatalogueID,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		StartingAmount: a.StartingAmount,
		HighestBidID:   a.HighestBidID,
		Status:         string(a.Status),
		ClosedAt:       a.ClosedAt,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *auctionModel) toDomain() *domain.Auction {
	a := &domain.Auction{
		ID:             m.ID,
		CatalogueID:    m.CatalogueID,
		StartTime:      m.StartTime.UTC(),
		EndTime:        m.EndTime.UTC(),
		StartingAmount: m.StartingAmount,
		HighestBidID:   m.HighestBidID,
		Status:         domain.AuctionStatus(m.Status),
		CreatedAt:      m.CreatedAt.UTC(),
	}
	if m.ClosedAt != nil {
		at := m.ClosedAt.UTC()
		a.ClosedAt = &at
	}
	return a
}

func toBidModel(b *domain.Bid) *bidModel {
	return &bidModel{
		ID:        b.ID,
		AuctionID: b.AuctionID,
		UserID:    b.Bidder.UserID,
		Username:  b.Bidder.Username,
		FirstName: b.Bidder.FirstName,
		LastName:  b.Bidder.LastName,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
	}
}

func (m *bidModel) toDomain() *domain.Bid {
	return &domain.Bid{
		ID:        m.ID,
		AuctionID: m.AuctionID,
		Bidder: domain.BidderInfo{
			UserID:    m.UserID,
			Username:  m.Username,
			FirstName: m.FirstName,
			LastName:  m.LastName,
		},
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt.UTC(),
	}
}
