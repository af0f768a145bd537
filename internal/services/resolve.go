package services

import (
	"context"
	"time"

	"auction-core/internal/domain"
)

// resolveAuction looks the auction up without locking it. A catalogue-only
// reference resolves to the most recently created auction for that item.
func resolveAuction(ctx context.Context, store domain.AuctionStore, ref domain.AuctionRef) (*domain.Auction, error) {
	switch {
	case ref.AuctionID != "":
		return store.GetAuction(ctx, ref.AuctionID)
	case ref.CatalogueID != "":
		return store.FindAuctionByCatalogue(ctx, ref.CatalogueID)
	default:
		return nil, domain.NewValidationError("auction", "auction id or catalogue id is required")
	}
}

// resolveAuctionID avoids a read when the reference already names the auction.
func resolveAuctionID(ctx context.Context, store domain.AuctionStore, ref domain.AuctionRef) (string, error) {
	if ref.AuctionID != "" {
		return ref.AuctionID, nil
	}
	auction, err := resolveAuction(ctx, store, ref)
	if err != nil {
		return "", err
	}
	return auction.ID, nil
}

type clock func() time.Time

func (c clock) now() time.Time {
	return domain.NormalizeTime(c())
}
