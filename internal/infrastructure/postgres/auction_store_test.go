package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"auction-core/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestStore(t *testing.T) *PostgresAuctionStore {
	t.Helper()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	db, err := Connect(dsn)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	require.NoError(t, Migrate(db))

	store, err := NewPostgresAuctionStore(db, 2*time.Second)
	require.NoError(t, err)
	return store
}

func expiredAuction(now time.Time) *domain.Auction {
	return &domain.Auction{
		ID:             uuid.New().String(),
		CatalogueID:    "cat-" + uuid.New().String()[:8],
		StartTime:      now.Add(-time.Hour),
		EndTime:        now.Add(-time.Second),
		StartingAmount: decimal.RequireFromString("5.00"),
		Status:         domain.AuctionOpen,
		CreatedAt:      now.Add(-time.Hour),
	}
}

func TestConnectEmptyDSN(t *testing.T) {
	_, err := Connect("")
	require.Error(t, err)
}

func TestMigrateNilDB(t *testing.T) {
	require.Error(t, Migrate(nil))
}

func TestNewPostgresAuctionStoreNilDB(t *testing.T) {
	_, err := NewPostgresAuctionStore(nil, time.Second)
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
		notFound  bool
	}{
		{name: "deadlock", err: &pgconn.PgError{Code: codeDeadlockDetected}, transient: true},
		{name: "lock timeout", err: &pgconn.PgError{Code: codeLockNotAvailable}, transient: true},
		{name: "serialization", err: &pgconn.PgError{Code: codeSerializationFailure}, transient: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}},
		{name: "deadline", err: context.DeadlineExceeded, transient: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, notFound: true},
		{name: "plain", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("op", tt.err)
			require.Equal(t, tt.transient, domain.IsTransient(err))
			require.Equal(t, tt.notFound, errors.Is(err, domain.ErrAuctionNotFound))
		})
	}
}

func TestPostgresStoreLockAndClaim(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := domain.NormalizeTime(time.Now())

	auction := expiredAuction(now)
	require.NoError(t, store.CreateAuction(ctx, auction))

	bid := &domain.Bid{
		ID:        uuid.New().String(),
		AuctionID: auction.ID,
		Bidder:    domain.BidderInfo{UserID: "u-1", Username: "bob"},
		Amount:    decimal.RequireFromString("6.00"),
		CreatedAt: now.Add(-time.Minute),
	}
	err := store.WithAuctionLock(ctx, auction.ID, func(ctx context.Context, tx domain.AuctionTx) error {
		if err := tx.InsertBid(ctx, bid); err != nil {
			return err
		}
		return tx.SetHighestBid(ctx, bid.ID)
	})
	require.NoError(t, err)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		seen  = map[string]int{}
		total int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ClaimExpired(ctx, now, 1000, func(ctx context.Context, tx domain.AuctionTx) error {
				if tx.Auction().ID != auction.ID {
					return nil
				}
				mu.Lock()
				seen[tx.Auction().ID]++
				total++
				mu.Unlock()
				return tx.MarkClosed(ctx, now)
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, total, "exactly one claimer closes the auction")

	got, err := store.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AuctionClosed, got.Status)
	require.Equal(t, bid.ID, *got.HighestBidID)
}

func TestPostgresStoreNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.GetAuction(ctx, uuid.New().String())
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)

	err = store.WithAuctionLock(ctx, uuid.New().String(), func(ctx context.Context, tx domain.AuctionTx) error {
		return nil
	})
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)

	_, err = store.GetBid(ctx, uuid.New().String())
	require.ErrorIs(t, err, domain.ErrBidNotFound)
}
