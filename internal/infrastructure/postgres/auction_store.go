package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-core/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const claimSavepoint = "claim_auction"

func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}

	if err := db.AutoMigrate(&auctionModel{}, &bidModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

type PostgresAuctionStore struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewPostgresAuctionStore(db *gorm.DB, lockTimeout time.Duration) (*PostgresAuctionStore, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	return &PostgresAuctionStore{db: db, lockTimeout: lockTimeout}, nil
}

func (s *PostgresAuctionStore) CreateAuction(ctx context.Context, auction *domain.Auction) error {
	if err := s.db.WithContext(ctx).Create(toAuctionModel(auction)).Error; err != nil {
		return classifyWrite("create auction", err)
	}
	return nil
}

func (s *PostgresAuctionStore) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	var m auctionModel
	if err := s.db.WithContext(ctx).Where("id = ?", auctionID).First(&m).Error; err != nil {
		return nil, classify("get auction", err)
	}
	return m.toDomain(), nil
}

func (s *PostgresAuctionStore) FindAuctionByCatalogue(ctx context.Context, catalogueID string) (*domain.Auction, error) {
	var m auctionModel
	err := s.db.WithContext(ctx).
		Where("catalogue_id = ?", catalogueID).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		return nil, classify("find auction by catalogue", err)
	}
	return m.toDomain(), nil
}

func (s *PostgresAuctionStore) GetBid(ctx context.Context, bidID string) (*domain.Bid, error) {
	return getBid(s.db.WithContext(ctx), bidID)
}

func (s *PostgresAuctionStore) ListBids(ctx context.Context, auctionID string) ([]*domain.Bid, error) {
	var rows []bidModel
	err := s.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, classify("list bids", err)
	}

	bids := make([]*domain.Bid, 0, len(rows))
	for i := range rows {
		bids = append(bids, rows[i].toDomain())
	}
	return bids, nil
}

// WithAuctionLock runs fn while holding the auction row via SELECT ... FOR
// UPDATE. lock_timeout bounds the wait.
func (s *PostgresAuctionStore) WithAuctionLock(ctx context.Context, auctionID string, fn func(ctx context.Context, tx domain.AuctionTx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.setLockTimeout(tx); err != nil {
			return err
		}

		var m auctionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", auctionID).
			First(&m).Error
		if err != nil {
			return classify("lock auction", err)
		}

		return fn(ctx, &auctionTx{tx: tx, auction: *m.toDomain()})
	})
	if err != nil {
		return classifyWrite("with auction lock", err)
	}
	return nil
}

// ClaimExpired selects the batch with FOR UPDATE SKIP LOCKED and processes
// each auction behind a savepoint in the same transaction.
func (s *PostgresAuctionStore) ClaimExpired(ctx context.Context, now time.Time, limit int, fn func(ctx context.Context, tx domain.AuctionTx) error) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	claimed := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []auctionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND end_time <= ?", string(domain.AuctionOpen), now).
			Order("end_time, id").
			Limit(limit).
			Find(&rows).Error
		if err != nil {
			return classify("claim expired", err)
		}
		claimed = len(rows)

		for i := range rows {
			if err := tx.SavePoint(claimSavepoint).Error; err != nil {
				return classify("savepoint", err)
			}

			if err := fn(ctx, &auctionTx{tx: tx, auction: *rows[i].toDomain()}); err != nil {
				if err := tx.RollbackTo(claimSavepoint).Error; err != nil {
					return classify("rollback to savepoint", err)
				}
				continue
			}

			if err := tx.Exec("RELEASE SAVEPOINT " + claimSavepoint).Error; err != nil {
				return classify("release savepoint", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, classifyWrite("claim expired", err)
	}
	return claimed, nil
}

func (s *PostgresAuctionStore) setLockTimeout(tx *gorm.DB) error {
	if s.lockTimeout <= 0 {
		return nil
	}
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
	if err := tx.Exec(stmt).Error; err != nil {
		return classify("set lock timeout", err)
	}
	return nil
}

type auctionTx struct {
	tx      *gorm.DB
	auction domain.Auction
}

func (t *auctionTx) Auction() domain.Auction {
	return t.auction
}

func (t *auctionTx) LeadingBid(ctx context.Context) (*domain.Bid, error) {
	if t.auction.HighestBidID == nil {
		return nil, nil
	}
	return getBid(t.tx, *t.auction.HighestBidID)
}

func (t *auctionTx) InsertBid(ctx context.Context, bid *domain.Bid) error {
	if err := t.tx.Create(toBidModel(bid)).Error; err != nil {
		return classifyWrite("insert bid", err)
	}
	return nil
}

func (t *auctionTx) SetHighestBid(ctx context.Context, bidID string) error {
	err := t.tx.Model(&auctionModel{}).
		Where("id = ?", t.auction.ID).
		Update("highest_bid_id", bidID).Error
	if err != nil {
		return classifyWrite("set highest bid", err)
	}

	id := bidID
	t.auction.HighestBidID = &id
	return nil
}

func (t *auctionTx) MarkClosed(ctx context.Context, closedAt time.Time) error {
	err := t.tx.Model(&auctionModel{}).
		Where("id = ?", t.auction.ID).
		Updates(map[string]any{
			"status":    string(domain.AuctionClosed),
			"closed_at": closedAt,
		}).Error
	if err != nil {
		return classifyWrite("mark closed", err)
	}

	at := closedAt
	t.auction.Status = domain.AuctionClosed
	t.auction.ClosedAt = &at
	return nil
}

func getBid(db *gorm.DB, bidID string) (*domain.Bid, error) {
	var m bidModel
	err := db.Where("id = ?", bidID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("bid %s: %w", bidID, domain.ErrBidNotFound)
	}
	if err != nil {
		return nil, classify("get bid", err)
	}
	return m.toDomain(), nil
}

// classifyWrite is classify for paths where a missing row is not a lookup
// miss.
func classifyWrite(op string, err error) error {
	if errors.Is(err, domain.ErrAuctionNotFound) || errors.Is(err, domain.ErrBidNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return classify(op, err)
}
