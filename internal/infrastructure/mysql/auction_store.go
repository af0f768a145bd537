package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auction-core/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

const auctionColumns = `id, catalogue_id, start_time, end_time, starting_amount,
        highest_bid_id, status, closed_at, created_at`

const bidColumns = `id, auction_id, user_id, username, first_name, last_name, amount, created_at`

type MySQLAuctionStore struct {
	db *sql.DB
}

func NewMySQLAuctionStore(db *sql.DB) *MySQLAuctionStore {
	return &MySQLAuctionStore{db: db}
}

func (r *MySQLAuctionStore) CreateAuction(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (` + auctionColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		auction.ID, auction.CatalogueID, auction.StartTime, auction.EndTime,
		auction.StartingAmount, nullString(auction.HighestBidID), string(auction.Status),
		nullTime(auction.ClosedAt), auction.CreatedAt)
	return classify("insert auction", err)
}

func (r *MySQLAuctionStore) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = ?`

	auction, err := scanAuction(r.db.QueryRowContext(ctx, query, auctionID))
	if err != nil {
		return nil, classify("get auction", err)
	}
	return auction, nil
}

func (r *MySQLAuctionStore) FindAuctionByCatalogue(ctx context.Context, catalogueID string) (*domain.Auction, error) {
	query := `
        SELECT ` + auctionColumns + `
        FROM auctions WHERE catalogue_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `

	auction, err := scanAuction(r.db.QueryRowContext(ctx, query, catalogueID))
	if err != nil {
		return nil, classify("find auction by catalogue", err)
	}
	return auction, nil
}

func (r *MySQLAuctionStore) GetBid(ctx context.Context, bidID string) (*domain.Bid, error) {
	return getBid(ctx, r.db, bidID)
}

func (r *MySQLAuctionStore) ListBids(ctx context.Context, auctionID string) ([]*domain.Bid, error) {
	query := `
        SELECT ` + bidColumns + `
        FROM bids WHERE auction_id = ?
        ORDER BY created_at, id
    `

	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, classify("list bids", err)
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, classify("scan bid", err)
		}
		bids = append(bids, bid)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("list bids", err)
	}
	return bids, nil
}

// WithAuctionLock takes the auction row with SELECT ... FOR UPDATE and keeps
// the lock until fn returns and the transaction ends. Waits are bounded by
// innodb_lock_wait_timeout and by ctx.
func (r *MySQLAuctionStore) WithAuctionLock(ctx context.Context, auctionID string, fn func(ctx context.Context, tx domain.AuctionTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("begin tx", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = ? FOR UPDATE`
	auction, err := scanAuction(tx.QueryRowContext(ctx, query, auctionID))
	if err != nil {
		return classify("lock auction", err)
	}

	if err := fn(ctx, &auctionTx{tx: tx, auction: *auction}); err != nil {
		return err
	}

	return classify("commit tx", tx.Commit())
}

// ClaimExpired locks the batch with FOR UPDATE SKIP LOCKED in a single
// transaction. Each auction runs behind its own savepoint so a failing
// callback rolls back only that auction.
func (r *MySQLAuctionStore) ClaimExpired(ctx context.Context, now time.Time, limit int, fn func(ctx context.Context, tx domain.AuctionTx) error) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("begin tx", err)
	}
	defer tx.Rollback()

	query := `
        SELECT ` + auctionColumns + `
        FROM auctions
        WHERE status = ? AND end_time <= ?
        ORDER BY end_time, id
        LIMIT ?
        FOR UPDATE SKIP LOCKED
    `
	rows, err := tx.QueryContext(ctx, query, string(domain.AuctionOpen), now, limit)
	if err != nil {
		return 0, classify("claim expired", err)
	}

	var claimed []*domain.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			rows.Close()
			return 0, classify("scan auction", err)
		}
		claimed = append(claimed, auction)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, classify("claim expired", err)
	}

	for _, auction := range claimed {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT claim_auction"); err != nil {
			return 0, classify("savepoint", err)
		}

		if err := fn(ctx, &auctionTx{tx: tx, auction: *auction}); err != nil {
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT claim_auction"); rbErr != nil {
				return 0, classify("rollback to savepoint", rbErr)
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT claim_auction"); err != nil {
			return 0, classify("release savepoint", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, classify("commit tx", err)
	}
	return len(claimed), nil
}

// auctionTx is a row locked inside an open transaction.
type auctionTx struct {
	tx      *sql.Tx
	auction domain.Auction
}

func (t *auctionTx) Auction() domain.Auction {
	return t.auction
}

func (t *auctionTx) LeadingBid(ctx context.Context) (*domain.Bid, error) {
	if t.auction.HighestBidID == nil {
		return nil, nil
	}
	return getBid(ctx, t.tx, *t.auction.HighestBidID)
}

func (t *auctionTx) InsertBid(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (` + bidColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := t.tx.ExecContext(ctx, query,
		bid.ID, bid.AuctionID, bid.Bidder.UserID, bid.Bidder.Username,
		bid.Bidder.FirstName, bid.Bidder.LastName, bid.Amount, bid.CreatedAt)
	return classify("insert bid", err)
}

func (t *auctionTx) SetHighestBid(ctx context.Context, bidID string) error {
	query := `UPDATE auctions SET highest_bid_id = ? WHERE id = ?`
	if _, err := t.tx.ExecContext(ctx, query, bidID, t.auction.ID); err != nil {
		return classify("set highest bid", err)
	}

	id := bidID
	t.auction.HighestBidID = &id
	return nil
}

func (t *auctionTx) MarkClosed(ctx context.Context, closedAt time.Time) error {
	query := `UPDATE auctions SET status = ?, closed_at = ? WHERE id = ?`
	if _, err := t.tx.ExecContext(ctx, query, string(domain.AuctionClosed), closedAt, t.auction.ID); err != nil {
		return classify("mark closed", err)
	}

	at := closedAt
	t.auction.Status = domain.AuctionClosed
	t.auction.ClosedAt = &at
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getBid(ctx context.Context, q queryRower, bidID string) (*domain.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = ?`

	bid, err := scanBid(q.QueryRowContext(ctx, query, bidID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bid %s: %w", bidID, domain.ErrBidNotFound)
	}
	if err != nil {
		return nil, classify("get bid", err)
	}
	return bid, nil
}

func scanAuction(row scanner) (*domain.Auction, error) {
	var (
		auction    domain.Auction
		highestBid sql.NullString
		status     string
		closedAt   sql.NullTime
	)

	err := row.Scan(
		&auction.ID, &auction.CatalogueID, &auction.StartTime, &auction.EndTime,
		&auction.StartingAmount, &highestBid, &status, &closedAt, &auction.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAuctionNotFound
	}
	if err != nil {
		return nil, err
	}

	auction.Status = domain.AuctionStatus(status)
	if highestBid.Valid {
		auction.HighestBidID = &highestBid.String
	}
	if closedAt.Valid {
		at := closedAt.Time.UTC()
		auction.ClosedAt = &at
	}
	auction.StartTime = auction.StartTime.UTC()
	auction.EndTime = auction.EndTime.UTC()
	auction.CreatedAt = auction.CreatedAt.UTC()
	return &auction, nil
}

func scanBid(row scanner) (*domain.Bid, error) {
	var bid domain.Bid

	err := row.Scan(
		&bid.ID, &bid.AuctionID, &bid.Bidder.UserID, &bid.Bidder.Username,
		&bid.Bidder.FirstName, &bid.Bidder.LastName, &bid.Amount, &bid.CreatedAt)
	if err != nil {
		return nil, err
	}

	bid.CreatedAt = bid.CreatedAt.UTC()
	return &bid, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
