// Package memory holds process-local implementations of the storage and
// event ports, used for tests and single-node local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-core/internal/domain"
)

// Store keeps auctions and bids in maps. Each auction owns a one-slot channel
// that acts as its exclusive record lock; the lock is held for the whole
// callback and staged changes are applied only when the callback succeeds.
type Store struct {
	mu          sync.RWMutex
	auctions    map[string]*domain.Auction
	byCatalogue map[string][]string
	bids        map[string]*domain.Bid
	bidsOf      map[string][]string
	locks       map[string]chan struct{}

	lockTimeout time.Duration
}

func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		auctions:    make(map[string]*domain.Auction),
		byCatalogue: make(map[string][]string),
		bids:        make(map[string]*domain.Bid),
		bidsOf:      make(map[string][]string),
		locks:       make(map[string]chan struct{}),
		lockTimeout: lockTimeout,
	}
}

func (s *Store) CreateAuction(ctx context.Context, auction *domain.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auctions[auction.ID]; exists {
		return fmt.Errorf("create auction %s: already exists", auction.ID)
	}

	s.auctions[auction.ID] = cloneAuction(auction)
	s.byCatalogue[auction.CatalogueID] = append(s.byCatalogue[auction.CatalogueID], auction.ID)
	s.locks[auction.ID] = make(chan struct{}, 1)
	return nil
}

func (s *Store) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return cloneAuction(auction), nil
}

func (s *Store) FindAuctionByCatalogue(ctx context.Context, catalogueID string) (*domain.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.Auction
	for _, id := range s.byCatalogue[catalogueID] {
		a := s.auctions[id]
		if latest == nil || !a.CreatedAt.Before(latest.CreatedAt) {
			latest = a
		}
	}
	if latest == nil {
		return nil, domain.ErrAuctionNotFound
	}
	return cloneAuction(latest), nil
}

func (s *Store) GetBid(ctx context.Context, bidID string) (*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bid, ok := s.bids[bidID]
	if !ok {
		return nil, fmt.Errorf("bid %s: %w", bidID, domain.ErrBidNotFound)
	}
	copied := *bid
	return &copied, nil
}

func (s *Store) ListBids(ctx context.Context, auctionID string) ([]*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.bidsOf[auctionID]
	bids := make([]*domain.Bid, 0, len(ids))
	for _, id := range ids {
		copied := *s.bids[id]
		bids = append(bids, &copied)
	}

	sort.SliceStable(bids, func(i, j int) bool {
		if !bids[i].CreatedAt.Equal(bids[j].CreatedAt) {
			return bids[i].CreatedAt.Before(bids[j].CreatedAt)
		}
		return bids[i].ID < bids[j].ID
	})
	return bids, nil
}

func (s *Store) WithAuctionLock(ctx context.Context, auctionID string, fn func(ctx context.Context, tx domain.AuctionTx) error) error {
	lock, err := s.lockFor(auctionID)
	if err != nil {
		return err
	}

	if err := s.acquire(ctx, lock); err != nil {
		return fmt.Errorf("lock auction %s: %w: %w", auctionID, domain.ErrTransient, err)
	}
	defer func() { <-lock }()

	tx, err := s.begin(auctionID)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.commit(tx)
	return nil
}

func (s *Store) ClaimExpired(ctx context.Context, now time.Time, limit int, fn func(ctx context.Context, tx domain.AuctionTx) error) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	candidates := s.expiredCandidates(now)

	var (
		held    []chan struct{}
		pending []*auctionTx
	)
	defer func() {
		for _, lock := range held {
			<-lock
		}
	}()

	for _, id := range candidates {
		if len(held) == limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("claim expired: %w: %w", domain.ErrTransient, err)
		}

		s.mu.RLock()
		lock := s.locks[id]
		s.mu.RUnlock()

		select {
		case lock <- struct{}{}:
		default:
			// held by a bidder or another sweeper
			continue
		}

		tx, err := s.begin(id)
		if err != nil || tx.auction.Status != domain.AuctionOpen || tx.auction.EndTime.After(now) {
			<-lock
			continue
		}

		held = append(held, lock)
		pending = append(pending, tx)
	}

	var committed []*auctionTx
	for _, tx := range pending {
		if err := fn(ctx, tx); err != nil {
			continue
		}
		committed = append(committed, tx)
	}

	for _, tx := range committed {
		s.commit(tx)
	}

	return len(pending), nil
}

func (s *Store) expiredCandidates(now time.Time) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []*domain.Auction
	for _, a := range s.auctions {
		if a.Status == domain.AuctionOpen && !a.EndTime.After(now) {
			expired = append(expired, a)
		}
	}

	sort.Slice(expired, func(i, j int) bool {
		if !expired[i].EndTime.Equal(expired[j].EndTime) {
			return expired[i].EndTime.Before(expired[j].EndTime)
		}
		return expired[i].ID < expired[j].ID
	})

	ids := make([]string, len(expired))
	for i, a := range expired {
		ids[i] = a.ID
	}
	return ids
}

func (s *Store) lockFor(auctionID string) (chan struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lock, ok := s.locks[auctionID]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return lock, nil
}

func (s *Store) acquire(ctx context.Context, lock chan struct{}) error {
	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		timer := time.NewTimer(s.lockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return fmt.Errorf("lock wait timeout exceeded after %s", s.lockTimeout)
	}
}

func (s *Store) begin(auctionID string) (*auctionTx, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return &auctionTx{store: s, auction: *cloneAuction(auction)}, nil
}

func (s *Store) commit(tx *auctionTx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bid := range tx.bids {
		s.bids[bid.ID] = bid
		s.bidsOf[bid.AuctionID] = append(s.bidsOf[bid.AuctionID], bid.ID)
	}
	s.auctions[tx.auction.ID] = cloneAuction(&tx.auction)
}

type auctionTx struct {
	store   *Store
	auction domain.Auction
	bids    []*domain.Bid
}

func (t *auctionTx) Auction() domain.Auction {
	return *cloneAuction(&t.auction)
}

func (t *auctionTx) LeadingBid(ctx context.Context) (*domain.Bid, error) {
	if t.auction.HighestBidID == nil {
		return nil, nil
	}
	id := *t.auction.HighestBidID

	for _, bid := range t.bids {
		if bid.ID == id {
			copied := *bid
			return &copied, nil
		}
	}

	bid, err := t.store.GetBid(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leading bid of auction %s: %w", t.auction.ID, err)
	}
	return bid, nil
}

func (t *auctionTx) InsertBid(ctx context.Context, bid *domain.Bid) error {
	if bid.AuctionID != t.auction.ID {
		return fmt.Errorf("insert bid: bid belongs to auction %s, locked %s", bid.AuctionID, t.auction.ID)
	}
	copied := *bid
	t.bids = append(t.bids, &copied)
	return nil
}

func (t *auctionTx) SetHighestBid(ctx context.Context, bidID string) error {
	id := bidID
	t.auction.HighestBidID = &id
	return nil
}

func (t *auctionTx) MarkClosed(ctx context.Context, closedAt time.Time) error {
	at := closedAt
	t.auction.Status = domain.AuctionClosed
	t.auction.ClosedAt = &at
	return nil
}

func cloneAuction(a *domain.Auction) *domain.Auction {
	copied := *a
	if a.HighestBidID != nil {
		id := *a.HighestBidID
		copied.HighestBidID = &id
	}
	if a.ClosedAt != nil {
		at := *a.ClosedAt
		copied.ClosedAt = &at
	}
	return &copied
}
