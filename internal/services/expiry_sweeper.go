package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"auction-core/internal/domain"
	"auction-core/pkg/logger"

	"github.com/robfig/cron/v3"
)

const DefaultSweepBatchSize = 100

type SweepReport struct {
	Claimed       int
	Closed        int
	AlreadyClosed int
	NotYetExpired int
	Failed        int
}

func (r *SweepReport) add(o SweepReport) {
	r.Claimed += o.Claimed
	r.Closed += o.Closed
	r.AlreadyClosed += o.AlreadyClosed
	r.NotYetExpired += o.NotYetExpired
	r.Failed += o.Failed
}

// ExpirySweeper periodically closes auctions past their deadline. Any number
// of sweepers may run against the same store: candidates locked elsewhere are
// skipped rather than waited on.
type ExpirySweeper struct {
	cron      *cron.Cron
	store     domain.AuctionStore
	lifecycle *LifecycleManager
	schedule  string
	batchSize int
	log       logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewExpirySweeper(store domain.AuctionStore, lifecycle *LifecycleManager, schedule string,
	batchSize int, log logger.Logger) *ExpirySweeper {
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}

	cronLog := cronLogger{log: log}
	return &ExpirySweeper{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		store:     store,
		lifecycle: lifecycle,
		schedule:  schedule,
		batchSize: batchSize,
		log:       log,
	}
}

func (s *ExpirySweeper) Start(ctx context.Context) error {
	s.log.Info("Starting expiry sweeper", "schedule", s.schedule, "batch_size", s.batchSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return errors.New("expiry sweeper already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.SweepOnce(runCtx); err != nil {
			s.log.Error("Sweep failed", "error", err)
		}
	})
	if err != nil {
		cancel()
		return fmt.Errorf("schedule sweeper %q: %w", s.schedule, err)
	}

	s.cancel = cancel
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running pass to finish.
func (s *ExpirySweeper) Stop() error {
	s.log.Info("Stopping expiry sweeper")

	done := s.cron.Stop()
	<-done.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return nil
}

// SweepOnce claims and closes expired auctions batch by batch until a batch
// comes back short or has failures. Failed auctions stay OPEN and are picked
// up again on the next pass.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (SweepReport, error) {
	var total SweepReport
	for {
		round, err := s.sweepBatch(ctx)
		total.add(round)
		if err != nil {
			return total, err
		}
		if round.Claimed < s.batchSize || round.Failed > 0 || ctx.Err() != nil {
			break
		}
	}

	if total.Claimed > 0 {
		s.log.Info("Sweep finished", "claimed", total.Claimed, "closed", total.Closed,
			"already_closed", total.AlreadyClosed, "not_yet_expired", total.NotYetExpired,
			"failed", total.Failed)
	}
	return total, nil
}

func (s *ExpirySweeper) sweepBatch(ctx context.Context) (SweepReport, error) {
	var (
		report SweepReport
		closed []domain.CloseResult
	)

	now := s.lifecycle.clock.now()
	claimed, err := s.store.ClaimExpired(ctx, now, s.batchSize, func(ctx context.Context, tx domain.AuctionTx) error {
		result, err := s.lifecycle.CloseClaimed(ctx, tx)
		if err != nil {
			report.Failed++
			s.log.Error("Failed to close auction", "auction_id", tx.Auction().ID, "error", err)
			return err
		}

		switch result.Outcome {
		case domain.CloseClosed:
			closed = append(closed, result)
		case domain.CloseAlreadyClosed:
			report.AlreadyClosed++
		case domain.CloseNotYetExpired:
			report.NotYetExpired++
		}
		return nil
	})
	if err != nil {
		// The claim transaction rolled back; nothing in this batch was closed.
		return SweepReport{}, fmt.Errorf("claim expired auctions: %w", err)
	}

	report.Claimed = claimed
	report.Closed = len(closed)
	for _, result := range closed {
		s.lifecycle.logClosed(result, false)
		s.lifecycle.Announce(ctx, result)
	}
	return report, nil
}

// cronLogger routes cron's own logging through our logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
