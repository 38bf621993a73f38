package entitlements

import (
	"context"
	"time"

	"github.com/FanSeatApp/FanSeat/app/models"
	"github.com/gofiber/fiber/v2/log"
)

const (
	// DefaultSweepBatchSize bounds how many records one list query returns.
	DefaultSweepBatchSize = 500
	// DefaultSweepTimeout bounds a whole sweep run.
	DefaultSweepTimeout = 5 * time.Minute
)

// SweepStore is the subscription access the sweeper needs.
type SweepStore interface {
	ListExpirable(now time.Time, limit int) ([]models.Subscription, error)
	MarkExpired(subID uint) (bool, error)
}

// Locker serializes sweep runs across processes. Acquire returns false when
// another run holds the lock; Release is best-effort.
type Locker interface {
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)
	Release(ctx context.Context) error
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Scanned int
	Expired int
	Skipped int
	Failed  int
}

// Sweeper transitions lapsed subscriptions to the expired status. It flips
// status as soon as the validity window lapses, independent of the grace
// window: grace is an evaluation concept keyed off expires_at, and the
// evaluator keeps honoring it even on records already swept to expired.
//
// Safe to invoke any number of times per day: the status update is
// conditional, so re-running over already-expired records is a no-op, and
// cancelled records are never touched.
type Sweeper struct {
	store SweepStore

	// Lock, when set, prevents overlapping runs across processes.
	Lock Locker
	// BatchSize bounds each list query; zero means DefaultSweepBatchSize.
	BatchSize int
	// Timeout bounds a whole run; zero means DefaultSweepTimeout.
	Timeout time.Duration
	// Now is the clock used to find lapsed records; tests override it.
	Now func() time.Time
}

// NewSweeper creates a sweeper over the given subscription store.
func NewSweeper(store SweepStore) *Sweeper {
	return &Sweeper{
		store:     store,
		BatchSize: DefaultSweepBatchSize,
		Timeout:   DefaultSweepTimeout,
		Now:       time.Now,
	}
}

// RunOnce performs one sweep. A per-record fault is logged and skipped so a
// single bad row cannot abort the whole batch.
func (s *Sweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultSweepTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var result SweepResult

	if s.Lock != nil {
		ok, err := s.Lock.Acquire(ctx, timeout)
		if err != nil {
			return result, err
		}
		if !ok {
			log.Info("[Sweeper] Another sweep run holds the lock, skipping")
			return result, nil
		}
		defer func() {
			if err := s.Lock.Release(context.WithoutCancel(ctx)); err != nil {
				log.Warnf("[Sweeper] Failed to release sweep lock: %v", err)
			}
		}()
	}

	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}

	now := s.Now()
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batch, err := s.store.ListExpirable(now, batchSize)
		if err != nil {
			return result, err
		}
		if len(batch) == 0 {
			break
		}

		progressed := false
		for _, sub := range batch {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			result.Scanned++

			expired, err := s.store.MarkExpired(sub.ID)
			if err != nil {
				result.Failed++
				log.Errorf("[Sweeper] Failed to expire subscription %d (venue %d): %v", sub.ID, sub.VenueID, err)
				continue
			}
			if !expired {
				// Lost a race against a cancel or a concurrent sweep.
				result.Skipped++
				continue
			}
			progressed = true
			result.Expired++
			log.Infof("[Sweeper] Subscription %d (venue %d) expired at %s, status set to expired",
				sub.ID, sub.VenueID, sub.ExpiresAt.Format(time.RFC3339))
		}

		if len(batch) < batchSize {
			break
		}
		if !progressed {
			// Every remaining candidate is failing or contested; a retry in
			// this run would spin on the same rows.
			break
		}
	}

	return result, nil
}
