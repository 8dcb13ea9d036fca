package retention

import (
	"context"
	"log/slog"
	"time"
)

// Purger permanently removes soft-deleted expenses older than a cutoff.
// Implemented by the postgres adapter.
type Purger interface {
	PurgeSoftDeleted(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper periodically purges soft-deleted expenses once they age past the
// retention window. It is stateless: each tick independently computes the
// cutoff from the wall clock.
//
// Soft-deleted rows are invisible to every read path already; the sweeper
// only reclaims storage and honors the retention window.
type Sweeper struct {
	interval time.Duration
	minAge   time.Duration
	store    Purger
	nowFn    func() time.Time
}

// NewSweeper creates a sweeper that removes soft-deleted rows last touched
// more than minAge ago, checking every interval.
func NewSweeper(interval, minAge time.Duration, store Purger) *Sweeper {
	return &Sweeper{
		interval: interval,
		minAge:   minAge,
		store:    store,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Start begins periodic sweeping. Runs until the context is cancelled, with
// one final sweep during shutdown.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Retention] Starting sweeper",
		"interval", s.interval,
		"min_age", s.minAge,
	)

	s.sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			slog.Info("[Retention] Stopping (context cancelled)")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			s.sweep(shutdownCtx)
			slog.Info("[Retention] Final sweep complete")

			return nil
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := s.nowFn().Add(-s.minAge)

	purged, err := s.store.PurgeSoftDeleted(ctx, cutoff)
	if err != nil {
		slog.Error("[Retention] Sweep failed", "error", err, "cutoff", cutoff)
		return
	}

	if purged > 0 {
		slog.Info("[Retention] Purged soft-deleted expenses",
			"purged", purged,
			"cutoff", cutoff,
		)
	}
}
