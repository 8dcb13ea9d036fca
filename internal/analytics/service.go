package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	v1 "github.com/spendlens/spendlens/internal/api/v1"
	core "github.com/spendlens/spendlens/internal/core/analytics"
	"github.com/spendlens/spendlens/internal/core/storage"
)

// Service implements the analytics read path: it resolves the caller's date
// range, selects the record snapshot from the store, and hands it to the
// pure reducers in core/analytics.
//
// Each request fetches the snapshot exactly once; every view it serves is
// derived from that one fetch, so concurrent writes cannot make the views of
// a single response disagree.
type Service struct {
	store storage.ExpenseStore
	nowFn func() time.Time
}

// NewService creates a new analytics service.
func NewService(store storage.ExpenseStore) *Service {
	if store == nil {
		panic("analytics: store must not be nil")
	}
	return &Service{
		store: store,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// snapshot fetches the filtered record set for one request. Store failures
// propagate unchanged — the engine performs no retry or fallback.
func (s *Service) snapshot(ctx context.Context, ownerID string, rng core.DateRange) ([]*v1.Expense, error) {
	records, err := s.store.QueryRange(ctx, ownerID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("query expense range: %w", err)
	}
	return records, nil
}

// CategoryTotals returns the per-category spend breakdown.
func (s *Service) CategoryTotals(ctx context.Context, ownerID string, rng core.DateRange) ([]core.CategoryTotal, error) {
	records, err := s.snapshot(ctx, ownerID, rng)
	if err != nil {
		return nil, err
	}
	return core.CategoryTotals(records), nil
}

// BucketTotals returns time-bucketed spend totals for the given granularity.
func (s *Service) BucketTotals(ctx context.Context, ownerID string, rng core.DateRange, g core.Granularity) ([]core.BucketTotal, error) {
	records, err := s.snapshot(ctx, ownerID, rng)
	if err != nil {
		return nil, err
	}
	return core.BucketTotals(records, g), nil
}

// PaymentSourceDistribution returns record counts per payment source.
func (s *Service) PaymentSourceDistribution(ctx context.Context, ownerID string, rng core.DateRange) ([]core.PaymentSourceCount, error) {
	records, err := s.snapshot(ctx, ownerID, rng)
	if err != nil {
		return nil, err
	}
	return core.PaymentSourceDistribution(records), nil
}

// TrendSeries returns the chronological (date, amount) series.
func (s *Service) TrendSeries(ctx context.Context, ownerID string, rng core.DateRange) ([]core.TrendPoint, error) {
	records, err := s.snapshot(ctx, ownerID, rng)
	if err != nil {
		return nil, err
	}
	return core.TrendSeries(records), nil
}

// Summary returns the composite summary view.
func (s *Service) Summary(ctx context.Context, ownerID string, rng core.DateRange) (core.Summary, error) {
	records, err := s.snapshot(ctx, ownerID, rng)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(records), nil
}

// Overview computes all seven views from a single snapshot. The reducers
// read the same immutable slice and write disjoint fields, so they run
// concurrently.
func (s *Service) Overview(ctx context.Context, ownerID string, rng core.DateRange) (*Overview, error) {
	records, err := s.snapshot(ctx, ownerID, rng)
	if err != nil {
		return nil, err
	}

	var overview Overview
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { overview.CategoryTotals = core.CategoryTotals(records); return nil })
	g.Go(func() error { overview.DailyTotals = core.BucketTotals(records, core.GranularityDay); return nil })
	g.Go(func() error { overview.WeeklyTotals = core.BucketTotals(records, core.GranularityWeek); return nil })
	g.Go(func() error { overview.MonthlyTotals = core.BucketTotals(records, core.GranularityMonth); return nil })
	g.Go(func() error { overview.PaymentSources = core.PaymentSourceDistribution(records); return nil })
	g.Go(func() error { overview.Trend = core.TrendSeries(records); return nil })
	g.Go(func() error { overview.Summary = core.Summarize(records); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &overview, nil
}
