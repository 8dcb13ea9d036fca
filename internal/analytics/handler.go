package analytics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens/internal/auth"
	core "github.com/spendlens/spendlens/internal/core/analytics"
	httperr "github.com/spendlens/spendlens/internal/core/errors"
)

// RegisterRoutes registers the analytics read endpoints. Every route runs
// behind the identity middleware; the owner id comes from the verified token,
// never from the request payload.
func (s *Service) RegisterRoutes(r gin.IRouter, requireOwner gin.HandlerFunc) {
	g := r.Group("/v1/analytics", requireOwner)
	g.GET("/category-wise", s.HandleCategoryTotals)
	g.GET("/daily-totals", s.HandleDailyTotals)
	g.GET("/weekly-totals", s.HandleWeeklyTotals)
	g.GET("/monthly-totals", s.HandleMonthlyTotals)
	g.GET("/payment-source-distribution", s.HandlePaymentSourceDistribution)
	g.GET("/expense-trends", s.HandleTrendSeries)
	g.GET("/summary", s.HandleSummary)
	g.GET("/overview", s.HandleOverview)
}

func (s *Service) HandleCategoryTotals(c *gin.Context) {
	s.serveView(c, func(ctx context.Context, owner string, rng core.DateRange) (interface{}, error) {
		return s.CategoryTotals(ctx, owner, rng)
	})
}

func (s *Service) HandleDailyTotals(c *gin.Context) {
	s.serveBuckets(c, core.GranularityDay)
}

func (s *Service) HandleWeeklyTotals(c *gin.Context) {
	s.serveBuckets(c, core.GranularityWeek)
}

func (s *Service) HandleMonthlyTotals(c *gin.Context) {
	s.serveBuckets(c, core.GranularityMonth)
}

func (s *Service) HandlePaymentSourceDistribution(c *gin.Context) {
	s.serveView(c, func(ctx context.Context, owner string, rng core.DateRange) (interface{}, error) {
		return s.PaymentSourceDistribution(ctx, owner, rng)
	})
}

func (s *Service) HandleTrendSeries(c *gin.Context) {
	s.serveView(c, func(ctx context.Context, owner string, rng core.DateRange) (interface{}, error) {
		return s.TrendSeries(ctx, owner, rng)
	})
}

func (s *Service) HandleSummary(c *gin.Context) {
	s.serveView(c, func(ctx context.Context, owner string, rng core.DateRange) (interface{}, error) {
		return s.Summary(ctx, owner, rng)
	})
}

func (s *Service) HandleOverview(c *gin.Context) {
	s.serveView(c, func(ctx context.Context, owner string, rng core.DateRange) (interface{}, error) {
		return s.Overview(ctx, owner, rng)
	})
}

func (s *Service) serveBuckets(c *gin.Context, g core.Granularity) {
	s.serveView(c, func(ctx context.Context, owner string, rng core.DateRange) (interface{}, error) {
		return s.BucketTotals(ctx, owner, rng, g)
	})
}

// serveView is the shared request path: resolve the range, compute one view,
// wrap it in the data/metadata envelope. Range errors map to 400; anything
// else is a store failure and maps to 500.
func (s *Service) serveView(c *gin.Context, view func(context.Context, string, core.DateRange) (interface{}, error)) {
	rng, err := core.ResolveRange(c.Query("startDate"), c.Query("endDate"), s.nowFn())
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRangeError,
			Message:   "Invalid date range provided",
			Details:   err.Error(),
		})
		return
	}

	data, err := view(c.Request.Context(), auth.Owner(c), rng)
	if err != nil {
		slog.Error("Analytics view failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to compute analytics view",
		})
		return
	}

	c.JSON(http.StatusOK, Envelope{
		Data:     data,
		Metadata: Metadata{StartDate: rng.Start, EndDate: rng.End},
	})
}
