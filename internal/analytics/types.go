package analytics

import (
	"time"

	core "github.com/spendlens/spendlens/internal/core/analytics"
)

// Metadata echoes the resolved date range back to the caller, so clients can
// see what defaults were applied.
type Metadata struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Envelope is the response body for every analytics endpoint.
type Envelope struct {
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
}

// Overview bundles all seven views, computed from one snapshot.
type Overview struct {
	CategoryTotals []core.CategoryTotal      `json:"categoryTotals"`
	DailyTotals    []core.BucketTotal        `json:"dailyTotals"`
	WeeklyTotals   []core.BucketTotal        `json:"weeklyTotals"`
	MonthlyTotals  []core.BucketTotal        `json:"monthlyTotals"`
	PaymentSources []core.PaymentSourceCount `json:"paymentSources"`
	Trend          []core.TrendPoint         `json:"trend"`
	Summary        core.Summary              `json:"summary"`
}
