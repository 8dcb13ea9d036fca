package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity selects the calendar bucketing applied by BucketTotals.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// DateRange is an inclusive [Start, End] interval.
// An inverted range (Start after End) is legal and selects nothing.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// CategoryTotal is the summed spend for one distinct category label.
type CategoryTotal struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// BucketTotal is the summed spend for one time bucket.
// The bucket label depends on granularity: "2024-03-13" (day),
// "2024-03-10 to 2024-03-16" (week), "March" (month).
type BucketTotal struct {
	Bucket      string          `json:"bucket"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// PaymentSourceCount is the record count for one distinct payment source.
type PaymentSourceCount struct {
	PaymentSource string `json:"paymentSource"`
	Count         int    `json:"count"`
}

// TrendPoint is one unaggregated (date, amount) pair. Same-day records
// stay separate points.
type TrendPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary is the composite view: total spend, distinct category count,
// and the top category / payment source.
type Summary struct {
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	TotalCategories       int             `json:"totalCategories"`
	MostSpentCategory     string          `json:"mostSpentCategory"`
	MostUsedPaymentSource string          `json:"mostUsedPaymentSource"`
}
