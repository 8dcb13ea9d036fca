package analytics

import (
	"sort"
	"time"

	v1 "github.com/spendlens/spendlens/internal/api/v1"
	"github.com/shopspring/decimal"
)

// The engine is a set of pure reducers over an immutable record snapshot.
// Callers fetch the filtered set once (owner-scoped, date-ranged, soft-deleted
// rows excluded) and derive every view from that single snapshot, so the views
// of one request never disagree with each other.
//
// All reducers are total: an empty or nil input yields an empty (never nil-panicking)
// result, not an error.

const dateLayout = "2006-01-02"

// unknownSource substitutes for an absent payment source.
const unknownSource = "Unknown"

// emptyLabel is reported by Summarize when the record set is empty.
const emptyLabel = "N/A"

// CategoryTotals groups records by exact category string and sums amounts.
// Category labels are not normalized: "Food" and "food" are distinct buckets.
// Output is ascending by category label so a fixed input always produces the
// same sequence.
func CategoryTotals(records []*v1.Expense) []CategoryTotal {
	totals := make(map[string]decimal.Decimal, len(records))
	for _, r := range records {
		totals[r.Category] = totals[r.Category].Add(r.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, TotalAmount: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// BucketTotals groups records into calendar buckets and sums amounts per bucket.
//
//   - day: bucket key is the calendar date "YYYY-MM-DD"; time-of-day discarded.
//   - week: Sunday-anchored calendar weeks, labeled "<start> to <end>".
//   - month: bucket key is the month NAME with no year, so January 2023 and
//     January 2024 collapse into one bucket. This reproduces the upstream
//     behavior on purpose; see the cross-year collision note in DESIGN.md.
//
// Day and week output sort ascending by bucket start; month output keeps the
// order of each month's first occurrence in the input.
func BucketTotals(records []*v1.Expense, granularity Granularity) []BucketTotal {
	switch granularity {
	case GranularityMonth:
		return monthTotals(records)
	case GranularityWeek:
		return sortedBucketTotals(records, weekLabel)
	default:
		return sortedBucketTotals(records, dayLabel)
	}
}

func dayLabel(t time.Time) string {
	return t.Format(dateLayout)
}

// weekLabel computes the Sunday-anchored calendar week containing t.
// Sunday=0..Saturday=6, so subtracting the weekday offset lands on Sunday.
func weekLabel(t time.Time) string {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)
	return weekStart.Format(dateLayout) + " to " + weekEnd.Format(dateLayout)
}

// sortedBucketTotals folds records into labeled buckets and sorts ascending
// by label. Day and week labels start with an ISO date, so lexicographic
// order is chronological order.
func sortedBucketTotals(records []*v1.Expense, label func(time.Time) string) []BucketTotal {
	totals := make(map[string]decimal.Decimal, len(records))
	for _, r := range records {
		key := label(r.Date)
		totals[key] = totals[key].Add(r.Amount)
	}

	out := make([]BucketTotal, 0, len(totals))
	for bucket, total := range totals {
		out = append(out, BucketTotal{Bucket: bucket, TotalAmount: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}

func monthTotals(records []*v1.Expense) []BucketTotal {
	totals := make(map[string]decimal.Decimal, len(records))
	firstSeen := make(map[string]int, len(records))
	for i, r := range records {
		month := r.Date.Month().String()
		if _, ok := totals[month]; !ok {
			firstSeen[month] = i
		}
		totals[month] = totals[month].Add(r.Amount)
	}

	out := make([]BucketTotal, 0, len(totals))
	for month, total := range totals {
		out = append(out, BucketTotal{Bucket: month, TotalAmount: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return firstSeen[out[i].Bucket] < firstSeen[out[j].Bucket]
	})
	return out
}

// PaymentSourceDistribution counts records per payment source. An empty
// source maps to "Unknown". Output is ascending by source label.
func PaymentSourceDistribution(records []*v1.Expense) []PaymentSourceCount {
	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[sourceOf(r)]++
	}

	out := make([]PaymentSourceCount, 0, len(counts))
	for source, count := range counts {
		out = append(out, PaymentSourceCount{PaymentSource: source, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentSource < out[j].PaymentSource })
	return out
}

func sourceOf(r *v1.Expense) string {
	if r.PaymentSource == "" {
		return unknownSource
	}
	return r.PaymentSource
}

// TrendSeries emits one point per record, ascending by date. Same-day records
// are NOT merged; the stable sort keeps the store's natural order among ties.
func TrendSeries(records []*v1.Expense) []TrendPoint {
	ordered := make([]*v1.Expense, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	out := make([]TrendPoint, 0, len(ordered))
	for _, r := range ordered {
		out = append(out, TrendPoint{Date: r.Date.Format(dateLayout), Amount: r.Amount})
	}
	return out
}

// Summarize computes the composite view. The top category is the one with the
// highest summed amount, the top payment source the one with the highest
// count. Exact ties break to the lexicographically smallest label — the
// upstream sort left ties effectively arbitrary, so we pin one stable rule.
// Both report "N/A" on an empty set.
func Summarize(records []*v1.Expense) Summary {
	total := decimal.Zero
	categoryTotals := make(map[string]decimal.Decimal, len(records))
	sourceCounts := make(map[string]int, len(records))

	for _, r := range records {
		total = total.Add(r.Amount)
		categoryTotals[r.Category] = categoryTotals[r.Category].Add(r.Amount)
		sourceCounts[sourceOf(r)]++
	}

	// "N/A" is a legal category/source label, so track "no pick yet" with a
	// flag instead of comparing against the sentinel.
	mostSpent := emptyLabel
	best := decimal.Zero
	haveSpent := false
	for category, amount := range categoryTotals {
		switch {
		case !haveSpent || amount.GreaterThan(best):
			mostSpent, best, haveSpent = category, amount, true
		case amount.Equal(best) && category < mostSpent:
			mostSpent = category
		}
	}

	mostUsed := emptyLabel
	bestCount := 0
	haveUsed := false
	for source, count := range sourceCounts {
		switch {
		case !haveUsed || count > bestCount:
			mostUsed, bestCount, haveUsed = source, count, true
		case count == bestCount && source < mostUsed:
			mostUsed = source
		}
	}

	return Summary{
		TotalAmount:           total,
		TotalCategories:       len(categoryTotals),
		MostSpentCategory:     mostSpent,
		MostUsedPaymentSource: mostUsed,
	}
}
