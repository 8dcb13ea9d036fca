package analytics

import (
	"testing"
	"time"

	v1 "github.com/spendlens/spendlens/internal/api/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func expense(category, source string, amount int64, date time.Time) *v1.Expense {
	return &v1.Expense{
		ID:            "exp-" + category + date.Format("20060102"),
		OwnerID:       "user-1",
		Title:         category,
		Amount:        decimal.NewFromInt(amount),
		Date:          date,
		Category:      category,
		PaymentSource: source,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCategoryTotals(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "Cash", 50, day(2024, time.March, 1)),
		expense("Rent", "Bank", 60, day(2024, time.March, 2)),
		expense("Food", "Cash", 30, day(2024, time.March, 3)),
	}

	got := CategoryTotals(records)

	require.Len(t, got, 2)
	require.Equal(t, "Food", got[0].Category)
	require.True(t, got[0].TotalAmount.Equal(decimal.NewFromInt(80)))
	require.Equal(t, "Rent", got[1].Category)
	require.True(t, got[1].TotalAmount.Equal(decimal.NewFromInt(60)))
}

func TestCategoryTotals_SumMatchesRecordSum(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "Cash", 12, day(2024, time.January, 3)),
		expense("Travel", "Card", 7, day(2024, time.February, 9)),
		expense("Rent", "Bank", 900, day(2024, time.March, 1)),
		expense("Food", "Card", 5, day(2024, time.April, 20)),
	}

	recordSum := decimal.Zero
	for _, r := range records {
		recordSum = recordSum.Add(r.Amount)
	}

	totalSum := decimal.Zero
	for _, ct := range CategoryTotals(records) {
		totalSum = totalSum.Add(ct.TotalAmount)
	}

	require.True(t, recordSum.Equal(totalSum))
}

func TestCategoryTotals_NoNormalization(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "Cash", 10, day(2024, time.March, 1)),
		expense("food", "Cash", 20, day(2024, time.March, 2)),
	}

	got := CategoryTotals(records)

	// Exact string grouping: casing matters.
	require.Len(t, got, 2)
}

func TestCategoryTotals_Empty(t *testing.T) {
	require.Empty(t, CategoryTotals(nil))
	require.Empty(t, CategoryTotals([]*v1.Expense{}))
}

func TestBucketTotals_Day(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "Cash", 10, time.Date(2024, time.March, 2, 18, 30, 0, 0, time.UTC)),
		expense("Food", "Cash", 5, time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC)),
		expense("Rent", "Bank", 60, day(2024, time.March, 1)),
	}

	got := BucketTotals(records, GranularityDay)

	require.Len(t, got, 2)
	require.Equal(t, "2024-03-01", got[0].Bucket)
	require.True(t, got[0].TotalAmount.Equal(decimal.NewFromInt(60)))
	require.Equal(t, "2024-03-02", got[1].Bucket)
	require.True(t, got[1].TotalAmount.Equal(decimal.NewFromInt(15)))
}

func TestBucketTotals_Week(t *testing.T) {
	// Wednesday 2024-03-13 belongs to the Sunday-anchored week
	// 2024-03-10 .. 2024-03-16.
	records := []*v1.Expense{
		expense("Food", "Cash", 10, day(2024, time.March, 13)),
		expense("Food", "Cash", 20, day(2024, time.March, 10)), // Sunday, same week
		expense("Rent", "Bank", 60, day(2024, time.March, 17)), // next Sunday
	}

	got := BucketTotals(records, GranularityWeek)

	require.Len(t, got, 2)
	require.Equal(t, "2024-03-10 to 2024-03-16", got[0].Bucket)
	require.True(t, got[0].TotalAmount.Equal(decimal.NewFromInt(30)))
	require.Equal(t, "2024-03-17 to 2024-03-23", got[1].Bucket)
	require.True(t, got[1].TotalAmount.Equal(decimal.NewFromInt(60)))
}

func TestBucketTotals_Week_MonthBoundary(t *testing.T) {
	// Friday 2024-03-01: its week starts the previous Sunday, in February.
	got := BucketTotals([]*v1.Expense{
		expense("Food", "Cash", 10, day(2024, time.March, 1)),
	}, GranularityWeek)

	require.Len(t, got, 1)
	require.Equal(t, "2024-02-25 to 2024-03-02", got[0].Bucket)
}

func TestBucketTotals_Month_CrossYearCollision(t *testing.T) {
	// Month buckets carry no year qualifier: January 2023 and January 2024
	// merge into one bucket. Known upstream quirk, reproduced deliberately.
	records := []*v1.Expense{
		expense("Food", "Cash", 15, day(2023, time.January, 15)),
		expense("Food", "Cash", 20, day(2024, time.January, 20)),
		expense("Rent", "Bank", 60, day(2023, time.February, 2)),
	}

	got := BucketTotals(records, GranularityMonth)

	require.Len(t, got, 2)
	require.Equal(t, "January", got[0].Bucket)
	require.True(t, got[0].TotalAmount.Equal(decimal.NewFromInt(35)))
	require.Equal(t, "February", got[1].Bucket)
}

func TestBucketTotals_Month_FirstOccurrenceOrder(t *testing.T) {
	// Month output follows first occurrence in the filtered set, not
	// alphabetical order.
	records := []*v1.Expense{
		expense("Food", "Cash", 1, day(2024, time.March, 5)),
		expense("Food", "Cash", 2, day(2024, time.April, 5)),
		expense("Food", "Cash", 3, day(2024, time.August, 5)),
	}

	got := BucketTotals(records, GranularityMonth)

	require.Equal(t, []string{"March", "April", "August"},
		[]string{got[0].Bucket, got[1].Bucket, got[2].Bucket})
}

func TestBucketTotals_Empty(t *testing.T) {
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		require.Empty(t, BucketTotals(nil, g))
	}
}

func TestPaymentSourceDistribution(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "Cash", 10, day(2024, time.March, 1)),
		expense("Food", "Cash", 10, day(2024, time.March, 2)),
		expense("Rent", "", 60, day(2024, time.March, 3)),
	}

	got := PaymentSourceDistribution(records)

	require.Len(t, got, 2)
	require.Equal(t, "Cash", got[0].PaymentSource)
	require.Equal(t, 2, got[0].Count)
	require.Equal(t, "Unknown", got[1].PaymentSource)
	require.Equal(t, 1, got[1].Count)
}

func TestTrendSeries(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "Cash", 10, day(2024, time.March, 3)),
		expense("Rent", "Bank", 60, day(2024, time.March, 1)),
		expense("Food", "Cash", 5, day(2024, time.March, 3)),
	}

	got := TrendSeries(records)

	// One point per record, no same-day merging.
	require.Len(t, got, len(records))
	require.Equal(t, "2024-03-01", got[0].Date)
	require.Equal(t, "2024-03-03", got[1].Date)
	require.Equal(t, "2024-03-03", got[2].Date)

	// Stable sort: ties keep input order.
	require.True(t, got[1].Amount.Equal(decimal.NewFromInt(10)))
	require.True(t, got[2].Amount.Equal(decimal.NewFromInt(5)))
}

func TestTrendSeries_DoesNotMutateInput(t *testing.T) {
	first := expense("Food", "Cash", 10, day(2024, time.March, 9))
	records := []*v1.Expense{
		first,
		expense("Rent", "Bank", 60, day(2024, time.March, 1)),
	}

	TrendSeries(records)

	require.Same(t, first, records[0])
}

func TestSummarize(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "Cash", 50, day(2024, time.March, 1)),
		expense("Food", "Cash", 30, day(2024, time.March, 2)),
		expense("Rent", "Bank", 60, day(2024, time.March, 3)),
	}

	got := Summarize(records)

	require.True(t, got.TotalAmount.Equal(decimal.NewFromInt(140)))
	require.Equal(t, 2, got.TotalCategories)
	require.Equal(t, "Food", got.MostSpentCategory)
	require.Equal(t, "Cash", got.MostUsedPaymentSource)
}

func TestSummarize_TieBreaksToSmallestLabel(t *testing.T) {
	records := []*v1.Expense{
		expense("Rent", "Wire", 50, day(2024, time.March, 1)),
		expense("Food", "Cash", 50, day(2024, time.March, 2)),
	}

	got := Summarize(records)

	require.Equal(t, "Food", got.MostSpentCategory)
	require.Equal(t, "Cash", got.MostUsedPaymentSource)
}

func TestSummarize_LiteralNALabelWins(t *testing.T) {
	// "N/A" is an ordinary free-text label; it must win on merit like any
	// other, not be treated as the empty-set placeholder.
	records := []*v1.Expense{
		expense("N/A", "N/A", 100, day(2024, time.March, 1)),
		expense("Apple", "Card", 50, day(2024, time.March, 2)),
		expense("Banana", "Cash", 40, day(2024, time.March, 3)),
	}

	got := Summarize(records)

	require.Equal(t, "N/A", got.MostSpentCategory)
	require.Equal(t, 3, got.TotalCategories)
	// One record per source: a three-way count tie breaks to the smallest label.
	require.Equal(t, "Card", got.MostUsedPaymentSource)
}

func TestSummarize_LiteralNASourceWinsOnCount(t *testing.T) {
	records := []*v1.Expense{
		expense("Food", "N/A", 10, day(2024, time.March, 1)),
		expense("Rent", "N/A", 10, day(2024, time.March, 2)),
		expense("Food", "Cash", 10, day(2024, time.March, 3)),
	}

	got := Summarize(records)

	require.Equal(t, "N/A", got.MostUsedPaymentSource)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	require.True(t, got.TotalAmount.IsZero())
	require.Equal(t, 0, got.TotalCategories)
	require.Equal(t, "N/A", got.MostSpentCategory)
	require.Equal(t, "N/A", got.MostUsedPaymentSource)
}
