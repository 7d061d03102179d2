package stats

import (
	"testing"
	"time"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

func i64(v int64) *int64 { return &v }

func TestEmptyCollectionsProduceZeroesNotFaults(t *testing.T) {
	d := Compute(nil, nil, time.Now())

	if d.TotalProducts != 0 || d.SoldCount != 0 {
		t.Fatalf("expected zero counts, got %+v", d)
	}
	if d.SellThroughRate != 0 || d.ConversionRate != 0 || d.PipelineHealth != 0 {
		t.Fatalf("expected zero ratios on empty input, got %+v", d)
	}
	if d.AverageTurnaroundDays != 0 || d.TotalRevenue != 0 {
		t.Fatalf("expected zero sums on empty input, got %+v", d)
	}
	if len(d.WeeklyActivity) != 6 {
		t.Fatalf("expected 6 buckets even on empty input, got %d", len(d.WeeklyActivity))
	}
}

func TestSellThroughRateBounds(t *testing.T) {
	products := []models.Product{
		{Status: models.ProductSold},
		{Status: models.ProductSold},
		{Status: models.ProductListed},
	}
	got := SellThroughRate(products)
	if got < 0 || got > 100 {
		t.Fatalf("rate out of bounds: %d", got)
	}
	if got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}

	if SellThroughRate([]models.Product{{Status: models.ProductSold}}) != 100 {
		t.Fatal("expected 100 for all-sold")
	}
}

func TestConversionRateOneDecimal(t *testing.T) {
	products := []models.Product{
		{Status: models.ProductSold},
		{Status: models.ProductListed},
		{Status: models.ProductListed},
	}
	if got := ConversionRate(products); got != 33.3 {
		t.Fatalf("expected 33.3, got %v", got)
	}
}

func TestTotalRevenueIgnoresUnsoldProducts(t *testing.T) {
	products := []models.Product{
		{Status: models.ProductSold, SoldPrice: i64(150)},
		{Status: models.ProductSold, SoldPrice: i64(50)},
		{Status: models.ProductSold}, // sold but price never recorded
	}
	if got := TotalRevenue(products); got != 200 {
		t.Fatalf("expected 200, got %d", got)
	}

	// adding a non-sold product never changes revenue
	products = append(products, models.Product{Status: models.ProductListed, ListingPrice: 999})
	if got := TotalRevenue(products); got != 200 {
		t.Fatalf("expected 200 after adding listed product, got %d", got)
	}
}

func TestAverageTurnaroundClampsAndRounds(t *testing.T) {
	now := time.Now()
	products := []models.Product{
		// 3 days to sell
		{Status: models.ProductSold, CreatedAt: now.Add(-3 * 24 * time.Hour), UpdatedAt: now},
		// clock skew: updated before created, clamps to 0
		{Status: models.ProductSold, CreatedAt: now, UpdatedAt: now.Add(-time.Hour)},
		// unsold, ignored entirely
		{Status: models.ProductListed, CreatedAt: now.Add(-90 * 24 * time.Hour), UpdatedAt: now},
	}
	if got := AverageTurnaroundDays(products); got != 2 {
		t.Fatalf("expected round(1.5)=2, got %d", got)
	}
}

func TestWeeklyActivityShape(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	products := []models.Product{
		// created 3 days ago -> newest bucket
		{Status: models.ProductListed, CreatedAt: now.AddDate(0, 0, -3)},
		// created 40 days ago -> oldest bucket
		{Status: models.ProductListed, CreatedAt: now.AddDate(0, 0, -40)},
		// sold 10 days ago (second-newest bucket), created well before the window
		{Status: models.ProductSold, CreatedAt: now.AddDate(0, 0, -60), UpdatedAt: now.AddDate(0, 0, -10)},
		// outside the window entirely
		{Status: models.ProductListed, CreatedAt: now.AddDate(0, 0, -70)},
	}
	meetings := []models.Meeting{
		{Status: models.MeetingScheduled, MeetingDate: now.AddDate(0, 0, -2), MeetingTime: "10:00"},
		{Status: models.MeetingCancelled, MeetingDate: now.AddDate(0, 0, -2), MeetingTime: "11:00"},
	}

	buckets := WeeklyActivity(products, meetings, now)
	if len(buckets) != 6 {
		t.Fatalf("expected exactly 6 buckets, got %d", len(buckets))
	}

	for _, b := range buckets {
		if b.Listed < 0 || b.Sold < 0 || b.Meetings < 0 {
			t.Fatalf("negative count in bucket %+v", b)
		}
	}

	// oldest first: bucket 0 starts 42 days back
	if buckets[0].Label != now.AddDate(0, 0, -42).Format("Jan 2") {
		t.Fatalf("unexpected oldest label %q", buckets[0].Label)
	}
	if buckets[0].Listed != 1 {
		t.Fatalf("expected the 40-day-old product in the oldest bucket, got %+v", buckets[0])
	}
	if buckets[5].Listed != 1 {
		t.Fatalf("expected the 3-day-old product in the newest bucket, got %+v", buckets[5])
	}
	if buckets[4].Sold != 1 {
		t.Fatalf("expected the sale 10 days back in bucket 4, got %+v", buckets[4])
	}
	// only the scheduled meeting counts
	if buckets[5].Meetings != 1 {
		t.Fatalf("expected 1 scheduled meeting in newest bucket, got %+v", buckets[5])
	}

	total := 0
	for _, b := range buckets {
		total += b.Listed
	}
	if total != 2 {
		t.Fatalf("expected 2 in-window listings, got %d", total)
	}
}

func TestPipelineHealth(t *testing.T) {
	products := []models.Product{
		{Status: models.ProductListed},
		{Status: models.ProductSold},
		{Status: models.ProductExpired},
		{Status: models.ProductPending},
	}
	d := Compute(products, nil, time.Now())
	if d.PipelineHealth != 50 {
		t.Fatalf("expected 50, got %d", d.PipelineHealth)
	}
}

func TestComputeCountsAndProfit(t *testing.T) {
	sold := models.Product{
		Status:        models.ProductSold,
		PurchasePrice: i64(60),
		SoldPrice:     i64(100),
	}
	sold.RecalcProfit()
	if sold.Profit == nil || *sold.Profit != 40 {
		t.Fatalf("expected profit 40, got %v", sold.Profit)
	}

	listed := models.Product{Status: models.ProductListed, PurchasePrice: i64(60), ListingPrice: 100}
	listed.RecalcProfit()
	if listed.Profit != nil {
		t.Fatal("profit must be undefined while unsold")
	}

	d := Compute([]models.Product{sold, listed}, []models.Meeting{
		{Status: models.MeetingScheduled, MeetingDate: time.Now(), MeetingTime: "10:00"},
	}, time.Now())

	if d.TotalProducts != 2 || d.SoldCount != 1 || d.ListedCount != 1 {
		t.Fatalf("unexpected counts: %+v", d)
	}
	if d.TotalProfit != 40 || d.TotalRevenue != 100 {
		t.Fatalf("unexpected sums: %+v", d)
	}
	if d.ActiveMeetings != 1 {
		t.Fatalf("expected 1 active meeting, got %d", d.ActiveMeetings)
	}
}
