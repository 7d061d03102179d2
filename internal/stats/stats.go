// Package stats folds raw product/meeting collections into dashboard and
// analytics rollups. Everything here is a pure function; every ratio treats
// an empty input as a defined zero.
package stats

import (
	"math"
	"time"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

const weeklyBuckets = 6

type WeekBucket struct {
	Label    string `json:"label"` // "Mar 2" — start of the bucket
	Listed   int    `json:"listed"`
	Sold     int    `json:"sold"`
	Meetings int    `json:"meetings"`
}

type Dashboard struct {
	TotalProducts         int          `json:"total_products"`
	ListedCount           int          `json:"listed_count"`
	SoldCount             int          `json:"sold_count"`
	SellThroughRate       int          `json:"sell_through_rate"` // 0..100
	ConversionRate        float64      `json:"conversion_rate"`   // one decimal place
	PipelineHealth        int          `json:"pipeline_health"`   // 0..100
	TotalRevenue          int64        `json:"total_revenue"`
	TotalProfit           int64        `json:"total_profit"`
	ActiveMeetings        int          `json:"active_meetings"`
	AverageTurnaroundDays int          `json:"average_turnaround_days"`
	WeeklyActivity        []WeekBucket `json:"weekly_activity"`
}

// Compute builds the full dashboard rollup anchored at now.
func Compute(products []models.Product, meetings []models.Meeting, now time.Time) Dashboard {
	d := Dashboard{
		TotalProducts:         len(products),
		SoldCount:             countByStatus(products, models.ProductSold),
		ListedCount:           countByStatus(products, models.ProductListed),
		TotalRevenue:          TotalRevenue(products),
		TotalProfit:           totalProfit(products),
		ActiveMeetings:        ActiveMeetings(meetings),
		AverageTurnaroundDays: AverageTurnaroundDays(products),
		WeeklyActivity:        WeeklyActivity(products, meetings, now),
	}
	d.SellThroughRate = SellThroughRate(products)
	d.ConversionRate = ConversionRate(products)
	d.PipelineHealth = pct(d.ListedCount+d.SoldCount, d.TotalProducts)
	return d
}

// SellThroughRate is the percentage of products that reached sold status,
// rounded to the nearest integer. Zero when there are no products.
func SellThroughRate(products []models.Product) int {
	return pct(countByStatus(products, models.ProductSold), len(products))
}

// ConversionRate is the same ratio with one decimal place.
func ConversionRate(products []models.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	sold := countByStatus(products, models.ProductSold)
	return math.Round(1000*float64(sold)/float64(len(products))) / 10
}

// TotalRevenue sums the realized sold price over all products; a product
// without a sold price contributes nothing.
func TotalRevenue(products []models.Product) int64 {
	var total int64
	for _, p := range products {
		if p.SoldPrice != nil {
			total += *p.SoldPrice
		}
	}
	return total
}

func totalProfit(products []models.Product) int64 {
	var total int64
	for _, p := range products {
		if p.Profit != nil {
			total += *p.Profit
		}
	}
	return total
}

// ActiveMeetings counts meetings still in scheduled status.
func ActiveMeetings(meetings []models.Meeting) int {
	n := 0
	for _, m := range meetings {
		if m.Status == models.MeetingScheduled {
			n++
		}
	}
	return n
}

// AverageTurnaroundDays is the mean time between creation and last update of
// sold products, in days, clamped at zero per item and rounded. Zero when
// nothing has sold.
func AverageTurnaroundDays(products []models.Product) int {
	var sum float64
	n := 0
	for _, p := range products {
		if p.Status != models.ProductSold {
			continue
		}
		days := p.UpdatedAt.Sub(p.CreatedAt).Hours() / 24
		if days < 0 {
			days = 0
		}
		sum += days
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// WeeklyActivity partitions the trailing six weeks (anchored at now, each
// bucket exactly seven days, oldest first) and counts per bucket: products
// listed, products sold (update timestamp, falling back to creation), and
// scheduled meetings.
func WeeklyActivity(products []models.Product, meetings []models.Meeting, now time.Time) []WeekBucket {
	out := make([]WeekBucket, 0, weeklyBuckets)
	for i := 0; i < weeklyBuckets; i++ {
		start := now.AddDate(0, 0, -7*(weeklyBuckets-i))
		end := start.AddDate(0, 0, 7)
		b := WeekBucket{Label: start.Format("Jan 2")}

		for _, p := range products {
			if inRange(p.CreatedAt, start, end) {
				b.Listed++
			}
			if p.Status == models.ProductSold {
				ts := p.UpdatedAt
				if ts.IsZero() {
					ts = p.CreatedAt
				}
				if inRange(ts, start, end) {
					b.Sold++
				}
			}
		}
		for _, m := range meetings {
			if m.Status == models.MeetingScheduled && inRange(m.ScheduledAt(), start, end) {
				b.Meetings++
			}
		}
		out = append(out, b)
	}
	return out
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func countByStatus(products []models.Product, status models.ProductStatus) int {
	n := 0
	for _, p := range products {
		if p.Status == status {
			n++
		}
	}
	return n
}

func pct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
