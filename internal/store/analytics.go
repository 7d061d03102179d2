package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

type AnalyticsStore struct {
	DB *gorm.DB
}

func NewAnalyticsStore(db *gorm.DB) *AnalyticsStore {
	return &AnalyticsStore{DB: db}
}

func (s *AnalyticsStore) List(ctx context.Context, ownerID uuid.UUID) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list analytics events: %w", err)
	}
	return events, nil
}

func (s *AnalyticsStore) Create(ctx context.Context, e *models.AnalyticsEvent) error {
	if err := s.DB.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create analytics event: %w", err)
	}
	return nil
}

// Delete removes the event row for good. Analytics events are the one entity
// without a soft-delete tombstone.
func (s *AnalyticsStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.DB.WithContext(ctx).Delete(&models.AnalyticsEvent{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete analytics event: %w", err)
	}
	return nil
}

// PeriodSummary is the server-side rollup for a date window, computed in SQL
// rather than from materialized collections.
type PeriodSummary struct {
	ProductsListed int64 `json:"products_listed"`
	ProductsSold   int64 `json:"products_sold"`
	Revenue        int64 `json:"revenue"`
	Profit         int64 `json:"profit"`
	MeetingsHeld   int64 `json:"meetings_held"`
}

func (s *AnalyticsStore) PeriodSummary(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (*PeriodSummary, error) {
	db := s.DB.WithContext(ctx)
	var out PeriodSummary

	if err := db.Model(&models.Product{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", ownerID, from, to).
		Count(&out.ProductsListed).Error; err != nil {
		return nil, fmt.Errorf("period summary: %w", err)
	}

	type sums struct {
		Sold    int64
		Revenue int64
		Profit  int64
	}
	var agg sums
	if err := db.Model(&models.Product{}).
		Where("user_id = ? AND status = ? AND updated_at >= ? AND updated_at < ?",
			ownerID, models.ProductSold, from, to).
		Select("COUNT(*) as sold, COALESCE(SUM(sold_price), 0) as revenue, COALESCE(SUM(profit), 0) as profit").
		Scan(&agg).Error; err != nil {
		return nil, fmt.Errorf("period summary: %w", err)
	}
	out.ProductsSold = agg.Sold
	out.Revenue = agg.Revenue
	out.Profit = agg.Profit

	if err := db.Model(&models.Meeting{}).
		Where("user_id = ? AND status = ? AND meeting_date >= ? AND meeting_date < ?",
			ownerID, models.MeetingCompleted, from, to).
		Count(&out.MeetingsHeld).Error; err != nil {
		return nil, fmt.Errorf("period summary: %w", err)
	}

	return &out, nil
}
