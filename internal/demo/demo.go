// Package demo owns the throwaway dataset behind demo mode: a fixed catalog
// generated under the synthetic demo owner id and torn down on request.
package demo

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

// Store dependencies are interfaces so the lifecycle is testable without a
// database; internal/store satisfies them.
type ProductStore interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
	CountLive(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type MeetingStore interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Meeting, error)
	Create(ctx context.Context, m *models.Meeting) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
	CountLive(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type AnalyticsStore interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.AnalyticsEvent, error)
	Create(ctx context.Context, e *models.AnalyticsEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Lifecycle struct {
	products  ProductStore
	meetings  MeetingStore
	analytics AnalyticsStore
	log       *slog.Logger
}

func NewLifecycle(products ProductStore, meetings MeetingStore, analytics AnalyticsStore, log *slog.Logger) *Lifecycle {
	return &Lifecycle{
		products:  products,
		meetings:  meetings,
		analytics: analytics,
		log:       log.With("component", "demo"),
	}
}

// Result holds the successfully created subset of the seed catalog.
type Result struct {
	Products []models.Product
	Meetings []models.Meeting
	Events   []models.AnalyticsEvent
}

// Generate inserts the fixed demo catalog tagged with ownerID. Inserts are
// issued concurrently and joined; a failed insert is logged and skipped, it
// neither aborts siblings nor fails the call. Meetings go in a second wave
// because two of them reference created products.
func (l *Lifecycle) Generate(ctx context.Context, ownerID uuid.UUID) *Result {
	res := &Result{}

	seeds := seedProducts(ownerID)
	created := make([]*models.Product, len(seeds))
	var wg sync.WaitGroup
	for i := range seeds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := l.products.Create(ctx, &seeds[i]); err != nil {
				l.log.Warn("demo product insert failed", "name", seeds[i].Name, "err", err)
				return
			}
			created[i] = &seeds[i]
		}(i)
	}
	wg.Wait()

	for _, p := range created {
		if p != nil {
			res.Products = append(res.Products, *p)
		}
	}

	meetingSeeds := seedMeetings(ownerID, res.Products)
	eventSeeds := seedEvents(ownerID)

	createdMeetings := make([]*models.Meeting, len(meetingSeeds))
	createdEvents := make([]*models.AnalyticsEvent, len(eventSeeds))
	for i := range meetingSeeds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := l.meetings.Create(ctx, &meetingSeeds[i]); err != nil {
				l.log.Warn("demo meeting insert failed", "title", meetingSeeds[i].Title, "err", err)
				return
			}
			createdMeetings[i] = &meetingSeeds[i]
		}(i)
	}
	for i := range eventSeeds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := l.analytics.Create(ctx, &eventSeeds[i]); err != nil {
				l.log.Warn("demo event insert failed", "type", eventSeeds[i].EventType, "err", err)
				return
			}
			createdEvents[i] = &eventSeeds[i]
		}(i)
	}
	wg.Wait()

	for _, m := range createdMeetings {
		if m != nil {
			res.Meetings = append(res.Meetings, *m)
		}
	}
	for _, e := range createdEvents {
		if e != nil {
			res.Events = append(res.Events, *e)
		}
	}

	l.log.Info("demo dataset generated",
		"owner", ownerID,
		"products", len(res.Products),
		"meetings", len(res.Meetings),
		"events", len(res.Events))
	return res
}

// Exists reports whether any live demo product or meeting remains for the
// owner.
func (l *Lifecycle) Exists(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	n, err := l.products.CountLive(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	n, err = l.meetings.CountLive(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Cleanup tears the dataset down: soft delete for products and meetings,
// hard delete for analytics events, all issued concurrently. Unlike
// Generate, any failed deletion fails the whole call — cleanup is
// all-or-report.
func (l *Lifecycle) Cleanup(ctx context.Context, ownerID uuid.UUID) error {
	products, err := l.products.List(ctx, ownerID)
	if err != nil {
		return err
	}
	meetings, err := l.meetings.List(ctx, ownerID)
	if err != nil {
		return err
	}
	events, err := l.analytics.List(ctx, ownerID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range products {
		id := p.ID
		g.Go(func() error { return l.products.SoftDelete(gctx, ownerID, id) })
	}
	for _, m := range meetings {
		id := m.ID
		g.Go(func() error { return l.meetings.SoftDelete(gctx, ownerID, id) })
	}
	for _, e := range events {
		id := e.ID
		g.Go(func() error { return l.analytics.Delete(gctx, id) })
	}

	if err := g.Wait(); err != nil {
		l.log.Error("demo cleanup incomplete", "owner", ownerID, "err", err)
		return err
	}
	l.log.Info("demo dataset removed", "owner", ownerID)
	return nil
}
