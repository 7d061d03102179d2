package demo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

type fakeProducts struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]models.Product
	order      []uuid.UUID
	failCreate map[string]bool
	failDelete bool
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{rows: map[uuid.UUID]models.Product{}, failCreate: map[string]bool{}}
}

func (f *fakeProducts) List(_ context.Context, ownerID uuid.UUID) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, id := range f.order {
		p, ok := f.rows[id]
		if ok && p.UserID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate[p.Name] {
		return errors.New("insert rejected")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.rows[p.ID] = *p
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakeProducts) SoftDelete(_ context.Context, ownerID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("delete rejected")
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeProducts) CountLive(_ context.Context, ownerID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.rows {
		if p.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

type fakeMeetings struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Meeting
}

func newFakeMeetings() *fakeMeetings {
	return &fakeMeetings{rows: map[uuid.UUID]models.Meeting{}}
}

func (f *fakeMeetings) List(_ context.Context, ownerID uuid.UUID) ([]models.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Meeting
	for _, m := range f.rows {
		if m.UserID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetings) Create(_ context.Context, m *models.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	f.rows[m.ID] = *m
	return nil
}

func (f *fakeMeetings) SoftDelete(_ context.Context, ownerID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeMeetings) CountLive(_ context.Context, ownerID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.rows {
		if m.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

type fakeAnalytics struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.AnalyticsEvent
}

func newFakeAnalytics() *fakeAnalytics {
	return &fakeAnalytics{rows: map[uuid.UUID]models.AnalyticsEvent{}}
}

func (f *fakeAnalytics) List(_ context.Context, ownerID uuid.UUID) ([]models.AnalyticsEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AnalyticsEvent
	for _, e := range f.rows {
		if e.UserID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAnalytics) Create(_ context.Context, e *models.AnalyticsEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeAnalytics) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func testLifecycle(p *fakeProducts, m *fakeMeetings, a *fakeAnalytics) *Lifecycle {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLifecycle(p, m, a, log)
}

func TestGenerateInsertsFullCatalog(t *testing.T) {
	owner := uuid.New()
	p, m, a := newFakeProducts(), newFakeMeetings(), newFakeAnalytics()
	lc := testLifecycle(p, m, a)

	res := lc.Generate(context.Background(), owner)

	if len(res.Products) != 10 {
		t.Fatalf("expected 10 products, got %d", len(res.Products))
	}
	if len(res.Meetings) != 5 {
		t.Fatalf("expected 5 meetings, got %d", len(res.Meetings))
	}
	if len(res.Events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(res.Events))
	}

	for _, prod := range res.Products {
		if prod.UserID != owner {
			t.Fatalf("product not tagged with owner: %+v", prod)
		}
	}

	// first two meetings cross-reference the first two created products
	if res.Meetings[0].ProductID == nil || *res.Meetings[0].ProductID != res.Products[0].ID {
		t.Fatal("meeting 0 should reference product 0")
	}
	if res.Meetings[1].ProductID == nil || *res.Meetings[1].ProductID != res.Products[1].ID {
		t.Fatal("meeting 1 should reference product 1")
	}
	for _, mt := range res.Meetings[2:] {
		if mt.ProductID != nil {
			t.Fatalf("meeting %q should not reference a product", mt.Title)
		}
	}
}

func TestGenerateBackdatesForDisplayOrder(t *testing.T) {
	owner := uuid.New()
	lc := testLifecycle(newFakeProducts(), newFakeMeetings(), newFakeAnalytics())

	res := lc.Generate(context.Background(), owner)

	now := time.Now()
	for idx, prod := range res.Products {
		want := now.AddDate(0, 0, -(idx + 1))
		if diff := prod.CreatedAt.Sub(want); diff < -time.Minute || diff > time.Minute {
			t.Fatalf("product %d created_at not back-dated %d days (got %v)", idx, idx+1, prod.CreatedAt)
		}
	}
	for idx, mt := range res.Meetings {
		want := now.Add(-time.Duration(idx+1) * 12 * time.Hour)
		if diff := mt.CreatedAt.Sub(want); diff < -time.Minute || diff > time.Minute {
			t.Fatalf("meeting %d created_at not back-dated %d half-days", idx, idx+1)
		}
	}
}

func TestGenerateSkipsFailedInsertsWithoutAborting(t *testing.T) {
	owner := uuid.New()
	p := newFakeProducts()
	p.failCreate["Levi's 501 Vintage Jeans"] = true
	p.failCreate["Game Boy Color Teal"] = true
	lc := testLifecycle(p, newFakeMeetings(), newFakeAnalytics())

	res := lc.Generate(context.Background(), owner)

	if len(res.Products) != 8 {
		t.Fatalf("expected 8 surviving products, got %d", len(res.Products))
	}
	if len(res.Meetings) != 5 || len(res.Events) != 5 {
		t.Fatalf("sibling inserts should not be aborted, got %d meetings / %d events",
			len(res.Meetings), len(res.Events))
	}
	// cross-refs follow the created subset, not the raw catalog
	if res.Meetings[0].ProductID == nil || *res.Meetings[0].ProductID != res.Products[0].ID {
		t.Fatal("meeting 0 should reference the first surviving product")
	}
}

func TestExistsGenerateCleanupRoundTrip(t *testing.T) {
	owner := uuid.New()
	p, m, a := newFakeProducts(), newFakeMeetings(), newFakeAnalytics()
	lc := testLifecycle(p, m, a)
	ctx := context.Background()

	ok, err := lc.Exists(ctx, owner)
	if err != nil || ok {
		t.Fatalf("expected no demo data yet, got ok=%v err=%v", ok, err)
	}

	lc.Generate(ctx, owner)

	ok, err = lc.Exists(ctx, owner)
	if err != nil || !ok {
		t.Fatalf("expected demo data after generate, got ok=%v err=%v", ok, err)
	}

	if err := lc.Cleanup(ctx, owner); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	ok, err = lc.Exists(ctx, owner)
	if err != nil || ok {
		t.Fatalf("expected no demo data after cleanup, got ok=%v err=%v", ok, err)
	}

	events, _ := a.List(ctx, owner)
	if len(events) != 0 {
		t.Fatalf("analytics events must be hard-deleted, %d left", len(events))
	}
}

func TestCleanupReportsDeleteFailures(t *testing.T) {
	owner := uuid.New()
	p, m, a := newFakeProducts(), newFakeMeetings(), newFakeAnalytics()
	lc := testLifecycle(p, m, a)
	ctx := context.Background()

	lc.Generate(ctx, owner)
	p.failDelete = true

	if err := lc.Cleanup(ctx, owner); err == nil {
		t.Fatal("expected cleanup to surface the delete failure")
	}
}
