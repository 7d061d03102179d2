package models

import (
	"testing"
	"time"
)

func TestRecalcProfitLifecycle(t *testing.T) {
	purchase := int64(60)
	p := Product{Status: ProductListed, ListingPrice: 100, PurchasePrice: &purchase}

	p.RecalcProfit()
	if p.Profit != nil {
		t.Fatalf("profit computed for a listed product: %d", *p.Profit)
	}

	sold := int64(110)
	p.Status = ProductSold
	p.SoldPrice = &sold
	p.RecalcProfit()
	if p.Profit == nil || *p.Profit != 50 {
		t.Fatalf("profit = %v, want 50", p.Profit)
	}

	// losing the purchase price makes profit undefined again
	p.PurchasePrice = nil
	p.RecalcProfit()
	if p.Profit != nil {
		t.Fatalf("profit survived without a purchase price: %d", *p.Profit)
	}
}

func TestMeetingScheduledAtCombinesDateAndTime(t *testing.T) {
	m := Meeting{
		MeetingDate: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		MeetingTime: "14:30",
	}

	at := m.ScheduledAt()
	if at.Hour() != 14 || at.Minute() != 30 {
		t.Fatalf("scheduled at %v, want 14:30 wall clock", at)
	}

	m.MeetingTime = "half past two"
	at = m.ScheduledAt()
	if at.Hour() != 0 || at.Minute() != 0 {
		t.Fatalf("malformed time should mean midnight, got %v", at)
	}
}
