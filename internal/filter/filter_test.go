package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

func day(n int) time.Time {
	return time.Date(2026, 3, n, 0, 0, 0, 0, time.UTC)
}

func sampleProducts() []models.Product {
	return []models.Product{
		{Name: "Nike Air Max", Description: "worn twice", Category: "Shoes", Platform: "eBay", Status: models.ProductListed, ListingPrice: 120, CreatedAt: day(1)},
		{Name: "Levi's Jacket", Description: "vintage denim", Category: "Clothing", Platform: "Vinted", Status: models.ProductSold, ListingPrice: 60, CreatedAt: day(2)},
		{Name: "Game Boy", Description: "retro console", Category: "Electronics", Platform: "eBay", Status: models.ProductListed, ListingPrice: 90, CreatedAt: day(3), Notes: "needs new screen"},
		{Name: "Denim Shorts", Description: "", Category: "Clothing", Platform: "Depop", Status: models.ProductPending, ListingPrice: 25, CreatedAt: day(4)},
	}
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestProductsAllFiltersOffReturnsEverything(t *testing.T) {
	got := Products(sampleProducts(), ProductFilter{Status: All, Category: All}, Sort{})
	if len(got) != 4 {
		t.Fatalf("expected 4 products, got %d", len(got))
	}
	// zero sort = newest first
	if got[0].Name != "Denim Shorts" || got[3].Name != "Nike Air Max" {
		t.Fatalf("unexpected order: %v", names(got))
	}
}

func TestProductsStatusAndCategoryAND(t *testing.T) {
	got := Products(sampleProducts(), ProductFilter{Status: "listed", Category: "Shoes"}, Sort{})
	if len(got) != 1 || got[0].Name != "Nike Air Max" {
		t.Fatalf("unexpected result: %v", names(got))
	}
}

func TestProductsSearchMatchesAnyTextField(t *testing.T) {
	// "denim" appears in a description and in a name
	got := Products(sampleProducts(), ProductFilter{Search: "DENIM"}, Sort{Field: "name", Direction: Asc})
	if !reflect.DeepEqual(names(got), []string{"Denim Shorts", "Levi's Jacket"}) {
		t.Fatalf("unexpected result: %v", names(got))
	}

	// notes are searched too
	got = Products(sampleProducts(), ProductFilter{Search: "screen"}, Sort{})
	if len(got) != 1 || got[0].Name != "Game Boy" {
		t.Fatalf("expected notes match, got %v", names(got))
	}
}

func TestProductsFilterOrderIrrelevant(t *testing.T) {
	all := sampleProducts()

	statusFirst := Products(Products(all, ProductFilter{Status: "listed"}, Sort{}), ProductFilter{Search: "ebay"}, Sort{})
	searchFirst := Products(Products(all, ProductFilter{Search: "ebay"}, Sort{}), ProductFilter{Status: "listed"}, Sort{})

	if !reflect.DeepEqual(names(statusFirst), names(searchFirst)) {
		t.Fatalf("filter order changed result: %v vs %v", names(statusFirst), names(searchFirst))
	}
	if len(statusFirst) != 2 {
		t.Fatalf("expected 2 eBay listed products, got %v", names(statusFirst))
	}
}

func TestProductsSortByPriceDesc(t *testing.T) {
	got := Products(sampleProducts(), ProductFilter{}, Sort{Field: "listing_price", Direction: Desc})
	want := []string{"Nike Air Max", "Game Boy", "Levi's Jacket", "Denim Shorts"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("unexpected order: %v", names(got))
	}
}

func TestProductsSortNameCaseInsensitive(t *testing.T) {
	products := []models.Product{
		{Name: "zebra print bag", CreatedAt: day(1)},
		{Name: "Air Fryer", CreatedAt: day(2)},
	}
	got := Products(products, ProductFilter{}, Sort{Field: "name", Direction: Asc})
	if got[0].Name != "Air Fryer" {
		t.Fatalf("unexpected order: %v", names(got))
	}
}

func sampleMeetings() []models.Meeting {
	return []models.Meeting{
		{Title: "Sneaker pickup", ClientName: "Ana", MeetingDate: day(10), MeetingTime: "14:00", Status: models.MeetingScheduled},
		{Title: "Jacket viewing", ClientName: "Bob", ClientEmail: "bob@mail.com", MeetingDate: day(8), MeetingTime: "09:30", Status: models.MeetingCompleted},
		{Title: "Console drop-off", ClientName: "Cleo", MeetingDate: day(12), MeetingTime: "18:00", Status: models.MeetingScheduled, Location: "Central Station"},
	}
}

func titles(meetings []models.Meeting) []string {
	out := make([]string, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, m.Title)
	}
	return out
}

func TestMeetingsDefaultIsDateAscending(t *testing.T) {
	got := Meetings(sampleMeetings(), MeetingFilter{Status: All}, Sort{})
	want := []string{"Jacket viewing", "Sneaker pickup", "Console drop-off"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("unexpected order: %v", titles(got))
	}
}

func TestMeetingsDateRangeInclusive(t *testing.T) {
	from := day(8)
	to := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	got := Meetings(sampleMeetings(), MeetingFilter{From: &from, To: &to}, Sort{})
	// both bounds inclusive: the 09:30 meeting on the 8th and the 14:00 on the 10th
	want := []string{"Jacket viewing", "Sneaker pickup"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("unexpected result: %v", titles(got))
	}
}

func TestMeetingsSearchOverClientAndLocation(t *testing.T) {
	got := Meetings(sampleMeetings(), MeetingFilter{Search: "central"}, Sort{})
	if len(got) != 1 || got[0].Title != "Console drop-off" {
		t.Fatalf("unexpected result: %v", titles(got))
	}

	got = Meetings(sampleMeetings(), MeetingFilter{Search: "bob@"}, Sort{})
	if len(got) != 1 || got[0].Title != "Jacket viewing" {
		t.Fatalf("unexpected result: %v", titles(got))
	}
}

func TestMeetingsStatusFilter(t *testing.T) {
	got := Meetings(sampleMeetings(), MeetingFilter{Status: "scheduled"}, Sort{})
	if len(got) != 2 {
		t.Fatalf("expected 2 scheduled meetings, got %v", titles(got))
	}
}
