package demo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

func i64(v int64) *int64 { return &v }
func i(v int) *int       { return &v }

func tags(raw string) datatypes.JSON { return datatypes.JSON([]byte(raw)) }

// seedProducts is the hand-authored catalog. created_at is back-dated by
// (index+1) days so lists come out in a sensible display order.
func seedProducts(ownerID uuid.UUID) []models.Product {
	now := time.Now()

	products := []models.Product{
		{Name: "Nike Air Jordan 1 Mid", Description: "Chicago colorway, size 42, light creasing on the toe box.", Category: "Shoes", ListingPrice: 145, PurchasePrice: i64(80), Platform: "eBay", Status: models.ProductListed, Condition: models.ConditionGood, Tags: tags(`["nike","jordan","sneakers"]`)},
		{Name: "Levi's 501 Vintage Jeans", Description: "Made in USA, W32 L34, classic stonewash.", Category: "Clothing", ListingPrice: 65, PurchasePrice: i64(18), Platform: "Vinted", Status: models.ProductListed, Condition: models.ConditionGood, Tags: tags(`["levis","vintage","denim"]`)},
		{Name: "Sony WH-1000XM4 Headphones", Description: "Boxed with cable and case, battery still strong.", Category: "Electronics", ListingPrice: 180, PurchasePrice: i64(95), SoldPrice: i64(175), Platform: "eBay", Status: models.ProductSold, Condition: models.ConditionLikeNew, Tags: tags(`["sony","audio"]`)},
		{Name: "Pokemon Base Set Charizard", Description: "Holo, lightly played, sleeved since 1999.", Category: "Collectibles", ListingPrice: 320, PurchasePrice: i64(150), Platform: "eBay", Status: models.ProductPending, Condition: models.ConditionFair, Tags: tags(`["pokemon","tcg","holo"]`)},
		{Name: "Carhartt Detroit Jacket", Description: "Brown duck canvas, faded just right, size L.", Category: "Clothing", ListingPrice: 110, PurchasePrice: i64(40), SoldPrice: i64(100), Platform: "Depop", Status: models.ProductSold, Condition: models.ConditionGood, Tags: tags(`["carhartt","workwear"]`)},
		{Name: "Game Boy Color Teal", Description: "New screen lens, original shell, works perfectly.", Category: "Electronics", ListingPrice: 75, PurchasePrice: i64(30), Platform: "Vinted", Status: models.ProductListed, Condition: models.ConditionGood, Tags: tags(`["nintendo","retro"]`)},
		{Name: "Le Creuset Dutch Oven 24cm", Description: "Volcanic orange, minor staining inside, no chips.", Category: "Home & Garden", ListingPrice: 140, PurchasePrice: i64(55), Platform: "Facebook Marketplace", Status: models.ProductListed, Condition: models.ConditionGood, Tags: tags(`["lecreuset","kitchen"]`)},
		{Name: "First Edition Dune Paperback", Description: "1965 Chilton, reading copy, spine intact.", Category: "Books & Media", ListingPrice: 90, PurchasePrice: i64(12), Platform: "eBay", Status: models.ProductExpired, Condition: models.ConditionFair, Tags: tags(`["books","scifi"]`)},
		{Name: "LEGO Star Wars 75192 Falcon", Description: "Complete with manuals, no box, adult-built.", Category: "Toys & Games", ListingPrice: 560, PurchasePrice: i64(380), Platform: "eBay", Status: models.ProductListed, Condition: models.ConditionLikeNew, Tags: tags(`["lego","starwars"]`)},
		{Name: "Patagonia Retro-X Fleece", Description: "Deep pile, natural colorway, size M.", Category: "Clothing", ListingPrice: 95, PurchasePrice: i64(35), SoldPrice: i64(88), Platform: "Depop", Status: models.ProductSold, Condition: models.ConditionGood, Tags: tags(`["patagonia","fleece"]`)},
	}

	for idx := range products {
		p := &products[idx]
		p.UserID = ownerID
		p.CreatedAt = now.AddDate(0, 0, -(idx + 1))
		p.UpdatedAt = p.CreatedAt
		if p.Status == models.ProductSold {
			// sold items get a recent update so turnaround shows up
			p.UpdatedAt = now.Add(-time.Duration(idx) * time.Hour)
			soldAt := p.UpdatedAt
			p.SoldAt = &soldAt
		}
		p.RecalcProfit()
	}
	return products
}

// seedMeetings builds five meetings back-dated (index+1)*12 hours; the first
// two reference the first two successfully created products by position.
func seedMeetings(ownerID uuid.UUID, created []models.Product) []models.Meeting {
	now := time.Now()

	meetings := []models.Meeting{
		{Title: "Sneaker handoff", ClientName: "Maya K.", ClientEmail: "maya.k@example.com", MeetingDate: now.AddDate(0, 0, 1), MeetingTime: "17:30", DurationMinutes: i(20), Location: "Central Station, north exit", Type: models.MeetingPickup, Status: models.MeetingScheduled},
		{Title: "Jeans try-on before purchase", ClientName: "Daniel R.", ClientPhone: "+31 6 1234 5678", MeetingDate: now.AddDate(0, 0, 2), MeetingTime: "12:00", DurationMinutes: i(30), Location: "Coffee Corner, Main St", Type: models.MeetingViewing, Status: models.MeetingScheduled},
		{Title: "Bulk lot negotiation", ClientName: "Thrift & Co.", ClientEmail: "buyers@thriftco.example", MeetingDate: now.AddDate(0, 0, 4), MeetingTime: "10:00", DurationMinutes: i(45), Location: "Video call", Type: models.MeetingNegotiation, Status: models.MeetingScheduled},
		{Title: "Dutch oven drop-off", ClientName: "Sofia L.", MeetingDate: now.AddDate(0, 0, -2), MeetingTime: "16:15", DurationMinutes: i(15), Location: "Her place, Elm Street 4", Type: models.MeetingDropOff, Status: models.MeetingCompleted},
		{Title: "Game Boy pickup (no show)", ClientName: "Mark", ClientPhone: "+31 6 8765 4321", MeetingDate: now.AddDate(0, 0, -5), MeetingTime: "19:00", Location: "Mall entrance", Type: models.MeetingPickup, Status: models.MeetingNoShow},
	}

	for idx := range meetings {
		m := &meetings[idx]
		m.UserID = ownerID
		m.CreatedAt = now.Add(-time.Duration(idx+1) * 12 * time.Hour)
		m.UpdatedAt = m.CreatedAt
		if idx < 2 && idx < len(created) {
			id := created[idx].ID
			m.ProductID = &id
		}
	}
	return meetings
}

func seedEvents(ownerID uuid.UUID) []models.AnalyticsEvent {
	now := time.Now()

	events := []models.AnalyticsEvent{
		{EventType: "demo_started", Payload: tags(`{"source":"landing_page"}`)},
		{EventType: "product_listed", Payload: tags(`{"platform":"eBay"}`)},
		{EventType: "product_sold", Payload: tags(`{"platform":"Depop","days_listed":6}`)},
		{EventType: "meeting_created", Payload: tags(`{"meeting_type":"pickup"}`)},
		{EventType: "dashboard_viewed", Payload: tags(`{"section":"weekly_activity"}`)},
	}

	for idx := range events {
		events[idx].UserID = ownerID
		events[idx].CreatedAt = now.Add(-time.Duration(idx) * time.Hour)
	}
	return events
}
