package handlers

import (
	"strings"
	"testing"
)

func TestProductCreateValidation(t *testing.T) {
	price := int64(-5)
	cases := []struct {
		name  string
		req   productCreateRequest
		field string
	}{
		{"missing name", productCreateRequest{Category: "electronics", ListingPrice: 100}, "name"},
		{"missing category", productCreateRequest{Name: "Camera", ListingPrice: 100}, "category"},
		{"zero price", productCreateRequest{Name: "Camera", Category: "electronics"}, "listing_price"},
		{"negative purchase price", productCreateRequest{Name: "Camera", Category: "electronics", ListingPrice: 100, PurchasePrice: &price}, "purchase_price"},
		{"unknown condition", productCreateRequest{Name: "Camera", Category: "electronics", ListingPrice: 100, Condition: "mint"}, "condition"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fe := tc.req.validate()
			if len(fe[tc.field]) == 0 {
				t.Fatalf("expected an error on %q, got %v", tc.field, fe)
			}
		})
	}

	ok := productCreateRequest{Name: "Camera", Category: "electronics", ListingPrice: 100, Condition: "like_new"}
	if fe := ok.validate(); len(fe) != 0 {
		t.Fatalf("valid request rejected: %v", fe)
	}
}

func TestProductUpdateValidation(t *testing.T) {
	strp := func(s string) *string { return &s }
	i64p := func(v int64) *int64 { return &v }

	cases := []struct {
		name  string
		req   productUpdateRequest
		field string
	}{
		{"blank name", productUpdateRequest{Name: strp("  ")}, "name"},
		{"zero listing price", productUpdateRequest{ListingPrice: i64p(0)}, "listing_price"},
		{"negative purchase price", productUpdateRequest{PurchasePrice: i64p(-40)}, "purchase_price"},
		{"unknown condition", productUpdateRequest{Condition: strp("mint")}, "condition"},
		{"sold via update", productUpdateRequest{Status: strp("sold")}, "status"},
		{"unknown status", productUpdateRequest{Status: strp("archived")}, "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fe := tc.req.validate()
			if len(fe[tc.field]) == 0 {
				t.Fatalf("expected an error on %q, got %v", tc.field, fe)
			}
		})
	}

	// absent fields stay unvalidated, present valid fields pass
	ok := productUpdateRequest{PurchasePrice: i64p(40), Status: strp("pending")}
	if fe := ok.validate(); len(fe) != 0 {
		t.Fatalf("valid partial update rejected: %v", fe)
	}
	var empty productUpdateRequest
	if fe := empty.validate(); len(fe) != 0 {
		t.Fatalf("empty update rejected: %v", fe)
	}
}

func TestMeetingCreateValidation(t *testing.T) {
	base := meetingCreateRequest{Title: "Pickup", MeetingDate: "2026-09-01", MeetingTime: "14:30"}

	if date, fe := base.validate(); len(fe) != 0 {
		t.Fatalf("valid request rejected: %v", fe)
	} else if date.Format("2006-01-02") != "2026-09-01" {
		t.Fatalf("parsed date = %v", date)
	}

	bad := base
	bad.MeetingDate = "01/09/2026"
	if _, fe := bad.validate(); len(fe["meeting_date"]) == 0 {
		t.Fatal("slash date accepted")
	}

	bad = base
	bad.MeetingTime = "2pm"
	if _, fe := bad.validate(); len(fe["meeting_time"]) == 0 {
		t.Fatal("non HH:MM time accepted")
	}

	bad = base
	bad.Title = "   "
	if _, fe := bad.validate(); len(fe["title"]) == 0 {
		t.Fatal("blank title accepted")
	}

	bad = base
	bad.Type = "brunch"
	if _, fe := bad.validate(); len(fe["meeting_type"]) == 0 {
		t.Fatal("unknown meeting type accepted")
	}
}

func TestSortFieldAllowlists(t *testing.T) {
	for _, f := range []string{"name", "listing_price", "created_at", "status"} {
		if productSortField(f) != f {
			t.Errorf("product sort field %q rejected", f)
		}
	}
	if productSortField("profit; DROP TABLE products") != "" {
		t.Error("unknown product sort field passed through")
	}
	for _, f := range []string{"scheduled_at", "title", "client_name", "created_at", "status"} {
		if meetingSortField(f) != f {
			t.Errorf("meeting sort field %q rejected", f)
		}
	}
	if meetingSortField("client_email") != "" {
		t.Error("unknown meeting sort field passed through")
	}
}

func TestTagsJSON(t *testing.T) {
	if got := string(tagsJSON(nil)); got != "[]" {
		t.Fatalf("nil tags = %s, want []", got)
	}
	got := string(tagsJSON([]string{"vintage", "tested"}))
	if got != `["vintage","tested"]` {
		t.Fatalf("tags = %s", got)
	}
}

func TestParseDateParam(t *testing.T) {
	if parseDateParam("") != nil {
		t.Fatal("empty value should parse to nil")
	}
	if parseDateParam("not-a-date") != nil {
		t.Fatal("garbage should parse to nil")
	}
	d := parseDateParam("2026-08-30")
	if d == nil || d.Format("2006-01-02") != "2026-08-30" {
		t.Fatalf("parsed = %v", d)
	}
}

func TestMerchantRefFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref := merchantRef()
		if !strings.HasPrefix(ref, "SUB-") || len(ref) != 4+16 {
			t.Fatalf("ref %q has the wrong shape", ref)
		}
		if seen[ref] {
			t.Fatalf("duplicate ref %q", ref)
		}
		seen[ref] = true
	}
}
