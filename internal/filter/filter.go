// Package filter applies user-chosen predicates and ordering to in-memory
// product/meeting collections. The whole owner-scoped collection is always
// materialized first; there is no pagination.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

// All disables a status/category predicate.
const All = "all"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field     string
	Direction Direction
}

// ProductFilter predicates compose with AND semantics. Search is a
// case-insensitive substring matched against any of the product text fields.
type ProductFilter struct {
	Status   string
	Category string
	Search   string
}

// MeetingFilter adds an inclusive bound on the combined scheduled timestamp.
type MeetingFilter struct {
	Status string
	Search string
	From   *time.Time
	To     *time.Time
}

// Products returns the subset of products matching f, ordered by s. A zero
// sort means newest-first by creation time. Ties keep collection order.
func Products(products []models.Product, f ProductFilter, s Sort) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchProduct(p, f) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, s)
	return out
}

func matchProduct(p models.Product, f ProductFilter) bool {
	if f.Status != "" && f.Status != All && string(p.Status) != f.Status {
		return false
	}
	if f.Category != "" && f.Category != All && p.Category != f.Category {
		return false
	}
	if f.Search != "" {
		return containsFold(f.Search, p.Name, p.Description, p.Platform, p.Notes)
	}
	return true
}

func sortProducts(products []models.Product, s Sort) {
	field := s.Field
	if field == "" {
		field = "created_at"
		if s.Direction == "" {
			s.Direction = Desc
		}
	}

	var less func(a, b models.Product) bool
	switch field {
	case "name":
		less = func(a, b models.Product) bool { return lessFold(a.Name, b.Name) }
	case "listing_price":
		less = func(a, b models.Product) bool { return a.ListingPrice < b.ListingPrice }
	case "status":
		less = func(a, b models.Product) bool { return lessFold(string(a.Status), string(b.Status)) }
	default:
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.SliceStable(products, func(i, j int) bool {
		if s.Direction == Desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// Meetings returns the subset of meetings matching f, ordered by s. A zero
// sort means scheduled time ascending.
func Meetings(meetings []models.Meeting, f MeetingFilter, s Sort) []models.Meeting {
	out := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if !matchMeeting(m, f) {
			continue
		}
		out = append(out, m)
	}
	sortMeetings(out, s)
	return out
}

func matchMeeting(m models.Meeting, f MeetingFilter) bool {
	if f.Status != "" && f.Status != All && string(m.Status) != f.Status {
		return false
	}
	if f.From != nil && m.ScheduledAt().Before(*f.From) {
		return false
	}
	if f.To != nil && m.ScheduledAt().After(*f.To) {
		return false
	}
	if f.Search != "" {
		return containsFold(f.Search, m.Title, m.ClientName, m.ClientEmail, m.Location)
	}
	return true
}

func sortMeetings(meetings []models.Meeting, s Sort) {
	field := s.Field
	if field == "" {
		field = "scheduled_at"
	}

	var less func(a, b models.Meeting) bool
	switch field {
	case "title":
		less = func(a, b models.Meeting) bool { return lessFold(a.Title, b.Title) }
	case "client_name":
		less = func(a, b models.Meeting) bool { return lessFold(a.ClientName, b.ClientName) }
	case "created_at":
		less = func(a, b models.Meeting) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "status":
		less = func(a, b models.Meeting) bool { return lessFold(string(a.Status), string(b.Status)) }
	default:
		less = func(a, b models.Meeting) bool { return a.ScheduledAt().Before(b.ScheduledAt()) }
	}

	sort.SliceStable(meetings, func(i, j int) bool {
		if s.Direction == Desc {
			return less(meetings[j], meetings[i])
		}
		return less(meetings[i], meetings[j])
	})
}

// containsFold reports whether any field contains term, case-insensitively.
func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
