package checkout

// Plan is one of the three subscription offers shown on the pricing page.
// Amounts are whole currency units per billing interval.
type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Amount   int64    `json:"amount"`
	Interval string   `json:"interval"` // month / year / none
	Features []string `json:"features"`
}

var Plans = []Plan{
	{
		ID:       "free",
		Name:     "Free",
		Amount:   0,
		Interval: "none",
		Features: []string{"Up to 25 products", "Basic dashboard", "Meeting scheduling"},
	},
	{
		ID:       "pro_monthly",
		Name:     "Pro Monthly",
		Amount:   9,
		Interval: "month",
		Features: []string{"Unlimited products", "Weekly activity analytics", "Priority support"},
	},
	{
		ID:       "pro_yearly",
		Name:     "Pro Yearly",
		Amount:   89,
		Interval: "year",
		Features: []string{"Everything in Pro Monthly", "Two months free"},
	},
}

// PlanByID returns the plan and whether it exists.
func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
