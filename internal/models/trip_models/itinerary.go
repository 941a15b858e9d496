package trip_models

// Travel modes the scheduler can pick per hop.
const (
	ModeWalk    = "walk"
	ModeTransit = "transit"
	ModeTaxi    = "taxi"
)

// VisitItem is one committed stop in a day plan, annotated with the hop
// that reached it.
type VisitItem struct {
	NodeID     string   `json:"node_id"`
	Kind       NodeKind `json:"kind"`
	Name       string   `json:"name"`
	FromID     string   `json:"from_id"`
	Mode       string   `json:"mode"`
	TravelMin  int      `json:"travel_min"`
	TravelCost *Money   `json:"travel_cost"`
	ArriveMin  int      `json:"arrive_min"`
	StartMin   int      `json:"start_min"`
	EndMin     int      `json:"end_min"`
}

type DayTotals struct {
	TravelCost *Money `json:"travel_cost"`
	POICount   int    `json:"poi_count"`
	MealCount  int    `json:"meal_count"`
}

// DayPlan is one hotel-to-hotel day. Plans are produced in a single
// scheduling pass and never mutated; re-planning means re-running the
// scheduler.
type DayPlan struct {
	Day         int         `json:"day"`
	City        string      `json:"city"`
	DayStartMin int         `json:"day_start_min"`
	DayEndMin   int         `json:"day_end_min"`
	// Window is the day bounds rendered as "HH:MM-HH:MM" for display.
	Window string      `json:"window"`
	Items  []VisitItem `json:"items"`
	Totals DayTotals   `json:"totals"`
	Notes  []string    `json:"notes"`
}

// Itinerary maps each city to its day plans.
type Itinerary struct {
	Cities map[string][]DayPlan `json:"cities"`
}

// TripTotals aggregates display costs across the whole trip. Sums use the
// first-operand currency rule (see AddMoney).
type TripTotals struct {
	Lodging  *Money `json:"lodging,omitempty"`
	Transit  *Money `json:"transit,omitempty"`
	Travel   *Money `json:"travel,omitempty"`
	POIEntry *Money `json:"poi_entry,omitempty"`
	Meals    *Money `json:"meals,omitempty"`
	Grand    *Money `json:"grand_total,omitempty"`
}

// BudgetCaps is the caller's spending constraint. Total is in the target
// currency; lodging counts against it unless IncludeLodging says otherwise.
type BudgetCaps struct {
	Total          *float64 `json:"total,omitempty"`
	IncludeLodging *bool    `json:"include_lodging,omitempty"`
}

// BudgetReport records how the plan fared against the caps, including the
// meal prices the totals were computed with.
type BudgetReport struct {
	TargetCurrency string            `json:"target_currency"`
	CapTotal       *float64          `json:"cap_total,omitempty"`
	IncludeLodging bool              `json:"include_lodging"`
	Met            bool              `json:"met"`
	SpendTotal     *Money            `json:"spend_total,omitempty"`
	Note           string            `json:"note,omitempty"`
	MealPricesUsed map[string]*Money `json:"meal_prices_used"`
}

// PlanResult is the engine output for one planning session.
type PlanResult struct {
	RunID     string                `json:"run_id,omitempty"`
	SessionID string                `json:"session_id,omitempty"`
	Nights    int                   `json:"nights"`
	GeoCost   map[string]*CityGraph `json:"geocost"`
	Itinerary Itinerary             `json:"itinerary"`
	Costs     map[string]CityCosts  `json:"costs"`
	Totals    TripTotals            `json:"totals"`
	Budget    BudgetReport          `json:"budget"`
}

// PlanSession is the engine input: the discovery record plus trip framing.
type PlanSession struct {
	SessionID      string      `json:"session_id,omitempty"`
	Cities         []string    `json:"cities"`
	Discovery      Discovery   `json:"discovery"`
	Dates          *TripDates  `json:"dates,omitempty"`
	Assumptions    Assumptions `json:"assumptions,omitempty"`
	TargetCurrency string      `json:"target_currency,omitempty"`
	Budget         *BudgetCaps `json:"budget,omitempty"`
	// MealPrices overrides the default meal budget by meal name
	// ("Breakfast", "Lunch", "Dinner"), in the target currency.
	MealPrices map[string]float64 `json:"meal_prices,omitempty"`
}
