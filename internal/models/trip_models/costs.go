package trip_models

// Per-day transit strategies.
const (
	TransitChoiceSingle     = "single"
	TransitChoiceDayPass    = "day_pass"
	TransitChoiceWeeklyPass = "weekly_pass"
)

// CityCosts is the cost-inference output for one city. Every field is
// well-typed even when the underlying fare data was missing; ambiguity is
// recorded in the Notes fields rather than raised as an error.
type CityCosts struct {
	Transit  TransitCostPlan `json:"transit"`
	Taxi     TaxiEstimate    `json:"taxi"`
	Lodging  LodgingEstimate `json:"lodging"`
	POIEntry []POIEntryCost  `json:"poi_entry"`
}

type TransitCostPlan struct {
	RidesPerDay int `json:"rides_per_day"`
	// BreakEvenRides is the number of single fares at which a day pass
	// becomes cheaper; nil when either fare is unknown.
	BreakEvenRides *int   `json:"break_even_rides_for_day_pass,omitempty"`
	PerDayChoice   string `json:"per_day_choice,omitempty"`
	PerDayCost     *Money `json:"per_day_cost,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// TaxiEstimate passes the tariff formula through and carries two
// illustrative fares for display; the scheduler never consumes the examples.
type TaxiEstimate struct {
	Formula  TaxiTariff `json:"formula"`
	ShortHop *Money     `json:"short_city_hop,omitempty"`
	LongHop  *Money     `json:"airport_like,omitempty"`
}

type LodgingEstimate struct {
	PerNight *Money `json:"per_night,omitempty"`
	Nights   int    `json:"nights"`
	Total    *Money `json:"total,omitempty"`
	Note     string `json:"note,omitempty"`
}

type POIEntryCost struct {
	Name  string `json:"name"`
	Entry *Money `json:"entry,omitempty"`
}
