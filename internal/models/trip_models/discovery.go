package trip_models

// Discovery is the normalized per-city fact record handed to the engine by
// the upstream enrichment pipeline. Every field may be partial; the engine
// degrades to documented fallbacks instead of failing.
type Discovery struct {
	Cities map[string]CityDiscovery `json:"cities"`
}

type CityDiscovery struct {
	Pois        []POIFact   `json:"pois"`
	Fares       FareFacts   `json:"fares"`
	Restaurants Restaurants `json:"restaurants"`
	Centroid    *LatLon     `json:"centroid,omitempty"`
	// Lodging is an optional discovered per-night rate.
	Lodging *Money `json:"lodging,omitempty"`
}

type POIFact struct {
	Name     string   `json:"name"`
	Price    *Money   `json:"price,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	OpenMin  *int     `json:"open_min,omitempty"`
	CloseMin *int     `json:"close_min,omitempty"`
	DwellMin *int     `json:"dwell_min,omitempty"`
	Sources  []string `json:"sources,omitempty"`
}

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type FareFacts struct {
	Transit TransitFares `json:"transit"`
	Taxi    TaxiTariff   `json:"taxi"`
}

type TransitFares struct {
	Single     *Money   `json:"single,omitempty"`
	DayPass    *Money   `json:"day_pass,omitempty"`
	WeeklyPass *Money   `json:"weekly_pass,omitempty"`
	Sources    []string `json:"sources,omitempty"`
}

type TaxiTariff struct {
	Base     *float64 `json:"base,omitempty"`
	PerKm    *float64 `json:"per_km,omitempty"`
	PerMin   *float64 `json:"per_min,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Sources  []string `json:"sources,omitempty"`
}

type Restaurants struct {
	Links []RestaurantLink `json:"links,omitempty"`
	Names []RestaurantName `json:"names,omitempty"`
}

type RestaurantLink struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	NearPoi string `json:"near_poi,omitempty"`
}

type RestaurantName struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	Source  string `json:"source,omitempty"`
	NearPoi string `json:"near_poi,omitempty"`
}

// TripDates are ISO 8601 date strings; either may be empty.
type TripDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Assumptions struct {
	RidesPerDay int `json:"rides_per_day,omitempty"`
}

// DefaultRidesPerDay is assumed when the caller provides no figure.
const DefaultRidesPerDay = 4
