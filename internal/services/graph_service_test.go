package services

import (
	"reflect"
	"testing"

	"tripsmith/internal/models/trip_models"
	"tripsmith/pkg/utils"
)

func parisDiscovery() trip_models.CityDiscovery {
	return trip_models.CityDiscovery{
		Pois: []trip_models.POIFact{
			{Name: "Louvre", Lat: fptr(48.8606), Lon: fptr(2.3376)},
			{Name: "Eiffel Tower", Lat: fptr(48.8584), Lon: fptr(2.2945)},
			{Name: "Hidden Bistro Museum"},
		},
		Fares: trip_models.FareFacts{
			Transit: trip_models.TransitFares{
				Single:  trip_models.NewMoney(2.1, "EUR"),
				DayPass: trip_models.NewMoney(7.5, "EUR"),
			},
			Taxi: trip_models.TaxiTariff{Base: fptr(4.0), PerKm: fptr(1.5), Currency: "EUR"},
		},
		Centroid: &trip_models.LatLon{Lat: 48.8566, Lon: 2.3522},
	}
}

func TestBuildCityGraphCompleteness(t *testing.T) {
	disc := parisDiscovery()
	costs := NewCostService().InferCityCosts("Paris", disc, 4, 2)

	g := NewGraphService(DefaultGraphConfig()).BuildCityGraph("Paris", disc, costs)

	// 3 POIs + hotel + 3 meal slots.
	if len(g.Nodes) != 7 {
		t.Fatalf("expected 7 nodes, got %d", len(g.Nodes))
	}
	if want := 7 * 6 / 2; len(g.Edges) != want {
		t.Fatalf("expected %d edges, got %d", want, len(g.Edges))
	}

	byID := g.NodeByID()
	for _, id := range []string{trip_models.HotelID, "P1", "P2", "P3", trip_models.BreakfastID, trip_models.LunchID, trip_models.DinnerID} {
		if byID[id] == nil {
			t.Fatalf("missing node %s", id)
		}
	}

	edges := g.EdgeMap()
	for ai, a := range g.Nodes {
		for _, b := range g.Nodes[ai+1:] {
			if edges[trip_models.PairKey(a.ID, b.ID)] == nil {
				t.Fatalf("missing edge %s-%s", a.ID, b.ID)
			}
		}
	}

	for _, e := range g.Edges {
		if e.Walk.Minutes < 0 || e.Transit.Minutes < 0 || e.Taxi.Minutes < 0 {
			t.Fatalf("negative minutes on edge %s-%s", e.A, e.B)
		}
	}
}

func TestBuildCityGraphDeterminism(t *testing.T) {
	disc := parisDiscovery()
	costs := NewCostService().InferCityCosts("Paris", disc, 4, 2)
	svc := NewGraphService(DefaultGraphConfig())

	g1 := svc.BuildCityGraph("Paris", disc, costs)
	g2 := svc.BuildCityGraph("Paris", disc, costs)

	if !reflect.DeepEqual(g1, g2) {
		t.Fatal("same inputs should assemble identical graphs")
	}
}

func TestGraphDistanceQualities(t *testing.T) {
	disc := parisDiscovery()
	costs := NewCostService().InferCityCosts("Paris", disc, 4, 2)
	g := NewGraphService(DefaultGraphConfig()).BuildCityGraph("Paris", disc, costs)
	edges := g.EdgeMap()

	// Both coordinates known: true haversine.
	p1p2 := edges[trip_models.PairKey("P1", "P2")]
	want := utils.Round2(utils.HaversineKm(48.8606, 2.3376, 48.8584, 2.2945))
	if p1p2.Quality != trip_models.QualityHaversine || p1p2.DistanceKm != want {
		t.Fatalf("P1-P2 = %v km quality %q, want %v km haversine", p1p2.DistanceKm, p1p2.Quality, want)
	}

	// One side unknown: centroid-assisted with the 1.25 inflation.
	p1p3 := edges[trip_models.PairKey("P1", "P3")]
	want = utils.Round2(utils.HaversineKm(48.8606, 2.3376, 48.8566, 2.3522) * 1.25)
	if p1p3.Quality != trip_models.QualityCentroid || p1p3.DistanceKm != want {
		t.Fatalf("P1-P3 = %v km quality %q, want %v km centroid-assisted", p1p3.DistanceKm, p1p3.Quality, want)
	}

	// Any meal endpoint: assumed local hop.
	hMeal := edges[trip_models.PairKey(trip_models.HotelID, trip_models.BreakfastID)]
	if hMeal.Quality != trip_models.QualityMealHop || hMeal.DistanceKm != 0.8 {
		t.Fatalf("H-MB = %v km quality %q, want 0.8 assumed_local_meal", hMeal.DistanceKm, hMeal.Quality)
	}
}

func TestGraphBucketFallback(t *testing.T) {
	disc := trip_models.CityDiscovery{
		Pois: []trip_models.POIFact{{Name: "A"}, {Name: "B"}},
	}
	costs := NewCostService().InferCityCosts("Nowhere", disc, 4, 1)
	cfg := DefaultGraphConfig()
	g := NewGraphService(cfg).BuildCityGraph("Nowhere", disc, costs)

	e := g.EdgeMap()[trip_models.PairKey("P1", "P2")]
	found := false
	for i, d := range cfg.BucketsKm {
		if e.DistanceKm == d && e.Quality == bucketQualities[i] {
			found = true
		}
	}
	if !found {
		t.Fatalf("P1-P2 = %v km quality %q, want a bucket estimate", e.DistanceKm, e.Quality)
	}
}

func TestGraphTransitEdgeCost(t *testing.T) {
	disc := parisDiscovery()
	costs := NewCostService().InferCityCosts("Paris", disc, 4, 2)
	g := NewGraphService(DefaultGraphConfig()).BuildCityGraph("Paris", disc, costs)

	// Day pass chosen: the marginal transit ride is free.
	if costs.Transit.PerDayChoice != trip_models.TransitChoiceDayPass {
		t.Fatalf("fixture expects day_pass, got %q", costs.Transit.PerDayChoice)
	}
	e := g.EdgeMap()[trip_models.PairKey("P1", "P2")]
	if e.Transit.Cost == nil || e.Transit.Cost.Amount != 0 || e.Transit.Cost.Currency != "EUR" {
		t.Fatalf("transit cost under day pass = %+v, want 0 EUR", e.Transit.Cost)
	}

	// Single fares only: the marginal ride costs one fare.
	disc.Fares.Transit.DayPass = nil
	costs = NewCostService().InferCityCosts("Paris", disc, 4, 2)
	g = NewGraphService(DefaultGraphConfig()).BuildCityGraph("Paris", disc, costs)
	e = g.EdgeMap()[trip_models.PairKey("P1", "P2")]
	if e.Transit.Cost == nil || e.Transit.Cost.Amount != 2.1 {
		t.Fatalf("transit cost on singles = %+v, want 2.1 EUR", e.Transit.Cost)
	}

	// No transit fares at all: cost unknown, not zero-in-some-currency.
	disc.Fares.Transit = trip_models.TransitFares{}
	costs = NewCostService().InferCityCosts("Paris", disc, 4, 2)
	g = NewGraphService(DefaultGraphConfig()).BuildCityGraph("Paris", disc, costs)
	e = g.EdgeMap()[trip_models.PairKey("P1", "P2")]
	if e.Transit.Cost != nil {
		t.Fatalf("transit cost without fares = %+v, want unknown", e.Transit.Cost)
	}
}

func TestAssembleGraphsHaltsOnEmptyDiscovery(t *testing.T) {
	svc := NewGraphService(DefaultGraphConfig())

	_, err := svc.AssembleGraphs(trip_models.Discovery{}, nil)
	if err == nil {
		t.Fatal("expected a halt on empty discovery")
	}
	ri, ok := utils.AsRequiresInput(err)
	if !ok || ri.Field != "discovery" {
		t.Fatalf("expected requires-input on discovery, got %v", err)
	}
}

func TestAssembleGraphsAllCities(t *testing.T) {
	discovery := trip_models.Discovery{Cities: map[string]trip_models.CityDiscovery{
		"Paris": parisDiscovery(),
		"Rome":  {Pois: []trip_models.POIFact{{Name: "Colosseum"}}},
	}}
	costs := map[string]trip_models.CityCosts{
		"Paris": NewCostService().InferCityCosts("Paris", discovery.Cities["Paris"], 4, 2),
		"Rome":  NewCostService().InferCityCosts("Rome", discovery.Cities["Rome"], 4, 2),
	}

	graphs, err := NewGraphService(DefaultGraphConfig()).AssembleGraphs(discovery, costs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graphs) != 2 {
		t.Fatalf("expected 2 graphs, got %d", len(graphs))
	}
	// 1 POI + hotel + 3 meals.
	if got := len(graphs["Rome"].Nodes); got != 5 {
		t.Fatalf("Rome nodes = %d, want 5", got)
	}
}
