package services

import (
	"testing"

	"tripsmith/internal/models/trip_models"
)

// schedNodes builds a hotel + the given POIs + the three standard meal
// slots, mirroring the assembler's node layout.
func schedNodes(pois ...trip_models.Node) []trip_models.Node {
	nodes := []trip_models.Node{
		{ID: trip_models.HotelID, Kind: trip_models.NodeHotel, Name: "City Hotel", OpenMin: 6 * 60, CloseMin: 23 * 60},
	}
	nodes = append(nodes, pois...)
	nodes = append(nodes,
		trip_models.Node{ID: trip_models.BreakfastID, Kind: trip_models.NodeMeal, Name: "Breakfast", OpenMin: 7 * 60, CloseMin: 10*60 + 30, DwellMin: 45},
		trip_models.Node{ID: trip_models.LunchID, Kind: trip_models.NodeMeal, Name: "Lunch", OpenMin: 12 * 60, CloseMin: 14*60 + 30, DwellMin: 45},
		trip_models.Node{ID: trip_models.DinnerID, Kind: trip_models.NodeMeal, Name: "Dinner", OpenMin: 18 * 60, CloseMin: 21*60 + 30, DwellMin: 45},
	)
	return nodes
}

// walkGraph wires every node pair with a short walkable hop (10 min by
// default, overridable per pair) so the scheduler's mode choice stays out
// of the way of the ordering assertions.
func walkGraph(city string, nodes []trip_models.Node, walkOverrides map[[2]string]int) *trip_models.CityGraph {
	g := &trip_models.CityGraph{City: city, Nodes: nodes}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			key := trip_models.PairKey(nodes[i].ID, nodes[j].ID)
			walkMin := 10
			if v, ok := walkOverrides[key]; ok {
				walkMin = v
			}
			g.Edges = append(g.Edges, trip_models.Edge{
				A:       key[0],
				B:       key[1],
				Walk:    trip_models.ModeEstimate{Minutes: walkMin, Cost: trip_models.NewMoney(0, "EUR")},
				Transit: trip_models.ModeEstimate{Minutes: 40, Cost: trip_models.NewMoney(2, "EUR")},
				Taxi:    trip_models.ModeEstimate{Minutes: 20, Cost: trip_models.NewMoney(12, "EUR")},
			})
		}
	}
	return g
}

func TestBuildDayPlansTwoPOIsSingleDay(t *testing.T) {
	nodes := schedNodes(
		trip_models.Node{ID: "P1", Kind: trip_models.NodePOI, Name: "Louvre", OpenMin: 9 * 60, CloseMin: 20 * 60, DwellMin: 120},
		trip_models.Node{ID: "P2", Kind: trip_models.NodePOI, Name: "Eiffel Tower", OpenMin: 9 * 60, CloseMin: 18 * 60, DwellMin: 90},
	)
	g := walkGraph("Paris", nodes, nil)

	plans := NewSchedulerService(DefaultScheduleConfig()).BuildDayPlans(g, 1)
	if len(plans) != 1 {
		t.Fatalf("expected 1 day, got %d", len(plans))
	}

	// Equal hops everywhere, so the travel-time tie breaks toward the
	// sight that closes first.
	day := plans[0]
	wantOrder := []string{
		trip_models.BreakfastID, "P2", trip_models.LunchID, "P1", trip_models.DinnerID, trip_models.HotelID,
	}
	if len(day.Items) != len(wantOrder) {
		t.Fatalf("expected %d items, got %d: %+v", len(wantOrder), len(day.Items), day.Items)
	}
	for i, want := range wantOrder {
		if day.Items[i].NodeID != want {
			t.Fatalf("item %d = %s, want %s", i, day.Items[i].NodeID, want)
		}
	}

	if day.Totals.POICount != 2 || day.Totals.MealCount != 3 {
		t.Fatalf("totals = %+v, want 2 POIs and 3 meals", day.Totals)
	}
	if day.Window != "09:00-21:30" {
		t.Fatalf("window = %q, want 09:00-21:30", day.Window)
	}
	if day.Totals.TravelCost == nil || day.Totals.TravelCost.Amount != 0 || day.Totals.TravelCost.Currency != "EUR" {
		t.Fatalf("travel cost = %+v, want 0 EUR for an all-walk day", day.Totals.TravelCost)
	}

	byID := g.NodeByID()
	prevEnd := day.DayStartMin
	for _, it := range day.Items {
		if it.ArriveMin < prevEnd {
			t.Fatalf("%s arrives at %d before the previous stop ends at %d", it.NodeID, it.ArriveMin, prevEnd)
		}
		if n := byID[it.NodeID]; it.NodeID != trip_models.HotelID {
			if it.StartMin < n.OpenMin || it.EndMin > n.CloseMin {
				t.Fatalf("%s scheduled %d-%d outside window %d-%d", it.NodeID, it.StartMin, it.EndMin, n.OpenMin, n.CloseMin)
			}
		}
		if it.EndMin > day.DayEndMin {
			t.Fatalf("%s ends at %d past the day end %d", it.NodeID, it.EndMin, day.DayEndMin)
		}
		prevEnd = it.EndMin
	}

	// Lunch lands inside its window, after the first sight.
	lunch := day.Items[2]
	if lunch.StartMin < 12*60 || lunch.EndMin > 14*60+30 {
		t.Fatalf("lunch at %d-%d, want inside 720-870", lunch.StartMin, lunch.EndMin)
	}
}

func TestBuildDayPlansRollover(t *testing.T) {
	// Three five-hour sights cannot share one day; the third rolls over.
	long := func(id, name string) trip_models.Node {
		return trip_models.Node{ID: id, Kind: trip_models.NodePOI, Name: name, OpenMin: 9 * 60, CloseMin: 21 * 60, DwellMin: 300}
	}
	g := walkGraph("Rome", schedNodes(long("P1", "Alpha"), long("P2", "Beta"), long("P3", "Gamma")), nil)

	plans := NewSchedulerService(DefaultScheduleConfig()).BuildDayPlans(g, 2)
	if len(plans) != 2 {
		t.Fatalf("expected 2 days, got %d", len(plans))
	}
	if plans[0].Totals.POICount != 2 {
		t.Fatalf("day 1 POIs = %d, want 2", plans[0].Totals.POICount)
	}
	if plans[1].Totals.POICount != 1 {
		t.Fatalf("day 2 POIs = %d, want 1", plans[1].Totals.POICount)
	}
}

func TestBuildDayPlansMaxPOIsPerDay(t *testing.T) {
	quick := func(id, name string) trip_models.Node {
		return trip_models.Node{ID: id, Kind: trip_models.NodePOI, Name: name, OpenMin: 9 * 60, CloseMin: 21 * 60, DwellMin: 30}
	}
	g := walkGraph("Rome", schedNodes(quick("P1", "A"), quick("P2", "B"), quick("P3", "C"), quick("P4", "D")), nil)

	plans := NewSchedulerService(DefaultScheduleConfig()).BuildDayPlans(g, 1)
	if len(plans) != 1 {
		t.Fatalf("expected 1 day, got %d", len(plans))
	}
	if plans[0].Totals.POICount != 3 {
		t.Fatalf("POIs = %d, want the per-day cap of 3", plans[0].Totals.POICount)
	}
}

func TestBuildDayPlansInfeasibleWindowSkipped(t *testing.T) {
	// The dwell does not fit the opening window on any day.
	g := walkGraph("Rome", schedNodes(
		trip_models.Node{ID: "P1", Kind: trip_models.NodePOI, Name: "Short Window", OpenMin: 15 * 60, CloseMin: 16 * 60, DwellMin: 90},
	), nil)

	plans := NewSchedulerService(DefaultScheduleConfig()).BuildDayPlans(g, 2)
	for _, day := range plans {
		if day.Totals.POICount != 0 {
			t.Fatalf("day %d scheduled an infeasible sight", day.Day)
		}
		// Meals still happen around the empty sightseeing slate.
		if day.Totals.MealCount == 0 {
			t.Fatalf("day %d has no meals", day.Day)
		}
	}
}

func TestBuildDayPlansNoPOIs(t *testing.T) {
	g := walkGraph("Ghost Town", schedNodes(), nil)
	plans := NewSchedulerService(DefaultScheduleConfig()).BuildDayPlans(g, 3)
	if len(plans) != 0 {
		t.Fatalf("expected no day plans for a city without sights, got %d", len(plans))
	}
}

func TestChooseModeWalkBoundary(t *testing.T) {
	st := &dayState{cfg: DefaultScheduleConfig()}

	edge := func(walk, transit, taxi int, tc, xc *trip_models.Money) *trip_models.Edge {
		return &trip_models.Edge{
			Walk:    trip_models.ModeEstimate{Minutes: walk, Cost: trip_models.NewMoney(0, "EUR")},
			Transit: trip_models.ModeEstimate{Minutes: transit, Cost: tc},
			Taxi:    trip_models.ModeEstimate{Minutes: taxi, Cost: xc},
		}
	}

	free := trip_models.NewMoney(0, "EUR")
	fare := trip_models.NewMoney(2, "EUR")
	taxi := trip_models.NewMoney(12, "EUR")

	// At the threshold walking wins; one minute over it does not.
	if h := st.chooseMode(edge(15, 20, 10, fare, taxi)); h.mode != trip_models.ModeWalk {
		t.Fatalf("15 min hop chose %s, want walk", h.mode)
	}
	if h := st.chooseMode(edge(16, 20, 10, fare, taxi)); h.mode == trip_models.ModeWalk {
		t.Fatal("16 min hop should not walk")
	}

	// Pass-included transit wins unless the taxi saves more than the margin.
	if h := st.chooseMode(edge(30, 25, 16, free, taxi)); h.mode != trip_models.ModeTransit {
		t.Fatalf("free transit within margin chose %s", h.mode)
	}

	// Only one mode has a known cost: take the known one.
	if h := st.chooseMode(edge(30, 25, 16, nil, taxi)); h.mode != trip_models.ModeTaxi {
		t.Fatalf("unknown transit cost chose %s, want taxi", h.mode)
	}
	if h := st.chooseMode(edge(30, 25, 16, fare, nil)); h.mode != trip_models.ModeTransit {
		t.Fatalf("unknown taxi cost chose %s, want transit", h.mode)
	}

	// Both known: cheaper wins, cost ties break toward the faster mode.
	if h := st.chooseMode(edge(30, 25, 16, fare, taxi)); h.mode != trip_models.ModeTransit {
		t.Fatalf("cheaper transit chose %s", h.mode)
	}
	if h := st.chooseMode(edge(30, 25, 16, taxi, fare)); h.mode != trip_models.ModeTaxi {
		t.Fatalf("cheaper taxi chose %s", h.mode)
	}
	same := trip_models.NewMoney(5, "EUR")
	if h := st.chooseMode(edge(30, 25, 16, same, same)); h.mode != trip_models.ModeTaxi {
		t.Fatalf("cost tie chose %s, want the faster taxi", h.mode)
	}
}

func TestResolveHopSyntheticFallback(t *testing.T) {
	st := &dayState{cfg: DefaultScheduleConfig(), edges: map[[2]string]*trip_models.Edge{}}

	h := st.resolveHop("P1", trip_models.HotelID)
	if h.mode != trip_models.ModeTransit || h.min != 22 {
		t.Fatalf("fallback hop = %+v, want a 22 min transit ride", h)
	}
	if h.cost == nil || h.cost.Amount != 2.5 || h.cost.Currency != "USD" {
		t.Fatalf("fallback cost = %+v, want 2.5 USD", h.cost)
	}
}
