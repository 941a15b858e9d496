package services

import (
	"log"
	"sort"

	"tripsmith/internal/models/trip_models"
	"tripsmith/pkg/utils"
)

// ScheduleConfig holds the scheduler tunables. Defaults mirror a tourist
// day: 09:00 start, 21:30 hard end, at most three sights a day.
type ScheduleConfig struct {
	DayStartMin   int
	DayEndMin     int
	MaxPOIsPerDay int
	// MaxWalkMin is the threshold under which walking always wins.
	MaxWalkMin int
	// TaxiFasterMarginMin: a pass-included transit ride is preferred unless
	// the taxi beats it by more than this many minutes.
	TaxiFasterMarginMin int
	// LunchLeadMin: within this many minutes of lunch opening, lunch is
	// attempted before the next sight.
	LunchLeadMin int
}

func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		DayStartMin:         9 * 60,
		DayEndMin:           21*60 + 30,
		MaxPOIsPerDay:       3,
		MaxWalkMin:          15,
		TaxiFasterMarginMin: 10,
		LunchLeadMin:        20,
	}
}

// SchedulerServiceInterface walks a city graph day by day: hotel out, meals
// and up to N sights inside their opening windows, hotel back. Greedy by
// nearest-next-feasible; it never backtracks on a committed visit.
type SchedulerServiceInterface interface {
	BuildDayPlans(g *trip_models.CityGraph, days int) []trip_models.DayPlan
}

func NewSchedulerService(cfg ScheduleConfig) SchedulerServiceInterface {
	return &SchedulerService{cfg: cfg}
}

type SchedulerService struct {
	cfg ScheduleConfig
}

// hop is a resolved edge traversal: chosen mode, minutes, and cost.
type hop struct {
	mode string
	min  int
	cost *trip_models.Money
}

func (s *SchedulerService) BuildDayPlans(g *trip_models.CityGraph, days int) []trip_models.DayPlan {
	if days < 1 {
		days = 1
	}

	byID := g.NodeByID()
	edges := g.EdgeMap()

	remaining := make([]string, 0)
	for _, n := range g.Nodes {
		if n.Kind == trip_models.NodePOI {
			remaining = append(remaining, n.ID)
		}
	}
	// Earlier-closing sights first keeps candidate scans deterministic and
	// biases ties toward the one that runs out of time soonest.
	sort.Slice(remaining, func(i, j int) bool {
		a, b := byID[remaining[i]], byID[remaining[j]]
		if a.CloseMin != b.CloseMin {
			return a.CloseMin < b.CloseMin
		}
		return a.Name < b.Name
	})

	plans := make([]trip_models.DayPlan, 0, days)

	for day := 1; day <= days; day++ {
		if len(remaining) == 0 {
			break
		}

		st := &dayState{
			cfg:       s.cfg,
			byID:      byID,
			edges:     edges,
			curID:     trip_models.HotelID,
			curTime:   s.cfg.DayStartMin,
			usedMeals: map[string]bool{},
		}

		st.maybeBreakfast()

		usedPOIs := 0
		for usedPOIs < s.cfg.MaxPOIsPerDay && len(remaining) > 0 {
			// Around lunchtime, eat before the next sight.
			if lunch, ok := byID[trip_models.LunchID]; ok && !st.usedMeals[trip_models.LunchID] &&
				st.curTime >= lunch.OpenMin-s.cfg.LunchLeadMin && st.curTime <= lunch.CloseMin {
				st.maybeScheduleMeal(trip_models.LunchID)
			}

			picked := st.pickNextPOI(remaining)
			if picked == "" {
				break
			}
			usedPOIs++
			remaining = removeID(remaining, picked)

			if _, ok := byID[trip_models.LunchID]; ok && !st.usedMeals[trip_models.LunchID] && st.curTime < s.cfg.DayEndMin {
				st.maybeScheduleMeal(trip_models.LunchID)
			}

			// Bail out when even the ride home no longer fits.
			back := st.resolveHop(st.curID, trip_models.HotelID)
			if st.curTime+back.min > s.cfg.DayEndMin {
				break
			}
		}

		st.maybeScheduleMeal(trip_models.DinnerID)
		st.returnToHotel()

		plans = append(plans, trip_models.DayPlan{
			Day:         day,
			City:        g.City,
			DayStartMin: s.cfg.DayStartMin,
			DayEndMin:   s.cfg.DayEndMin,
			Window:      utils.MinutesToClock(s.cfg.DayStartMin) + "-" + utils.MinutesToClock(s.cfg.DayEndMin),
			Items:       st.items,
			Totals: trip_models.DayTotals{
				TravelCost: st.travelCost,
				POICount:   countKind(st.items, trip_models.NodePOI),
				MealCount:  countKind(st.items, trip_models.NodeMeal),
			},
			Notes: []string{},
		})
	}

	log.Printf("Greedy[%s]: days=%d remaining_pois=%d", g.City, len(plans), len(remaining))
	return plans
}

type dayState struct {
	cfg        ScheduleConfig
	byID       map[string]*trip_models.Node
	edges      map[[2]string]*trip_models.Edge
	curID      string
	curTime    int
	usedMeals  map[string]bool
	items      []trip_models.VisitItem
	travelCost *trip_models.Money
}

// resolveHop looks up the edge and chooses a mode. A complete graph always
// has the edge; the synthetic fallback keeps scheduling alive if it ever
// goes missing.
func (st *dayState) resolveHop(fromID, toID string) hop {
	e, ok := st.edges[trip_models.PairKey(fromID, toID)]
	if !ok {
		return hop{
			mode: trip_models.ModeTransit,
			min:  22,
			cost: &trip_models.Money{Amount: 2.5, Currency: "USD"},
		}
	}
	return st.chooseMode(e)
}

// chooseMode picks walk for short hops, then prefers free (pass-included)
// transit unless the taxi is meaningfully faster, then the cheaper of the
// known-cost options, breaking cost ties by speed.
func (st *dayState) chooseMode(e *trip_models.Edge) hop {
	w, t, x := e.Walk.Minutes, e.Transit.Minutes, e.Taxi.Minutes
	tc, xc := e.Transit.Cost, e.Taxi.Cost

	if w <= st.cfg.MaxWalkMin {
		ccy := "USD"
		if tc != nil && tc.Currency != "" {
			ccy = tc.Currency
		} else if xc != nil && xc.Currency != "" {
			ccy = xc.Currency
		}
		return hop{mode: trip_models.ModeWalk, min: w, cost: &trip_models.Money{Amount: 0, Currency: ccy}}
	}

	tAmt, tKnown := tc.Amt()
	xAmt, xKnown := xc.Amt()

	if tKnown && tAmt == 0 && t <= x+st.cfg.TaxiFasterMarginMin {
		return hop{mode: trip_models.ModeTransit, min: t, cost: tc}
	}
	if !tKnown && xKnown {
		return hop{mode: trip_models.ModeTaxi, min: x, cost: xc}
	}
	if !xKnown && tKnown {
		return hop{mode: trip_models.ModeTransit, min: t, cost: tc}
	}
	if tKnown && xKnown {
		const eps = 1e-6
		if tAmt < xAmt-eps {
			return hop{mode: trip_models.ModeTransit, min: t, cost: tc}
		}
		if xAmt < tAmt-eps {
			return hop{mode: trip_models.ModeTaxi, min: x, cost: xc}
		}
		if t <= x {
			return hop{mode: trip_models.ModeTransit, min: t, cost: tc}
		}
		return hop{mode: trip_models.ModeTaxi, min: x, cost: xc}
	}
	return hop{mode: trip_models.ModeTransit, min: t, cost: tc}
}

// firstFeasibleStart waits until opening if early; infeasible (-1) when the
// dwell no longer fits before closing.
func firstFeasibleStart(arrive, dwell, open, close int) int {
	start := arrive
	if start < open {
		start = open
	}
	if start+dwell > close {
		return -1
	}
	return start
}

func (st *dayState) commit(toID string, h hop, arrive, start, end int) {
	n := st.byID[toID]
	st.items = append(st.items, trip_models.VisitItem{
		NodeID:     toID,
		Kind:       n.Kind,
		Name:       n.Name,
		FromID:     st.curID,
		Mode:       h.mode,
		TravelMin:  h.min,
		TravelCost: h.cost,
		ArriveMin:  arrive,
		StartMin:   start,
		EndMin:     end,
	})
	st.travelCost = trip_models.AddMoney(st.travelCost, h.cost)
	st.curID = toID
	st.curTime = end
}

// maybeBreakfast takes breakfast straight from the hotel when it fits the
// morning; no return-leg check this early in the day.
func (st *dayState) maybeBreakfast() {
	mb, ok := st.byID[trip_models.BreakfastID]
	if !ok || st.usedMeals[trip_models.BreakfastID] {
		return
	}
	h := st.resolveHop(st.curID, trip_models.BreakfastID)
	arrive := st.curTime + h.min
	start := firstFeasibleStart(arrive, mb.DwellMin, mb.OpenMin, mb.CloseMin)
	if start < 0 || start+mb.DwellMin > st.cfg.DayEndMin {
		return
	}
	st.commit(trip_models.BreakfastID, h, arrive, start, start+mb.DwellMin)
	st.usedMeals[trip_models.BreakfastID] = true
}

func (st *dayState) maybeScheduleMeal(mealID string) bool {
	m, ok := st.byID[mealID]
	if !ok || st.usedMeals[mealID] {
		return false
	}
	h := st.resolveHop(st.curID, mealID)
	arrive := st.curTime + h.min
	start := firstFeasibleStart(arrive, m.DwellMin, m.OpenMin, m.CloseMin)
	if start < 0 || start+m.DwellMin > st.cfg.DayEndMin {
		return false
	}
	back := st.resolveHop(mealID, trip_models.HotelID)
	if start+m.DwellMin+back.min > st.cfg.DayEndMin {
		return false
	}
	st.commit(mealID, h, arrive, start, start+m.DwellMin)
	st.usedMeals[mealID] = true
	return true
}

// pickNextPOI commits the feasible candidate with the smallest travel time
// from the current position, ties broken by earlier closing. Feasible means
// the visit fits its window, fits the day, and still leaves time to get
// back to the hotel. Returns "" when nothing fits.
func (st *dayState) pickNextPOI(remaining []string) string {
	type candidate struct {
		id       string
		h        hop
		arrive   int
		start    int
		end      int
		closeMin int
	}
	var best *candidate

	for _, id := range remaining {
		n := st.byID[id]
		h := st.resolveHop(st.curID, id)
		arrive := st.curTime + h.min
		start := firstFeasibleStart(arrive, n.DwellMin, n.OpenMin, n.CloseMin)
		if start < 0 {
			continue
		}
		end := start + n.DwellMin

		back := st.resolveHop(id, trip_models.HotelID)
		if end+back.min > st.cfg.DayEndMin {
			continue
		}

		c := candidate{id: id, h: h, arrive: arrive, start: start, end: end, closeMin: n.CloseMin}
		if best == nil || h.min < best.h.min || (h.min == best.h.min && n.CloseMin < best.closeMin) {
			best = &c
		}
	}

	if best == nil {
		return ""
	}
	st.commit(best.id, best.h, best.arrive, best.start, best.end)
	return best.id
}

func (st *dayState) returnToHotel() {
	if st.curID == trip_models.HotelID {
		return
	}
	back := st.resolveHop(st.curID, trip_models.HotelID)
	arrive := st.curTime + back.min
	if arrive > st.cfg.DayEndMin {
		return
	}
	st.items = append(st.items, trip_models.VisitItem{
		NodeID:     trip_models.HotelID,
		Kind:       trip_models.NodeHotel,
		Name:       "Hotel return",
		FromID:     st.curID,
		Mode:       back.mode,
		TravelMin:  back.min,
		TravelCost: back.cost,
		ArriveMin:  arrive,
		StartMin:   arrive,
		EndMin:     arrive,
	})
	st.travelCost = trip_models.AddMoney(st.travelCost, back.cost)
	st.curID = trip_models.HotelID
	st.curTime = arrive
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func countKind(items []trip_models.VisitItem, kind trip_models.NodeKind) int {
	n := 0
	for _, it := range items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}
