package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tripsmith/internal/models/db_models"
	"tripsmith/internal/models/response_models"
	"tripsmith/internal/models/trip_models"
	"tripsmith/internal/repositories"
	mem "tripsmith/pkg/memcache"
	"tripsmith/pkg/utils"
)

// Default meal budget per scheduled meal slot, in the target currency.
var mealDefaults = map[string]float64{
	trip_models.BreakfastID: 8.0,
	trip_models.LunchID:     15.0,
	trip_models.DinnerID:    25.0,
}

// Meal-price overrides key by display name, not slot id.
var mealNames = map[string]string{
	trip_models.BreakfastID: "Breakfast",
	trip_models.LunchID:     "Lunch",
	trip_models.DinnerID:    "Dinner",
}

// mealPricesFor resolves the per-slot meal budget in the target currency,
// applying any caller override by meal name.
func mealPricesFor(override map[string]float64, targetCcy string) map[string]*trip_models.Money {
	out := make(map[string]*trip_models.Money, len(mealDefaults))
	for id, amt := range mealDefaults {
		if v, ok := override[mealNames[id]]; ok {
			amt = v
		}
		out[id] = trip_models.NewMoney(amt, targetCcy)
	}
	return out
}

const (
	defaultTargetCurrency = "EUR"
	planCacheTTL          = 15 * time.Minute
)

// TripServiceInterface runs the full pipeline for one session: validate the
// discovery record, infer costs, assemble the geo-cost graph per city,
// schedule day plans, aggregate totals, and persist the run.
type TripServiceInterface interface {
	PlanTrip(ctx context.Context, session trip_models.PlanSession) (*trip_models.PlanResult, error)
	GetRunById(ctx context.Context, runId string) (*trip_models.PlanResult, error)
	ListRunsBySession(ctx context.Context, sessionId string, page, pageSize int) ([]response_models.RunSummaryResponse, error)
}

func NewTripService(
	costService CostServiceInterface,
	graphService GraphServiceInterface,
	scheduler SchedulerServiceInterface,
	runRepo repositories.ItineraryRunRepository,
	cache mem.PlanCache,
) TripServiceInterface {
	return &TripService{
		costService:  costService,
		graphService: graphService,
		scheduler:    scheduler,
		runRepo:      runRepo,
		cache:        cache,
	}
}

type TripService struct {
	costService  CostServiceInterface
	graphService GraphServiceInterface
	scheduler    SchedulerServiceInterface
	runRepo      repositories.ItineraryRunRepository
	cache        mem.PlanCache
}

func (t *TripService) PlanTrip(ctx context.Context, session trip_models.PlanSession) (*trip_models.PlanResult, error) {
	cities := sessionCities(session)
	if len(cities) == 0 {
		return nil, utils.NewRequiresInput("cities", "at least one city required")
	}
	for _, city := range cities {
		if _, ok := session.Discovery.Cities[city]; !ok {
			return nil, utils.NewRequiresInput("discovery", "discovery blob missing for "+city)
		}
	}

	if fp := fingerprint(session); fp != "" && t.cache != nil {
		if cached, ok := t.cache.Peek(fp); ok {
			log.Printf("PlanTrip: cache hit session=%s", session.SessionID)
			return cached, nil
		}
	}

	nights := 1
	if session.Dates != nil {
		nights = utils.NightsBetween(session.Dates.Start, session.Dates.End)
	}
	ridesPerDay := session.Assumptions.RidesPerDay
	if ridesPerDay <= 0 {
		ridesPerDay = trip_models.DefaultRidesPerDay
	}

	// Each city's computation is independent and side-effect-free, so the
	// fan-out shares nothing but the read-only inputs.
	type cityOutput struct {
		costs trip_models.CityCosts
		graph *trip_models.CityGraph
		days  []trip_models.DayPlan
	}
	outputs := make(map[string]cityOutput, len(cities))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, city := range cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()
			disc := session.Discovery.Cities[city]
			costs := t.costService.InferCityCosts(city, disc, ridesPerDay, nights)
			graph := t.graphService.BuildCityGraph(city, disc, costs)
			days := t.scheduler.BuildDayPlans(graph, nights)

			mu.Lock()
			outputs[city] = cityOutput{costs: costs, graph: graph, days: days}
			mu.Unlock()
		}(city)
	}
	wg.Wait()

	result := &trip_models.PlanResult{
		SessionID: session.SessionID,
		Nights:    nights,
		GeoCost:   make(map[string]*trip_models.CityGraph, len(cities)),
		Itinerary: trip_models.Itinerary{Cities: make(map[string][]trip_models.DayPlan, len(cities))},
		Costs:     make(map[string]trip_models.CityCosts, len(cities)),
	}
	for _, city := range cities {
		out := outputs[city]
		result.GeoCost[city] = out.graph
		result.Itinerary.Cities[city] = out.days
		result.Costs[city] = out.costs
	}
	targetCcy := session.TargetCurrency
	if targetCcy == "" {
		targetCcy = defaultTargetCurrency
	}
	prices := mealPricesFor(session.MealPrices, targetCcy)
	result.Totals = t.computeTotals(cities, result.Costs, result.Itinerary.Cities, nights, prices)
	result.Budget = t.enforceBudget(session, result, cities, nights, prices, targetCcy)

	if t.runRepo != nil {
		if err := t.persistRun(ctx, session, result, cities, nights); err != nil {
			return nil, err
		}
	}
	if fp := fingerprint(session); fp != "" && t.cache != nil {
		t.cache.Set(fp, result, planCacheTTL)
	}

	log.Printf("PlanTrip: session=%s cities=%d nights=%d run=%s",
		session.SessionID, len(cities), nights, result.RunID)
	return result, nil
}

// computeTotals reconciles day-level travel sums and folds in per-day
// transit strategy, lodging, scheduled POI entries and meal budgets. It is
// a pure function of the day plans so budget enforcement can re-run it on
// an alternative itinerary.
func (t *TripService) computeTotals(cities []string, cityCosts map[string]trip_models.CityCosts, days map[string][]trip_models.DayPlan, nights int, mealPrices map[string]*trip_models.Money) trip_models.TripTotals {
	var totals trip_models.TripTotals
	for _, city := range cities {
		costs := cityCosts[city]

		if costs.Transit.PerDayCost != nil {
			totals.Transit = trip_models.AddMoney(totals.Transit, &trip_models.Money{
				Amount:   costs.Transit.PerDayCost.Amount * float64(nights),
				Currency: costs.Transit.PerDayCost.Currency,
			})
		}
		totals.Lodging = trip_models.AddMoney(totals.Lodging, costs.Lodging.Total)

		entryByName := make(map[string]*trip_models.Money, len(costs.POIEntry))
		for _, e := range costs.POIEntry {
			entryByName[e.Name] = e.Entry
		}

		for _, day := range days[city] {
			totals.Travel = trip_models.AddMoney(totals.Travel, day.Totals.TravelCost)
			for _, item := range day.Items {
				switch item.Kind {
				case trip_models.NodePOI:
					if entry := entryByName[item.Name]; entry != nil {
						totals.POIEntry = trip_models.AddMoney(totals.POIEntry, entry)
					}
				case trip_models.NodeMeal:
					if price := mealPrices[item.NodeID]; price != nil {
						totals.Meals = trip_models.AddMoney(totals.Meals, price)
					}
				}
			}
		}
	}

	totals.Grand = trip_models.SumMoney(totals.Lodging, totals.Transit, totals.Travel, totals.POIEntry, totals.Meals)
	return totals
}

// spendForBudget is the portion of the totals counted against the cap.
func spendForBudget(includeLodging bool, totals trip_models.TripTotals) *trip_models.Money {
	parts := []*trip_models.Money{totals.Transit, totals.Travel, totals.POIEntry, totals.Meals}
	if includeLodging {
		parts = append([]*trip_models.Money{totals.Lodging}, parts...)
	}
	return trip_models.SumMoney(parts...)
}

// enforceBudget checks the spend against the caller's cap. When the cap is
// exceeded it reschedules every city on a taxi-suppressed copy of its graph
// and adopts the alternative plan if it fits the cap, or if it is at least
// cheaper than the original. The published geo-cost graphs stay untouched;
// only the itinerary and totals change on adoption.
func (t *TripService) enforceBudget(session trip_models.PlanSession, result *trip_models.PlanResult, cities []string, nights int, mealPrices map[string]*trip_models.Money, targetCcy string) trip_models.BudgetReport {
	report := trip_models.BudgetReport{
		TargetCurrency: targetCcy,
		IncludeLodging: true,
		Met:            true,
		MealPricesUsed: mealPrices,
	}
	if session.Budget != nil {
		report.CapTotal = session.Budget.Total
		if session.Budget.IncludeLodging != nil {
			report.IncludeLodging = *session.Budget.IncludeLodging
		}
	}

	spend := spendForBudget(report.IncludeLodging, result.Totals)
	report.SpendTotal = spend

	// The cap is only comparable when the spend resolved to the target
	// currency; otherwise it is reported as met, uncompared.
	if report.CapTotal == nil || spend == nil || spend.Currency != targetCcy {
		return report
	}
	if spend.Amount <= *report.CapTotal {
		return report
	}

	report.Met = false
	report.Note = "replanned_no_taxi"
	log.Printf("Budget: spend %.2f %s over cap %.2f, replanning without taxi",
		spend.Amount, spend.Currency, *report.CapTotal)

	altDays := make(map[string][]trip_models.DayPlan, len(cities))
	for _, city := range cities {
		altDays[city] = t.scheduler.BuildDayPlans(suppressTaxi(result.GeoCost[city]), nights)
	}
	altTotals := t.computeTotals(cities, result.Costs, altDays, nights, mealPrices)
	altSpend := spendForBudget(report.IncludeLodging, altTotals)
	if altSpend == nil || altSpend.Currency != targetCcy {
		return report
	}

	adopt := false
	if altSpend.Amount <= *report.CapTotal {
		adopt = true
		report.Met = true
	} else if altSpend.Amount < spend.Amount {
		adopt = true
	}
	if adopt {
		result.Itinerary.Cities = altDays
		result.Totals = altTotals
		report.SpendTotal = altSpend
	}
	return report
}

// suppressTaxi copies a graph with the taxi mode priced and timed out of
// contention, so the mode chooser falls back to transit or walking.
func suppressTaxi(g *trip_models.CityGraph) *trip_models.CityGraph {
	out := *g
	out.Edges = make([]trip_models.Edge, len(g.Edges))
	copy(out.Edges, g.Edges)
	for i := range out.Edges {
		e := &out.Edges[i]
		e.Taxi.Minutes += 999
		if e.Taxi.Cost != nil {
			c := *e.Taxi.Cost
			c.Amount += 10_000.0
			e.Taxi.Cost = &c
		} else {
			ccy := "USD"
			if e.Transit.Cost != nil && e.Transit.Cost.Currency != "" {
				ccy = e.Transit.Cost.Currency
			}
			e.Taxi.Cost = &trip_models.Money{Amount: 10_000.0, Currency: ccy}
		}
	}
	return &out
}

func (t *TripService) persistRun(ctx context.Context, session trip_models.PlanSession, result *trip_models.PlanResult, cities []string, nights int) error {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("PlanTrip: marshal payload: %v", err)
		return utils.ErrInvalidInput
	}

	run := &db_models.ItineraryRun{
		SessionID: session.SessionID,
		Cities:    strings.Join(cities, ","),
		Nights:    nights,
		Payload:   payload,
	}
	if err := t.runRepo.SaveRun(ctx, run); err != nil {
		log.Printf("PlanTrip: save run: %v", err)
		return utils.ErrDatabaseError
	}
	result.RunID = run.ID.String()
	return nil
}

func (t *TripService) GetRunById(ctx context.Context, runId string) (*trip_models.PlanResult, error) {
	id, err := uuid.Parse(runId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	run, err := t.runRepo.GetRunById(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if run == nil {
		return nil, utils.ErrRunNotFound
	}

	var result trip_models.PlanResult
	if err := json.Unmarshal(run.Payload, &result); err != nil {
		log.Printf("GetRunById: unmarshal payload: %v", err)
		return nil, utils.ErrDatabaseError
	}
	result.RunID = run.ID.String()
	return &result, nil
}

func (t *TripService) ListRunsBySession(ctx context.Context, sessionId string, page, pageSize int) ([]response_models.RunSummaryResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	runs, err := t.runRepo.ListRunsBySession(ctx, sessionId, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.RunSummaryResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, response_models.ToRunSummaryResponse(run))
	}
	return out, nil
}

// sessionCities prefers the explicit city list, falling back to the
// discovery record's keys, deduplicated in stable order.
func sessionCities(session trip_models.PlanSession) []string {
	if len(session.Cities) > 0 {
		seen := make(map[string]bool, len(session.Cities))
		out := make([]string, 0, len(session.Cities))
		for _, c := range session.Cities {
			if c != "" && !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
		return out
	}
	out := make([]string, 0, len(session.Discovery.Cities))
	for c := range session.Discovery.Cities {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// fingerprint keys the plan cache by the full request content.
func fingerprint(session trip_models.PlanSession) string {
	raw, err := json.Marshal(session)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
