package services

import (
	"fmt"
	"log"
	"sort"

	"tripsmith/internal/models/trip_models"
	"tripsmith/pkg/utils"
)

// GraphConfig holds the assembler tunables. Tests override single fields on
// top of DefaultGraphConfig instead of mutating globals.
type GraphConfig struct {
	// BucketsKm are the fallback distances (xs..xl) used when a node pair
	// has no usable coordinates.
	BucketsKm [5]float64
	// MealLocalKm is the assumed hop to any meal slot: meals happen near
	// wherever the traveler currently is.
	MealLocalKm float64

	WalkKmhRange        [2]float64
	TransitKmhRange     [2]float64
	TaxiKmhRange        [2]float64
	TransitWaitMinRange [2]int

	DefaultPOIOpenMin  int
	DefaultPOICloseMin int
	DefaultPOIDwellMin int
}

func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		BucketsKm:           [5]float64{0.9, 2.2, 5.5, 9.0, 14.0},
		MealLocalKm:         0.8,
		WalkKmhRange:        [2]float64{4.0, 5.2},
		TransitKmhRange:     [2]float64{18.0, 25.0},
		TaxiKmhRange:        [2]float64{22.0, 28.0},
		TransitWaitMinRange: [2]int{6, 12},
		DefaultPOIOpenMin:   9 * 60,
		DefaultPOICloseMin:  18 * 60,
		DefaultPOIDwellMin:  60,
	}
}

var bucketQualities = [5]string{"bucket_xs", "bucket_s", "bucket_m", "bucket_l", "bucket_xl"}

// GraphServiceInterface assembles the complete per-city geo-cost graph:
// hotel + POIs + three meal slots, with walk/transit/taxi time-and-cost
// estimates on every node pair.
type GraphServiceInterface interface {
	// AssembleGraphs builds one graph per city. It returns a
	// RequiresInputError when the discovery record has no cities at all.
	AssembleGraphs(discovery trip_models.Discovery, costs map[string]trip_models.CityCosts) (map[string]*trip_models.CityGraph, error)
	BuildCityGraph(city string, disc trip_models.CityDiscovery, costs trip_models.CityCosts) *trip_models.CityGraph
}

func NewGraphService(cfg GraphConfig) GraphServiceInterface {
	return &GraphService{cfg: cfg}
}

type GraphService struct {
	cfg GraphConfig
}

func (s *GraphService) AssembleGraphs(discovery trip_models.Discovery, costs map[string]trip_models.CityCosts) (map[string]*trip_models.CityGraph, error) {
	if len(discovery.Cities) == 0 {
		return nil, utils.NewRequiresInput("discovery", "discovery blob missing")
	}

	cities := make([]string, 0, len(discovery.Cities))
	for city := range discovery.Cities {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	out := make(map[string]*trip_models.CityGraph, len(cities))
	for _, city := range cities {
		g := s.BuildCityGraph(city, discovery.Cities[city], costs[city])
		out[city] = g
		log.Printf("GeoCost[%s]: nodes=%d edges=%d model=speed_ranges;buckets;centroid",
			city, len(g.Nodes), len(g.Edges))
	}
	return out, nil
}

func (s *GraphService) BuildCityGraph(city string, disc trip_models.CityDiscovery, costs trip_models.CityCosts) *trip_models.CityGraph {
	nodes := s.buildNodes(city, disc)

	transitUnitCost, transitCcy := transitEdgeCost(disc.Fares.Transit, costs.Transit)
	tariff := disc.Fares.Taxi

	edges := make([]trip_models.Edge, 0, len(nodes)*(len(nodes)-1)/2)
	for ai := 0; ai < len(nodes); ai++ {
		for bi := ai + 1; bi < len(nodes); bi++ {
			edges = append(edges, s.buildEdge(city, disc, &nodes[ai], &nodes[bi], transitUnitCost, transitCcy, tariff))
		}
	}

	return &trip_models.CityGraph{
		City:  city,
		Nodes: nodes,
		Edges: edges,
		Assumptions: trip_models.GraphAssumptions{
			DistanceMode: "haversine/centroid/buckets",
			BucketsKm: map[string]float64{
				"xs": s.cfg.BucketsKm[0],
				"s":  s.cfg.BucketsKm[1],
				"m":  s.cfg.BucketsKm[2],
				"l":  s.cfg.BucketsKm[3],
				"xl": s.cfg.BucketsKm[4],
			},
			SpeedRangesKmh: map[string][2]float64{
				"walk":    s.cfg.WalkKmhRange,
				"transit": s.cfg.TransitKmhRange,
				"taxi":    s.cfg.TaxiKmhRange,
			},
			TransitWaitMinRange: s.cfg.TransitWaitMinRange,
			MealLocalKm:         s.cfg.MealLocalKm,
		},
	}
}

func (s *GraphService) buildNodes(city string, disc trip_models.CityDiscovery) []trip_models.Node {
	nodes := make([]trip_models.Node, 0, len(disc.Pois)+4)

	// Hotel sits at the city centroid when one is known.
	hotel := trip_models.Node{
		ID:       trip_models.HotelID,
		Kind:     trip_models.NodeHotel,
		Name:     fmt.Sprintf("%s Hotel", city),
		OpenMin:  6 * 60,
		CloseMin: 23 * 60,
		DwellMin: 0,
	}
	if disc.Centroid != nil {
		lat, lon := disc.Centroid.Lat, disc.Centroid.Lon
		hotel.Lat, hotel.Lon = &lat, &lon
	}
	nodes = append(nodes, hotel)

	for i, p := range disc.Pois {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("POI %d", i+1)
		}
		node := trip_models.Node{
			ID:       fmt.Sprintf("P%d", i+1),
			Kind:     trip_models.NodePOI,
			Name:     name,
			OpenMin:  intOr(p.OpenMin, s.cfg.DefaultPOIOpenMin),
			CloseMin: intOr(p.CloseMin, s.cfg.DefaultPOICloseMin),
			DwellMin: intOr(p.DwellMin, s.cfg.DefaultPOIDwellMin),
		}
		if p.Lat != nil && p.Lon != nil {
			node.Lat, node.Lon = p.Lat, p.Lon
		}
		nodes = append(nodes, node)
	}

	nodes = append(nodes,
		trip_models.Node{ID: trip_models.BreakfastID, Kind: trip_models.NodeMeal, Name: "Breakfast", OpenMin: 7 * 60, CloseMin: 10*60 + 30, DwellMin: 45},
		trip_models.Node{ID: trip_models.LunchID, Kind: trip_models.NodeMeal, Name: "Lunch", OpenMin: 12 * 60, CloseMin: 14*60 + 30, DwellMin: 45},
		trip_models.Node{ID: trip_models.DinnerID, Kind: trip_models.NodeMeal, Name: "Dinner", OpenMin: 18 * 60, CloseMin: 21*60 + 30, DwellMin: 45},
	)
	return nodes
}

// buildEdge computes the three-mode payload for one node pair. Speeds and
// the transit wait are drawn deterministically per edge so hops differ from
// each other but never across runs.
func (s *GraphService) buildEdge(
	city string,
	disc trip_models.CityDiscovery,
	a, b *trip_models.Node,
	transitUnitCost float64,
	transitCcy string,
	tariff trip_models.TaxiTariff,
) trip_models.Edge {
	edgeKey := fmt.Sprintf("%s:%s->%s", city, a.ID, b.ID)
	vWalk := utils.DrawInRange(s.cfg.WalkKmhRange[0], s.cfg.WalkKmhRange[1], edgeKey+":walk")
	vTransit := utils.DrawInRange(s.cfg.TransitKmhRange[0], s.cfg.TransitKmhRange[1], edgeKey+":transit")
	vTaxi := utils.DrawInRange(s.cfg.TaxiKmhRange[0], s.cfg.TaxiKmhRange[1], edgeKey+":taxi")
	wait := utils.DrawIntInRange(s.cfg.TransitWaitMinRange[0], s.cfg.TransitWaitMinRange[1], edgeKey+":wait")

	var distKm float64
	var quality string
	if a.Kind == trip_models.NodeMeal || b.Kind == trip_models.NodeMeal {
		distKm, quality = s.cfg.MealLocalKm, trip_models.QualityMealHop
	} else {
		distKm, quality = s.pairDistanceKm(city, disc, a, b)
	}

	walkMin := utils.TravelMinutes(distKm, vWalk, 0)
	transitMin := utils.TravelMinutes(distKm, vTransit, float64(wait))
	taxiMin := utils.TravelMinutes(distKm, vTaxi, 0)

	taxiTotal := 0.0
	if tariff.Base != nil {
		taxiTotal += *tariff.Base
	}
	if tariff.PerKm != nil {
		taxiTotal += *tariff.PerKm * distKm
	}
	if tariff.PerMin != nil {
		taxiTotal += *tariff.PerMin * float64(taxiMin)
	}

	walkCcy := transitCcy
	if walkCcy == "" {
		walkCcy = tariff.Currency
	}

	return trip_models.Edge{
		A:          a.ID,
		B:          b.ID,
		Walk:       trip_models.ModeEstimate{Minutes: walkMin, Cost: trip_models.NewMoney(0, walkCcy)},
		Transit:    trip_models.ModeEstimate{Minutes: transitMin, Cost: trip_models.NewMoney(transitUnitCost, transitCcy)},
		Taxi:       trip_models.ModeEstimate{Minutes: taxiMin, Cost: trip_models.NewMoney(taxiTotal, tariff.Currency)},
		DistanceKm: utils.Round2(distKm),
		Quality:    quality,
	}
}

// pairDistanceKm resolves a distance in fidelity order: both coordinates
// known (haversine), one side known plus a city centroid (inflated 1.25x to
// cover the approximation), else a deterministic bucket.
func (s *GraphService) pairDistanceKm(city string, disc trip_models.CityDiscovery, a, b *trip_models.Node) (float64, string) {
	aLat, aLon, aOK := a.Coords()
	bLat, bLon, bOK := b.Coords()

	if aOK && bOK {
		return utils.HaversineKm(aLat, aLon, bLat, bLon), trip_models.QualityHaversine
	}
	if disc.Centroid != nil {
		if aOK {
			return utils.HaversineKm(aLat, aLon, disc.Centroid.Lat, disc.Centroid.Lon) * 1.25, trip_models.QualityCentroid
		}
		if bOK {
			return utils.HaversineKm(bLat, bLon, disc.Centroid.Lat, disc.Centroid.Lon) * 1.25, trip_models.QualityCentroid
		}
	}

	idx := utils.BucketIndex(a.ID, b.ID, city)
	return s.cfg.BucketsKm[idx], bucketQualities[idx]
}

// transitEdgeCost yields the marginal cost of one transit hop. With a day
// or weekly pass the marginal ride is free; otherwise it is the single
// fare; with no fare data at all, zero with no currency (cost unknown).
func transitEdgeCost(fares trip_models.TransitFares, plan trip_models.TransitCostPlan) (float64, string) {
	switch plan.PerDayChoice {
	case trip_models.TransitChoiceDayPass, trip_models.TransitChoiceWeeklyPass:
		ccy := ""
		if fares.Single != nil {
			ccy = fares.Single.Currency
		} else if plan.PerDayCost != nil {
			ccy = plan.PerDayCost.Currency
		}
		return 0, ccy
	}
	if fares.Single != nil {
		return fares.Single.Amount, fares.Single.Currency
	}
	return 0, ""
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
