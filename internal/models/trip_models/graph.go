package trip_models

type NodeKind string

const (
	NodeHotel NodeKind = "hotel"
	NodePOI   NodeKind = "poi"
	NodeMeal  NodeKind = "meal"
)

// Fixed node ids. Exactly one hotel and three meal slots exist per city.
const (
	HotelID     = "H"
	BreakfastID = "MB"
	LunchID     = "ML"
	DinnerID    = "MD"
)

// Edge distance provenance.
const (
	QualityHaversine = "haversine"
	QualityCentroid  = "centroid_one_missing"
	QualityMealHop   = "assumed_local_meal"
	// Bucket qualities are "bucket_xs" .. "bucket_xl", see GraphConfig.
)

// Node is a travel-graph vertex. Times are minutes since local midnight.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name"`
	OpenMin  int      `json:"open_min"`
	CloseMin int      `json:"close_min"`
	DwellMin int      `json:"dwell_min"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
}

// Coords returns the node position when both components are known.
func (n *Node) Coords() (lat, lon float64, ok bool) {
	if n.Lat == nil || n.Lon == nil {
		return 0, 0, false
	}
	return *n.Lat, *n.Lon, true
}

type ModeEstimate struct {
	Minutes int    `json:"min"`
	Cost    *Money `json:"cost"`
}

// Edge is undirected and keyed by the unordered (A, B) pair; A sorts before
// B. Edges are generated once per city and never mutated.
type Edge struct {
	A          string       `json:"a"`
	B          string       `json:"b"`
	Walk       ModeEstimate `json:"walk"`
	Transit    ModeEstimate `json:"transit"`
	Taxi       ModeEstimate `json:"taxi"`
	DistanceKm float64      `json:"distance_km"`
	Quality    string       `json:"quality"`
}

// PairKey normalizes an unordered node-id pair for edge lookups.
func PairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// CityGraph is the complete geo-cost graph for one city. The assembler owns
// it; the scheduler reads it.
type CityGraph struct {
	City        string           `json:"city"`
	Nodes       []Node           `json:"nodes"`
	Edges       []Edge           `json:"edges"`
	Assumptions GraphAssumptions `json:"assumptions"`
}

// EdgeMap indexes edges by unordered pair for O(1) lookups.
func (g *CityGraph) EdgeMap() map[[2]string]*Edge {
	out := make(map[[2]string]*Edge, len(g.Edges))
	for i := range g.Edges {
		e := &g.Edges[i]
		out[PairKey(e.A, e.B)] = e
	}
	return out
}

// NodeByID indexes nodes by id.
func (g *CityGraph) NodeByID() map[string]*Node {
	out := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		out[g.Nodes[i].ID] = &g.Nodes[i]
	}
	return out
}

// GraphAssumptions records the estimation model behind the edges, so a
// reader of the output can tell estimated figures from measured ones.
type GraphAssumptions struct {
	DistanceMode        string                `json:"distance_mode"`
	BucketsKm           map[string]float64    `json:"buckets_km"`
	SpeedRangesKmh      map[string][2]float64 `json:"speed_ranges_kmh"`
	TransitWaitMinRange [2]int                `json:"transit_wait_min_range"`
	MealLocalKm         float64               `json:"meal_local_km"`
}
