// Package scorer computes the composite mobility hub suitability score for
// a candidate point: five weighted components summed to a nominal 0-100
// value, with the inputs behind each score recorded for explainability.
package scorer

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/mobiflow/hubopt/internal/dataset"
	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/model"
	"github.com/mobiflow/hubopt/internal/nearest"
)

// Component weights and decay constants of the scoring methodology. The
// exact values are load-bearing: changing any of them changes every
// ranking the grid search produces.
const (
	// Transport connectivity (nominal weight 35, split bus 15 / tram 20).
	busClosePoints    = 15  // bus stop within 200 m
	busNearPoints     = 10  // bus stop within 500 m
	tramNearPoints    = 20  // tram stop within 500 m
	tramDecayBase     = 15  // tram decay starts from 15, not 20
	decayMetersPerPt  = 100 // 1 point lost per 100 m beyond 500 m
	transportBandNear = 500

	// Bike demand (nominal weight 25).
	demandRadiusMeters = 1000
	demandFullScale    = 20 // raw demand mapped to full weight at 20
	demandWeight       = 25

	// Infrastructure gap (nominal weight 20).
	gapWeight         = 20
	bikeGapNormMeters = 1000
	busGapNormMeters  = 500

	// Accessibility (nominal weight 15).
	accessWeight       = 15
	amenityRangeMeters = 2000

	// PopulationScore is a placeholder constant (nominal weight 5). No
	// demographic data source is wired in yet; replace this with a real
	// population-density factor when one is.
	PopulationScore = 5
)

// amenities are fixed central landmarks used by the accessibility term:
// the city centre, Temple Bar, and St. Stephen's Green.
var amenities = []geo.Point{
	{Lat: 53.3498, Lng: -6.2603},
	{Lat: 53.3446, Lng: -6.2691},
	{Lat: 53.3387, Lng: -6.2613},
}

// Calculator scores candidate points against one dataset snapshot. It is
// safe for concurrent use; scoring reads the snapshot but never mutates
// it, so results are a pure function of (point, snapshot contents).
type Calculator struct {
	snap   *dataset.Snapshot
	finder nearest.Finder
	cache  *scoreCache
}

// New builds a Calculator for the given snapshot. A nil finder defaults
// to the brute-force scan.
func New(snap *dataset.Snapshot, finder nearest.Finder) *Calculator {
	if finder == nil {
		finder = nearest.BruteForce{}
	}
	return &Calculator{
		snap:   snap,
		finder: finder,
		cache:  newScoreCache(),
	}
}

// Snapshot returns the snapshot this calculator scores against.
func (c *Calculator) Snapshot() *dataset.Snapshot { return c.snap }

// Score computes the full breakdown for one candidate point. Bus and tram
// reference sets must be non-empty; an empty bike dataset is tolerated
// (zero demand, fully saturated bike gap).
func (c *Calculator) Score(p geo.Point) (model.ScoreBreakdown, error) {
	if err := p.Validate(); err != nil {
		return model.ScoreBreakdown{}, err
	}

	key := cacheKey(c.snap.Version, p)
	if bd, ok := c.cache.get(key); ok {
		return bd, nil
	}

	bus, err := c.finder.Nearest(p, c.snap.StopRefs())
	if err != nil {
		return model.ScoreBreakdown{}, eris.Wrap(err, "scorer: bus stops")
	}
	tram, err := c.finder.Nearest(p, c.snap.TramRefs())
	if err != nil {
		return model.ScoreBreakdown{}, eris.Wrap(err, "scorer: luas stops")
	}

	transport := transportScore(bus, tram)
	rawDemand, nearestBike, hasBike := c.bikeScan(p)
	demand := math.Min(rawDemand/demandFullScale*demandWeight, demandWeight)
	gap := gapScore(nearestBike, hasBike, bus.Meters)
	access := c.accessibilityScore(p)

	bd := model.ScoreBreakdown{
		Transport:     round2(transport),
		Demand:        round2(demand),
		Gap:           round2(gap),
		Accessibility: round2(access),
		Population:    PopulationScore,
		Components: model.Components{
			NearestBus:  bus.Label,
			BusMeters:   bus.Meters,
			NearestTram: tram.Label,
			TramMeters:  tram.Meters,
			BikeDemand:  rawDemand,
		},
	}
	bd.Total = round2(transport + demand + gap + access + PopulationScore)

	c.cache.put(key, bd)
	return bd, nil
}

// transportScore sums the bus and tram contributions. Both decay linearly
// beyond the 500 m band, one point per 100 m, floored at zero.
func transportScore(bus, tram nearest.Result) float64 {
	var score float64
	switch {
	case bus.Within200m:
		score += busClosePoints
	case bus.Within500m:
		score += busNearPoints
	default:
		score += math.Max(0, busNearPoints-(bus.Meters-transportBandNear)/decayMetersPerPt)
	}

	if tram.Within500m {
		score += tramNearPoints
	} else {
		score += math.Max(0, tramDecayBase-(tram.Meters-transportBandNear)/decayMetersPerPt)
	}
	return score
}

// bikeScan walks the bike dataset once, accumulating distance-decayed
// availability for stations within the demand radius and tracking the
// nearest station overall. Returns the raw demand value (mean over the
// stations found, or over 1 when none are in range), the nearest-station
// distance, and whether any station exists at all.
func (c *Calculator) bikeScan(p geo.Point) (rawDemand, nearestMeters float64, hasBike bool) {
	var accumulated float64
	var inRange int
	nearestMeters = math.MaxFloat64

	for _, st := range c.snap.Bikes {
		d := geo.Distance(p, geo.Point{Lat: st.Lat, Lng: st.Lng})
		if d < nearestMeters {
			nearestMeters = d
		}
		if d <= demandRadiusMeters {
			weight := math.Max(0, 1-d/demandRadiusMeters)
			accumulated += float64(st.AvailabilityScore()) * weight
			inRange++
		}
	}

	divisor := float64(inRange)
	if divisor < 1 {
		divisor = 1
	}
	return accumulated / divisor, nearestMeters, len(c.snap.Bikes) > 0
}

// gapScore rewards underserved areas: the further the nearest bike station
// and bus stop, the higher the score, clamped at the normalisation caps.
// With no bike stations at all the bike term saturates at 1.
func gapScore(nearestBikeMeters float64, hasBike bool, nearestBusMeters float64) float64 {
	bikeGap := 1.0
	if hasBike {
		bikeGap = math.Min(1, nearestBikeMeters/bikeGapNormMeters)
	}
	busGap := math.Min(1, nearestBusMeters/busGapNormMeters)
	return gapWeight * (bikeGap + busGap) / 2
}

// accessibilityScore scales proximity to the closest fixed amenity
// landmark: full weight at the landmark, zero beyond 2 km.
func (c *Calculator) accessibilityScore(p geo.Point) float64 {
	closest := math.MaxFloat64
	for _, a := range amenities {
		if d := geo.Distance(p, a); d < closest {
			closest = d
		}
	}
	return math.Max(0, 1-closest/amenityRangeMeters) * accessWeight
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
