// Package nearest locates the closest labelled reference point to a query
// point. The scan is deliberately exhaustive: the reference sets are tens
// of points, and the Finder interface leaves room to swap in a spatial
// index if that ever changes.
package nearest

import (
	"github.com/rotisserie/eris"

	"github.com/mobiflow/hubopt/internal/geo"
)

// ErrEmptyRefs is returned when a lookup is attempted against an empty
// reference set. Callers must handle it explicitly; there is no sentinel
// "infinite distance" result.
var ErrEmptyRefs = eris.New("nearest: empty reference set")

// Ref is a labelled reference point.
type Ref struct {
	Point geo.Point
	Label string
}

// Result describes the closest reference found for a query.
type Result struct {
	Label      string  `json:"label"`
	Meters     float64 `json:"distance_meters"`
	Within200m bool    `json:"within_200m"`
	Within500m bool    `json:"within_500m"`
}

// Finder resolves the nearest reference to a point.
type Finder interface {
	Nearest(p geo.Point, refs []Ref) (Result, error)
}

// BruteForce scans the full reference slice. Ties keep the first
// reference encountered in slice order.
type BruteForce struct{}

// Nearest returns the closest reference to p, or ErrEmptyRefs.
func (BruteForce) Nearest(p geo.Point, refs []Ref) (Result, error) {
	if len(refs) == 0 {
		return Result{}, ErrEmptyRefs
	}

	best := 0
	bestMeters := geo.Distance(p, refs[0].Point)
	for i := 1; i < len(refs); i++ {
		if d := geo.Distance(p, refs[i].Point); d < bestMeters {
			best = i
			bestMeters = d
		}
	}

	return Result{
		Label:      refs[best].Label,
		Meters:     bestMeters,
		Within200m: bestMeters <= 200,
		Within500m: bestMeters <= 500,
	}, nil
}
