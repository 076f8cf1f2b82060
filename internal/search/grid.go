// Package search evaluates the hub score over a regular lattice of
// candidate points and ranks the results.
package search

import (
	"github.com/rotisserie/eris"

	"github.com/mobiflow/hubopt/internal/geo"
)

// Lattice enumerates resolution² candidate points row-major: south to
// north, then west to east within each row. The step is span/resolution
// and enumeration starts at the south/west corner, so the north and east
// edges are never sampled. This half-open convention is load-bearing for
// ranking reproducibility.
func Lattice(b geo.Bounds, resolution int) ([]geo.Point, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if resolution <= 0 {
		return nil, eris.Errorf("search: resolution %d must be positive", resolution)
	}

	latStep := (b.North - b.South) / float64(resolution)
	lngStep := (b.East - b.West) / float64(resolution)

	points := make([]geo.Point, 0, resolution*resolution)
	for i := 0; i < resolution; i++ {
		for j := 0; j < resolution; j++ {
			points = append(points, geo.Point{
				Lat: b.South + float64(i)*latStep,
				Lng: b.West + float64(j)*lngStep,
			})
		}
	}
	return points, nil
}
