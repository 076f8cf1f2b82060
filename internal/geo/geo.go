// Package geo provides the coordinate primitives shared by the scoring
// engine: points, bounding boxes, and great-circle distance.
package geo

import (
	"github.com/golang/geo/s2"
	"github.com/rotisserie/eris"
)

// earthRadiusMeters is the Earth's volumetric mean radius in meters
// (NASA planetary fact sheet).
const earthRadiusMeters = 6371000

// Point is an immutable latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that the point lies within valid geographic ranges.
func (p Point) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return eris.Errorf("geo: latitude %.6f out of range [-90, 90]", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return eris.Errorf("geo: longitude %.6f out of range [-180, 180]", p.Lng)
	}
	return nil
}

// Distance returns the great-circle distance between a and b in meters.
// It is symmetric and returns exactly zero for identical points.
func Distance(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}

// Bounds is a geographic bounding box. North must exceed south and east
// must exceed west; use Validate before trusting a caller-supplied box.
type Bounds struct {
	North float64 `json:"north" yaml:"north" mapstructure:"north"`
	South float64 `json:"south" yaml:"south" mapstructure:"south"`
	East  float64 `json:"east" yaml:"east" mapstructure:"east"`
	West  float64 `json:"west" yaml:"west" mapstructure:"west"`
}

// Validate rejects inverted or degenerate boxes and out-of-range corners.
func (b Bounds) Validate() error {
	if b.North <= b.South {
		return eris.Errorf("geo: bounds north %.6f must exceed south %.6f", b.North, b.South)
	}
	if b.East <= b.West {
		return eris.Errorf("geo: bounds east %.6f must exceed west %.6f", b.East, b.West)
	}
	for _, p := range []Point{{Lat: b.South, Lng: b.West}, {Lat: b.North, Lng: b.East}} {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether p lies within the box, edges inclusive.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	return Point{Lat: (b.North + b.South) / 2, Lng: (b.East + b.West) / 2}
}
