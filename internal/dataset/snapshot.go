// Package dataset acquires and publishes the reference datasets the scorer
// reads: bike-share stations, bus stops, and Luas stops. A Snapshot is
// immutable once built; a refresh publishes a new snapshot with a new
// version and lets in-flight searches finish against the old one.
package dataset

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/model"
	"github.com/mobiflow/hubopt/internal/nearest"
)

// Dataset sources recorded on snapshots.
const (
	SourceJCDecaux = "jcdecaux"
	SourceSample   = "sample"
)

// Snapshot is an immutable view of all three reference datasets.
type Snapshot struct {
	Version   string              `json:"version"`
	FetchedAt time.Time           `json:"fetched_at"`
	Source    string              `json:"source"`
	Bikes     []model.BikeStation `json:"bikes"`
	Stops     []model.BusStop     `json:"bus_stops"`
	Trams     []model.TramStop    `json:"luas_stops"`
}

// NewSnapshot assigns a fresh version to the given datasets.
func NewSnapshot(source string, bikes []model.BikeStation, stops []model.BusStop, trams []model.TramStop) *Snapshot {
	return &Snapshot{
		Version:   uuid.New().String(),
		FetchedAt: time.Now().UTC(),
		Source:    source,
		Bikes:     bikes,
		Stops:     stops,
		Trams:     trams,
	}
}

// BikeRefs exposes the bike stations as nearest-lookup references.
func (s *Snapshot) BikeRefs() []nearest.Ref {
	refs := make([]nearest.Ref, len(s.Bikes))
	for i, b := range s.Bikes {
		refs[i] = nearest.Ref{Point: geo.Point{Lat: b.Lat, Lng: b.Lng}, Label: b.Name}
	}
	return refs
}

// StopRefs exposes the bus stops as nearest-lookup references.
func (s *Snapshot) StopRefs() []nearest.Ref {
	refs := make([]nearest.Ref, len(s.Stops))
	for i, b := range s.Stops {
		refs[i] = nearest.Ref{Point: geo.Point{Lat: b.Lat, Lng: b.Lng}, Label: b.Name}
	}
	return refs
}

// TramRefs exposes the Luas stops as nearest-lookup references.
func (s *Snapshot) TramRefs() []nearest.Ref {
	refs := make([]nearest.Ref, len(s.Trams))
	for i, t := range s.Trams {
		refs[i] = nearest.Ref{Point: geo.Point{Lat: t.Lat, Lng: t.Lng}, Label: t.Name}
	}
	return refs
}

// Refresh builds a new snapshot. Live JCDecaux data is preferred for the
// bike stations; on any feed failure the embedded sample data is used
// instead. Bus and Luas stops always come from the embedded datasets.
func Refresh(ctx context.Context, client *JCDecauxClient) *Snapshot {
	stops := SampleBusStops()
	trams := SampleTramStops()

	if client != nil {
		bikes, err := client.Stations(ctx)
		if err == nil {
			snap := NewSnapshot(SourceJCDecaux, bikes, stops, trams)
			zap.L().Info("dataset refreshed from live feed",
				zap.String("version", snap.Version),
				zap.Int("bikes", len(bikes)),
			)
			return snap
		}
		zap.L().Warn("live bike feed unavailable, falling back to sample data", zap.Error(err))
	}

	snap := NewSnapshot(SourceSample, SampleBikeStations(), stops, trams)
	zap.L().Info("dataset refreshed from sample data",
		zap.String("version", snap.Version),
		zap.Int("bikes", len(snap.Bikes)),
	)
	return snap
}
