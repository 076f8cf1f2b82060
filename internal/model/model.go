// Package model defines the domain records exchanged between the dataset,
// scoring, search, and export layers.
package model

import "time"

// BikeStation is a bike-share station record. Fields mirror the JCDecaux
// station feed; a station is immutable within one scoring pass.
type BikeStation struct {
	ID              int       `json:"station_id"`
	Name            string    `json:"name"`
	Lat             float64   `json:"latitude"`
	Lng             float64   `json:"longitude"`
	AvailableBikes  int       `json:"available_bikes"`
	AvailableStands int       `json:"available_stands"`
	TotalCapacity   int       `json:"total_capacity"`
	Status          string    `json:"status"`
	LastUpdate      time.Time `json:"last_update"`
}

// AvailabilityScore is the number of usable docks plus usable bikes. It is
// the demand signal the scorer aggregates over nearby stations.
func (s BikeStation) AvailabilityScore() int {
	return s.AvailableBikes + s.AvailableStands
}

// UtilizationRate is the fraction of capacity occupied by available bikes.
// A zero-capacity station reports 0 rather than dividing by zero.
func (s BikeStation) UtilizationRate() float64 {
	if s.TotalCapacity <= 0 {
		return 0
	}
	return float64(s.AvailableBikes) / float64(s.TotalCapacity)
}

// BusStop is a bus network stop. Routes are carried through to exports but
// are not consumed by the scorer.
type BusStop struct {
	ID     string   `json:"stop_id"`
	Name   string   `json:"stop_name"`
	Lat    float64  `json:"latitude"`
	Lng    float64  `json:"longitude"`
	Routes []string `json:"routes"`
}

// TramStop is a Luas light-rail stop.
type TramStop struct {
	Name string  `json:"station_name"`
	Lat  float64 `json:"latitude"`
	Lng  float64 `json:"longitude"`
	Line string  `json:"line"`
}

// Components records the inputs behind a score for explainability.
type Components struct {
	NearestBus  string  `json:"nearest_bus"`
	BusMeters   float64 `json:"bus_distance"`
	NearestTram string  `json:"nearest_luas"`
	TramMeters  float64 `json:"luas_distance"`
	BikeDemand  float64 `json:"bike_demand"`
}

// ScoreBreakdown is the full result of scoring one candidate point. The
// total is the sum of the five sub-scores, each rounded to two decimals.
type ScoreBreakdown struct {
	Total         float64    `json:"total_score"`
	Transport     float64    `json:"transport_score"`
	Demand        float64    `json:"demand_score"`
	Gap           float64    `json:"gap_score"`
	Accessibility float64    `json:"accessibility_score"`
	Population    float64    `json:"population_score"`
	Components    Components `json:"components"`
}

// RankedCandidate is one grid-search result row: a candidate point with
// its score breakdown flattened in.
type RankedCandidate struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Score     ScoreBreakdown `json:"score"`
}
