package dataset

import (
	"time"

	"github.com/mobiflow/hubopt/internal/model"
)

// sampleTime pins LastUpdate on sample stations so snapshots built from
// the fallback data are reproducible.
var sampleTime = time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)

// SampleBikeStations returns the embedded Dublin Bikes fallback dataset,
// based on real station locations.
func SampleBikeStations() []model.BikeStation {
	return []model.BikeStation{
		{ID: 1, Name: "Heuston Station", Lat: 53.3464, Lng: -6.2921, AvailableBikes: 5, AvailableStands: 10, TotalCapacity: 20, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 2, Name: "Smithfield", Lat: 53.3475, Lng: -6.2785, AvailableBikes: 2, AvailableStands: 8, TotalCapacity: 15, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 3, Name: "Merrion Square East", Lat: 53.3379, Lng: -6.2537, AvailableBikes: 7, AvailableStands: 5, TotalCapacity: 20, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 4, Name: "Trinity College", Lat: 53.3439, Lng: -6.2546, AvailableBikes: 12, AvailableStands: 8, TotalCapacity: 25, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 5, Name: "Dame Street", Lat: 53.3434, Lng: -6.2674, AvailableBikes: 3, AvailableStands: 17, TotalCapacity: 20, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 6, Name: "IFSC", Lat: 53.3498, Lng: -6.2398, AvailableBikes: 8, AvailableStands: 12, TotalCapacity: 20, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 7, Name: "Grand Canal Dock", Lat: 53.3391, Lng: -6.2351, AvailableBikes: 15, AvailableStands: 5, TotalCapacity: 25, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 8, Name: "St. Stephen's Green", Lat: 53.3387, Lng: -6.2613, AvailableBikes: 6, AvailableStands: 14, TotalCapacity: 20, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 9, Name: "Rathmines", Lat: 53.3250, Lng: -6.2642, AvailableBikes: 4, AvailableStands: 11, TotalCapacity: 15, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 10, Name: "Parnell Square", Lat: 53.3527, Lng: -6.2648, AvailableBikes: 9, AvailableStands: 11, TotalCapacity: 20, Status: "OPEN", LastUpdate: sampleTime},
		{ID: 11, Name: "Drumcondra", Lat: 53.3712, Lng: -6.2573, AvailableBikes: 7, AvailableStands: 8, TotalCapacity: 15, Status: "OPEN", LastUpdate: sampleTime},
	}
}

// SampleBusStops returns stops representative of the Dublin Bus network
// around the city centre.
func SampleBusStops() []model.BusStop {
	return []model.BusStop{
		{ID: "1001", Name: "Heuston Station", Lat: 53.3468, Lng: -6.2928, Routes: []string{"25", "26", "67", "69"}},
		{ID: "1002", Name: "Smithfield", Lat: 53.3478, Lng: -6.2792, Routes: []string{"37", "39", "70"}},
		{ID: "1003", Name: "Trinity College", Lat: 53.3442, Lng: -6.2540, Routes: []string{"7", "8", "15", "46"}},
		{ID: "1004", Name: "Merrion Square", Lat: 53.3382, Lng: -6.2534, Routes: []string{"7", "8", "10"}},
		{ID: "1005", Name: "Dame Street", Lat: 53.3437, Lng: -6.2671, Routes: []string{"15", "16", "49", "54"}},
		{ID: "1006", Name: "IFSC", Lat: 53.3501, Lng: -6.2395, Routes: []string{"90", "92"}},
		{ID: "1007", Name: "Grand Canal Dock", Lat: 53.3394, Lng: -6.2348, Routes: []string{"1", "47", "56"}},
		{ID: "1008", Name: "St. Stephen's Green", Lat: 53.3390, Lng: -6.2610, Routes: []string{"11", "14", "15", "20"}},
		{ID: "1009", Name: "Rathmines", Lat: 53.3253, Lng: -6.2639, Routes: []string{"14", "15", "83"}},
		{ID: "1010", Name: "Parnell Square", Lat: 53.3530, Lng: -6.2645, Routes: []string{"1", "7", "11", "13"}},
		{ID: "1011", Name: "Drumcondra", Lat: 53.3715, Lng: -6.2570, Routes: []string{"1", "7", "11"}},
	}
}

// SampleTramStops returns the city-centre Luas stops on both lines.
func SampleTramStops() []model.TramStop {
	return []model.TramStop{
		{Name: "St. Stephen's Green", Lat: 53.3387, Lng: -6.2613, Line: "Green"},
		{Name: "Trinity", Lat: 53.3447, Lng: -6.2589, Line: "Green"},
		{Name: "Westmoreland", Lat: 53.3450, Lng: -6.2589, Line: "Green"},
		{Name: "Abbey Street", Lat: 53.3484, Lng: -6.2589, Line: "Green"},
		{Name: "Heuston", Lat: 53.3467, Lng: -6.2929, Line: "Red"},
		{Name: "Museum", Lat: 53.3474, Lng: -6.2867, Line: "Red"},
		{Name: "Smithfield", Lat: 53.3475, Lng: -6.2785, Line: "Red"},
		{Name: "Four Courts", Lat: 53.3467, Lng: -6.2743, Line: "Red"},
	}
}
