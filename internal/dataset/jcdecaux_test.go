package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

const stationsJSON = `[
	{
		"number": 4,
		"name": "Trinity College",
		"position": {"lat": 53.3439, "lng": -6.2546},
		"available_bikes": 12,
		"available_bike_stands": 8,
		"bike_stands": 25,
		"status": "OPEN",
		"last_update": 1749542400000
	},
	{
		"number": 8,
		"name": "St. Stephen's Green",
		"position": {"lat": 53.3387, "lng": -6.2613},
		"available_bikes": 6,
		"available_bike_stands": 14,
		"bike_stands": 20,
		"status": "OPEN",
		"last_update": 1749542400000
	}
]`

func TestJCDecauxClient_Stations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vls/v1/stations", r.URL.Path)
		assert.Equal(t, "dublin", r.URL.Query().Get("contract"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stationsJSON)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewJCDecauxClient(JCDecauxOptions{BaseURL: srv.URL, APIKey: "test-key"})
	stations, err := client.Stations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)

	trinity := stations[0]
	assert.Equal(t, 4, trinity.ID)
	assert.Equal(t, "Trinity College", trinity.Name)
	assert.InDelta(t, 53.3439, trinity.Lat, 1e-9)
	assert.InDelta(t, -6.2546, trinity.Lng, 1e-9)
	assert.Equal(t, 12, trinity.AvailableBikes)
	assert.Equal(t, 8, trinity.AvailableStands)
	assert.Equal(t, 25, trinity.TotalCapacity)
	assert.Equal(t, 20, trinity.AvailabilityScore())
}

func TestJCDecauxClient_Stations_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewJCDecauxClient(JCDecauxOptions{BaseURL: srv.URL, APIKey: "bad-key"})
	_, err := client.Stations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestJCDecauxClient_Stations_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewJCDecauxClient(JCDecauxOptions{BaseURL: srv.URL})
	_, err := client.Stations(context.Background())
	require.Error(t, err)
}

func TestRefresh_LiveFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationsJSON)) //nolint:errcheck
	}))
	defer srv.Close()

	snap := Refresh(context.Background(), NewJCDecauxClient(JCDecauxOptions{BaseURL: srv.URL}))
	assert.Equal(t, SourceJCDecaux, snap.Source)
	assert.Len(t, snap.Bikes, 2)
	assert.Len(t, snap.Stops, 11)
	assert.Len(t, snap.Trams, 8)
	assert.NotEmpty(t, snap.Version)
}

func TestRefresh_FallsBackToSample(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	snap := Refresh(context.Background(), NewJCDecauxClient(JCDecauxOptions{BaseURL: srv.URL}))
	assert.Equal(t, SourceSample, snap.Source)
	assert.Len(t, snap.Bikes, 11)
}

func TestRefresh_NilClientUsesSample(t *testing.T) {
	snap := Refresh(context.Background(), nil)
	assert.Equal(t, SourceSample, snap.Source)
	assert.Len(t, snap.Bikes, 11)
}

func TestSnapshot_Refs(t *testing.T) {
	snap := NewSnapshot(SourceSample, SampleBikeStations(), SampleBusStops(), SampleTramStops())

	assert.Len(t, snap.BikeRefs(), 11)
	assert.Len(t, snap.StopRefs(), 11)
	assert.Len(t, snap.TramRefs(), 8)
	assert.Equal(t, "Heuston Station", snap.BikeRefs()[0].Label)
	assert.Equal(t, "St. Stephen's Green", snap.TramRefs()[0].Label)
}

func TestSnapshot_VersionsDiffer(t *testing.T) {
	a := NewSnapshot(SourceSample, nil, nil, nil)
	b := NewSnapshot(SourceSample, nil, nil, nil)
	assert.NotEqual(t, a.Version, b.Version)
}
