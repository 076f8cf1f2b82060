package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/mobiflow/hubopt/internal/model"
)

func testCandidates() []model.RankedCandidate {
	return []model.RankedCandidate{
		{
			Latitude:  53.345,
			Longitude: -6.264,
			Score: model.ScoreBreakdown{
				Total: 72.41, Transport: 27.58, Demand: 18.75, Gap: 6.65, Accessibility: 14.43, Population: 5,
				Components: model.Components{
					NearestBus: "Dame Street", BusMeters: 120.5,
					NearestTram: "Westmoreland", TramMeters: 310.2,
					BikeDemand: 15.0,
				},
			},
		},
		{
			Latitude:  53.3325,
			Longitude: -6.284,
			Score: model.ScoreBreakdown{
				Total: 41.2, Transport: 12.1, Demand: 3.4, Gap: 16.7, Accessibility: 4.0, Population: 5,
				Components: model.Components{
					NearestBus: "Rathmines", BusMeters: 820.0,
					NearestTram: "St. Stephen's Green", TramMeters: 1404.8,
					BikeDemand: 2.72,
				},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testCandidates()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, Header, records[0])
	assert.Equal(t, "53.345", records[1][0])
	assert.Equal(t, "-6.264", records[1][1])
	assert.Equal(t, "72.41", records[1][2])
	assert.Equal(t, "Dame Street", records[1][7])
	assert.Equal(t, "Westmoreland", records[1][8])
	assert.Equal(t, "15", records[1][9])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testCandidates()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "recommendations", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "latitude", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Dame Street", sheet.Rows[1].Cells[7].String())

	total, err := sheet.Rows[1].Cells[2].Float()
	require.NoError(t, err)
	assert.InDelta(t, 72.41, total, 1e-9)
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, testCandidates()))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	// GeoJSON coordinates are lng, lat.
	assert.InDelta(t, -6.264, first.Geometry.Coordinates[0], 1e-9)
	assert.InDelta(t, 53.345, first.Geometry.Coordinates[1], 1e-9)
	assert.InDelta(t, 72.41, first.Properties["hub_score"], 1e-9)
	assert.Equal(t, "Dame Street", first.Properties["nearest_bus"])
	assert.InDelta(t, 1.0, first.Properties["rank"], 1e-9)
}
