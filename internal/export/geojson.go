package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/mobiflow/hubopt/internal/model"
)

// WriteGeoJSON writes the candidates as a FeatureCollection of points,
// one feature per candidate with the score fields as properties. This is
// the format the map dashboard consumes.
func WriteGeoJSON(w io.Writer, candidates []model.RankedCandidate) error {
	fc := &geojson.FeatureCollection{}
	for i, c := range candidates {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{c.Longitude, c.Latitude}).SetSRID(4326),
			Properties: map[string]interface{}{
				"rank":                i + 1,
				"hub_score":           c.Score.Total,
				"transport_score":     c.Score.Transport,
				"demand_score":        c.Score.Demand,
				"gap_score":           c.Score.Gap,
				"accessibility_score": c.Score.Accessibility,
				"nearest_bus":         c.Score.Components.NearestBus,
				"nearest_luas":        c.Score.Components.NearestTram,
				"bike_demand":         c.Score.Components.BikeDemand,
			},
		})
	}

	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	return nil
}
