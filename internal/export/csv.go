// Package export serialises ranked candidates for downstream consumers:
// CSV and XLSX for tabular analysis, GeoJSON for map rendering.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/mobiflow/hubopt/internal/model"
)

// Header is the tabular column contract for ranked candidates. Order and
// names are part of the interface with downstream consumers.
var Header = []string{
	"latitude",
	"longitude",
	"hub_score",
	"transport_score",
	"demand_score",
	"gap_score",
	"accessibility_score",
	"nearest_bus",
	"nearest_luas",
	"bike_demand",
}

// WriteCSV writes the header plus one row per candidate.
func WriteCSV(w io.Writer, candidates []model.RankedCandidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, c := range candidates {
		if err := cw.Write(row(c)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func row(c model.RankedCandidate) []string {
	return []string{
		formatFloat(c.Latitude),
		formatFloat(c.Longitude),
		formatFloat(c.Score.Total),
		formatFloat(c.Score.Transport),
		formatFloat(c.Score.Demand),
		formatFloat(c.Score.Gap),
		formatFloat(c.Score.Accessibility),
		c.Score.Components.NearestBus,
		c.Score.Components.NearestTram,
		formatFloat(c.Score.Components.BikeDemand),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
