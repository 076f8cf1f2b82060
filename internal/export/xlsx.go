package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/mobiflow/hubopt/internal/model"
)

// WriteXLSX writes the candidates to a single-sheet workbook using the
// same column contract as the CSV export.
func WriteXLSX(w io.Writer, candidates []model.RankedCandidate) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("recommendations")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	headerRow := sheet.AddRow()
	for _, col := range Header {
		headerRow.AddCell().SetString(col)
	}

	for _, c := range candidates {
		r := sheet.AddRow()
		r.AddCell().SetFloat(c.Latitude)
		r.AddCell().SetFloat(c.Longitude)
		r.AddCell().SetFloat(c.Score.Total)
		r.AddCell().SetFloat(c.Score.Transport)
		r.AddCell().SetFloat(c.Score.Demand)
		r.AddCell().SetFloat(c.Score.Gap)
		r.AddCell().SetFloat(c.Score.Accessibility)
		r.AddCell().SetString(c.Score.Components.NearestBus)
		r.AddCell().SetString(c.Score.Components.NearestTram)
		r.AddCell().SetFloat(c.Score.Components.BikeDemand)
	}

	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}
