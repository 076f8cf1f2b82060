package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mobiflow/hubopt/internal/export"
	"github.com/mobiflow/hubopt/internal/model"
	"github.com/mobiflow/hubopt/internal/store"
)

var (
	exportRun    string
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved run as CSV, XLSX, or GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		var run *model.Run
		if exportRun == "latest" {
			run, err = st.LatestRun(ctx)
		} else {
			run, err = st.GetRun(ctx, exportRun)
		}
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				return eris.Errorf("run %q not found", exportRun)
			}
			return eris.Wrap(err, "load run")
		}

		var write func(io.Writer, []model.RankedCandidate) error
		switch exportFormat {
		case "csv":
			write = export.WriteCSV
		case "xlsx":
			write = export.WriteXLSX
		case "geojson":
			write = export.WriteGeoJSON
		default:
			return eris.Errorf("unknown format %q (csv, xlsx, geojson)", exportFormat)
		}

		if exportOut == "" || exportOut == "-" {
			return write(os.Stdout, run.Candidates)
		}

		if err := writeFile(exportOut, run.Candidates, write); err != nil {
			return err
		}
		zap.L().Info("export written",
			zap.String("run_id", run.ID),
			zap.String("format", exportFormat),
			zap.String("path", exportOut),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRun, "run", "latest", "run ID, or latest")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv, xlsx, geojson")
	exportCmd.Flags().StringVar(&exportOut, "out", "-", "output file, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}
