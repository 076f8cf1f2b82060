package main

import (
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mobiflow/hubopt/internal/dataset"
	"github.com/mobiflow/hubopt/internal/export"
	"github.com/mobiflow/hubopt/internal/model"
	"github.com/mobiflow/hubopt/internal/scorer"
	"github.com/mobiflow/hubopt/internal/search"
)

var (
	searchResolution int
	searchTopK       int
	searchWorkers    int
	searchCSV        string
	searchXLSX       string
	searchGeoJSON    string
	searchSave       bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Grid search the configured area for the best hub locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snap := dataset.Refresh(ctx, newBikeClient())
		calc := scorer.New(snap, nil)

		opts := search.Options{
			Resolution: searchResolution,
			TopK:       searchTopK,
			Workers:    searchWorkers,
		}
		if opts.Resolution == 0 {
			opts.Resolution = cfg.Search.Resolution
		}
		if opts.TopK == 0 {
			opts.TopK = cfg.Search.TopK
		}
		if opts.Workers == 0 {
			opts.Workers = cfg.Search.Workers
		}

		bounds := cfg.Bounds.Geo()
		candidates, err := search.Search(ctx, calc, bounds, opts)
		if err != nil {
			return eris.Wrap(err, "grid search")
		}

		run := &model.Run{
			ID:              uuid.New().String(),
			CreatedAt:       time.Now().UTC(),
			Bounds:          bounds,
			Resolution:      opts.Resolution,
			TopK:            opts.TopK,
			SnapshotVersion: snap.Version,
			Source:          snap.Source,
			Candidates:      candidates,
		}

		if searchSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			if err := st.SaveRun(ctx, run); err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID))
		}

		for _, out := range []struct {
			path  string
			write func(io.Writer, []model.RankedCandidate) error
		}{
			{searchCSV, export.WriteCSV},
			{searchXLSX, export.WriteXLSX},
			{searchGeoJSON, export.WriteGeoJSON},
		} {
			if out.path == "" {
				continue
			}
			if err := writeFile(out.path, candidates, out.write); err != nil {
				return err
			}
			zap.L().Info("export written", zap.String("path", out.path))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func writeFile(path string, candidates []model.RankedCandidate, write func(io.Writer, []model.RankedCandidate) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := write(f, candidates); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

func init() {
	searchCmd.Flags().IntVar(&searchResolution, "resolution", 0, "grid resolution per axis (default from config)")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "number of candidates to return (default from config)")
	searchCmd.Flags().IntVar(&searchWorkers, "workers", 0, "scoring workers (default from config)")
	searchCmd.Flags().StringVar(&searchCSV, "csv", "", "write results to a CSV file")
	searchCmd.Flags().StringVar(&searchXLSX, "xlsx", "", "write results to an XLSX file")
	searchCmd.Flags().StringVar(&searchGeoJSON, "geojson", "", "write results to a GeoJSON file")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "persist the run to the store")
	rootCmd.AddCommand(searchCmd)
}
