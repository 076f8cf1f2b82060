package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mobiflow/hubopt/internal/dataset"
	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/scorer"
	"github.com/mobiflow/hubopt/internal/store"
)

var servePort int

// buildMux wires the HTTP routes against a scorer and a run store.
func buildMux(calc *scorer.Calculator, st store.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":           "ok",
			"snapshot_version": calc.Snapshot().Version,
			"snapshot_source":  calc.Snapshot().Source,
		})
	})

	mux.HandleFunc("GET /v1/score", func(w http.ResponseWriter, r *http.Request) {
		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if errLat != nil || errLng != nil {
			http.Error(w, `{"error":"lat and lng query params are required"}`, http.StatusBadRequest)
			return
		}

		breakdown, err := calc.Score(geo.Point{Lat: lat, Lng: lng})
		if err != nil {
			zap.L().Warn("score request failed",
				zap.Float64("lat", lat),
				zap.Float64("lng", lng),
				zap.Error(err),
			)
			http.Error(w, `{"error":"point could not be scored"}`, http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(breakdown)
	})

	mux.HandleFunc("GET /v1/recommendations", func(w http.ResponseWriter, r *http.Request) {
		run, err := st.LatestRun(r.Context())
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				http.Error(w, `{"error":"no saved runs"}`, http.StatusNotFound)
				return
			}
			zap.L().Error("load latest run failed", zap.Error(err))
			http.Error(w, `{"error":"store unavailable"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	})

	return mux
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scores and saved recommendations over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snap := dataset.Refresh(ctx, newBikeClient())
		calc := scorer.New(snap, nil)

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: buildMux(calc, st),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
