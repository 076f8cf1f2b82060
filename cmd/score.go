package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mobiflow/hubopt/internal/dataset"
	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/scorer"
)

var (
	scoreLat float64
	scoreLng float64
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single candidate location",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := dataset.Refresh(cmd.Context(), newBikeClient())
		calc := scorer.New(snap, nil)

		point := geo.Point{Lat: scoreLat, Lng: scoreLng}
		breakdown, err := calc.Score(point)
		if err != nil {
			return eris.Wrap(err, "score point")
		}

		zap.L().Info("point scored",
			zap.Float64("lat", point.Lat),
			zap.Float64("lng", point.Lng),
			zap.Float64("total", breakdown.Total),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(breakdown)
	},
}

func init() {
	scoreCmd.Flags().Float64Var(&scoreLat, "lat", 0, "latitude (required)")
	scoreCmd.Flags().Float64Var(&scoreLng, "lng", 0, "longitude (required)")
	_ = scoreCmd.MarkFlagRequired("lat")
	_ = scoreCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(scoreCmd)
}
