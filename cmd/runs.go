package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved search runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		runs, err := st.ListRuns(ctx, runsLimit)
		if err != nil {
			return eris.Wrap(err, "list runs")
		}

		type line struct {
			ID         string  `json:"id"`
			CreatedAt  string  `json:"created_at"`
			Resolution int     `json:"resolution"`
			TopK       int     `json:"top_k"`
			Source     string  `json:"source"`
			Best       float64 `json:"best_score,omitempty"`
		}
		lines := make([]line, len(runs))
		for i, r := range runs {
			lines[i] = line{
				ID:         r.ID,
				CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
				Resolution: r.Resolution,
				TopK:       r.TopK,
				Source:     r.Source,
			}
			if len(r.Candidates) > 0 {
				lines[i].Best = r.Candidates[0].Score.Total
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
