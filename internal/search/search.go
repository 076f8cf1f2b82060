package search

import (
	"context"
	"runtime"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/model"
	"github.com/mobiflow/hubopt/internal/scorer"
)

// Options configures one grid search pass.
type Options struct {
	Resolution int
	TopK       int
	Workers    int // 0 = GOMAXPROCS
}

// candidate pairs a scored point with its lattice index so that ties can
// be broken by original enumeration order even under parallel scoring.
type candidate struct {
	index int
	model.RankedCandidate
}

// Search scores every lattice point over bounds and returns the top-K
// candidates, descending by total score; ties keep lattice order. The
// work is partitioned across a worker pool, each worker holding a local
// top-K that is merged and re-sorted at the end. Cancellation of ctx is
// honoured between candidates.
func Search(ctx context.Context, calc *scorer.Calculator, bounds geo.Bounds, opts Options) ([]model.RankedCandidate, error) {
	if opts.TopK <= 0 {
		return nil, eris.Errorf("search: top_k %d must be positive", opts.TopK)
	}

	points, err := Lattice(bounds, opts.Resolution)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(points) {
		workers = len(points)
	}

	log := zap.L().With(
		zap.Int("resolution", opts.Resolution),
		zap.Int("candidates", len(points)),
		zap.Int("workers", workers),
	)
	log.Debug("starting grid search")

	locals := make([][]candidate, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local []candidate
			for idx := w; idx < len(points); idx += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				p := points[idx]
				bd, err := calc.Score(p)
				if err != nil {
					return eris.Wrapf(err, "search: score candidate (%.5f, %.5f)", p.Lat, p.Lng)
				}
				local = append(local, candidate{
					index:           idx,
					RankedCandidate: model.RankedCandidate{Latitude: p.Lat, Longitude: p.Lng, Score: bd},
				})
				local = trimTopK(local, opts.TopK)
			}
			locals[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []candidate
	for _, local := range locals {
		merged = append(merged, local...)
	}
	merged = trimTopK(merged, opts.TopK)

	ranked := make([]model.RankedCandidate, len(merged))
	for i, c := range merged {
		ranked[i] = c.RankedCandidate
	}
	log.Info("grid search complete", zap.Int("returned", len(ranked)))
	return ranked, nil
}

// trimTopK sorts candidates by total score descending, lattice index
// ascending on ties, and truncates to k.
func trimTopK(cands []candidate, k int) []candidate {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Score.Total != cands[j].Score.Total {
			return cands[i].Score.Total > cands[j].Score.Total
		}
		return cands[i].index < cands[j].index
	})
	if len(cands) > k {
		cands = cands[:k]
	}
	return cands
}
