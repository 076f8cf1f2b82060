package model

import (
	"time"

	"github.com/mobiflow/hubopt/internal/geo"
)

// Run is one persisted grid-search execution: the parameters it ran with
// and the ranked candidates it produced.
type Run struct {
	ID              string            `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	Bounds          geo.Bounds        `json:"bounds"`
	Resolution      int               `json:"resolution"`
	TopK            int               `json:"top_k"`
	SnapshotVersion string            `json:"snapshot_version"`
	Source          string            `json:"source"`
	Candidates      []RankedCandidate `json:"candidates"`
}
