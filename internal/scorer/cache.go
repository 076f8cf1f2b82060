package scorer

import (
	"fmt"
	"sync"

	"github.com/mobiflow/hubopt/internal/geo"
	"github.com/mobiflow/hubopt/internal/model"
)

// scoreCache memoises breakdowns per calculator. Keys combine the snapshot
// version with the point rounded to six decimals (~0.1 m), so a dataset
// refresh invalidates everything simply by producing a new version.
type scoreCache struct {
	mu      sync.RWMutex
	entries map[string]model.ScoreBreakdown
}

func newScoreCache() *scoreCache {
	return &scoreCache{entries: make(map[string]model.ScoreBreakdown)}
}

func cacheKey(version string, p geo.Point) string {
	return fmt.Sprintf("%s:%.6f:%.6f", version, p.Lat, p.Lng)
}

func (c *scoreCache) get(key string) (model.ScoreBreakdown, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	bd, ok := c.entries[key]
	return bd, ok
}

func (c *scoreCache) put(key string, bd model.ScoreBreakdown) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = bd
}

// Len reports the number of cached breakdowns.
func (c *scoreCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
