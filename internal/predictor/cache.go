package predictor

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/pitchside/internal/confidence"
)

// breakdownCache memoizes confidence calculations. Backtests evaluate the
// same (pattern, date) pair for every candidate threshold, so hits are
// common. The corpus length is part of the key: a grown corpus invalidates
// the entry.
type breakdownCache struct {
	store *cache.Cache
}

type cachedBreakdown struct {
	confidence float64
	breakdown  confidence.Breakdown
}

func newBreakdownCache(ttl time.Duration) *breakdownCache {
	if ttl <= 0 {
		return nil
	}
	return &breakdownCache{store: cache.New(ttl, 2*ttl)}
}

func cacheKey(league, patternName string, asOf time.Time, corpusLen int) string {
	return fmt.Sprintf("%s|%s|%s|%d", league, patternName, asOf.Format("2006-01-02"), corpusLen)
}

func (bc *breakdownCache) get(key string) (cachedBreakdown, bool) {
	if bc == nil {
		return cachedBreakdown{}, false
	}
	if v, ok := bc.store.Get(key); ok {
		if entry, ok := v.(cachedBreakdown); ok {
			return entry, true
		}
	}
	return cachedBreakdown{}, false
}

func (bc *breakdownCache) put(key string, entry cachedBreakdown) {
	if bc == nil {
		return
	}
	bc.store.SetDefault(key, entry)
}
