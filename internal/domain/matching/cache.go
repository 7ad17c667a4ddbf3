package matching

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 1000

// VerdictCache is the process-local, capacity-bounded memo of pair verdicts.
// It is safe for concurrent use.
type VerdictCache struct {
	entries *lru.Cache[string, bool]
}

func NewVerdictCache(size int) *VerdictCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, bool](size)
	if err != nil {
		// only reachable with a non-positive size
		panic(err)
	}
	return &VerdictCache{entries: entries}
}

func (c *VerdictCache) Get(key string) (bool, bool) {
	return c.entries.Get(key)
}

func (c *VerdictCache) Add(key string, verdict bool) {
	c.entries.Add(key, verdict)
}

func (c *VerdictCache) Len() int {
	return c.entries.Len()
}

// VerdictStore is an optional shared second-level cache consulted after a local miss.
// Implementations report a miss as found=false with a nil error.
type VerdictStore interface {
	GetVerdict(ctx context.Context, key string) (verdict bool, found bool, err error)
	SetVerdict(ctx context.Context, key string, verdict bool) error
}
