package cache

import (
	"encoding/json"
	"time"

	"github.com/veritas-checks/veritas/internal/model"
)

// SnippetCache is the typed layer storing per-URL evidence snippet lists.
// A nil SnippetCache (cache disabled) behaves as a permanent miss.
type SnippetCache struct {
	backend Cache
	ttl     time.Duration
}

// NewSnippetCache creates a snippet cache from the cache configuration.
// Returns nil when caching is disabled.
func NewSnippetCache(cfg model.CacheConfig) *SnippetCache {
	if !cfg.Enabled {
		return nil
	}
	return &SnippetCache{
		backend: NewMemoryCache(cfg.TTL(), 10*time.Minute, cfg.MaxEntries),
		ttl:     cfg.TTL(),
	}
}

// Get returns the cached snippets for a URL, or false on any miss or
// backend failure
func (c *SnippetCache) Get(url string) ([]model.EvidenceSnippet, bool) {
	if c == nil {
		return nil, false
	}
	data, found := c.backend.Get(Key(url))
	if !found {
		return nil, false
	}
	var snippets []model.EvidenceSnippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		// Corrupt entry: drop it and treat as a miss
		_ = c.backend.Delete(Key(url))
		return nil, false
	}
	return snippets, true
}

// Put stores the snippets for a URL. Failures are swallowed: a cache write
// error must never surface to retrieval.
func (c *SnippetCache) Put(url string, snippets []model.EvidenceSnippet) {
	if c == nil {
		return
	}
	data, err := json.Marshal(snippets)
	if err != nil {
		return
	}
	_ = c.backend.Set(Key(url), data, c.ttl)
}
