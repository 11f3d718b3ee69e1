package web

import (
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"

	textgen "github.com/ncecere/textgen-demo"
)

// completionCache is a TTL cache of completions keyed by the full
// request tuple. Repeated identical demo submissions are served from
// memory instead of re-hitting a large model.
type completionCache struct {
	cache *ttlcache.Cache[string, string]
}

// newCompletionCache creates a cache with TTL-based expiration.
// A non-positive ttl disables caching; the nil receiver is valid.
func newCompletionCache(ttl time.Duration) *completionCache {
	if ttl <= 0 {
		return nil
	}
	c := ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](ttl),
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
	go c.Start()
	return &completionCache{cache: c}
}

// Close stops the cache expiration loop.
func (cc *completionCache) Close() {
	if cc != nil {
		cc.cache.Stop()
	}
}

func cacheKey(engineName string, form textgen.Form) string {
	return fmt.Sprintf("%s|%d|%.3f|%.3f|%s", engineName, form.MaxTokens, form.Temperature, form.TopP, form.Prompt)
}

// Get returns the cached completion for the key, if present and fresh.
func (cc *completionCache) Get(key string) (string, bool) {
	if cc == nil {
		return "", false
	}
	item := cc.cache.Get(key)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

// Set stores a completion under the key.
func (cc *completionCache) Set(key, completion string) {
	if cc == nil {
		return
	}
	cc.cache.Set(key, completion, ttlcache.DefaultTTL)
}
