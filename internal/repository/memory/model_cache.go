package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const modelListKey = "models"

// ModelCache memoizes the backend's model list. The tag endpoint is cheap
// but the list changes rarely, and the UI polls it on every mount.
type ModelCache struct {
	cache *cache.Cache
}

func NewModelCache(ttl time.Duration) *ModelCache {
	return &ModelCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *ModelCache) Get() ([]string, bool) {
	if x, found := c.cache.Get(modelListKey); found {
		return x.([]string), true
	}
	return nil, false
}

func (c *ModelCache) Set(models []string) {
	c.cache.Set(modelListKey, models, cache.DefaultExpiration)
}
