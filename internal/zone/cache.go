package zone

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/quintrel/balloontool/internal/geometry"
)

// Cache memoizes built grids per page so repeated zone lookups during a
// session do not rebuild the subdivision. Keys combine the boundary and
// the page rotation: a new rotation means a new boundary and therefore a
// new grid.
type Cache struct {
	cache *gocache.Cache
}

// NewCache creates a grid cache. Entries expire after defaultTTL; the
// janitor runs at cleanupInterval.
func NewCache(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns a previously built grid for the boundary/rotation pair.
func (c *Cache) Get(boundary geometry.Rect, rotation int) (*Grid, bool) {
	if v, found := c.cache.Get(gridKey(boundary, rotation)); found {
		return v.(*Grid), true
	}
	return nil, false
}

// Put stores a built grid for the boundary/rotation pair.
func (c *Cache) Put(boundary geometry.Rect, rotation int, g *Grid) {
	c.cache.Set(gridKey(boundary, rotation), g, gocache.DefaultExpiration)
}

// Clear drops all cached grids. Call on document close.
func (c *Cache) Clear() {
	c.cache.Flush()
}

func gridKey(b geometry.Rect, rotation int) string {
	b = b.Normalize()
	return fmt.Sprintf("%d:%.1f,%.1f,%.1f,%.1f", rotation, b.X1, b.Y1, b.X2, b.Y2)
}
