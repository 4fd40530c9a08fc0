package cli

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/quintrel/balloontool/internal/boundary"
	"github.com/quintrel/balloontool/internal/config"
	"github.com/quintrel/balloontool/internal/geometry"
	"github.com/quintrel/balloontool/internal/zone"
)

var (
	gridCacheOnce sync.Once
	gridCache     *zone.Cache
)

// detectGrid runs boundary detection and derives the zone grid. A nil
// grid means no boundary was found; callers fall back to zone "N/A".
// Built grids are cached per boundary so repeated passes over the same
// page reuse them.
func detectGrid(img image.Image, zcfg config.Zone) (*zone.Grid, geometry.Rect, bool) {
	_, rect, ok := boundary.FindInnermost(img, boundary.DefaultParams())
	if !ok {
		if verbose {
			fmt.Fprintln(os.Stderr, "No content boundary detected; zones fall back to N/A")
		}
		return nil, geometry.Rect{}, false
	}

	gridCacheOnce.Do(func() {
		ttl := time.Duration(zcfg.CacheTTLSeconds) * time.Second
		gridCache = zone.NewCache(ttl, ttl)
	})
	if grid, ok := gridCache.Get(rect, 0); ok {
		return grid, rect, true
	}

	grid := zone.BuildGrid(rect, zone.Options{
		LettersOnCols: zcfg.LettersOnCols,
		ReverseRows:   zcfg.ReverseRows,
	})
	if grid == nil {
		return nil, rect, false
	}
	gridCache.Put(rect, 0, grid)
	if verbose {
		fmt.Fprintf(os.Stderr, "Boundary: (%.0f,%.0f)-(%.0f,%.0f), grid %dx%d\n",
			rect.X1, rect.Y1, rect.X2, rect.Y2, grid.Rows, grid.Cols)
	}
	return grid, rect, true
}
