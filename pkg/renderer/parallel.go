package renderer

import (
	"context"
	"fmt"
	"time"
)

// Render renders the image tile by tile on a worker pool.
// Every tile draws from its own random stream seeded by Seed and the tile ID,
// so the result does not depend on NumWorkers or scheduling order.
// If ctx is cancelled the remaining tiles are skipped and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	start := time.Now()
	width, height := rt.config.Width, rt.config.Height

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	pixelStats := newPixelStatsGrid(width, height)

	pool := NewWorkerPool(rt, rt.config.NumWorkers, len(tiles))
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (%d tiles, %d workers)...\n",
		width, height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	defer pool.Stop()

	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:       tile,
			TaskID:     taskID,
			PixelStats: pixelStats,
		})
	}

	var stats RenderStats
	var renderErr error
	progressStep := max(1, len(tiles)/10)

	for remaining := len(tiles) - 1; remaining >= 0; remaining-- {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.add(result.Stats)
		if remaining%progressStep == 0 {
			rt.logger.Printf("Tiles remaining: %d\n", remaining)
		}
	}

	stats.finalize(start)

	if renderErr != nil {
		rt.logger.Printf("Rendering stopped after %d of %d tiles: %v\n", stats.TilesRendered, len(tiles), renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Duration, stats.AverageSamples)

	return imageFromPixelStats(pixelStats, width, height), stats, nil
}
