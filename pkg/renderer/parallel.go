package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/image-synthesis/pkg/canvas"
	"github.com/df07/image-synthesis/pkg/core"
)

// ParallelRaytracer splits the frame into tiles and traces them on a worker
// pool. Its output is pixel-for-pixel the output of Raytracer.Render.
type ParallelRaytracer struct {
	raytracer *Raytracer
	config    Config
	logger    core.Logger
}

// NewParallelRaytracer creates a parallel raytracer
func NewParallelRaytracer(scene Scene, config Config, logger core.Logger) *ParallelRaytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	logger = loggerOrNop(logger)
	return &ParallelRaytracer{
		raytracer: NewRaytracer(scene, config, logger),
		config:    config,
		logger:    logger,
	}
}

// Render draws the frame into c, which must come from canvas.NewConcurrent.
// On cancellation the tiles already traced stay in the sink and ctx's
// error is returned.
func (pr *ParallelRaytracer) Render(ctx context.Context, c *canvas.Canvas) (RenderStats, error) {
	start := time.Now()
	tiles := NewTileGrid(c.Width(), c.Height(), pr.config.TileSize)

	pool := NewWorkerPool(pr.raytracer, c, len(tiles), pr.config.NumWorkers)
	pr.logger.Printf("Raytracing %dx%d in %d tiles (using %d workers)...\n",
		c.Width(), c.Height(), len(tiles), pool.GetNumWorkers())

	c.BeginFrame()
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var stats RenderStats
	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)
	}
	pool.Stop()
	c.EndFrame()

	stats.Duration = time.Since(start)
	if firstErr != nil {
		pr.logger.Printf("Raytracing stopped after %v: %v\n", stats.Duration, firstErr)
		return stats, firstErr
	}

	pr.logger.Printf("Raytracing completed in %v (%d of %d pixels drawn)\n",
		stats.Duration, stats.PixelsDrawn, stats.TotalPixels)
	return stats, nil
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
