package renderer

import (
	"context"
	"math"
	"time"

	"github.com/df07/image-synthesis/pkg/canvas"
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/illumination"
)

// RasterConfig contains rasterization configuration
type RasterConfig struct {
	Step    float64 // Parametric increment along u and v
	Preview bool    // Shade with Lambert instead of Phong
}

// DefaultRasterConfig returns sensible default values
func DefaultRasterConfig() RasterConfig {
	return RasterConfig{
		Step: 0.001,
	}
}

// Rasterizer paints every surface by sampling its parametric domain and
// letting the depth buffer keep the nearest sample per pixel
type Rasterizer struct {
	scene  Scene
	model  illumination.Model
	config RasterConfig
	logger core.Logger
}

// NewRasterizer creates a rasterizer
func NewRasterizer(scene Scene, config RasterConfig, logger core.Logger) *Rasterizer {
	if config.Step <= 0 || config.Step > 1 {
		config.Step = DefaultRasterConfig().Step
	}

	var model illumination.Model = illumination.NewPhong(scene.GetCamera())
	if config.Preview {
		model = illumination.Lambert{}
	}

	return &Rasterizer{
		scene:  scene,
		model:  model,
		config: config,
		logger: loggerOrNop(logger),
	}
}

// SetModel replaces the illumination model
func (r *Rasterizer) SetModel(model illumination.Model) {
	r.model = model
}

// Render draws every surface into c
func (r *Rasterizer) Render(c *canvas.Canvas) RenderStats {
	stats, _ := r.RenderContext(context.Background(), c)
	return stats
}

// RenderContext draws every surface into c, checking ctx between surfaces
func (r *Rasterizer) RenderContext(ctx context.Context, c *canvas.Canvas) (RenderStats, error) {
	start := time.Now()
	surfaces := r.scene.GetSurfaces()
	ls := r.scene.GetLights()
	samples := int(math.Ceil(1/r.config.Step - 1e-9)) // u, v in [0,1)

	r.logger.Printf("Rasterizing %d surfaces at step %g...\n", len(surfaces), r.config.Step)

	var stats RenderStats
	c.BeginFrame()
	defer c.EndFrame()

	for _, s := range surfaces {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			r.logger.Printf("Rasterizing cancelled: %v\n", err)
			return stats, err
		}

		for i := 0; i < samples; i++ {
			u := float64(i) * r.config.Step
			for j := 0; j < samples; j++ {
				uv := core.NewVec2(u, float64(j)*r.config.Step)
				p := s.Point(uv)
				stats.TotalPixels++

				// Depth first so hidden samples are never shaded
				px, ok := c.ReservePoint(p)
				if !ok {
					continue
				}
				c.Fill(px, r.model.Compute(ls, s, p, uv))
				stats.PixelsDrawn++
			}
		}
	}

	stats.Duration = time.Since(start)
	r.logger.Printf("Rasterizing completed in %v (%d samples, %d drawn)\n",
		stats.Duration, stats.TotalPixels, stats.PixelsDrawn)
	return stats, nil
}
