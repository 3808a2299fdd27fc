package renderer

import (
	"image"
	"math"
	"time"

	"github.com/df07/image-synthesis/pkg/canvas"
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/geometry"
	"github.com/df07/image-synthesis/pkg/illumination"
	"github.com/df07/image-synthesis/pkg/lights"
)

// Config contains raytracing configuration
type Config struct {
	MaxDepth   int // Maximum recursion depth, primary ray included
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	TileSize   int // Edge of a square work unit for parallel rendering
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   5,
		NumWorkers: 0,
		TileSize:   32,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetSurfaces() []geometry.Surface
	GetLights() []lights.Light
	GetCamera() core.Vec3
	GetRefractiveIndex() float64
}

// Raytracer resolves direct light, shadows, reflection and refraction by
// recursive ray casting
type Raytracer struct {
	scene  Scene
	model  illumination.Model
	config Config
	logger core.Logger
}

// NewRaytracer creates a raytracer shading with Phong from the scene camera
func NewRaytracer(scene Scene, config Config, logger core.Logger) *Raytracer {
	return &Raytracer{
		scene:  scene,
		model:  illumination.NewPhong(scene.GetCamera()),
		config: config,
		logger: loggerOrNop(logger),
	}
}

// SetModel replaces the illumination model
func (rt *Raytracer) SetModel(model illumination.Model) {
	rt.model = model
}

// Trace returns the color seen along ray. The second result is false when
// the ray hits nothing or depth is exhausted.
func (rt *Raytracer) Trace(ray geometry.Ray, depth int) (core.Color, bool) {
	color, _, ok := rt.trace(ray, depth)
	return color, ok
}

// trace is Trace that also reports the distance to the hit
func (rt *Raytracer) trace(ray geometry.Ray, depth int) (core.Color, float64, bool) {
	if depth <= 0 {
		return core.Black, 0, false
	}

	hit, ok := ray.ClosestIntersection(rt.scene.GetSurfaces())
	if !ok {
		return core.Black, 0, false
	}

	surface := hit.Surface
	uv := surface.UV(hit.Point)
	shadow := rt.shadowCoefficient(surface, hit.Point)
	direct := rt.model.Compute(rt.scene.GetLights(), surface, hit.Point, uv)

	incident := ray.Direction.Unit()
	normal := surface.NormalAt(hit.Point, uv)

	color := direct.
		Add(rt.reflectionColor(incident, normal, hit, depth)).
		Add(rt.refractionColor(incident, normal, hit, depth))

	return color.Multiply(shadow), hit.T * ray.Direction.Length(), true
}

// reflectionColor follows the mirror ray from a reflective hit
func (rt *Raytracer) reflectionColor(incident, normal core.Vec3, hit geometry.Intersection, depth int) core.Color {
	mat := hit.Surface.Material()
	if !mat.IsReflective() {
		return core.Black
	}

	direction := incident.Negate().ReflectedVector(normal)
	color, ok := rt.Trace(geometry.NewRay(hit.Point, direction, hit.Surface), depth-1)
	if !ok {
		return core.Black
	}
	return color.Multiply(mat.Reflection)
}

// refractionColor follows the transmitted ray from a transparent hit.
// Past the critical angle the transmitted share is reflected internally.
func (rt *Raytracer) refractionColor(incident, normal core.Vec3, hit geometry.Intersection, depth int) core.Color {
	mat := hit.Surface.Material()
	if !mat.IsTransparent() {
		return core.Black
	}

	direction, ok := incident.RefractedVector(normal, rt.scene.GetRefractiveIndex(), mat.RefractiveIndex)
	if !ok {
		direction = incident.Negate().ReflectedVector(normal)
	}

	// The transmitted ray may meet the same surface again on its way out
	color, ok := rt.Trace(geometry.NewRay(hit.Point, direction, nil), depth-1)
	if !ok {
		return core.Black
	}
	return color.Multiply(mat.Transparency)
}

// shadowCoefficient is the mean visibility of every light from point, in [0,1]
func (rt *Raytracer) shadowCoefficient(from geometry.Surface, point core.Vec3) float64 {
	ls := rt.scene.GetLights()
	if len(ls) == 0 {
		return 1
	}

	probe := &shadowProbe{surfaces: rt.scene.GetSurfaces(), from: from, point: point}
	total := 0.0
	for _, l := range ls {
		l.Accept(probe)
		total += probe.visibility
	}
	return total / float64(len(ls))
}

// shadowProbe measures how much of one light reaches a point. It implements
// lights.Visitor.
type shadowProbe struct {
	surfaces []geometry.Surface
	from     geometry.Surface
	point    core.Vec3

	visibility float64
}

func (p *shadowProbe) VisitAmbient(l *lights.Ambient) {
	p.visibility = 1
}

func (p *shadowProbe) VisitPoint(l *lights.Point) {
	p.visibility = p.transmittance(l.Direction(p.point), l.Distance(p.point))
}

func (p *shadowProbe) VisitDirectional(l *lights.Directional) {
	p.visibility = p.transmittance(l.Direction(p.point), math.Inf(1))
}

// transmittance multiplies the transparency of every surface crossed by the
// unit-direction segment (Epsilon, maxDistance)
func (p *shadowProbe) transmittance(direction core.Vec3, maxDistance float64) float64 {
	ray := core.NewRay(p.point, direction)
	visibility := 1.0
	for _, s := range p.surfaces {
		if s == p.from {
			continue
		}
		if _, ok := s.Intersect(ray, geometry.Epsilon, maxDistance); ok {
			visibility *= min(1, s.Material().Transparency)
			if visibility == 0 {
				return 0
			}
		}
	}
	return visibility
}

// Render traces one primary ray per pixel and draws every hit
func (rt *Raytracer) Render(c *canvas.Canvas) RenderStats {
	start := time.Now()
	rt.logger.Printf("Raytracing %dx%d (max depth %d)...\n", c.Width(), c.Height(), rt.config.MaxDepth)

	c.BeginFrame()
	stats := rt.RenderBounds(c, image.Rect(0, 0, c.Width(), c.Height()))
	c.EndFrame()

	stats.Duration = time.Since(start)
	rt.logger.Printf("Raytracing completed in %v (%d of %d pixels drawn)\n",
		stats.Duration, stats.PixelsDrawn, stats.TotalPixels)
	return stats
}

// RenderBounds traces the pixels inside bounds, given in screen coordinates.
// It does not open or close a frame.
func (rt *Raytracer) RenderBounds(c *canvas.Canvas, bounds image.Rectangle) RenderStats {
	camera := rt.scene.GetCamera()
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		// Screen rows grow downward, world Z grows up
		worldZ := c.Height() - row
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			target := core.NewVec3(float64(x), 0, float64(worldZ))
			ray := geometry.NewRay(camera, target.Subtract(camera), nil)

			color, distance, ok := rt.trace(ray, rt.config.MaxDepth)
			if !ok {
				continue
			}
			if c.DrawPixel(x, worldZ, distance, color) {
				stats.PixelsDrawn++
			}
		}
	}
	return stats
}
