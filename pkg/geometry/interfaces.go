package geometry

import (
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/material"
)

// Surface is anything that can be intersected by rays and evaluated at
// parametric (u, v) coordinates
type Surface interface {
	// Intersect returns the ray parameter of the nearest hit in [tMin, tMax]
	Intersect(ray core.Ray, tMin, tMax float64) (float64, bool)

	// Normal returns the outward unit normal at a point on the surface
	Normal(point core.Vec3) core.Vec3

	// NormalAt returns the shading normal, including any bump perturbation
	NormalAt(point core.Vec3, uv core.Vec2) core.Vec3

	// UV returns the parametric coordinates of a point on the surface
	UV(point core.Vec3) core.Vec2

	// Point evaluates the surface at parametric coordinates in [0,1)²
	Point(uv core.Vec2) core.Vec3

	// Color returns the base albedo
	Color() core.Color

	// TextureColor returns the albedo at uv, falling back to Color
	TextureColor(uv core.Vec2) core.Color

	Material() material.Material
}
