package geometry

import (
	"math"

	"github.com/df07/image-synthesis/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// Point(uv) = Corner + u*U + v*V. The outward normal is U × V.
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	normal core.Vec3 // Unit normal (computed from U × V)
	d      float64   // Plane equation constant: normal · p = d
	w      core.Vec3 // Cached vector for barycentric coordinates
	Appearance
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, appearance Appearance) *Quad {
	cross := u.Cross(v)
	normal := cross.Unit()

	return &Quad{
		Corner:     corner,
		U:          u,
		V:          v,
		normal:     normal,
		d:          normal.Dot(corner),
		w:          normal.Divide(normal.Dot(cross)),
		Appearance: appearance,
	}
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	denominator := ray.Direction.Dot(q.normal)

	// Ray is parallel to the quad
	if math.Abs(denominator) < 1e-12 {
		return 0, false
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denominator
	if t < tMin || t > tMax {
		return 0, false
	}

	uv := q.UV(ray.At(t))
	if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
		return 0, false
	}
	return t, true
}

// Normal returns the quad normal, the same everywhere
func (q *Quad) Normal(point core.Vec3) core.Vec3 {
	return q.normal
}

// NormalAt returns the normal perturbed by the bump map, if any
func (q *Quad) NormalAt(point core.Vec3, uv core.Vec2) core.Vec3 {
	return q.perturb(q.normal, q.U, q.V, uv)
}

// UV returns the barycentric coordinates of point along U and V
func (q *Quad) UV(point core.Vec3) core.Vec2 {
	p := point.Subtract(q.Corner)
	return core.NewVec2(
		q.w.Dot(p.Cross(q.V)),
		q.w.Dot(q.U.Cross(p)),
	)
}

// Point evaluates the quad at uv
func (q *Quad) Point(uv core.Vec2) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(uv.X)).Add(q.V.Multiply(uv.Y))
}
