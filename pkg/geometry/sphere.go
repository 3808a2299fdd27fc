package geometry

import (
	"math"

	"github.com/df07/image-synthesis/pkg/core"
)

// Sphere represents a sphere shape.
//
// Parametrization: u is the longitude around Z, v the latitude from the
// south pole (v=0) to the north pole (v=1).
type Sphere struct {
	Center core.Vec3
	Radius float64
	Appearance
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, appearance Appearance) *Sphere {
	return &Sphere{
		Center:     center,
		Radius:     radius,
		Appearance: appearance,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

// Normal returns the outward normal (from center to point)
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Divide(s.Radius)
}

// NormalAt returns the normal perturbed by the bump map, if any
func (s *Sphere) NormalAt(point core.Vec3, uv core.Vec2) core.Vec3 {
	du, dv := s.tangents(uv)
	return s.perturb(s.Normal(point), du, dv, uv)
}

// UV maps a point on the sphere to (longitude, latitude) in [0,1)
func (s *Sphere) UV(point core.Vec3) core.Vec2 {
	d := point.Subtract(s.Center).Divide(s.Radius)

	theta := math.Asin(max(-1, min(1, d.Z)))
	phi := math.Atan2(d.Y, d.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi+0.5)
}

// Point evaluates the sphere at uv
func (s *Sphere) Point(uv core.Vec2) core.Vec3 {
	phi := 2 * math.Pi * uv.X
	theta := math.Pi * (uv.Y - 0.5)

	return s.Center.Add(core.NewVec3(
		s.Radius*math.Cos(theta)*math.Cos(phi),
		s.Radius*math.Cos(theta)*math.Sin(phi),
		s.Radius*math.Sin(theta),
	))
}

// tangents returns the partial derivatives of Point along u and v
func (s *Sphere) tangents(uv core.Vec2) (core.Vec3, core.Vec3) {
	phi := 2 * math.Pi * uv.X
	theta := math.Pi * (uv.Y - 0.5)

	du := core.NewVec3(-math.Sin(phi), math.Cos(phi), 0).Multiply(2 * math.Pi * s.Radius * math.Cos(theta))
	dv := core.NewVec3(
		-math.Sin(theta)*math.Cos(phi),
		-math.Sin(theta)*math.Sin(phi),
		math.Cos(theta),
	).Multiply(math.Pi * s.Radius)
	return du, dv
}
