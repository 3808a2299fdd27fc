package geometry

import (
	"math"

	"github.com/df07/image-synthesis/pkg/core"
)

// Epsilon is the smallest ray parameter counted as a hit
const Epsilon = 1e-4

// Ray is a ray that may remember the surface it was spawned from
type Ray struct {
	core.Ray
	From Surface // Surface to skip when searching for hits, or nil
}

// NewRay creates a ray. from may be nil.
func NewRay(origin, direction core.Vec3, from Surface) Ray {
	return Ray{Ray: core.NewRay(origin, direction), From: from}
}

// Intersection describes where a ray first meets a surface
type Intersection struct {
	Surface Surface
	Point   core.Vec3
	T       float64
}

// ClosestIntersection scans surfaces linearly and keeps the nearest hit
// beyond Epsilon, skipping the ray's origin surface
func (r Ray) ClosestIntersection(surfaces []Surface) (Intersection, bool) {
	var closest Surface
	closestSoFar := math.Inf(1)

	for _, s := range surfaces {
		if r.From != nil && s == r.From {
			continue
		}
		if t, ok := s.Intersect(r.Ray, Epsilon, closestSoFar); ok && t < closestSoFar {
			closestSoFar = t
			closest = s
		}
	}

	if closest == nil {
		return Intersection{}, false
	}
	return Intersection{
		Surface: closest,
		Point:   r.At(closestSoFar),
		T:       closestSoFar,
	}, true
}
