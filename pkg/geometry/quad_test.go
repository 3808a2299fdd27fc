package geometry

import (
	"math"
	"testing"

	"github.com/df07/image-synthesis/pkg/core"
)

func TestQuad_Intersect_BasicIntersection(t *testing.T) {
	// Create a 1x1 quad in the XY plane at z=0
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testAppearance())

	ray := core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1))

	tHit, isHit := quad.Intersect(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(tHit-1) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", tHit)
	}
}

func TestQuad_Intersect_OutsideBounds(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testAppearance())

	tests := []struct {
		name      string
		rayOrigin core.Vec3
	}{
		{"outside X bounds (negative)", core.NewVec3(-0.5, 0.5, 1)},
		{"outside X bounds (positive)", core.NewVec3(1.5, 0.5, 1)},
		{"outside Y bounds (negative)", core.NewVec3(0.5, -0.5, 1)},
		{"outside Y bounds (positive)", core.NewVec3(0.5, 1.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, core.NewVec3(0, 0, -1))
			if tHit, isHit := quad.Intersect(ray, 0.001, 1000.0); isHit {
				t.Errorf("Expected miss for ray outside bounds, but got hit at t=%f", tHit)
			}
		})
	}
}

func TestQuad_Intersect_Parallel(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testAppearance())
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))

	if _, isHit := quad.Intersect(ray, 0.001, 1000.0); isHit {
		t.Error("Expected parallel ray to miss")
	}
}

func TestQuad_PointUVRoundTrip(t *testing.T) {
	// Skewed, non-unit edges
	quad := NewQuad(core.NewVec3(1, 2, 3), core.NewVec3(4, 0, 1), core.NewVec3(0.5, 0, 3), testAppearance())

	for _, u := range []float64{0, 0.25, 0.9} {
		for _, v := range []float64{0, 0.5, 0.999} {
			uv := quad.UV(quad.Point(core.NewVec2(u, v)))
			if math.Abs(uv.X-u) > 1e-9 || math.Abs(uv.Y-v) > 1e-9 {
				t.Errorf("UV(Point(%f,%f)) = (%f,%f)", u, v, uv.X, uv.Y)
			}
		}
	}

	// Normal is U × V normalized
	n := quad.Normal(core.Vec3{})
	if math.Abs(n.Length()-1) > 1e-12 || math.Abs(n.Dot(quad.U)) > 1e-12 || math.Abs(n.Dot(quad.V)) > 1e-12 {
		t.Errorf("Expected unit normal orthogonal to both edges, got %v", n)
	}
}
