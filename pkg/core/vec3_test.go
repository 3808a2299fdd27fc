package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot 12, got %f", dot)
	}
	if length := NewVec3(3, 4, 0).Length(); length != 5 {
		t.Errorf("Expected length 5, got %f", length)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(0, 3, 4)
	v.Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if !vecNear(v, NewVec3(0, 0.6, 0.8), 1e-12) {
		t.Errorf("Expected (0,0.6,0.8), got %v", v)
	}

	// Normalizing a zero vector must not divide by zero
	zero := Vec3{}
	zero.Normalize()
	if zero.X != 0 || zero.Y != 0 || zero.Z != 0 {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
	if u := (Vec3{}).Unit(); u != (Vec3{}) {
		t.Errorf("Expected zero Unit(), got %v", u)
	}
}

func TestVec3_ReflectedVector(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec3
		normal Vec3
	}{
		{"straight on", NewVec3(0, 0, 1), NewVec3(0, 0, 1)},
		{"45 degrees", NewVec3(1, 0, 1).Unit(), NewVec3(0, 0, 1)},
		{"oblique normal", NewVec3(0.2, 0.9, 0.3).Unit(), NewVec3(1, 1, 0).Unit()},
		{"grazing", NewVec3(1, 0.01, 0).Unit(), NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.v.ReflectedVector(tt.normal)

			const tolerance = 1e-9
			if math.Abs(r.Dot(tt.normal)-tt.v.Dot(tt.normal)) > tolerance {
				t.Errorf("Angle not preserved: r·n=%f, v·n=%f", r.Dot(tt.normal), tt.v.Dot(tt.normal))
			}
			if math.Abs(r.Length()-tt.v.Length()) > tolerance {
				t.Errorf("Length not preserved: |r|=%f, |v|=%f", r.Length(), tt.v.Length())
			}
			// Tangential component flips
			vt := tt.v.Subtract(tt.normal.Multiply(tt.v.Dot(tt.normal)))
			rt := r.Subtract(tt.normal.Multiply(r.Dot(tt.normal)))
			if !vecNear(rt, vt.Negate(), tolerance) {
				t.Errorf("Expected tangential part %v, got %v", vt.Negate(), rt)
			}
		})
	}
}

func TestVec3_RefractedVector(t *testing.T) {
	normal := NewVec3(0, 0, 1)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		d, ok := NewVec3(0, 0, -1).RefractedVector(normal, 1.0, 1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		if !vecNear(d, NewVec3(0, 0, -1), 1e-9) {
			t.Errorf("Expected (0,0,-1), got %v", d)
		}
	})

	t.Run("entering obeys snell", func(t *testing.T) {
		in := NewVec3(1, 0, -1).Unit()
		d, ok := in.RefractedVector(normal, 1.0, 1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinI := math.Sqrt(0.5)
		sinT := math.Abs(d.X) / d.Length()
		if math.Abs(1.0*sinI-1.5*sinT) > 1e-9 {
			t.Errorf("Snell's law violated: sinI=%f sinT=%f", sinI, sinT)
		}
		if d.Z >= 0 {
			t.Errorf("Expected transmitted ray to continue into the medium, got %v", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Errorf("Expected unit direction, got length %f", d.Length())
		}
	})

	t.Run("exiting obeys snell", func(t *testing.T) {
		// Inside glass travelling outward, small angle
		in := NewVec3(0.3, 0, 1).Unit()
		d, ok := in.RefractedVector(normal, 1.0, 1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinI := math.Abs(in.X)
		sinT := math.Abs(d.X) / d.Length()
		if math.Abs(1.5*sinI-1.0*sinT) > 1e-9 {
			t.Errorf("Snell's law violated: sinI=%f sinT=%f", sinI, sinT)
		}
		if d.Z <= 0 {
			t.Errorf("Expected ray to leave through the surface, got %v", d)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		// Inside glass at a steep grazing angle
		in := NewVec3(1, 0, 0.2).Unit()
		d, ok := in.RefractedVector(normal, 1.0, 1.5)
		if ok {
			t.Errorf("Expected total internal reflection, got %v", d)
		}
		if math.IsNaN(d.X) || math.IsNaN(d.Y) || math.IsNaN(d.Z) {
			t.Errorf("Expected no NaN components, got %v", d)
		}
	})
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 2, 0))
	if p := ray.At(1.5); p != NewVec3(1, 4, 1) {
		t.Errorf("Expected (1,4,1), got %v", p)
	}
}
