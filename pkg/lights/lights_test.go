package lights

import (
	"math"
	"testing"

	"github.com/df07/image-synthesis/pkg/core"
)

// kindRecorder records which Visit method each light dispatched to
type kindRecorder struct {
	visited []Kind
}

func (r *kindRecorder) VisitAmbient(l *Ambient)         { r.visited = append(r.visited, KindAmbient) }
func (r *kindRecorder) VisitPoint(l *Point)             { r.visited = append(r.visited, KindPoint) }
func (r *kindRecorder) VisitDirectional(l *Directional) { r.visited = append(r.visited, KindDirectional) }

func TestLight_AcceptDispatchesByKind(t *testing.T) {
	all := []Light{
		NewPoint(core.NewVec3(0, 0, 10), core.White),
		NewAmbient(core.White),
		NewDirectional(core.NewVec3(0, 0, -1), core.White),
	}

	recorder := &kindRecorder{}
	for _, l := range all {
		l.Accept(recorder)
	}

	if len(recorder.visited) != len(all) {
		t.Fatalf("Expected %d visits, got %d", len(all), len(recorder.visited))
	}
	for i, l := range all {
		if recorder.visited[i] != l.Kind() {
			t.Errorf("Light %d: Kind() is %v but dispatched to %v", i, l.Kind(), recorder.visited[i])
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindAmbient:     "ambient",
		KindPoint:       "point",
		KindDirectional: "directional",
		Kind(99):        "unknown",
	}
	for kind, expected := range tests {
		if got := kind.String(); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	}
}

func TestPoint_Direction(t *testing.T) {
	light := NewPoint(core.NewVec3(0, 0, 10), core.NewColor(0.5, 0.5, 0.5))

	d := light.Direction(core.NewVec3(0, 0, 0))
	if d.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
		t.Errorf("Expected (0,0,1), got %v", d)
	}

	d = light.Direction(core.NewVec3(3, 0, 6))
	if math.Abs(d.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", d.Length())
	}
	if light.Distance(core.NewVec3(3, 0, 6)) != 5 {
		t.Errorf("Expected distance 5, got %f", light.Distance(core.NewVec3(3, 0, 6)))
	}
}

func TestDirectional_Direction(t *testing.T) {
	light := NewDirectional(core.NewVec3(0, 0, -2), core.White)

	for _, p := range []core.Vec3{{}, core.NewVec3(100, -4, 7)} {
		d := light.Direction(p)
		if d.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-12 {
			t.Errorf("Expected (0,0,1) toward the light at %v, got %v", p, d)
		}
	}
}
