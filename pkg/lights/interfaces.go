package lights

import "github.com/df07/image-synthesis/pkg/core"

// Kind identifies a light variant
type Kind int

const (
	KindAmbient Kind = iota
	KindPoint
	KindDirectional
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case KindAmbient:
		return "ambient"
	case KindPoint:
		return "point"
	case KindDirectional:
		return "directional"
	}
	return "unknown"
}

// Light is a closed set of variants: *Ambient, *Point and *Directional.
// Code that needs per-variant behaviour implements Visitor, so adding a
// variant fails to compile until every visitor handles it.
type Light interface {
	Kind() Kind
	Intensity() core.Color
	Accept(v Visitor)

	sealed()
}

// Visitor receives the concrete variant of a Light
type Visitor interface {
	VisitAmbient(l *Ambient)
	VisitPoint(l *Point)
	VisitDirectional(l *Directional)
}
