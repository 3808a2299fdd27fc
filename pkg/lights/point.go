package lights

import "github.com/df07/image-synthesis/pkg/core"

// Point is a light emitting equally in all directions from a position
type Point struct {
	position  core.Vec3
	intensity core.Color
}

// NewPoint creates a point light
func NewPoint(position core.Vec3, intensity core.Color) *Point {
	return &Point{position: position, intensity: intensity}
}

func (l *Point) Kind() Kind            { return KindPoint }
func (l *Point) Intensity() core.Color { return l.intensity }
func (l *Point) Accept(v Visitor)      { v.VisitPoint(l) }
func (l *Point) sealed()               {}

// Position returns the light position
func (l *Point) Position() core.Vec3 {
	return l.position
}

// Direction returns the unit vector from point toward the light
func (l *Point) Direction(point core.Vec3) core.Vec3 {
	return l.position.Subtract(point).Unit()
}

// Distance returns how far the light is from point
func (l *Point) Distance(point core.Vec3) float64 {
	return l.position.Subtract(point).Length()
}
