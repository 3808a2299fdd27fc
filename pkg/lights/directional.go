package lights

import "github.com/df07/image-synthesis/pkg/core"

// Directional is a light at infinity shining along a fixed direction
type Directional struct {
	toLight   core.Vec3 // Unit vector pointing toward the light
	intensity core.Color
}

// NewDirectional creates a light whose rays travel along direction
func NewDirectional(direction core.Vec3, intensity core.Color) *Directional {
	return &Directional{toLight: direction.Negate().Unit(), intensity: intensity}
}

func (l *Directional) Kind() Kind            { return KindDirectional }
func (l *Directional) Intensity() core.Color { return l.intensity }
func (l *Directional) Accept(v Visitor)      { v.VisitDirectional(l) }
func (l *Directional) sealed()               {}

// Direction returns the unit vector toward the light, the same at every point
func (l *Directional) Direction(point core.Vec3) core.Vec3 {
	return l.toLight
}
