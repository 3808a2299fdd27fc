package lights

import "github.com/df07/image-synthesis/pkg/core"

// Ambient is uniform light arriving from everywhere
type Ambient struct {
	intensity core.Color
}

// NewAmbient creates an ambient light
func NewAmbient(intensity core.Color) *Ambient {
	return &Ambient{intensity: intensity}
}

func (l *Ambient) Kind() Kind            { return KindAmbient }
func (l *Ambient) Intensity() core.Color { return l.intensity }
func (l *Ambient) Accept(v Visitor)      { v.VisitAmbient(l) }
func (l *Ambient) sealed()               {}
