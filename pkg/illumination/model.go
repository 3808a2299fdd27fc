package illumination

import (
	"math"

	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/geometry"
	"github.com/df07/image-synthesis/pkg/lights"
)

// Model computes the light leaving a surface point toward the viewer
type Model interface {
	Compute(ls []lights.Light, s geometry.Surface, p core.Vec3, uv core.Vec2) core.Color
}

// Phong is the ambient + diffuse + specular model seen from Camera
type Phong struct {
	Camera core.Vec3
}

// NewPhong creates a Phong model for a camera position
func NewPhong(camera core.Vec3) Phong {
	return Phong{Camera: camera}
}

// Compute sums every light's contribution at p
func (m Phong) Compute(ls []lights.Light, s geometry.Surface, p core.Vec3, uv core.Vec2) core.Color {
	sh := newShading(s, p, uv)
	sh.specular = true
	sh.view = m.Camera.Subtract(p).Unit()
	for _, l := range ls {
		l.Accept(sh)
	}
	return sh.total
}

// Lambert is the ambient + diffuse part of Phong, with no view dependence
type Lambert struct{}

// Compute sums every light's ambient and diffuse contribution at p
func (Lambert) Compute(ls []lights.Light, s geometry.Surface, p core.Vec3, uv core.Vec2) core.Color {
	sh := newShading(s, p, uv)
	for _, l := range ls {
		l.Accept(sh)
	}
	return sh.total
}

// shading accumulates contributions for one surface point. It implements
// lights.Visitor.
type shading struct {
	point    core.Vec3
	normal   core.Vec3
	albedo   core.Color
	kA       float64
	kD       float64
	kS       float64
	shine    float64
	specular bool
	view     core.Vec3

	total core.Color
}

func newShading(s geometry.Surface, p core.Vec3, uv core.Vec2) *shading {
	mat := s.Material()
	return &shading{
		point:  p,
		normal: s.NormalAt(p, uv),
		albedo: s.TextureColor(uv),
		kA:     mat.KAmbient,
		kD:     mat.KDiffuse,
		kS:     mat.KSpecular,
		shine:  mat.Shininess,
	}
}

func (sh *shading) VisitAmbient(l *lights.Ambient) {
	sh.total = sh.total.Add(sh.albedo.MultiplyColor(l.Intensity()).Multiply(sh.kA))
}

func (sh *shading) VisitPoint(l *lights.Point) {
	sh.directional(l.Intensity(), l.Direction(sh.point))
}

func (sh *shading) VisitDirectional(l *lights.Directional) {
	sh.directional(l.Intensity(), l.Direction(sh.point))
}

// directional adds the diffuse and specular terms for light arriving from
// the unit direction toLight
func (sh *shading) directional(intensity core.Color, toLight core.Vec3) {
	ln := toLight.Dot(sh.normal)
	if ln <= 0 {
		return
	}
	sh.total = sh.total.Add(sh.albedo.MultiplyColor(intensity).Multiply(sh.kD * ln))

	if !sh.specular || sh.kS == 0 {
		return
	}
	r := toLight.ReflectedVector(sh.normal).Unit()
	if rv := r.Dot(sh.view); rv > 0 {
		sh.total = sh.total.Add(intensity.Multiply(sh.kS * math.Pow(rv, sh.shine)))
	}
}
