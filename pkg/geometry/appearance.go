package geometry

import (
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/material"
)

// Appearance carries the shading inputs shared by every surface type
type Appearance struct {
	Albedo    core.Color             // Base color
	Texture   material.ColorSource   // Optional albedo texture
	BumpMap   *material.ImageTexture // Optional height field
	BumpScale float64                // Strength of the bump perturbation
	Mat       material.Material
}

// NewAppearance creates an untextured appearance
func NewAppearance(albedo core.Color, mat material.Material) Appearance {
	return Appearance{Albedo: albedo, Mat: mat}
}

// Color returns the base albedo
func (a Appearance) Color() core.Color {
	return a.Albedo
}

// TextureColor returns the texture color at uv, or the albedo when untextured
func (a Appearance) TextureColor(uv core.Vec2) core.Color {
	if a.Texture == nil {
		return a.Albedo
	}
	return a.Texture.Evaluate(uv)
}

// Material returns the surface material
func (a Appearance) Material() material.Material {
	return a.Mat
}

// perturb tilts normal against the height gradient of the bump map.
// du and dv are the surface tangents along u and v.
func (a Appearance) perturb(normal, du, dv core.Vec3, uv core.Vec2) core.Vec3 {
	if a.BumpMap == nil || a.BumpScale == 0 {
		return normal
	}
	dh := a.BumpMap.Bump(uv)
	offset := du.Unit().Multiply(dh.X).Add(dv.Unit().Multiply(dh.Y))
	return normal.Subtract(offset.Multiply(a.BumpScale)).Unit()
}
