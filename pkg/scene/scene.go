package scene

import (
	"fmt"

	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/geometry"
	"github.com/df07/image-synthesis/pkg/lights"
	"github.com/df07/image-synthesis/pkg/material"
)

// Default image size for scenes that do not ask for one
const (
	DefaultWidth  = 400
	DefaultHeight = 300
)

// Scene contains all the elements needed for rendering.
//
// World units are pixels: the image plane is y = 0, X grows right and Z
// grows up, so world point (x, 0, z) is drawn at column x, row Height - z.
type Scene struct {
	Name            string
	Surfaces        []geometry.Surface // Objects in the scene
	Lights          []lights.Light     // Lights in the scene
	Camera          core.Vec3          // Eye position, usually at negative Y
	RefractiveIndex float64            // Index of the medium between objects
	Width           int                // Image width
	Height          int                // Image height
	MaxDepth        int                // Recommended raytracing depth
	Background      core.Color         // Color of pixels no surface covers
}

// New creates an empty scene in air
func New(name string, width, height int) *Scene {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Scene{
		Name:            name,
		Camera:          core.NewVec3(float64(width)/2, -float64(width), float64(height)/2),
		RefractiveIndex: 1.0,
		Width:           width,
		Height:          height,
		MaxDepth:        5,
	}
}

func (s *Scene) GetSurfaces() []geometry.Surface { return s.Surfaces }
func (s *Scene) GetLights() []lights.Light       { return s.Lights }
func (s *Scene) GetCamera() core.Vec3            { return s.Camera }
func (s *Scene) GetRefractiveIndex() float64     { return s.RefractiveIndex }

// AddSurface appends surfaces to the scene
func (s *Scene) AddSurface(surfaces ...geometry.Surface) {
	s.Surfaces = append(s.Surfaces, surfaces...)
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(ls ...lights.Light) {
	s.Lights = append(s.Lights, ls...)
}

// Validate reports the first setting no renderer can use
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scene %q: image size must be positive, got %dx%d", s.Name, s.Width, s.Height)
	}
	if s.RefractiveIndex <= 0 {
		return fmt.Errorf("scene %q: refractive index must be positive, got %g", s.Name, s.RefractiveIndex)
	}
	for i, surface := range s.Surfaces {
		if err := surface.Material().Validate(); err != nil {
			return fmt.Errorf("scene %q: surface %d: %w", s.Name, i, err)
		}
	}
	return nil
}

// NewGroundQuad creates a horizontal quad at height z, twice as wide as the
// image and centered on it, running from the image plane to depth. Its normal
// points up (+Z).
func NewGroundQuad(z, width, depth float64, appearance geometry.Appearance) *geometry.Quad {
	// u × v = (width,0,0) × (0,depth,0) = (0,0,width*depth)
	corner := core.NewVec3(-width/2, 0, z)
	u := core.NewVec3(2*width, 0, 0)
	v := core.NewVec3(0, depth, 0)
	return geometry.NewQuad(corner, u, v, appearance)
}

// matte returns an appearance for a diffuse surface of the given color
func matte(albedo core.Color) geometry.Appearance {
	return geometry.NewAppearance(albedo, material.Matte())
}
