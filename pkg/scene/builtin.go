package scene

import (
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/geometry"
	"github.com/df07/image-synthesis/pkg/lights"
	"github.com/df07/image-synthesis/pkg/material"
)

// NewDefaultScene creates spheres of three materials resting on a
// checkered floor, lit by an ambient and a point light
func NewDefaultScene(width, height int) *Scene {
	s := New("default", width, height)
	w, h := float64(s.Width), float64(s.Height)

	floorZ := 0.2 * h
	r := 0.1 * w

	floor := NewGroundQuad(floorZ, w, 4*w, matte(core.White))
	floor.Texture = checker(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.2, 0.2, 0.25), 12)

	plastic := geometry.NewSphere(core.NewVec3(0.3*w, 0.6*w, floorZ+r), r,
		geometry.NewAppearance(core.NewColor(0.8, 0.2, 0.15), material.Default()))
	mirror := geometry.NewSphere(core.NewVec3(0.58*w, 0.9*w, floorZ+1.3*r), 1.3*r,
		geometry.NewAppearance(core.NewColor(0.8, 0.8, 0.85), material.Mirror(0.8)))
	glass := geometry.NewSphere(core.NewVec3(0.75*w, 0.3*w, floorZ+0.7*r), 0.7*r,
		geometry.NewAppearance(core.NewColor(0.9, 0.95, 1.0), material.Glass(1.5)))

	s.AddSurface(floor, plastic, mirror, glass)
	s.AddLight(
		lights.NewAmbient(core.NewColor(0.25, 0.25, 0.25)),
		lights.NewPoint(core.NewVec3(0.2*w, -0.3*w, 2*h), core.NewColor(0.9, 0.9, 0.85)),
	)
	s.Background = core.NewColor(0.1, 0.12, 0.2)
	return s
}

// NewMirrorsScene places a sphere between two parallel mirrors so rays
// bounce until the depth limit stops them
func NewMirrorsScene(width, height int) *Scene {
	s := New("mirrors", width, height)
	w, h := float64(s.Width), float64(s.Height)
	s.MaxDepth = 8

	floorZ := 0.15 * h
	silver := geometry.NewAppearance(core.NewColor(0.9, 0.9, 0.9), material.Mirror(0.9))

	// Left mirror faces +X, right mirror faces -X
	left := geometry.NewQuad(core.NewVec3(0.1*w, 0, floorZ), core.NewVec3(0, 3*w, 0), core.NewVec3(0, 0, h), silver)
	right := geometry.NewQuad(core.NewVec3(0.9*w, 0, floorZ), core.NewVec3(0, 0, h), core.NewVec3(0, 3*w, 0), silver)

	floor := NewGroundQuad(floorZ, w, 3*w, matte(core.White))
	floor.Texture = checker(core.NewColor(0.85, 0.8, 0.7), core.NewColor(0.3, 0.25, 0.2), 16)

	r := 0.12 * w
	ball := geometry.NewSphere(core.NewVec3(0.5*w, w, floorZ+r), r,
		geometry.NewAppearance(core.NewColor(0.2, 0.5, 0.9), material.Default()))

	s.AddSurface(left, right, floor, ball)
	s.AddLight(
		lights.NewAmbient(core.NewColor(0.2, 0.2, 0.2)),
		lights.NewPoint(core.NewVec3(0.5*w, 0.2*w, 1.5*h), core.White),
	)
	return s
}

// NewTexturedScene shows image textures, tiling and bump mapping on a
// sphere and a back wall
func NewTexturedScene(width, height int) *Scene {
	s := New("textured", width, height)
	w, h := float64(s.Width), float64(s.Height)

	floorZ := 0.1 * h
	floor := NewGroundQuad(floorZ, w, 3*w, matte(core.White))
	floor.Texture = material.NewGradientTexture(64, 64, core.NewColor(0.3, 0.3, 0.35), core.NewColor(0.9, 0.9, 0.8))

	// Back wall facing the camera (-Y), bump mapped with a tiled checkerboard
	wallAppearance := geometry.NewAppearance(core.NewColor(0.7, 0.6, 0.5), material.Default())
	wallAppearance.Texture = checker(core.NewColor(0.75, 0.5, 0.35), core.NewColor(0.55, 0.35, 0.25), 8)
	bumps := checker(core.White, core.Black, 4)
	bumps.Tile = core.NewVec2(6, 4)
	wallAppearance.BumpMap = bumps
	wallAppearance.BumpScale = 0.4
	wall := geometry.NewQuad(core.NewVec3(-w, 2*w, floorZ), core.NewVec3(3*w, 0, 0), core.NewVec3(0, 0, 2*h), wallAppearance)

	r := 0.18 * w
	globeAppearance := geometry.NewAppearance(core.White, material.Default())
	globeAppearance.Texture = material.NewUVDebugTexture(64, 64)
	globe := geometry.NewSphere(core.NewVec3(0.5*w, w, floorZ+r), r, globeAppearance)

	s.AddSurface(floor, wall, globe)
	s.AddLight(
		lights.NewAmbient(core.NewColor(0.3, 0.3, 0.3)),
		lights.NewDirectional(core.NewVec3(0.3, 1, -0.8), core.NewColor(0.8, 0.8, 0.8)),
	)
	return s
}

// checker returns a two-check-wide checkerboard; tile it to repeat
func checker(a, b core.Color, repeat float64) *material.ImageTexture {
	tex := material.NewCheckerboardTexture(16, 16, 8, a, b)
	tex.Tile = core.NewVec2(repeat, repeat)
	return tex
}
