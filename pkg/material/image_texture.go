package material

import (
	"math"

	"github.com/df07/image-synthesis/pkg/core"
)

// ImageTexture is a tiled 2D color field sampled with bilinear filtering
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
	Tile   core.Vec2    // Repeat count along u and v
}

// NewImageTexture creates a texture that covers the surface once
func NewImageTexture(width, height int, pixels []core.Color) *ImageTexture {
	return NewTiledImageTexture(width, height, pixels, core.NewVec2(1, 1))
}

// NewTiledImageTexture creates a texture repeated tile.X times along u and
// tile.Y times along v
func NewTiledImageTexture(width, height int, pixels []core.Color, tile core.Vec2) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Tile:   tile,
	}
}

// Evaluate samples the texture at uv. Coordinates outside [0,1) wrap.
func (t *ImageTexture) Evaluate(uv core.Vec2) core.Color {
	return t.interpolate(uv.X*float64(t.Width), uv.Y*float64(t.Height))
}

// Bump returns the finite-difference derivative of the grey-level height
// field along u and v
func (t *ImageTexture) Bump(uv core.Vec2) core.Vec2 {
	x := uv.X * float64(t.Width)
	y := uv.Y * float64(t.Height)

	h := t.interpolate(x, y).GreyLevel()
	hx := t.interpolate(x+1, y).GreyLevel()
	hy := t.interpolate(x, y+1).GreyLevel()

	return core.NewVec2(hx-h, hy-h)
}

// At returns the texel at integer coordinates, wrapping both axes
func (t *ImageTexture) At(x, y int) core.Color {
	x %= t.Width
	y %= t.Height
	if x < 0 {
		x += t.Width
	}
	if y < 0 {
		y += t.Height
	}
	return t.Pixels[y*t.Width+x]
}

// interpolate blends the four texels around pixel-space (px, py)
func (t *ImageTexture) interpolate(px, py float64) core.Color {
	px *= t.Tile.X
	py *= t.Tile.Y

	x := int(math.Floor(px))
	y := int(math.Floor(py))
	fx := px - float64(x)
	fy := py - float64(y)

	c00 := t.At(x, y)
	c10 := t.At(x+1, y)
	c01 := t.At(x, y+1)
	c11 := t.At(x+1, y+1)

	return c00.Multiply((1 - fx) * (1 - fy)).
		Add(c10.Multiply(fx * (1 - fy))).
		Add(c01.Multiply((1 - fx) * fy)).
		Add(c11.Multiply(fx * fy))
}
