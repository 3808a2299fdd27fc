package core

import (
	"fmt"
	"image/color"
)

// Color is an RGB triple. Components are unbounded during shading and only
// clamped to [0,1] when converted to bytes.
type Color struct {
	R, G, B float64
}

// Named colors
var (
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromRGBA converts any image color to a Color in [0,1]
func ColorFromRGBA(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	// RGBA returns uint32 in [0, 65535]
	return Color{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}
}

// Add returns the component-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the component-wise difference
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Negate returns the color with every component negated
func (c Color) Negate() Color {
	return Color{-c.R, -c.G, -c.B}
}

// MultiplyColor returns the component-wise product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Divide returns the color divided by a scalar
func (c Color) Divide(scalar float64) Color {
	return Color{c.R / scalar, c.G / scalar, c.B / scalar}
}

// GreyLevel returns the unweighted average of the three channels
func (c Color) GreyLevel() float64 {
	return (c.R + c.G + c.B) / 3.0
}

// R255 returns the red channel as a byte
func (c Color) R255() uint8 { return to255(c.R) }

// G255 returns the green channel as a byte
func (c Color) G255() uint8 { return to255(c.G) }

// B255 returns the blue channel as a byte
func (c Color) B255() uint8 { return to255(c.B) }

// RGBA converts the color to an opaque image/color value
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R255(), G: c.G255(), B: c.B255(), A: 255}
}

// Equals reports whether two colors are identical
func (c Color) Equals(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String formats the color as rgb(r,g,b)
func (c Color) String() string {
	return fmt.Sprintf("rgb(%g,%g,%g)", c.R, c.G, c.B)
}

// to255 clamps v to [0,1] and scales it to a byte, truncating
func to255(v float64) uint8 {
	v = max(0, min(1, v))
	return uint8(v * 255)
}
