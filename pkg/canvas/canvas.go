package canvas

import (
	"github.com/df07/image-synthesis/pkg/core"
)

// Pixel is a screen-space location that passed the depth test
type Pixel struct {
	X, Y  int     // Screen coordinates, origin top-left
	Depth float64 // Depth along the viewing axis
}

// Canvas maps world coordinates to the screen and gates writes through a
// depth buffer before forwarding them to a PixelSink.
//
// World convention: X grows right, Z grows up, Y is the viewing axis.
// Screen rows are flipped: yScreen = height - worldZ.
type Canvas struct {
	width, height int
	sink          PixelSink
	depth         DepthTester
}

// New creates a canvas for single-threaded rendering
func New(width, height int, sink PixelSink) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		sink:   sink,
		depth:  NewZBuffer(width, height),
	}
}

// NewConcurrent creates a canvas that may be drawn from several goroutines.
// The sink is serialized and the depth test is atomic per pixel.
func NewConcurrent(width, height int, sink PixelSink) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		sink:   NewSyncSink(sink),
		depth:  NewLockedZBuffer(width, height),
	}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

// BeginFrame clears the depth buffer and opens a frame on the sink
func (c *Canvas) BeginFrame() {
	c.depth.Clear()
	c.sink.BeginFrame()
}

// EndFrame closes the frame on the sink
func (c *Canvas) EndFrame() {
	c.sink.EndFrame()
}

// Reserve flips the world row to screen space, clips it, and runs the depth
// test. On success the depth is recorded and the pixel must be filled.
func (c *Canvas) Reserve(x, worldY int, depth float64) (Pixel, bool) {
	yScreen := c.height - worldY
	if x < 0 || x >= c.width || yScreen < 0 || yScreen >= c.height {
		return Pixel{}, false
	}
	if !c.depth.Set(x, yScreen, depth) {
		return Pixel{}, false
	}
	return Pixel{X: x, Y: yScreen, Depth: depth}, true
}

// ReservePoint is Reserve for a world point: X and Z address the pixel and
// Y, the viewing axis, is the depth
func (c *Canvas) ReservePoint(p core.Vec3) (Pixel, bool) {
	return c.Reserve(int(p.X), int(p.Z), p.Y)
}

// Fill writes a reserved pixel to the sink
func (c *Canvas) Fill(px Pixel, color core.Color) {
	c.sink.DrawPixel(px.X, px.Y, px.Depth, color)
}

// DrawPixel draws color at world column x, world row worldY if it is on
// screen and nearer than anything drawn there this frame
func (c *Canvas) DrawPixel(x, worldY int, depth float64, color core.Color) bool {
	px, ok := c.Reserve(x, worldY, depth)
	if !ok {
		return false
	}
	c.Fill(px, color)
	return true
}

// DrawPoint draws color at a world point
func (c *Canvas) DrawPoint(p core.Vec3, color core.Color) bool {
	px, ok := c.ReservePoint(p)
	if !ok {
		return false
	}
	c.Fill(px, color)
	return true
}
