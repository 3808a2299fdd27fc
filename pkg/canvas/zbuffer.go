package canvas

import (
	"math"
	"sync"

	"github.com/df07/image-synthesis/pkg/core"
)

// ZBuffer tracks the nearest depth drawn at each pixel since the last Clear
type ZBuffer struct {
	width, height int
	depths        []float64 // Row-major: depths[y*width + x]
}

// NewZBuffer creates a cleared depth buffer
func NewZBuffer(width, height int) *ZBuffer {
	zb := &ZBuffer{
		width:  width,
		height: height,
		depths: make([]float64, width*height),
	}
	zb.Clear()
	return zb
}

// Width returns the buffer width in pixels
func (zb *ZBuffer) Width() int { return zb.width }

// Height returns the buffer height in pixels
func (zb *ZBuffer) Height() int { return zb.height }

// Clear resets every cell to +Inf
func (zb *ZBuffer) Clear() {
	n := len(zb.depths)
	if n == 0 {
		return
	}
	// copy-doubling fill
	zb.depths[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(zb.depths[i:], zb.depths[:i])
	}
}

// Set stores depth at (x, y) if it is strictly nearer than what is stored.
// It reports whether the sample was accepted. Out-of-range pixels are rejected.
func (zb *ZBuffer) Set(x, y int, depth float64) bool {
	if x < 0 || x >= zb.width || y < 0 || y >= zb.height {
		return false
	}
	i := y*zb.width + x
	if depth < zb.depths[i] {
		zb.depths[i] = depth
		return true
	}
	return false
}

// SetPoint is Set for a screen-space point whose Z component is the depth
func (zb *ZBuffer) SetPoint(p core.Vec3) bool {
	return zb.Set(int(p.X), int(p.Y), p.Z)
}

// Depth returns the stored depth at (x, y), or +Inf outside the buffer
func (zb *ZBuffer) Depth(x, y int) float64 {
	if x < 0 || x >= zb.width || y < 0 || y >= zb.height {
		return math.Inf(1)
	}
	return zb.depths[y*zb.width+x]
}

// DepthTester is the depth gate used by Canvas
type DepthTester interface {
	Set(x, y int, depth float64) bool
	Clear()
}

// LockedZBuffer serializes depth tests so concurrent writers at the same
// pixel cannot interleave the compare and the store
type LockedZBuffer struct {
	mu sync.Mutex
	zb *ZBuffer
}

// NewLockedZBuffer wraps a fresh ZBuffer
func NewLockedZBuffer(width, height int) *LockedZBuffer {
	return &LockedZBuffer{zb: NewZBuffer(width, height)}
}

// Set is ZBuffer.Set under the lock
func (l *LockedZBuffer) Set(x, y int, depth float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zb.Set(x, y, depth)
}

// Clear is ZBuffer.Clear under the lock
func (l *LockedZBuffer) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zb.Clear()
}

// Depth is ZBuffer.Depth under the lock
func (l *LockedZBuffer) Depth(x, y int) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.zb.Depth(x, y)
}
