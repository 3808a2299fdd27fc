package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"

	"github.com/fogleman/gg"

	"github.com/df07/image-synthesis/pkg/core"
)

// PixelSink receives finished pixels in screen coordinates (origin top-left).
// Pixels arrive already clipped and depth-tested.
type PixelSink interface {
	BeginFrame()
	DrawPixel(x, y int, depth float64, c core.Color)
	EndFrame()
}

// ImageSink writes pixels into an in-memory RGBA image
type ImageSink struct {
	img        *image.RGBA
	background core.Color
}

// NewImageSink creates an image sink cleared to the background color each frame
func NewImageSink(width, height int, background core.Color) *ImageSink {
	return &ImageSink{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
}

// BeginFrame fills the image with the background color
func (s *ImageSink) BeginFrame() {
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: s.background.RGBA()}, image.Point{}, draw.Src)
}

// DrawPixel sets one pixel. Disjoint coordinates may be written concurrently.
func (s *ImageSink) DrawPixel(x, y int, depth float64, c core.Color) {
	s.img.SetRGBA(x, y, c.RGBA())
}

// EndFrame is a no-op; the image is complete once drawing returns
func (s *ImageSink) EndFrame() {}

// Image returns the backing image
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// ContextSink draws into a gg drawing context, which can save itself as PNG
type ContextSink struct {
	dc         *gg.Context
	background color.Color
}

// NewContextSink creates a sink over a fresh gg context
func NewContextSink(width, height int, background core.Color) *ContextSink {
	return &ContextSink{
		dc:         gg.NewContext(width, height),
		background: background.RGBA(),
	}
}

// BeginFrame clears the context to the background color
func (s *ContextSink) BeginFrame() {
	s.dc.SetColor(s.background)
	s.dc.Clear()
}

// DrawPixel sets one pixel. Not safe for concurrent use; wrap in SyncSink.
func (s *ContextSink) DrawPixel(x, y int, depth float64, c core.Color) {
	s.dc.SetColor(c.RGBA())
	s.dc.SetPixel(x, y)
}

// EndFrame is a no-op
func (s *ContextSink) EndFrame() {}

// SavePNG writes the current frame to a PNG file
func (s *ContextSink) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

// EncodePNG writes the current frame as PNG to w
func (s *ContextSink) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// SyncSink serializes every call to the wrapped sink
type SyncSink struct {
	mu   sync.Mutex
	sink PixelSink
}

// NewSyncSink wraps sink with a mutex
func NewSyncSink(sink PixelSink) *SyncSink {
	return &SyncSink{sink: sink}
}

// BeginFrame opens a frame on the wrapped sink
func (s *SyncSink) BeginFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.BeginFrame()
}

// DrawPixel forwards one pixel to the wrapped sink
func (s *SyncSink) DrawPixel(x, y int, depth float64, c core.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.DrawPixel(x, y, depth, c)
}

// EndFrame closes the frame on the wrapped sink
func (s *SyncSink) EndFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink.EndFrame()
}
