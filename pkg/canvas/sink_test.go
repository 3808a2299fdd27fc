package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/df07/image-synthesis/pkg/core"
)

func TestImageSink_BackgroundAndPixels(t *testing.T) {
	sink := NewImageSink(3, 2, core.Blue)
	sink.BeginFrame()
	sink.DrawPixel(1, 1, 0, core.NewColor(1.5, 0.5, -1))
	sink.EndFrame()

	img := sink.Image()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("Expected blue background, got %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 127, 0, 255}) {
		t.Errorf("Expected clamped pixel, got %v", got)
	}
}

func TestContextSink_EncodePNG(t *testing.T) {
	sink := NewContextSink(4, 4, core.Black)
	sink.BeginFrame()
	sink.DrawPixel(2, 3, 0, core.White)
	sink.EndFrame()

	var buf bytes.Buffer
	if err := sink.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}

	r, g, b, _ := img.At(2, 3).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("Expected white pixel at (2,3), got %d %d %d", r, g, b)
	}
	r, g, b, _ = img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected black background, got %d %d %d", r, g, b)
	}
}

func TestSyncSink_ConcurrentWrites(t *testing.T) {
	inner := &recordingSink{}
	sink := NewSyncSink(inner)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			sink.DrawPixel(x, 0, 0, core.White)
		}(i)
	}
	wg.Wait()

	if len(inner.pixels) != 100 {
		t.Errorf("Expected 100 pixels, got %d", len(inner.pixels))
	}
}
