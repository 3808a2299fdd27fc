package canvas

import (
	"testing"

	"github.com/df07/image-synthesis/pkg/core"
)

type recordedPixel struct {
	x, y  int
	depth float64
	color core.Color
}

// recordingSink captures every call for inspection
type recordingSink struct {
	begins, ends int
	pixels       []recordedPixel
}

func (r *recordingSink) BeginFrame() { r.begins++ }
func (r *recordingSink) EndFrame()   { r.ends++ }
func (r *recordingSink) DrawPixel(x, y int, depth float64, c core.Color) {
	r.pixels = append(r.pixels, recordedPixel{x, y, depth, c})
}

func TestCanvas_FlipsRows(t *testing.T) {
	sink := &recordingSink{}
	c := New(10, 8, sink)
	c.BeginFrame()

	if !c.DrawPixel(3, 2, 1.0, core.Red) {
		t.Fatal("Expected pixel to be drawn")
	}
	if len(sink.pixels) != 1 {
		t.Fatalf("Expected 1 pixel, got %d", len(sink.pixels))
	}
	px := sink.pixels[0]
	if px.x != 3 || px.y != 6 {
		t.Errorf("Expected screen (3,6), got (%d,%d)", px.x, px.y)
	}
	if px.depth != 1.0 || px.color != core.Red {
		t.Errorf("Unexpected pixel payload: %+v", px)
	}
}

func TestCanvas_Clipping(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		visible bool
	}{
		{"inside", 0, 8, true},
		{"top row", 5, 8, true},
		{"bottom row", 5, 1, true},
		{"row zero flips off screen", 5, 0, false},
		{"above the top", 5, 9, false},
		{"left of screen", -1, 4, false},
		{"right of screen", 10, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(10, 8, &recordingSink{})
			c.BeginFrame()
			if got := c.DrawPixel(tt.x, tt.y, 0, core.White); got != tt.visible {
				t.Errorf("Expected visible=%t, got %t", tt.visible, got)
			}
		})
	}
}

func TestCanvas_DepthGate(t *testing.T) {
	sink := &recordingSink{}
	c := New(4, 4, sink)
	c.BeginFrame()

	c.DrawPixel(1, 1, 10, core.Red)
	c.DrawPixel(1, 1, 20, core.Green) // hidden
	c.DrawPixel(1, 1, 5, core.Blue)   // in front

	if len(sink.pixels) != 2 {
		t.Fatalf("Expected 2 accepted writes, got %d", len(sink.pixels))
	}
	if sink.pixels[1].color != core.Blue {
		t.Errorf("Expected last write to be blue, got %v", sink.pixels[1].color)
	}

	// A new frame clears the depth buffer
	c.EndFrame()
	c.BeginFrame()
	if !c.DrawPixel(1, 1, 20, core.Green) {
		t.Error("Expected depth buffer to be cleared between frames")
	}
	if sink.begins != 2 || sink.ends != 1 {
		t.Errorf("Expected 2 begins and 1 end, got %d and %d", sink.begins, sink.ends)
	}
}

func TestCanvas_DrawPointUsesViewingAxisAsDepth(t *testing.T) {
	sink := &recordingSink{}
	c := New(10, 10, sink)
	c.BeginFrame()

	if !c.DrawPoint(core.NewVec3(2, 7.5, 4), core.White) {
		t.Fatal("Expected point to be drawn")
	}
	px := sink.pixels[0]
	if px.x != 2 || px.y != 6 || px.depth != 7.5 {
		t.Errorf("Expected (2,6) at depth 7.5, got (%d,%d) at %f", px.x, px.y, px.depth)
	}

	// Same pixel, farther along Y
	if c.DrawPoint(core.NewVec3(2.9, 8, 4.1), core.Red) {
		t.Error("Expected farther point to be hidden")
	}
}

func TestCanvas_ReserveThenFill(t *testing.T) {
	sink := &recordingSink{}
	c := New(3, 3, sink)
	c.BeginFrame()

	px, ok := c.ReservePoint(core.NewVec3(1, 2, 1))
	if !ok {
		t.Fatal("Expected reservation")
	}
	if len(sink.pixels) != 0 {
		t.Fatal("Reserve must not write to the sink")
	}
	c.Fill(px, core.Green)
	if len(sink.pixels) != 1 || sink.pixels[0].color != core.Green {
		t.Errorf("Expected one green pixel, got %+v", sink.pixels)
	}
}
