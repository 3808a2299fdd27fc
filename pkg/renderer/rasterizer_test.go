package renderer

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/df07/image-synthesis/pkg/canvas"
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/geometry"
	"github.com/df07/image-synthesis/pkg/lights"
	"github.com/df07/image-synthesis/pkg/material"
)

// countingModel returns the surface albedo and counts shading calls
type countingModel struct {
	calls int
}

func (m *countingModel) Compute(ls []lights.Light, s geometry.Surface, p core.Vec3, uv core.Vec2) core.Color {
	m.calls++
	return s.TextureColor(uv)
}

// panel returns a quad parallel to the image plane at the given depth
func panel(x, z, size, depth float64, albedo core.Color) *geometry.Quad {
	return geometry.NewQuad(
		core.NewVec3(x, depth, z),
		core.NewVec3(size, 0, 0),
		core.NewVec3(0, 0, size),
		geometry.NewAppearance(albedo, material.Material{KAmbient: 1}),
	)
}

func rasterScene(surfaces ...geometry.Surface) MockScene {
	return MockScene{
		surfaces:        surfaces,
		lights:          []lights.Light{lights.NewAmbient(core.White)},
		camera:          core.NewVec3(15, -100, 15),
		refractiveIndex: 1,
	}
}

func TestRasterizer_KeepsNearestRegardlessOfOrder(t *testing.T) {
	near := panel(5, 5, 10, 10, core.Red)
	far := panel(7, 7, 6, 20, core.Blue)

	orders := map[string][]geometry.Surface{
		"near first": {near, far},
		"far first":  {far, near},
	}

	for name, surfaces := range orders {
		t.Run(name, func(t *testing.T) {
			sink := canvas.NewImageSink(30, 30, core.Black)
			config := RasterConfig{Step: 0.01}
			NewRasterizer(rasterScene(surfaces...), config, nil).Render(canvas.New(30, 30, sink))

			// World (10, 10) is screen (10, 20)
			if got := sink.Image().RGBAAt(10, 20); got != (color.RGBA{255, 0, 0, 255}) {
				t.Errorf("Expected near red panel, got %v", got)
			}
			if got := sink.Image().RGBAAt(25, 5); got != (color.RGBA{0, 0, 0, 255}) {
				t.Errorf("Expected background outside the panels, got %v", got)
			}
		})
	}
}

func TestRasterizer_HiddenSamplesAreNotShaded(t *testing.T) {
	near := panel(5, 5, 10, 10, core.Red)
	far := panel(7, 7, 6, 20, core.Blue)
	config := RasterConfig{Step: 0.01}

	render := func(surfaces ...geometry.Surface) int {
		model := &countingModel{}
		r := NewRasterizer(rasterScene(surfaces...), config, nil)
		r.SetModel(model)
		r.Render(canvas.New(30, 30, canvas.NewImageSink(30, 30, core.Black)))
		return model.calls
	}

	nearOnly := render(near)
	if nearOnly == 0 {
		t.Fatal("Expected the near panel to be shaded")
	}
	if both := render(near, far); both != nearOnly {
		t.Errorf("Expected the hidden panel to cost no shading, got %d calls vs %d", both, nearOnly)
	}
	if reversed := render(far, near); reversed <= nearOnly {
		t.Errorf("Expected the far panel to be shaded when drawn first, got %d calls", reversed)
	}
}

func TestRasterizer_DefaultsAndCancellation(t *testing.T) {
	r := NewRasterizer(rasterScene(), RasterConfig{Step: -1}, nil)
	if r.config.Step != DefaultRasterConfig().Step {
		t.Errorf("Expected invalid step to fall back to %g, got %g", DefaultRasterConfig().Step, r.config.Step)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r = NewRasterizer(rasterScene(panel(0, 0, 10, 10, core.Red)), RasterConfig{Step: 0.1}, nil)
	stats, err := r.RenderContext(ctx, canvas.New(10, 10, canvas.NewImageSink(10, 10, core.Black)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if stats.PixelsDrawn != 0 {
		t.Errorf("Expected nothing drawn, got %d", stats.PixelsDrawn)
	}
}
