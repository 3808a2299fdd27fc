package renderer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/df07/image-synthesis/pkg/canvas"
	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/geometry"
	"github.com/df07/image-synthesis/pkg/lights"
	"github.com/df07/image-synthesis/pkg/material"
)

func parallelTestScene() MockScene {
	floor := geometry.NewQuad(
		core.NewVec3(-100, 10, 5),
		core.NewVec3(300, 0, 0),
		core.NewVec3(0, 200, 0),
		geometry.NewAppearance(core.NewColor(0.8, 0.8, 0.8), material.Default()),
	)
	floor.Texture = material.NewCheckerboardTexture(64, 64, 8, core.White, core.Black)

	return MockScene{
		surfaces: []geometry.Surface{
			floor,
			geometry.NewSphere(core.NewVec3(14, 40, 14), 7, geometry.NewAppearance(core.White, material.Mirror(0.8))),
			geometry.NewSphere(core.NewVec3(30, 30, 12), 5, geometry.NewAppearance(core.White, material.Glass(1.5))),
			geometry.NewSphere(core.NewVec3(24, 70, 20), 10, geometry.NewAppearance(core.Red, material.Default())),
		},
		lights: []lights.Light{
			lights.NewAmbient(core.NewColor(0.3, 0.3, 0.3)),
			lights.NewPoint(core.NewVec3(20, 0, 60), core.White),
		},
		camera:          core.NewVec3(20, -60, 15),
		refractiveIndex: 1,
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(40, 30, 16)
	if len(tiles) != 6 {
		t.Fatalf("Expected 3x2 tiles, got %d", len(tiles))
	}

	covered := make(map[[2]int]int)
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[[2]int{x, y}]++
			}
		}
	}
	if len(covered) != 40*30 {
		t.Errorf("Expected every pixel covered, got %d", len(covered))
	}
	for px, n := range covered {
		if n != 1 {
			t.Fatalf("Pixel %v covered %d times", px, n)
		}
	}
	if last := tiles[len(tiles)-1].Bounds; last.Dx() != 8 || last.Dy() != 14 {
		t.Errorf("Expected clipped 8x14 corner tile, got %v", last)
	}
}

func TestParallelRaytracer_MatchesSequential(t *testing.T) {
	const width, height = 40, 30
	scene := parallelTestScene()

	config := DefaultConfig()
	config.MaxDepth = 4
	config.NumWorkers = 4
	config.TileSize = 7

	sequentialSink := canvas.NewImageSink(width, height, core.Blue)
	sequential := NewRaytracer(scene, config, nil).Render(canvas.New(width, height, sequentialSink))

	parallelSink := canvas.NewImageSink(width, height, core.Blue)
	parallel, err := NewParallelRaytracer(scene, config, nil).Render(
		context.Background(), canvas.NewConcurrent(width, height, parallelSink))
	if err != nil {
		t.Fatalf("Parallel render failed: %v", err)
	}

	if sequential.PixelsDrawn == 0 {
		t.Fatal("Expected the test scene to draw something")
	}
	if parallel.PixelsDrawn != sequential.PixelsDrawn || parallel.TotalPixels != sequential.TotalPixels {
		t.Errorf("Stats differ: sequential %+v, parallel %+v", sequential, parallel)
	}
	if !bytes.Equal(sequentialSink.Image().Pix, parallelSink.Image().Pix) {
		t.Error("Parallel image differs from sequential image")
	}
}

func TestParallelRaytracer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := DefaultConfig()
	config.NumWorkers = 2
	config.TileSize = 8

	sink := canvas.NewImageSink(32, 32, core.Black)
	stats, err := NewParallelRaytracer(parallelTestScene(), config, nil).Render(ctx, canvas.NewConcurrent(32, 32, sink))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if stats.PixelsDrawn != 0 {
		t.Errorf("Expected nothing drawn after cancellation, got %d", stats.PixelsDrawn)
	}
}
