package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/material"
)

// ImageData contains loaded image data as a row-major color array
type ImageData struct {
	Width  int
	Height int
	Format string // Decoder that recognised the data
	Pixels []core.Color
}

// LoadImage loads a PNG, JPEG, BMP or TIFF image
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return DecodeImage(file)
}

// DecodeImage decodes any registered image format from r
func DecodeImage(r io.Reader) (*ImageData, error) {
	// Auto-detects the format from the header
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = core.ColorFromRGBA(img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: pixels,
	}, nil
}

// Texture wraps the image as a texture repeated tile.X by tile.Y times.
// A zero tile component means 1.
func (d *ImageData) Texture(tile core.Vec2) *material.ImageTexture {
	return material.NewTiledImageTexture(d.Width, d.Height, d.Pixels, tileOrOne(tile))
}

func tileOrOne(tile core.Vec2) core.Vec2 {
	if tile.X == 0 {
		tile.X = 1
	}
	if tile.Y == 0 {
		tile.Y = 1
	}
	return tile
}

// LoadTexture loads an image file as a tiled texture
func LoadTexture(filename string, tile core.Vec2) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	if data.Width == 0 || data.Height == 0 {
		return nil, fmt.Errorf("texture %s is empty", filename)
	}
	return data.Texture(tile), nil
}
