package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/image-synthesis/pkg/loaders"
)

// NewFileScene creates a scene from a JSON scene file. A positive width or
// height overrides the size stored in the file.
func NewFileScene(path string, width, height int) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	if width <= 0 {
		width = sf.Width
	}
	if height <= 0 {
		height = sf.Height
	}

	name := sf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s := New(name, width, height)

	if sf.Camera != (loaders.Vec3Cfg{}) {
		s.Camera = sf.Camera.Vec3()
	}
	s.RefractiveIndex = sf.RefractiveIndex
	s.Background = sf.Background.Color()
	if sf.MaxDepth > 0 {
		s.MaxDepth = sf.MaxDepth
	}

	if s.Lights, err = sf.BuildLights(); err != nil {
		return nil, fmt.Errorf("failed to convert lights: %w", err)
	}
	if s.Surfaces, err = sf.BuildSurfaces(); err != nil {
		return nil, fmt.Errorf("failed to convert surfaces: %w", err)
	}

	return s, nil
}
