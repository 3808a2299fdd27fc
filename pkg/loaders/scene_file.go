package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/image-synthesis/pkg/core"
	"github.com/df07/image-synthesis/pkg/geometry"
	"github.com/df07/image-synthesis/pkg/lights"
	"github.com/df07/image-synthesis/pkg/material"
)

var (
	ErrUnknownSurface  = errors.New("unknown surface type")
	ErrUnknownLight    = errors.New("unknown light type")
	ErrUnknownMaterial = errors.New("unknown material preset")
)

// Vec3Cfg is a JSON [x, y, z] triple
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// ColorCfg is a JSON [r, g, b] triple
type ColorCfg [3]float64

func (c ColorCfg) Color() core.Color { return core.NewColor(c[0], c[1], c[2]) }

// SceneFile is the JSON scene description
type SceneFile struct {
	Name            string       `json:"name,omitempty"`
	Width           int          `json:"width,omitempty"`
	Height          int          `json:"height,omitempty"`
	MaxDepth        int          `json:"maxDepth,omitempty"`
	Camera          Vec3Cfg      `json:"camera"`
	RefractiveIndex float64      `json:"refractiveIndex,omitempty"` // defaults 1
	Background      ColorCfg     `json:"background"`
	Lights          []LightCfg   `json:"lights"`
	Surfaces        []SurfaceCfg `json:"surfaces"`

	// Directory the file was read from; relative texture paths resolve here
	Dir string `json:"-"`
}

type LightCfg struct {
	Type      string   `json:"type"` // ambient | point | directional
	Intensity ColorCfg `json:"intensity"`
	Position  Vec3Cfg  `json:"position,omitempty"`
	Direction Vec3Cfg  `json:"direction,omitempty"`
}

// MaterialCfg starts from a preset and overrides the coefficients that are set
type MaterialCfg struct {
	Preset          string   `json:"preset,omitempty"` // defaults to "default"
	KAmbient        *float64 `json:"kAmbient,omitempty"`
	KDiffuse        *float64 `json:"kDiffuse,omitempty"`
	KSpecular       *float64 `json:"kSpecular,omitempty"`
	Shininess       *float64 `json:"shininess,omitempty"`
	Reflection      *float64 `json:"reflection,omitempty"`
	Transparency    *float64 `json:"transparency,omitempty"`
	RefractiveIndex *float64 `json:"refractiveIndex,omitempty"`
}

type CheckerCfg struct {
	Size   int         `json:"size"` // Square edge in texels
	Colors [2]ColorCfg `json:"colors"`
}

// TextureCfg selects an image file or a procedural checkerboard
type TextureCfg struct {
	File    string      `json:"file,omitempty"`
	Checker *CheckerCfg `json:"checker,omitempty"`
	Tile    [2]float64  `json:"tile,omitempty"`
}

type BumpCfg struct {
	File  string     `json:"file"`
	Scale float64    `json:"scale"`
	Tile  [2]float64 `json:"tile,omitempty"`
}

type SurfaceCfg struct {
	Type string `json:"type"` // sphere | quad

	// sphere
	Center Vec3Cfg `json:"center,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	// quad
	Corner Vec3Cfg `json:"corner,omitempty"`
	U      Vec3Cfg `json:"u,omitempty"`
	V      Vec3Cfg `json:"v,omitempty"`

	Color    ColorCfg    `json:"color"`
	Texture  *TextureCfg `json:"texture,omitempty"`
	Bump     *BumpCfg    `json:"bump,omitempty"`
	Material MaterialCfg `json:"material"`
}

// LoadSceneFile reads and validates a JSON scene description
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	sf.Dir = filepath.Dir(filename)
	return sf, nil
}

// ParseSceneFile decodes and validates a JSON scene description from r
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var sf SceneFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if sf.RefractiveIndex == 0 {
		sf.RefractiveIndex = 1
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Validate checks every light and surface without touching the filesystem
func (sf *SceneFile) Validate() error {
	if sf.Width < 0 || sf.Height < 0 {
		return fmt.Errorf("image size must not be negative, got %dx%d", sf.Width, sf.Height)
	}
	if sf.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must not be negative, got %d", sf.MaxDepth)
	}
	if sf.RefractiveIndex <= 0 {
		return fmt.Errorf("refractiveIndex must be positive, got %g", sf.RefractiveIndex)
	}
	for i, l := range sf.Lights {
		if _, err := l.Build(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	for i, s := range sf.Surfaces {
		if err := s.validate(); err != nil {
			return fmt.Errorf("surface %d: %w", i, err)
		}
	}
	return nil
}

// BuildLights constructs every light
func (sf *SceneFile) BuildLights() ([]lights.Light, error) {
	result := make([]lights.Light, 0, len(sf.Lights))
	for i, l := range sf.Lights {
		light, err := l.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		result = append(result, light)
	}
	return result, nil
}

// BuildSurfaces constructs every surface, loading textures relative to Dir
func (sf *SceneFile) BuildSurfaces() ([]geometry.Surface, error) {
	result := make([]geometry.Surface, 0, len(sf.Surfaces))
	for i, s := range sf.Surfaces {
		surface, err := s.Build(sf.Dir)
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		result = append(result, surface)
	}
	return result, nil
}

// Build constructs the light
func (lc LightCfg) Build() (lights.Light, error) {
	switch lc.Type {
	case "ambient":
		return lights.NewAmbient(lc.Intensity.Color()), nil
	case "point":
		return lights.NewPoint(lc.Position.Vec3(), lc.Intensity.Color()), nil
	case "directional":
		if lc.Direction.Vec3().LengthSquared() == 0 {
			return nil, fmt.Errorf("directional light needs a non-zero direction")
		}
		return lights.NewDirectional(lc.Direction.Vec3(), lc.Intensity.Color()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLight, lc.Type)
}

// Build resolves the preset, applies overrides and validates the result
func (mc MaterialCfg) Build() (material.Material, error) {
	preset := mc.Preset
	if preset == "" {
		preset = "default"
	}
	mat, ok := material.Preset(preset)
	if !ok {
		return material.Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, preset)
	}

	overrides := []struct {
		value *float64
		field *float64
	}{
		{mc.KAmbient, &mat.KAmbient},
		{mc.KDiffuse, &mat.KDiffuse},
		{mc.KSpecular, &mat.KSpecular},
		{mc.Shininess, &mat.Shininess},
		{mc.Reflection, &mat.Reflection},
		{mc.Transparency, &mat.Transparency},
		{mc.RefractiveIndex, &mat.RefractiveIndex},
	}
	for _, o := range overrides {
		if o.value != nil {
			*o.field = *o.value
		}
	}

	if err := mat.Validate(); err != nil {
		return material.Material{}, err
	}
	return mat, nil
}

func (sc SurfaceCfg) validate() error {
	switch sc.Type {
	case "sphere":
		if sc.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %g", sc.Radius)
		}
	case "quad":
		if sc.U.Vec3().Cross(sc.V.Vec3()).LengthSquared() == 0 {
			return fmt.Errorf("quad edges must not be parallel")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSurface, sc.Type)
	}

	if sc.Texture != nil && sc.Texture.File == "" && sc.Texture.Checker == nil {
		return fmt.Errorf("texture needs a file or a checker")
	}
	if sc.Texture != nil && sc.Texture.Checker != nil && sc.Texture.Checker.Size <= 0 {
		return fmt.Errorf("checker size must be positive, got %d", sc.Texture.Checker.Size)
	}
	if sc.Bump != nil && sc.Bump.File == "" {
		return fmt.Errorf("bump map needs a file")
	}
	if _, err := sc.Material.Build(); err != nil {
		return err
	}
	return nil
}

// Build constructs the surface. Relative texture paths resolve against dir.
func (sc SurfaceCfg) Build(dir string) (geometry.Surface, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}

	mat, err := sc.Material.Build()
	if err != nil {
		return nil, err
	}
	appearance := geometry.NewAppearance(sc.Color.Color(), mat)

	if sc.Texture != nil {
		tile := core.NewVec2(sc.Texture.Tile[0], sc.Texture.Tile[1])
		if sc.Texture.Checker != nil {
			c := sc.Texture.Checker
			size := 2 * c.Size
			tex := material.NewCheckerboardTexture(size, size, c.Size, c.Colors[0].Color(), c.Colors[1].Color())
			tex.Tile = tileOrOne(tile)
			appearance.Texture = tex
		} else {
			tex, err := LoadTexture(resolve(dir, sc.Texture.File), tile)
			if err != nil {
				return nil, fmt.Errorf("texture: %w", err)
			}
			appearance.Texture = tex
		}
	}

	if sc.Bump != nil {
		bump, err := LoadTexture(resolve(dir, sc.Bump.File), core.NewVec2(sc.Bump.Tile[0], sc.Bump.Tile[1]))
		if err != nil {
			return nil, fmt.Errorf("bump map: %w", err)
		}
		appearance.BumpMap = bump
		appearance.BumpScale = sc.Bump.Scale
	}

	if sc.Type == "sphere" {
		return geometry.NewSphere(sc.Center.Vec3(), sc.Radius, appearance), nil
	}
	return geometry.NewQuad(sc.Corner.Vec3(), sc.U.Vec3(), sc.V.Vec3(), appearance), nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
