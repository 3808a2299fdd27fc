package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/image-synthesis/pkg/loaders"
)

// ErrUnknownScene is returned for a name that is neither built in nor a file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Name accepted by Load
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON file (file type only)
}

type builtin struct {
	info  SceneInfo
	build func(width, height int) *Scene
}

var builtins = []builtin{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Plastic, mirror and glass spheres on a checkered floor",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirrors",
			DisplayName: "Facing Mirrors",
			Description: "A sphere between two parallel mirrors",
		},
		build: NewMirrorsScene,
	},
	{
		info: SceneInfo{
			ID:          "textured",
			DisplayName: "Textures",
			Description: "UV-mapped sphere in front of a bump-mapped wall",
		},
		build: NewTexturedScene,
	},
}

// ListScenes returns the built-in scenes in a stable order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// ListSceneFiles scans dir for JSON scene files. A missing directory is not
// an error.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sf, err := loaders.LoadSceneFile(filePath)
		if err != nil {
			// Skip broken files, the others are still usable
			continue
		}

		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		displayName := titleCase(name)
		if sf.Name != "" {
			displayName = sf.Name
		}
		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: displayName,
			Type:        "file",
			FilePath:    filePath,
		})
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// Load builds a built-in scene by ID, or reads a JSON scene file when name
// ends in .json. A positive width or height overrides the scene's own size.
func Load(name string, width, height int) (*Scene, error) {
	var s *Scene
	if strings.EqualFold(filepath.Ext(name), ".json") {
		var err error
		if s, err = NewFileScene(name, width, height); err != nil {
			return nil, err
		}
	} else {
		for _, b := range builtins {
			if b.info.ID == name {
				s = b.build(width, height)
				break
			}
		}
		if s == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
