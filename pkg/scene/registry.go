package scene

import (
	"errors"
	"fmt"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/geometry"
)

// ErrUnknownScene is returned by New for names that are not built in
var ErrUnknownScene = errors.New("unknown scene")

type preset struct {
	info  SceneInfo
	build func(cameraOverrides ...geometry.CameraConfig) *Scene
}

// presets are listed in display order
var presets = []preset{
	{
		info:  builtinInfo("simple", "Simple Sphere", "Single diffuse sphere under a sky gradient"),
		build: NewSimpleScene,
	},
	{
		info:  builtinInfo("materials", "Materials", "Diffuse, hollow glass and metal spheres on a ground sphere"),
		build: NewMaterialsScene,
	},
	{
		info:  builtinInfo("defocus", "Depth of Field", "Materials scene through a wide aperture lens"),
		build: NewDefocusScene,
	},
	{
		info: builtinInfo("random", "Random Spheres", "Three large spheres among hundreds of small random ones"),
		build: func(cameraOverrides ...geometry.CameraConfig) *Scene {
			return NewRandomScene(DefaultRandomSeed, cameraOverrides...)
		},
	},
}

func builtinInfo(id, name, description string) SceneInfo {
	return SceneInfo{
		ID:          id,
		Name:        name,
		DisplayName: name,
		Description: description,
		Group:       builtinGroup,
		Type:        "builtin",
	}
}

// List returns the built-in scenes in display order
func List() []SceneInfo {
	infos := make([]SceneInfo, len(presets))
	for i, p := range presets {
		infos[i] = p.info
	}
	return infos
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.info.ID
	}
	return names
}

// New builds the named built-in scene, applying an optional camera override
func New(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	for _, p := range presets {
		if p.info.ID == name {
			return p.build(cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
}

// MergeSamplingConfig returns base with every non-zero field of override applied.
// When only the width is overridden the height follows the base aspect ratio.
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base

	if override.Width > 0 {
		result.Width = override.Width
		if override.Height <= 0 && base.Width > 0 {
			result.Height = max(1, base.Height*override.Width/base.Width)
		}
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}

	return result
}

// ApplySamplingOverrides merges override into the scene's sampling config. When the image
// shape changes the camera's aspect ratio is updated to match.
func (s *Scene) ApplySamplingOverrides(override SamplingConfig) {
	before := s.SamplingConfig
	s.SamplingConfig = MergeSamplingConfig(before, override)

	after := s.SamplingConfig
	if after.Width != before.Width || after.Height != before.Height {
		config := s.CameraConfig
		config.AspectRatio = float64(after.Width) / float64(after.Height)
		s.SetCamera(config)
	}
}
