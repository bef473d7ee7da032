package scene

import (
	"errors"
	"fmt"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/geometry"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/material"
)

// ErrInvalidScene is returned by Validate for scenes that cannot be rendered
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering.
// It is built once and shared read-only by every render worker.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          geometry.World
	SamplingConfig SamplingConfig
	Background     Background
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Background is the vertical sky gradient returned for rays that escape the world
type Background struct {
	Top    core.Color // Color looking straight up
	Bottom core.Color // Color looking straight down
}

// DefaultBackground returns the white-to-blue sky
func DefaultBackground() Background {
	return Background{
		Top:    core.NewColor(0.5, 0.7, 1.0),
		Bottom: core.White(),
	}
}

// At returns the background color for a ray travelling along direction
func (b Background) At(direction core.Vec3) core.Color {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return b.Bottom.Lerp(b.Top, t)
}

// NewScene builds a scene from a camera configuration, sampling settings and objects.
// The camera's aspect ratio is derived from the image size when left at zero.
func NewScene(cameraConfig geometry.CameraConfig, sampling SamplingConfig, spheres ...geometry.Sphere) *Scene {
	if cameraConfig.AspectRatio == 0 && sampling.Height > 0 {
		cameraConfig.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
	}

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewWorld(spheres...),
		SamplingConfig: sampling,
		Background:     DefaultBackground(),
	}
}

// AddSphere appends a sphere to the scene's world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// SetCamera replaces the camera configuration and rebuilds the camera
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// Validate reports the first problem that would make the scene unrenderable
func (s *Scene) Validate() error {
	cfg := s.SamplingConfig
	if cfg.Width < 1 || cfg.Height < 1 {
		return fmt.Errorf("%w: image size %dx%d must be at least 1x1", ErrInvalidScene, cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: samples per pixel %d must be at least 1", ErrInvalidScene, cfg.SamplesPerPixel)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidScene, cfg.MaxDepth)
	}
	if s.Camera == nil {
		return fmt.Errorf("%w: no camera", ErrInvalidScene)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	for i, sphere := range s.World.Objects {
		if sphere.Radius == 0 {
			return fmt.Errorf("%w: sphere %d has zero radius", ErrInvalidScene, i)
		}
		switch m := sphere.Material.(type) {
		case nil:
			return fmt.Errorf("%w: sphere %d has no material", ErrInvalidScene, i)
		case material.Metal:
			if !(m.Fuzz >= 0 && m.Fuzz <= 1) {
				return fmt.Errorf("%w: sphere %d has metal fuzz %g outside [0, 1]", ErrInvalidScene, i, m.Fuzz)
			}
		case material.Dielectric:
			if !(m.RefractionIndex > 0) {
				return fmt.Errorf("%w: sphere %d has refraction index %g", ErrInvalidScene, i, m.RefractionIndex)
			}
		}
	}

	return nil
}
