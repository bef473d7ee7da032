package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/geometry"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/material"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// ErrInvalidScene is returned for scene files that parse but describe an unusable scene
var ErrInvalidScene = errors.New("invalid scene file")

// SceneFile is the JSON layout of a scene description
type SceneFile struct {
	Name        string `json:"name"`
	Variant     string `json:"variant,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Camera     CameraJSON      `json:"camera"`
	Sampling   SamplingJSON    `json:"sampling"`
	Background *BackgroundJSON `json:"background,omitempty"`
	Spheres    []SphereJSON    `json:"spheres"`
}

// CameraJSON describes the camera. A missing up vector means +Y.
type CameraJSON struct {
	Center        Vec3JSON `json:"center"`
	LookAt        Vec3JSON `json:"lookAt"`
	Up            Vec3JSON `json:"up,omitempty"`
	VFov          float64  `json:"vfov"`
	AspectRatio   float64  `json:"aspectRatio,omitempty"` // 0 = width/height
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"` // 0 = distance to lookAt
}

// SamplingJSON holds image size and sampling; zero fields take the defaults
type SamplingJSON struct {
	Width           int `json:"width"`
	Height          int `json:"height"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

// BackgroundJSON overrides the sky gradient
type BackgroundJSON struct {
	Top    ColorJSON `json:"top"`
	Bottom ColorJSON `json:"bottom"`
}

// SphereJSON is one sphere. A negative radius makes a hollow shell.
type SphereJSON struct {
	Center   Vec3JSON     `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialJSON `json:"material"`
}

// MaterialJSON selects a material by type
type MaterialJSON struct {
	Type            string    `json:"type"` // lambertian, metal or dielectric
	Albedo          ColorJSON `json:"albedo,omitempty"`
	Fuzz            float64   `json:"fuzz,omitempty"`
	RefractionIndex float64   `json:"refractionIndex,omitempty"`
}

// Vec3JSON is written as [x, y, z]
type Vec3JSON [3]float64

func (v Vec3JSON) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ColorJSON is written as [r, g, b] in linear space or as a color name such as "steelblue"
type ColorJSON struct {
	core.Color
	Name string
}

// UnmarshalJSON accepts either a three element array or a color name
func (c *ColorJSON) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		col, ok := scene.NamedColor(name)
		if !ok {
			return fmt.Errorf("%w: unknown color name %q", ErrInvalidScene, name)
		}
		c.Color = col
		c.Name = strings.ToLower(strings.TrimSpace(name))
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r, g, b] or a name: %w", err)
	}
	c.Color = core.NewColor(rgb[0], rgb[1], rgb[2])
	c.Name = ""
	return nil
}

// MarshalJSON writes the name when the color was given by name
func (c ColorJSON) MarshalJSON() ([]byte, error) {
	if c.Name != "" {
		return json.Marshal(c.Name)
	}
	return json.Marshal([3]float64{c.R, c.G, c.B})
}

// DefaultSampling is used for fields a scene file leaves out
func DefaultSampling() scene.SamplingConfig {
	return scene.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// LoadScene reads and builds a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}

	sc, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return sc, nil
}

// ParseScene builds a scene from JSON. The result is validated before it is returned.
func ParseScene(data []byte) (*scene.Scene, error) {
	var file SceneFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}
	return file.Build()
}

// Build converts the file description into a scene
func (f SceneFile) Build() (*scene.Scene, error) {
	sampling := scene.MergeSamplingConfig(DefaultSampling(), scene.SamplingConfig{
		Width:           f.Sampling.Width,
		Height:          f.Sampling.Height,
		SamplesPerPixel: f.Sampling.SamplesPerPixel,
		MaxDepth:        f.Sampling.MaxDepth,
	})
	if f.Sampling.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: maxDepth %d must not be negative", ErrInvalidScene, f.Sampling.MaxDepth)
	}

	camera := geometry.CameraConfig{
		Center:        f.Camera.Center.vec(),
		LookAt:        f.Camera.LookAt.vec(),
		Up:            f.Camera.Up.vec(),
		VFov:          f.Camera.VFov,
		AspectRatio:   f.Camera.AspectRatio,
		Aperture:      f.Camera.Aperture,
		FocusDistance: f.Camera.FocusDistance,
	}
	if camera.Up == (core.Vec3{}) {
		camera.Up = core.NewVec3(0, 1, 0)
	}
	if camera.AspectRatio == 0 {
		camera.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
	}
	if err := camera.Validate(); err != nil {
		return nil, fmt.Errorf("%w: camera: %w", ErrInvalidScene, err)
	}

	spheres := make([]geometry.Sphere, 0, len(f.Spheres))
	for i, s := range f.Spheres {
		mat, err := s.Material.build()
		if err != nil {
			return nil, fmt.Errorf("%w: sphere %d: %w", ErrInvalidScene, i, err)
		}
		spheres = append(spheres, geometry.NewSphere(s.Center.vec(), s.Radius, mat))
	}

	sc := scene.NewScene(camera, sampling, spheres...)
	if f.Background != nil {
		sc.Background = scene.Background{Top: f.Background.Top.Color, Bottom: f.Background.Bottom.Color}
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return sc, nil
}

func (m MaterialJSON) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(m.Albedo.Color), nil
	case "metal":
		if m.Fuzz < 0 {
			return nil, fmt.Errorf("metal fuzz %g must not be negative", m.Fuzz)
		}
		return material.NewMetal(m.Albedo.Color, m.Fuzz), nil
	case "dielectric", "glass":
		if !(m.RefractionIndex > 0) {
			return nil, fmt.Errorf("dielectric refractionIndex %g must be positive", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	case "":
		return nil, errors.New("material type is required")
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}
