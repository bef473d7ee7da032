package scene

import (
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/geometry"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/material"
)

// DefaultRandomSeed seeds the random preset when it is built from the registry
const DefaultRandomSeed int64 = 1

// applyCameraOverrides merges the first override, if any, into the preset's camera
func applyCameraOverrides(base geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(base, overrides[0])
	}
	return base
}

// NewSimpleScene creates a single diffuse sphere in front of a camera at the origin
func NewSimpleScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 16.0 / 9.0,
	}, cameraOverrides)

	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	return NewScene(cameraConfig, samplingConfig,
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
	)
}

// materialsSpheres returns the ground, a diffuse center, a hollow glass shell and a metal sphere
func materialsSpheres() []geometry.Sphere {
	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0)

	return []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		// Same center, negative inner radius: a thin glass bubble
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	}
}

// NewMaterialsScene shows every material side by side on a large ground sphere
func NewMaterialsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:      core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}, cameraOverrides)

	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	return NewScene(cameraConfig, samplingConfig, materialsSpheres()...)
}

// NewDefocusScene renders a palette-colored variant of the materials scene through a wide lens
func NewDefocusScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:        core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}, cameraOverrides)

	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	glass := material.NewDielectric(1.5)
	return NewScene(cameraConfig, samplingConfig,
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(MustNamedColor("olivedrab"))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(MustNamedColor("steelblue"))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(MustNamedColor("goldenrod"), 0.2)),
	)
}

// NewRandomScene creates the large scene of three feature spheres surrounded by a
// 22x22 grid of small random spheres. The same seed always yields the same world.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := applyCameraOverrides(geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}, cameraOverrides)

	samplingConfig := SamplingConfig{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 500,
		MaxDepth:        50,
	}

	s := NewScene(cameraConfig, samplingConfig,
		geometry.NewSphere(core.NewVec3(0, -1000, -1), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)

	sampler := core.NewSeededSampler(seed)
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			// Keep the small spheres away from the big metal one
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				albedo := core.RandomColor(sampler, 0, 1).MultiplyColor(core.RandomColor(sampler, 0, 1))
				s.AddSphere(center, 0.2, material.NewLambertian(albedo))
			case chooseMaterial < 0.95:
				albedo := core.RandomColor(sampler, 0.5, 1)
				fuzz := core.RandomFloat(sampler, 0, 0.5)
				s.AddSphere(center, 0.2, material.NewMetal(albedo, fuzz))
			default:
				s.AddSphere(center, 0.2, material.NewDielectric(1.5))
			}
		}
	}

	return s
}
