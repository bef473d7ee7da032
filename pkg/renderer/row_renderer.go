package renderer

import (
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/integrator"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// RowRenderer handles the actual rendering of individual rows using an integrator
type RowRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewRowRenderer creates a new row renderer with the given scene and integrator
func NewRowRenderer(scene *scene.Scene, integratorInst integrator.Integrator) *RowRenderer {
	return &RowRenderer{
		scene:      scene,
		integrator: integratorInst,
	}
}

// RenderRow fills pixels (one row of RGB bytes) for image row y.
// The sampler must not be shared with any other goroutine.
func (rr *RowRenderer) RenderRow(y int, pixels []byte, sampler core.Sampler) RowStats {
	cfg := rr.scene.SamplingConfig
	camera := rr.scene.Camera

	// A 1-pixel dimension maps every sample onto [0, 1) instead of dividing by zero
	uScale := float64(max(cfg.Width-1, 1))
	vScale := float64(max(cfg.Height-1, 1))
	row := float64(cfg.Height - 1 - y)

	for x := 0; x < cfg.Width; x++ {
		color := core.Black()
		for s := 0; s < cfg.SamplesPerPixel; s++ {
			u := (float64(x) + sampler.Get1D()) / uScale
			v := (row + sampler.Get1D()) / vScale
			ray := camera.GetRay(u, v, sampler)
			color = color.Add(rr.integrator.RayColor(ray, rr.scene, sampler))
		}

		rgb := color.ToBytes(cfg.SamplesPerPixel)
		copy(pixels[x*3:x*3+3], rgb[:])
	}

	return RowStats{
		Pixels:  cfg.Width,
		Samples: cfg.Width * cfg.SamplesPerPixel,
	}
}
