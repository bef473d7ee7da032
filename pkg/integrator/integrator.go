package integrator

import (
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// Epsilon is the minimum accepted hit distance, so a scattered ray does not
// re-hit the surface it leaves
const Epsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray.
	// Implementations must be safe for concurrent use as long as each goroutine
	// passes its own sampler.
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color
}
