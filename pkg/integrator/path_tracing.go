package integrator

import (
	"math"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing against the sky gradient
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// PathVertex records one surface interaction along a traced path
type PathVertex struct {
	Point       core.Vec3
	Normal      core.Vec3
	T           float64
	FrontFace   bool
	Material    string     // Material kind at the hit
	Scattered   bool       // False if the surface absorbed the ray
	Attenuation core.Color // Attenuation applied at this bounce
}

// PathResult is the color of a path and the interactions that produced it
type PathResult struct {
	Color    core.Color
	Vertices []PathVertex
	Escaped  bool // The path left the scene and picked up the background
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// Paths are limited to config.MaxDepth bounces.
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// MaxDepth returns the bounce budget for each path
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.config.MaxDepth
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color {
	return pt.trace(ray, scene, sampler, nil).Color
}

// TracePath is RayColor that also records every bounce, for inspection and tests
func (pt *PathTracingIntegrator) TracePath(ray core.Ray, scene *scene.Scene, sampler core.Sampler) PathResult {
	vertices := make([]PathVertex, 0, min(max(pt.config.MaxDepth, 0), 16))
	return pt.trace(ray, scene, sampler, &vertices)
}

// trace follows ray through at most MaxDepth bounces. Each bounce multiplies the
// throughput by the surface attenuation; a miss returns throughput times the sky.
func (pt *PathTracingIntegrator) trace(ray core.Ray, scene *scene.Scene, sampler core.Sampler, vertices *[]PathVertex) PathResult {
	throughput := core.White()
	result := PathResult{Color: core.Black()}

	for depth := pt.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := scene.World.Hit(ray, Epsilon, math.Inf(1))
		if !isHit {
			result.Color = throughput.MultiplyColor(scene.Background.At(ray.Direction))
			result.Escaped = true
			break
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if vertices != nil {
			*vertices = append(*vertices, PathVertex{
				Point:       hit.Point,
				Normal:      hit.Normal,
				T:           hit.T,
				FrontFace:   hit.FrontFace,
				Material:    hit.Material.Kind(),
				Scattered:   didScatter,
				Attenuation: scatter.Attenuation,
			})
		}
		if !didScatter {
			// Material absorbed the ray
			break
		}

		throughput = throughput.MultiplyColor(scatter.Attenuation)
		ray = scatter.Scattered
	}

	if vertices != nil {
		result.Vertices = *vertices
	}
	return result
}
