package renderer

import (
	"fmt"
	"math"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/geometry"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/integrator"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/material"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/scene"
)

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit          bool
	Ray          core.Ray
	Point        core.Vec3
	Normal       core.Vec3
	Distance     float64
	FrontFace    bool
	MaterialType string
	Properties   map[string]interface{}
	Sphere       *geometry.Sphere // The sphere that was hit
	Background   core.Color       // Sky color seen along the ray on a miss
}

// InspectPixel casts an un-jittered pinhole ray through pixel (x, y) and reports the
// first object it hits. Pixel (0, 0) is the top-left corner.
func InspectPixel(sc *scene.Scene, x, y int) (InspectResult, error) {
	cfg := sc.SamplingConfig
	if x < 0 || x >= cfg.Width || y < 0 || y >= cfg.Height {
		return InspectResult{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, cfg.Width, cfg.Height)
	}

	u := float64(x) / float64(max(cfg.Width-1, 1))
	v := float64(cfg.Height-1-y) / float64(max(cfg.Height-1, 1))
	ray := sc.Camera.GetPinholeRay(u, v)

	result := InspectResult{Ray: ray}

	var closest material.HitRecord
	closestSoFar := math.Inf(1)
	for i := range sc.World.Objects {
		if hit, isHit := sc.World.Objects[i].Hit(ray, integrator.Epsilon, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
			result.Sphere = &sc.World.Objects[i]
		}
	}

	if result.Sphere == nil {
		result.Background = sc.Background.At(ray.Direction)
		return result, nil
	}

	result.Hit = true
	result.Point = closest.Point
	result.Normal = closest.Normal
	result.Distance = closest.T
	result.FrontFace = closest.FrontFace
	result.MaterialType, result.Properties = MaterialInfo(closest.Material)
	return result, nil
}

// MaterialInfo names a material and lists its parameters
func MaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = hexColor(m.Albedo)
	case material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
	case material.Dielectric:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
	default:
		return "unknown", properties
	}

	return mat.Kind(), properties
}

// hexColor formats a color the way it appears in the rendered image
func hexColor(c core.Color) string {
	rgb := c.ToBytes(1)
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
