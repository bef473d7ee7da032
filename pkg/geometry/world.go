package geometry

import (
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/material"
)

// World is an ordered list of spheres tested linearly for the closest hit
type World struct {
	Objects []Sphere
}

// NewWorld creates a world holding copies of the given spheres
func NewWorld(spheres ...Sphere) World {
	objects := make([]Sphere, len(spheres))
	copy(objects, spheres)
	return World{Objects: objects}
}

// Add appends a sphere to the world
func (w *World) Add(s Sphere) {
	w.Objects = append(w.Objects, s)
}

// Len returns the number of objects in the world
func (w World) Len() int {
	return len(w.Objects)
}

// Hit returns the closest intersection among all objects
func (w World) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for i := range w.Objects {
		if hit, isHit := w.Objects[i].Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
