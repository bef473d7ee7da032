package geometry

import (
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Accepted hits have t strictly inside (tMin, tMax).
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
