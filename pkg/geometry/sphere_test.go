package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stanpapa/computer-graphics-from-scratch/pkg/core"
	"github.com/stanpapa/computer-graphics-from-scratch/pkg/material"
)

func testMaterial() material.Material {
	return material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace=%t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.ApproxEquals(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material == nil {
				t.Error("Expected hit to carry the sphere's material")
			}
		})
	}
}

func TestSphere_Hit_NegativeRadiusInvertsNormals(t *testing.T) {
	shell := NewSphere(core.NewVec3(0, 0, -1), -0.45, material.NewDielectric(1.5))

	// Ray from outside toward the center hits the surface at z = -0.55
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := shell.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on inverted sphere")
	}
	if math.Abs(hit.T-0.55) > 1e-9 {
		t.Errorf("Expected t=0.55, got %f", hit.T)
	}
	// Outward normal points into the sphere, so the ray is "leaving" the shell
	if hit.FrontFace {
		t.Error("Expected FrontFace=false for an inverted sphere hit from outside")
	}
	if !hit.Normal.ApproxEquals(core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected normal to face the ray, got %v", hit.Normal)
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	// Roots at t=4 and t=6

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"both roots inside", 0.001, 100, true, 4},
		{"near root excluded by tMin", 4.5, 100, true, 6},
		{"far root excluded by tMax", 0.001, 5, true, 4},
		{"both roots excluded", 4.5, 5.5, false, 0},
		{"tMax equal to root is open", 0.001, 4, false, 0},
		{"tMin equal to root is open", 4, 6, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_Properties(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -1), 0.7, testMaterial())
	tMin, tMax := 0.001, 50.0

	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(random.Float64()*6-3, random.Float64()*6-3, random.Float64()*6-3)
		direction := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, tMin, tMax)
		if !isHit {
			continue
		}
		if hit.T <= tMin || hit.T >= tMax {
			t.Fatalf("Hit t=%f outside (%f, %f)", hit.T, tMin, tMax)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit normal, got length %f", hit.Normal.Length())
		}
		if hit.Normal.Dot(ray.Direction) > 1e-12 {
			t.Fatalf("Normal %v should face against ray direction %v", hit.Normal, ray.Direction)
		}
		distance := hit.Point.Subtract(sphere.Center).Length()
		if math.Abs(distance-sphere.Radius) > 1e-9 {
			t.Fatalf("Hit point is %f from center, expected %f", distance, sphere.Radius)
		}
	}
}

func TestSphere_ImplementsShape(t *testing.T) {
	var _ Shape = NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial())
	var _ Shape = NewWorld()
}
