package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.ApproxEquals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(2, 3, 6)

	if got := v.Dot(NewVec3(1, 1, 1)); got != 11 {
		t.Errorf("Expected dot 11, got %f", got)
	}
	if got := v.LengthSquared(); got != 49 {
		t.Errorf("Expected length squared 49, got %f", got)
	}
	if got := v.Length(); got != 7 {
		t.Errorf("Expected length 7, got %f", got)
	}
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	a := NewVec3(0.3, -1.2, 2.5)
	b := NewVec3(4.1, 0.7, -0.9)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("Cross product %v should be orthogonal to both inputs", c)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	if !n.ApproxEquals(NewVec3(0.6, 0, 0.8), 1e-12) {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", n)
	}
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
}

func TestVec3_NormalizeZeroLength(t *testing.T) {
	n := Vec3{}.Normalize()
	if !n.Equals(Vec3{}) {
		t.Errorf("Zero vector should normalize to zero, got %v", n)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
		t.Error("Normalize must not produce NaN")
	}

	if _, ok := (Vec3{}).TryNormalize(); ok {
		t.Error("TryNormalize should report failure for a zero vector")
	}
	if _, ok := NewVec3(0, 1e-200, 0).TryNormalize(); !ok {
		t.Error("TryNormalize should accept tiny but non-zero vectors")
	}
	if _, ok := NewVec3(math.NaN(), 0, 1).TryNormalize(); ok {
		t.Error("TryNormalize should reject NaN components")
	}
}

func TestVec3_NormalizeExtremeMagnitudes(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected Vec3
	}{
		{"tiny axis", NewVec3(0, 1e-200, 0), NewVec3(0, 1, 0)},
		{"huge axis", NewVec3(1e200, 0, 0), NewVec3(1, 0, 0)},
		{"huge diagonal", NewVec3(-3e300, 0, 4e300), NewVec3(-0.6, 0, 0.8)},
		{"subnormal", NewVec3(5e-324, 5e-324, 0), NewVec3(math.Sqrt2/2, math.Sqrt2/2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := tt.v.TryNormalize()
			if !ok {
				t.Fatalf("TryNormalize(%v) reported zero length", tt.v)
			}
			if !n.ApproxEquals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, n)
			}
		})
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", Vec3{}, true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"threshold is exclusive", NewVec3(1e-8, 0, 0), false},
		{"unit", NewVec3(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 2, 0))

	if p := ray.At(0); !p.Equals(NewVec3(1, 1, 1)) {
		t.Errorf("At(0) should be the origin, got %v", p)
	}
	if p := ray.At(1.5); !p.Equals(NewVec3(1, 4, 1)) {
		t.Errorf("At(1.5) expected (1, 4, 1), got %v", p)
	}
}
