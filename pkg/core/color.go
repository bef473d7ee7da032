package core

import "math"

// Color is a linear RGB color. Channels are nominally in [0, 1] but may exceed
// that range while samples are being accumulated.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns the zero color
func Black() Color {
	return Color{}
}

// White returns full intensity on every channel
func White() Color {
	return Color{R: 1, G: 1, B: 1}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the channel-wise difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the channel-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Lerp linearly interpolates from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1.0 - t).Add(other.Multiply(t))
}

// IsBlack reports whether every channel is exactly zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// MaxComponent returns the largest channel value
func (c Color) MaxComponent() float64 {
	return max(c.R, c.G, c.B)
}

// ToBytes converts an accumulated sum of samples into 8-bit RGB.
// The sum is averaged over samples, gamma corrected with gamma 2 (square root),
// clamped to [0, 1] and scaled to [0, 255]. Non-positive sample counts yield black.
func (c Color) ToBytes(samples int) [3]uint8 {
	if samples <= 0 {
		return [3]uint8{}
	}
	scale := 1.0 / float64(samples)
	return [3]uint8{
		channelToByte(c.R * scale),
		channelToByte(c.G * scale),
		channelToByte(c.B * scale),
	}
}

func channelToByte(value float64) uint8 {
	// NaN and negative light both render as black
	if !(value > 0) {
		return 0
	}
	corrected := math.Sqrt(value)
	return uint8(255 * min(corrected, 1.0))
}

// RandomColor returns a color with each channel uniform in [minVal, maxVal)
func RandomColor(sampler Sampler, minVal, maxVal float64) Color {
	v := RandomVec3(sampler, minVal, maxVal)
	return Color{R: v.X, G: v.Y, B: v.Z}
}
