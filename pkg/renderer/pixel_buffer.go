package renderer

import (
	"fmt"
	"image"
	"image/color"
)

// PixelBuffer holds 8-bit RGB pixels in row-major order, top row first
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte // len(Pix) == Width*Height*3
}

// NewPixelBuffer allocates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// Stride returns the number of bytes in one row
func (b *PixelBuffer) Stride() int {
	return b.Width * 3
}

// Row returns the bytes of row y. Rows never overlap, so each can be handed to
// a different goroutine. An out-of-range row is a programming error and panics.
func (b *PixelBuffer) Row(y int) []byte {
	if y < 0 || y >= b.Height {
		panic(fmt.Sprintf("renderer: row %d out of range [0, %d)", y, b.Height))
	}
	start := y * b.Stride()
	return b.Pix[start : start+b.Stride() : start+b.Stride()]
}

// At returns the RGB triple at (x, y)
func (b *PixelBuffer) At(x, y int) [3]uint8 {
	i := b.offset(x, y)
	return [3]uint8{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}
}

// Set writes the RGB triple at (x, y)
func (b *PixelBuffer) Set(x, y int, rgb [3]uint8) {
	i := b.offset(x, y)
	copy(b.Pix[i:i+3], rgb[:])
}

func (b *PixelBuffer) offset(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		panic(fmt.Sprintf("renderer: pixel (%d, %d) out of range %dx%d", x, y, b.Width, b.Height))
	}
	return y*b.Stride() + x*3
}

// ToImage converts the buffer to an opaque RGBA image
func (b *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: row[x*3], G: row[x*3+1], B: row[x*3+2], A: 255})
		}
	}
	return img
}

// FromImage copies any image into a new buffer, dropping alpha
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	b := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			b.Set(x, y, [3]uint8{c.R, c.G, c.B})
		}
	}
	return b
}
