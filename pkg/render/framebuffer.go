// Package render implements the software rasterizer: a color and depth
// buffer, the perspective projector, the triangle filler and the line drawer.
package render

import (
	"image"
	"math"
)

// Framebuffer is a row-major grid of pixels with a matching depth buffer.
// Depth values are view-space Z; smaller is nearer.
type Framebuffer struct {
	Width  int       // Width in pixels
	Height int       // Height in pixels
	Pixels []Color   // Row-major pixel data, origin top-left
	Depth  []float64 // Row-major depth data, +Inf when empty

	background Color
	current    Color
}

// NewFramebuffer creates a cleared framebuffer with the given dimensions.
// Non-positive dimensions produce an empty buffer that ignores all writes.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:      width,
		Height:     height,
		Pixels:     make([]Color, width*height),
		Depth:      make([]float64, width*height),
		background: ColorSpace,
		current:    ColorWhite,
	}
	fb.Clear()
	return fb
}

// Clear resets every pixel to the background color and every depth to +Inf.
func (fb *Framebuffer) Clear() {
	fill(fb.Pixels, fb.background)
	fill(fb.Depth, math.Inf(1))
}

// fill sets every element of s to v using copy-doubling.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// SetBackgroundColor sets the color used by Clear.
func (fb *Framebuffer) SetBackgroundColor(c Color) { fb.background = c }

// BackgroundColor returns the color used by Clear.
func (fb *Framebuffer) BackgroundColor() Color { return fb.background }

// SetCurrentColor sets the color used by SetPixel and SetPixelDepth.
func (fb *Framebuffer) SetCurrentColor(c Color) { fb.current = c }

// CurrentColor returns the color used by SetPixel and SetPixelDepth.
func (fb *Framebuffer) CurrentColor() Color { return fb.current }

func (fb *Framebuffer) index(x, y int) (int, bool) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, false
	}
	return y*fb.Width + x, true
}

// SetPixel sets (x, y) to the current color. Out-of-range writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int) {
	fb.SetPixelColor(x, y, fb.current)
}

// SetPixelColor sets (x, y) to c. Out-of-range writes are ignored.
func (fb *Framebuffer) SetPixelColor(x, y int, c Color) {
	if i, ok := fb.index(x, y); ok {
		fb.Pixels[i] = c
	}
}

// SetPixelDepth writes the current color at (x, y) if depth is strictly
// nearer than the stored depth. It reports whether the pixel was written.
func (fb *Framebuffer) SetPixelDepth(x, y int, depth float64) bool {
	return fb.SetPixelDepthColor(x, y, depth, fb.current)
}

// SetPixelDepthColor writes c at (x, y) if depth is strictly nearer than the
// stored depth. Ties keep the earlier write. NaN depths never win.
func (fb *Framebuffer) SetPixelDepthColor(x, y int, depth float64, c Color) bool {
	i, ok := fb.index(x, y)
	if !ok || !(depth < fb.Depth[i]) {
		return false
	}
	fb.Depth[i] = depth
	fb.Pixels[i] = c
	return true
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if i, ok := fb.index(x, y); ok {
		return fb.Pixels[i]
	}
	return Color{}
}

// DepthAt returns the stored depth at (x, y), or +Inf if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if i, ok := fb.index(x, y); ok {
		return fb.Depth[i]
	}
	return math.Inf(1)
}

// Snapshot copies the color buffer into a new image.RGBA.
func (fb *Framebuffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		off := y * img.Stride
		for x, c := range row {
			img.Pix[off+x*4+0] = c.R
			img.Pix[off+x*4+1] = c.G
			img.Pix[off+x*4+2] = c.B
			img.Pix[off+x*4+3] = c.A
		}
	}
	return img
}
