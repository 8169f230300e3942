package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Pixels are written without a depth test.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixelColor(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Line draws from a to b in the current color. Endpoints are truncated
// toward zero. Segments that are non-finite or miss the viewport are
// skipped; very long segments are first clipped to a margin around it.
func Line(fb *Framebuffer, a, b math3d.Vec2) {
	a, b, ok := clipSegment(a, b, float64(fb.Width), float64(fb.Height))
	if !ok {
		return
	}
	fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), fb.current)
}

// Polygon draws a closed loop through pts in the current color.
// Fewer than two points draws nothing.
func Polygon(fb *Framebuffer, pts []math3d.Vec2) {
	if len(pts) < 2 {
		return
	}
	for i, p := range pts {
		Line(fb, p, pts[(i+1)%len(pts)])
	}
}

// clipSegment clips a→b to the viewport grown by its own size on every
// side (Liang-Barsky). Segments already inside the margin are returned
// unchanged so their pixels match an unclipped draw.
func clipSegment(a, b math3d.Vec2, w, h float64) (math3d.Vec2, math3d.Vec2, bool) {
	if !a.IsFinite() || !b.IsFinite() {
		return a, b, false
	}
	minX, maxX := -w, 2*w
	minY, maxY := -h, 2*h

	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - minX},
		{d.X, maxX - a.X},
		{-d.Y, a.Y - minY},
		{d.Y, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return a, b, false
		}
	}

	if t1 < 1 {
		b = a.Add(d.Scale(t1))
	}
	if t0 > 0 {
		a = a.Add(d.Scale(t0))
	}
	return a, b, true
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := max(y, 0); py < min(y+h, fb.Height); py++ {
		for px := max(x, 0); px < min(x+w, fb.Width); px++ {
			fb.Pixels[py*fb.Width+px] = c
		}
	}
}

// DrawRectOutline draws a rectangle outline.
func (fb *Framebuffer) DrawRectOutline(x, y, w, h int, c Color) {
	// Top and bottom
	for px := x; px < x+w; px++ {
		fb.SetPixelColor(px, y, c)
		fb.SetPixelColor(px, y+h-1, c)
	}
	// Left and right
	for py := y; py < y+h; py++ {
		fb.SetPixelColor(x, py, c)
		fb.SetPixelColor(x+w-1, py, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
