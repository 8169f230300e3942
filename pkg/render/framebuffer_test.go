package render

import (
	"math"
	"testing"
)

func TestNewFramebufferStartsCleared(t *testing.T) {
	fb := NewFramebuffer(8, 4)
	if len(fb.Pixels) != 32 || len(fb.Depth) != 32 {
		t.Fatalf("buffer sizes = %d/%d, want 32", len(fb.Pixels), len(fb.Depth))
	}
	for i := range fb.Pixels {
		if fb.Pixels[i] != ColorSpace {
			t.Fatalf("pixel %d = %v, want background", i, fb.Pixels[i])
		}
		if !math.IsInf(fb.Depth[i], 1) {
			t.Fatalf("depth %d = %v, want +Inf", i, fb.Depth[i])
		}
	}
	if fb.CurrentColor() != ColorWhite {
		t.Errorf("current color = %v, want white", fb.CurrentColor())
	}
}

func TestClearResetsBothGrids(t *testing.T) {
	fb := NewFramebuffer(5, 3)
	fb.SetBackgroundColor(ColorRed)
	fb.SetPixelDepthColor(2, 1, 0.5, ColorGreen)
	fb.Clear()

	if got := fb.GetPixel(2, 1); got != ColorRed {
		t.Errorf("pixel after clear = %v, want red", got)
	}
	if d := fb.DepthAt(2, 1); !math.IsInf(d, 1) {
		t.Errorf("depth after clear = %v, want +Inf", d)
	}
	if fb.BackgroundColor() != ColorRed {
		t.Errorf("BackgroundColor = %v", fb.BackgroundColor())
	}
}

func TestSetPixelDepthStrictLess(t *testing.T) {
	fb := NewFramebuffer(4, 4)

	tests := []struct {
		name  string
		depth float64
		color Color
		want  bool
	}{
		{"first write", 2, ColorRed, true},
		{"tie keeps first", 2, ColorBlue, false},
		{"farther loses", 3, ColorBlue, false},
		{"nearer wins", 1, ColorGreen, true},
		{"NaN never wins", math.NaN(), ColorYellow, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := fb.SetPixelDepthColor(1, 1, tc.depth, tc.color); got != tc.want {
				t.Errorf("SetPixelDepthColor = %v, want %v", got, tc.want)
			}
		})
	}

	if got := fb.GetPixel(1, 1); got != ColorGreen {
		t.Errorf("final pixel = %v, want green", got)
	}
	if got := fb.DepthAt(1, 1); got != 1 {
		t.Errorf("final depth = %v, want 1", got)
	}
}

func TestSetPixelDepthUsesCurrentColor(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetCurrentColor(ColorCyan)
	if !fb.SetPixelDepth(0, 0, 5) {
		t.Fatal("SetPixelDepth rejected first write")
	}
	if got := fb.GetPixel(0, 0); got != ColorCyan {
		t.Errorf("pixel = %v, want cyan", got)
	}
}

func TestOutOfRangeWritesAreIgnored(t *testing.T) {
	fb := NewFramebuffer(6, 6)
	before := append([]Color(nil), fb.Pixels...)
	beforeDepth := append([]float64(nil), fb.Depth...)

	coords := [][2]int{{-1, 0}, {0, -1}, {6, 0}, {0, 6}, {-100, 100}, {math.MaxInt32, 3}}
	for _, c := range coords {
		fb.SetPixel(c[0], c[1])
		fb.SetPixelColor(c[0], c[1], ColorRed)
		if fb.SetPixelDepth(c[0], c[1], -1) {
			t.Errorf("SetPixelDepth(%d,%d) reported a write", c[0], c[1])
		}
		if got := fb.GetPixel(c[0], c[1]); got != (Color{}) {
			t.Errorf("GetPixel(%d,%d) = %v, want zero", c[0], c[1], got)
		}
		if d := fb.DepthAt(c[0], c[1]); !math.IsInf(d, 1) {
			t.Errorf("DepthAt(%d,%d) = %v, want +Inf", c[0], c[1], d)
		}
	}

	for i := range before {
		if fb.Pixels[i] != before[i] || fb.Depth[i] != beforeDepth[i] {
			t.Fatalf("in-range cell %d mutated by out-of-range write", i)
		}
	}
}

func TestEmptyFramebuffer(t *testing.T) {
	fb := NewFramebuffer(-3, 0)
	fb.Clear()
	fb.SetPixel(0, 0)
	if fb.Width != 0 || fb.Height != 0 || len(fb.Pixels) != 0 {
		t.Errorf("empty framebuffer = %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixelColor(2, 1, ColorRed)

	img := fb.Snapshot()
	if got := img.RGBAAt(2, 1); got != ColorRed {
		t.Errorf("snapshot pixel = %v, want red", got)
	}

	fb.SetPixelColor(2, 1, ColorBlue)
	if got := img.RGBAAt(2, 1); got != ColorRed {
		t.Error("snapshot changed after framebuffer write")
	}
}

func BenchmarkClear(b *testing.B) {
	fb := NewFramebuffer(320, 200)
	for b.Loop() {
		fb.Clear()
	}
}
