package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned when an export path has an extension
// with no known encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

type encoder func(w io.Writer, img image.Image) error

var encoders = map[string]encoder{
	".png": png.Encode,
	".webp": func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	},
	".tga": tga.Encode,
	".bmp": bmp.Encode,
}

// Formats lists the file extensions accepted by Export.
func Formats() []string {
	return []string{".png", ".webp", ".tga", ".bmp"}
}

// Export writes a snapshot of the color buffer to path. The encoder is
// chosen from the file extension.
func (fb *Framebuffer) Export(path string) error {
	return fb.ExportScaled(path, 1)
}

// ExportScaled writes a snapshot enlarged by an integer factor using
// nearest-neighbor sampling. Factors below 2 export at native size.
func (fb *Framebuffer) ExportScaled(path string, factor int) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}

	var img image.Image = fb.Snapshot()
	if factor > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := enc(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string) (encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return enc, nil
}
