package nestbox

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// DefaultBackground is the clear color of rendered frames.
var DefaultBackground = Color{R: 0.07, G: 0.07, B: 0.07}

// SnapshotOptions controls RenderSnapshot. Width and Height are the logical
// surface size; PixelScale is the nearest-neighbor upscale factor applied
// afterwards.
type SnapshotOptions struct {
	Width, Height int
	PixelScale    int
	Background    Color
	// Border draws a one pixel outline at half brightness around each box.
	Border bool
}

func (o SnapshotOptions) withDefaults() SnapshotOptions {
	if o.Width <= 0 {
		o.Width = 128
	}
	if o.Height <= 0 {
		o.Height = 96
	}
	if o.PixelScale <= 0 {
		o.PixelScale = 1
	}
	if o.Background == (Color{}) {
		o.Background = DefaultBackground
	}
	return o
}

// RenderSnapshot rasterizes records in order onto a new image. Records are
// expected in paint order, as returned by Flatten.
func RenderSnapshot(records []Record, opts SnapshotOptions) image.Image {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(opts.Background.R, opts.Background.G, opts.Background.B)
	dc.Clear()

	for _, rec := range records {
		c := rec.Box.Color
		r := rec.Bounds()
		r.W, r.H = max(r.W, 1), max(r.H, 1)
		dc.DrawRectangle(r.X, r.Y, r.W, r.H)
		dc.SetRGB(c.R, c.G, c.B)
		dc.Fill()
		if opts.Border && r.W > 1 && r.H > 1 {
			bc := c.Scale(0.5)
			dc.SetLineWidth(1)
			dc.DrawRectangle(r.X+0.5, r.Y+0.5, r.W-1, r.H-1)
			dc.SetRGB(bc.R, bc.G, bc.B)
			dc.Stroke()
		}
	}

	img := dc.Image()
	if opts.PixelScale == 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width*opts.PixelScale, opts.Height*opts.PixelScale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WriteSnapshotPNG encodes img as a PNG file at path, creating parent
// directories as needed.
func WriteSnapshotPNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// SnapshotPath builds a timestamped PNG path for label inside dir.
func SnapshotPath(dir, label string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", at.Format("20060102_150405"), SanitizeLabel(label)))
}

// SanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// RGBA8 converts c to an opaque 8-bit color.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: 0xff}
}

func unit8(v float64) uint8 {
	return uint8(clamp(v, 0, 1)*255 + 0.5)
}
