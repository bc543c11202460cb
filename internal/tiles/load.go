// Package tiles turns a source picture into bordered per-cell bitmaps and
// composes a board arrangement back into a single canvas.
package tiles

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrCanvasTooSmall is returned when the canvas cannot hold a bordered tile
// per cell.
var ErrCanvasTooSmall = errors.New("tiles: canvas too small for level")

// minTileSide is the smallest tile that still has an interior inside its border.
const minTileSide = 3

// Load decodes an image file in any registered format.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tiles: cannot open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tiles: cannot decode %s: %w", path, err)
	}
	return img, nil
}

// Fit scales src to the largest size that fits within width×height while
// keeping its aspect ratio, then trims it to a multiple of n on both axes so
// every cell has the same integral size.
func Fit(src image.Image, width, height, n int) (*image.RGBA, error) {
	sb := src.Bounds()
	if sb.Empty() {
		return nil, fmt.Errorf("tiles: empty source image")
	}

	sw, sh := sb.Dx(), sb.Dy()
	fw, fh := width, sh*width/sw
	if fh > height {
		fw, fh = sw*height/sh, height
	}

	tw, th := fw/n, fh/n
	if tw < minTileSide || th < minTileSide {
		return nil, fmt.Errorf("%w: %dx%d canvas, level %d", ErrCanvasTooSmall, width, height, n)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw*n, th*n))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	return dst, nil
}
