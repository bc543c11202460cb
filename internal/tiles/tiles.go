package tiles

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/jerch/sixel-puzzle/internal/core"
)

// Variant selects which bitmap of a tile is drawn.
type Variant int

const (
	Plain Variant = iota
	Highlighted
)

// plainBorderMix is how far the plain border is pulled from background
// toward foreground.
const plainBorderMix = 0.25

// Palette holds the terminal colors tiles are framed with.
type Palette struct {
	Foreground core.RGB
	Background core.RGB
}

// PlainBorder is the border color of tiles that are not selected.
func (p Palette) PlainBorder() core.RGB {
	return p.Background.Blend(p.Foreground, plainBorderMix)
}

// HighlightBorder is the border color of the selected tile.
func (p Palette) HighlightBorder() core.RGB {
	return p.Foreground
}

// Cell is one slot of an arrangement to compose.
// Tile is the identity to draw, or negative for the gap.
type Cell struct {
	Tile    int
	Variant Variant
}

// Set holds both bordered variants of every cell of a fitted picture.
type Set struct {
	n        int
	tileW    int
	tileH    int
	palette  Palette
	complete *image.RGBA
	variants [2][]*image.RGBA
}

// Slice cuts a fitted picture into n×n tiles with a 1px border each.
// The picture must be exactly n*tileW × n*tileH.
func Slice(fitted *image.RGBA, n int, palette Palette) (*Set, error) {
	b := fitted.Bounds()
	if n < core.MinLevel || b.Dx()%n != 0 || b.Dy()%n != 0 {
		return nil, fmt.Errorf("tiles: %dx%d picture does not split into %d columns and rows", b.Dx(), b.Dy(), n)
	}
	tw, th := b.Dx()/n, b.Dy()/n
	if tw < minTileSide || th < minTileSide {
		return nil, fmt.Errorf("%w: tile %dx%d", ErrCanvasTooSmall, tw, th)
	}

	s := &Set{
		n:        n,
		tileW:    tw,
		tileH:    th,
		palette:  palette,
		complete: fitted,
	}
	borders := [2]core.RGB{palette.PlainBorder(), palette.HighlightBorder()}

	for v := range s.variants {
		s.variants[v] = make([]*image.RGBA, n*n)
		for i := range s.variants[v] {
			s.variants[v][i] = s.cut(i, borders[v])
		}
	}
	return s, nil
}

// cut builds one bordered tile for cell i.
func (s *Set) cut(i int, border core.RGB) *image.RGBA {
	tile := image.NewRGBA(image.Rect(0, 0, s.tileW, s.tileH))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(border.RGBA()), image.Point{}, draw.Src)

	cell := s.CellRect(i)
	inner := cell.Inset(1)
	dst := image.Rect(1, 1, s.tileW-1, s.tileH-1)
	src := s.complete.Bounds().Min.Add(image.Pt(inner.X, inner.Y))
	draw.Draw(tile, dst, s.complete, src, draw.Src)
	return tile
}

// Level returns the board side the set was cut for.
func (s *Set) Level() int {
	return s.n
}

// TileSize returns the pixel size of a single tile.
func (s *Set) TileSize() (w, h int) {
	return s.tileW, s.tileH
}

// Bounds returns the canvas size that Compose produces.
func (s *Set) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.n*s.tileW, s.n*s.tileH)
}

// CellRect returns the canvas rectangle of row-major cell i.
func (s *Set) CellRect(i int) core.Rect {
	p := core.PosOf(i, s.n)
	return core.NewRect(p.Col*s.tileW, p.Row*s.tileH, s.tileW, s.tileH)
}

// Tile returns the bitmap of an identity in the given variant.
func (s *Set) Tile(id int, v Variant) *image.RGBA {
	return s.variants[v][id]
}

// Complete returns the full fitted picture without borders.
func (s *Set) Complete() *image.RGBA {
	return s.complete
}

// Compose pastes every non-gap cell at its slot into a fresh canvas filled
// with the background color.
func (s *Set) Compose(cells []Cell) *image.RGBA {
	canvas := image.NewRGBA(s.Bounds())
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(s.palette.Background.RGBA()), image.Point{}, draw.Src)

	for i, c := range cells {
		if c.Tile < 0 || i >= s.n*s.n {
			continue
		}
		r := s.CellRect(i)
		dst := image.Rect(r.X, r.Y, r.Right(), r.Bottom())
		draw.Draw(canvas, dst, s.Tile(c.Tile, c.Variant), image.Point{}, draw.Src)
	}
	return canvas
}
