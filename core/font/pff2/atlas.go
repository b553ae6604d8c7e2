package pff2

import (
	"image"
	"image/color"
	"math"
)

// Layout is the grid of cells of a glyph atlas. Every glyph occupies one
// cell of MaxWidth × MaxHeight pixels, cells are filled row by row in
// sequence order of the character index.
type Layout struct {
	Count      int // number of glyphs
	Columns    int
	Rows       int
	CellWidth  int
	CellHeight int
}

// MaxAtlasPixels limits the size of an atlas. A 16×16 font covering the
// whole Basic Multilingual Plane needs about 2^22 pixels.
const MaxAtlasPixels = 1 << 27

// PackLayout computes a near-square atlas layout for n glyphs with cells of
// maxWidth × maxHeight pixels. The column count is weighted by the cell's
// aspect ratio, i.e. taller cells produce fewer columns:
//
//     columns = ⌈√(n · maxHeight / maxWidth)⌉
//
// The layout depends on its three arguments only. Layouts exceeding
// MaxAtlasPixels fail with OversizedGlyph.
func PackLayout(n int, maxWidth, maxHeight uint16) (Layout, error) {
	if maxWidth == 0 || maxHeight == 0 {
		return Layout{}, errFormat(MissingMetrics, -1, "cell size %d×%d", maxWidth, maxHeight)
	}
	if n <= 0 {
		return Layout{}, errFormat(EmptyIndex, -1, "character index is empty")
	}
	cols := int(math.Ceil(math.Sqrt(float64(n) * float64(maxHeight) / float64(maxWidth))))
	if cols < 1 {
		cols = 1
	}
	lt := Layout{
		Count:      n,
		Columns:    cols,
		Rows:       (n + cols - 1) / cols,
		CellWidth:  int(maxWidth),
		CellHeight: int(maxHeight),
	}
	if px := int64(lt.Width()) * int64(lt.Height()); px > MaxAtlasPixels {
		return Layout{}, errFormat(OversizedGlyph, -1,
			"atlas of %d×%d pixels exceeds limit of %d pixels", lt.Width(), lt.Height(), MaxAtlasPixels)
	}
	return lt, nil
}

// Width returns the atlas width in pixels.
func (lt Layout) Width() int {
	return lt.Columns * lt.CellWidth
}

// Height returns the atlas height in pixels.
func (lt Layout) Height() int {
	return lt.Rows * lt.CellHeight
}

// Cell returns the top-left pixel of the cell for sequence index seq.
func (lt Layout) Cell(seq int) image.Point {
	return image.Pt((seq%lt.Columns)*lt.CellWidth, (seq/lt.Columns)*lt.CellHeight)
}

// --- Atlas -----------------------------------------------------------------

// Atlas is an RGBA image holding the bitmaps of all glyphs of a font.
// Set pixels of a glyph are opaque white, all other pixels are transparent
// black. Atlas implements image.Image, with the alpha channel usable as a
// mask.
type Atlas struct {
	Width, Height int
	Pix           []color.RGBA // row-major, len(Pix) == Width*Height
}

var _ image.Image = (*Atlas)(nil)

var opaque = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func newAtlas(lt Layout) *Atlas {
	w, h := lt.Width(), lt.Height()
	return &Atlas{
		Width:  w,
		Height: h,
		Pix:    make([]color.RGBA, w*h),
	}
}

// ColorModel is part of interface image.Image.
func (a *Atlas) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds is part of interface image.Image.
func (a *Atlas) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.Width, a.Height)
}

// At is part of interface image.Image.
func (a *Atlas) At(x, y int) color.Color {
	return a.RGBAAt(x, y)
}

// RGBAAt returns the pixel at (x, y), or transparent black for positions
// outside the atlas.
func (a *Atlas) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return color.RGBA{}
	}
	return a.Pix[y*a.Width+x]
}

// ToRGBA copies the atlas into an *image.RGBA, e.g. for encoding it as PNG
// or uploading it as a texture.
func (a *Atlas) ToRGBA() *image.RGBA {
	img := image.NewRGBA(a.Bounds())
	for i, p := range a.Pix {
		img.Pix[i*4+0] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = p.A
	}
	return img
}
