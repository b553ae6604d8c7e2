package pff2

import (
	"image"

	"seehuhn.de/go/geom/vec"
)

// Glyph is the normalized geometry of a glyph.
//
// TexCoord and TexSize locate the glyph's bitmap within the atlas, relative
// to the atlas dimensions. Offset, Size and Advance are in em units, i.e.
// relative to the font's point size.
type Glyph struct {
	TexCoord vec.Vec2 // top-left corner in atlas
	TexSize  vec.Vec2 // extent in atlas
	Offset   vec.Vec2 // bitmap offset from the pen position
	Size     vec.Vec2 // bitmap size
	Advance  float64  // horizontal advance of the pen (device width)
}

// Bitmap is the pixel-level placement of a glyph. Rect is the glyph's area
// within the atlas, which may be empty for glyphs without pixels
// (e.g., space), but is always located at the glyph's cell.
// YOffset is the distance from the baseline to the bottom of the bitmap,
// positive upwards.
type Bitmap struct {
	Rect        image.Rectangle
	XOffset     int
	YOffset     int
	DeviceWidth int
}

const glyphHeaderLen = 10

// glyphDef is the fixed-size header of a glyph definition.
type glyphDef struct {
	width, height uint16
	xOffset       int16
	yOffset       int16
	deviceWidth   int16
}

// bitmapLen returns the number of bytes of the packed bitmap.
func (d glyphDef) bitmapLen() int {
	return (int(d.width)*int(d.height) + 7) / 8
}

// readGlyphDef reads the glyph definition at offset within the font data
// and returns its header and packed bitmap.
func readGlyphDef(data binarySegm, offset uint32) (glyphDef, binarySegm, error) {
	pos := int(offset)
	hdr, ok := data.view(pos, glyphHeaderLen)
	if !ok {
		return glyphDef{}, nil, errFormat(TruncatedInput, pos,
			"glyph definition needs %d bytes", glyphHeaderLen)
	}
	def := glyphDef{}
	def.width, _ = hdr.u16(0)
	def.height, _ = hdr.u16(2)
	def.xOffset, _ = hdr.i16(4)
	def.yOffset, _ = hdr.i16(6)
	def.deviceWidth, _ = hdr.i16(8)
	bits, ok := data.view(pos+glyphHeaderLen, def.bitmapLen())
	if !ok {
		return def, nil, errFormat(TruncatedInput, pos+glyphHeaderLen,
			"bitmap of %d×%d glyph needs %d bytes", def.width, def.height, def.bitmapLen())
	}
	return def, bits, nil
}

// glyphDecoder decodes glyph definitions into the cells of an atlas.
// Decoding different sequence indices writes to disjoint pixel ranges,
// so a glyphDecoder may be used from several goroutines at once.
type glyphDecoder struct {
	data    binarySegm
	metrics Metrics
	layout  Layout
	atlas   *Atlas
}

// decode reads the glyph definition of index entry e, unpacks its bitmap
// into the atlas and returns the glyph's geometry.
func (d *glyphDecoder) decode(e indexEntry) (Glyph, Bitmap, error) {
	def, bits, err := readGlyphDef(d.data, e.offset)
	if err != nil {
		return Glyph{}, Bitmap{}, err
	}
	if int(def.width) > d.layout.CellWidth || int(def.height) > d.layout.CellHeight {
		return Glyph{}, Bitmap{}, errFormat(OversizedGlyph, int(e.offset),
			"glyph U+%04X is %d×%d, cell is %d×%d", e.r, def.width, def.height,
			d.layout.CellWidth, d.layout.CellHeight)
	}
	origin := d.layout.Cell(e.seq)
	d.unpack(origin, def, bits)
	return d.normalize(origin, def), Bitmap{
		Rect:        image.Rect(origin.X, origin.Y, origin.X+int(def.width), origin.Y+int(def.height)),
		XOffset:     int(def.xOffset),
		YOffset:     int(def.yOffset),
		DeviceWidth: int(def.deviceWidth),
	}, nil
}

// unpack sets the atlas pixels for all set bits of a glyph's bitmap.
// Bits are consumed MSB-first, and the bit index continues across rows.
// Clear bits leave the atlas untouched.
func (d *glyphDecoder) unpack(origin image.Point, def glyphDef, bits binarySegm) {
	w, h := int(def.width), int(def.height)
	i := 0
	for y := 0; y < h; y++ {
		row := d.atlas.Pix[(origin.Y+y)*d.atlas.Width+origin.X:]
		for x := 0; x < w; x++ {
			if bits[i>>3]&(0x80>>uint(i&7)) != 0 {
				row[x] = opaque
			}
			i++
		}
	}
}

func (d *glyphDecoder) normalize(origin image.Point, def glyphDef) Glyph {
	aw, ah := float64(d.atlas.Width), float64(d.atlas.Height)
	pt := float64(d.metrics.PointSize)
	w, h := float64(def.width), float64(def.height)
	return Glyph{
		TexCoord: vec.Vec2{X: float64(origin.X) / aw, Y: float64(origin.Y) / ah},
		TexSize:  vec.Vec2{X: w / aw, Y: h / ah},
		Offset:   vec.Vec2{X: float64(def.xOffset) / pt, Y: float64(def.yOffset) / pt},
		Size:     vec.Vec2{X: w / pt, Y: h / pt},
		Advance:  float64(def.deviceWidth) / pt,
	}
}
