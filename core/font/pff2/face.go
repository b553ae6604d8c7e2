package pff2

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face is a font.Face drawing glyphs from a font's atlas. The atlas is used
// as the glyph mask, so glyphs are drawn in whatever color the source of a
// font.Drawer provides.
//
// Faces are bitmap faces: all metrics are whole pixels.
type Face struct {
	f *Font
}

var _ font.Face = (*Face)(nil)

// NewFace creates a font.Face for a parsed font.
func NewFace(f *Font) *Face {
	return &Face{f: f}
}

// Close is part of interface font.Face. It is a no-op.
func (face *Face) Close() error {
	return nil
}

// Glyph is part of interface font.Face.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	//
	bm, ok := face.f.Bitmaps[r]
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Round() + bm.XOffset
	y := dot.Y.Round() - bm.YOffset - bm.Rect.Dy()
	dr = image.Rect(x, y, x+bm.Rect.Dx(), y+bm.Rect.Dy())
	return dr, face.f.Atlas, bm.Rect.Min, fixed.I(bm.DeviceWidth), true
}

// GlyphBounds is part of interface font.Face.
func (face *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	bm, ok := face.f.Bitmaps[r]
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds = fixed.R(bm.XOffset, -bm.YOffset-bm.Rect.Dy(), bm.XOffset+bm.Rect.Dx(), -bm.YOffset)
	return bounds, fixed.I(bm.DeviceWidth), true
}

// GlyphAdvance is part of interface font.Face.
func (face *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	bm, ok := face.f.Bitmaps[r]
	if !ok {
		return 0, false
	}
	return fixed.I(bm.DeviceWidth), true
}

// Kern is part of interface font.Face. PFF2 fonts carry no kerning
// information, Kern always returns 0.
func (face *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics is part of interface font.Face.
func (face *Face) Metrics() font.Metrics {
	m := face.f.Metrics
	return font.Metrics{
		Height:  fixed.I(int(m.Ascent) + int(m.Descent)),
		Ascent:  fixed.I(int(m.Ascent)),
		Descent: fixed.I(int(m.Descent)),
	}
}
