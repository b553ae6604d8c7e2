/*
Package pff2test builds PFF2 font data for tests.

Fonts are described by a Font value and serialized by Font.Bytes. For
malformed input, tests may assemble files from raw sections:

    data := pff2test.Concat(
        pff2test.Section("FILE", []byte("PFF2")),
        pff2test.Section("CHIX", make([]byte, 10)),
        pff2test.OpenSection("DATA", nil),
    )

*/
package pff2test

import (
	"encoding/binary"
	"strings"
)

// Glyph describes a glyph to be serialized. Rows holds the bitmap as
// strings, one per bitmap row, where 'X' or '#' denote set pixels and
// any other character a clear pixel. Width and Height are derived from
// Rows unless set explicitly.
type Glyph struct {
	CodePoint   rune
	Flags       byte
	Width       uint16
	Height      uint16
	XOffset     int16
	YOffset     int16
	DeviceWidth int16
	Rows        []string
}

// Size returns the glyph's width and height.
func (g Glyph) Size() (uint16, uint16) {
	w, h := g.Width, g.Height
	if h == 0 {
		h = uint16(len(g.Rows))
	}
	if w == 0 && len(g.Rows) > 0 {
		w = uint16(len(g.Rows[0]))
	}
	return w, h
}

// Bytes returns the glyph definition: header plus packed bitmap.
func (g Glyph) Bytes() []byte {
	w, h := g.Size()
	b := make([]byte, 10, 10+(int(w)*int(h)+7)/8)
	binary.BigEndian.PutUint16(b[0:], w)
	binary.BigEndian.PutUint16(b[2:], h)
	binary.BigEndian.PutUint16(b[4:], uint16(g.XOffset))
	binary.BigEndian.PutUint16(b[6:], uint16(g.YOffset))
	binary.BigEndian.PutUint16(b[8:], uint16(g.DeviceWidth))
	return append(b, PackBits(g.Rows, int(w), int(h))...)
}

// PackBits packs a bitmap given as strings into ⌈w·h/8⌉ bytes, row-major
// and MSB-first, without padding at row ends.
func PackBits(rows []string, w, h int) []byte {
	bits := make([]byte, (w*h+7)/8)
	i := 0
	for y := 0; y < h; y++ {
		var row string
		if y < len(rows) {
			row = rows[y]
		}
		for x := 0; x < w; x++ {
			if x < len(row) && (row[x] == 'X' || row[x] == '#') {
				bits[i/8] |= 0x80 >> (i % 8)
			}
			i++
		}
	}
	return bits
}

// Font describes a font to be serialized. Sections with zero values are
// omitted, except for the FILE, CHIX and DATA sections.
type Font struct {
	Name, Family, Weight, Slant string
	PointSize                   uint16
	MaxWidth, MaxHeight         uint16
	Ascent, Descent             uint16
	Glyphs                      []Glyph
	Extra                       [][]byte // raw sections inserted before CHIX
}

// Bytes serializes the font. Glyph definitions follow the DATA section
// header in the order of f.Glyphs; the character index references them by
// absolute offset.
func (f Font) Bytes() []byte {
	head := [][]byte{Section("FILE", []byte("PFF2"))}
	text := func(tag, s string) {
		if s != "" {
			head = append(head, Section(tag, append([]byte(s), 0)))
		}
	}
	num := func(tag string, n uint16) {
		if n != 0 {
			head = append(head, U16Section(tag, n))
		}
	}
	text("NAME", f.Name)
	text("FAMI", f.Family)
	text("WEIG", f.Weight)
	text("SLAN", f.Slant)
	num("PTSZ", f.PointSize)
	num("MAXW", f.MaxWidth)
	num("MAXH", f.MaxHeight)
	num("ASCE", f.Ascent)
	num("DESC", f.Descent)
	head = append(head, f.Extra...)
	prefix := Concat(head...)
	// glyph data starts after CHIX and the DATA header
	offset := len(prefix) + 8 + 9*len(f.Glyphs) + 8
	chix := make([]byte, 0, 9*len(f.Glyphs))
	var data []byte
	for _, g := range f.Glyphs {
		chix = append(chix, Record(g.CodePoint, g.Flags, uint32(offset))...)
		def := g.Bytes()
		data = append(data, def...)
		offset += len(def)
	}
	return Concat(prefix, Section("CHIX", chix), OpenSection("DATA", data))
}

// Record returns a 9-byte character index record.
func Record(r rune, flags byte, offset uint32) []byte {
	b := make([]byte, 9)
	binary.BigEndian.PutUint32(b[0:], uint32(r))
	b[4] = flags
	binary.BigEndian.PutUint32(b[5:], offset)
	return b
}

// Section returns a section with the given tag and body. Tags shorter than
// 4 bytes are padded with spaces.
func Section(tag string, body []byte) []byte {
	return header(tag, uint32(len(body)), body)
}

// OpenSection returns a section with length 0xFFFFFFFF, followed by body.
func OpenSection(tag string, body []byte) []byte {
	return header(tag, 0xFFFFFFFF, body)
}

// U16Section returns a section holding a single big-endian uint16.
func U16Section(tag string, n uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, n)
	return Section(tag, b)
}

func header(tag string, length uint32, body []byte) []byte {
	b := make([]byte, 8, 8+len(body))
	copy(b, (tag + strings.Repeat(" ", 4))[:4])
	binary.BigEndian.PutUint32(b[4:], length)
	return append(b, body...)
}

// Concat concatenates byte slices.
func Concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	b := make([]byte, 0, n)
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}
