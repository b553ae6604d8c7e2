package pff2

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/glyphatlas/core/font/pff2/pff2test"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestPackLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	cases := []struct {
		n          int
		w, h       uint16
		cols, rows int
		aw, ah     int
	}{
		{2, 8, 8, 2, 1, 16, 8},
		{1, 8, 16, 2, 1, 16, 16},
		{4, 8, 8, 2, 2, 16, 16},
		{5, 8, 8, 3, 2, 24, 16},
		{10, 16, 8, 3, 4, 48, 32},
		{100, 8, 16, 15, 7, 120, 112},
	}
	for _, c := range cases {
		lt, err := PackLayout(c.n, c.w, c.h)
		if err != nil {
			t.Fatal(err)
		}
		if lt.Columns != c.cols || lt.Rows != c.rows || lt.Width() != c.aw || lt.Height() != c.ah {
			t.Errorf("n=%d, cell %d×%d: expected %d×%d cells / %d×%d px, have %d×%d cells / %d×%d px",
				c.n, c.w, c.h, c.cols, c.rows, c.aw, c.ah, lt.Columns, lt.Rows, lt.Width(), lt.Height())
		}
		if lt.Columns*lt.Rows < c.n {
			t.Errorf("n=%d: layout has too few cells", c.n)
		}
	}
}

func TestPackLayoutErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	if _, err := PackLayout(3, 0, 8); !errors.Is(err, MissingMetrics) {
		t.Errorf("expected MissingMetrics for zero width, have %v", err)
	}
	if _, err := PackLayout(3, 8, 0); !errors.Is(err, MissingMetrics) {
		t.Errorf("expected MissingMetrics for zero height, have %v", err)
	}
	if _, err := PackLayout(0, 8, 8); !errors.Is(err, EmptyIndex) {
		t.Errorf("expected EmptyIndex for zero glyphs, have %v", err)
	}
	if _, err := PackLayout(1, 65535, 65535); !errors.Is(err, OversizedGlyph) {
		t.Errorf("expected OversizedGlyph for 65535×65535 atlas, have %v", err)
	}
	if _, err := PackLayout(1, 8192, 16384); err != nil {
		t.Errorf("expected atlas of exactly MaxAtlasPixels to be accepted, have %v", err)
	}
}

func TestHugeCellsRejectedBeforeAllocation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	desc := pff2test.Font{
		PointSize: 8,
		MaxWidth:  65535,
		MaxHeight: 65535,
		Glyphs: []pff2test.Glyph{
			{CodePoint: 'A', DeviceWidth: 2, Rows: []string{"X"}},
		},
	}
	atlas, _, err := Load(desc.Bytes())
	if KindOf(err) != OversizedGlyph {
		t.Fatalf("expected OversizedGlyph, have %v", err)
	}
	if atlas != nil {
		t.Errorf("expected no atlas, have %d×%d", atlas.Width, atlas.Height)
	}
}

func TestLayoutCells(t *testing.T) {
	lt, _ := PackLayout(5, 8, 10)
	// columns = ⌈√(5·10/8)⌉ = ⌈2.5⌉ = 3
	expect := []image.Point{{0, 0}, {8, 0}, {16, 0}, {0, 10}, {8, 10}}
	for seq, p := range expect {
		if c := lt.Cell(seq); c != p {
			t.Errorf("expected cell %d at %v, is at %v", seq, p, c)
		}
	}
}

func TestAtlasImage(t *testing.T) {
	lt, _ := PackLayout(2, 4, 4)
	a := newAtlas(lt)
	if a.Bounds() != image.Rect(0, 0, 8, 4) || len(a.Pix) != 32 {
		t.Fatalf("unexpected atlas geometry %v, %d pixels", a.Bounds(), len(a.Pix))
	}
	a.Pix[1*a.Width+5] = opaque
	if a.At(5, 1) != color.Color(opaque) {
		t.Errorf("expected pixel (5,1) to be opaque, is %v", a.At(5, 1))
	}
	if a.RGBAAt(9, 1) != (color.RGBA{}) {
		t.Errorf("expected pixel outside of atlas to be transparent")
	}
	rgba := a.ToRGBA()
	if rgba.RGBAAt(5, 1) != opaque || rgba.RGBAAt(4, 1) != (color.RGBA{}) {
		t.Errorf("RGBA copy of atlas differs from atlas")
	}
}
