package pff2

import (
	"errors"
	"testing"

	"github.com/npillmayer/glyphatlas/core/font/pff2/pff2test"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	tag := Tag(0x43484958)
	if tag.String() != "CHIX" {
		t.Errorf("expected tag 0x43484958 to be 'CHIX', is %s", tag.String())
	}
	if tag = MakeTag([]byte("DATA")); tag != tagDATA {
		t.Errorf("expected tag MakeTag(DATA) to be 'DATA', is %s", tag.String())
	}
	if T("ab").String() != "ab  " {
		t.Errorf("expected short tag to be padded with spaces, is %q", T("ab").String())
	}
	if MakeTag([]byte("ab")) != 0 {
		t.Errorf("expected tag of short byte slice to be 0")
	}
}

func TestSectionCursorAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	data := pff2test.Concat(
		pff2test.Section("FILE", []byte("PFF2")),
		pff2test.U16Section("PTSZ", 16),
		pff2test.Section("XTRA", nil),
		pff2test.OpenSection("DATA", []byte{1, 2, 3}),
	)
	c := sectionCursor{data: data}
	expect := []struct {
		tag    string
		start  int
		length int
		more   bool
	}{
		{"FILE", 8, 4, true},
		{"PTSZ", 20, 2, true},
		{"XTRA", 30, 0, true},
		{"DATA", 38, 3, false},
	}
	for i, x := range expect {
		more, err := c.advance()
		if err != nil {
			t.Fatalf("section %d: unexpected error %v", i, err)
		}
		if c.tag.String() != x.tag || c.start != x.start || c.length != x.length || more != x.more {
			t.Errorf("section %d: expected %s@%d+%d (more=%v), have %s@%d+%d (more=%v)",
				i, x.tag, x.start, x.length, x.more, c.tag, c.start, c.length, more)
		}
	}
}

func TestSectionCursorTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	inputs := map[string][]byte{
		"empty":          {},
		"short header":   []byte("FILE\x00\x00"),
		"body too short": pff2test.Concat(pff2test.Section("FILE", []byte("PFF2")), []byte("NAME\x00\x00\x00\x20abc")),
		"no DATA":        pff2test.Section("FILE", []byte("PFF2")),
	}
	for name, data := range inputs {
		_, _, err := Load(data)
		if !errors.Is(err, TruncatedInput) {
			t.Errorf("%s: expected TruncatedInput, have %v", name, err)
		}
	}
}

func TestSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	_, _, err := Load(pff2test.Concat(pff2test.Section("XXXX", []byte("PFF2"))))
	var ferr *FormatError
	if !errors.As(err, &ferr) || ferr.Kind != BadSignature {
		t.Fatalf("expected BadSignature, have %v", err)
	}
	if ferr.Expected != "FILE" || ferr.Found != "XXXX" {
		t.Errorf("expected error to carry FILE/XXXX, has %q/%q", ferr.Expected, ferr.Found)
	}
	_, _, err = Load(pff2test.Section("FILE", []byte("PFF1")))
	if !errors.As(err, &ferr) || ferr.Kind != BadMagic || ferr.Found != "PFF1" {
		t.Errorf("expected BadMagic with content PFF1, have %v", err)
	}
	_, _, err = Load(pff2test.Section("FILE", []byte("PFF2x")))
	if !errors.Is(err, BadMagic) {
		t.Errorf("expected BadMagic for 5-byte FILE section, have %v", err)
	}
	_, _, err = Load(pff2test.Section("\xff\xfeIL", []byte("PFF2")))
	if !errors.Is(err, EncodingError) {
		t.Errorf("expected EncodingError for non-UTF-8 tag, have %v", err)
	}
	_, _, err = Load(pff2test.Section("FILE", []byte("\xffFF2")))
	if !errors.Is(err, EncodingError) {
		t.Errorf("expected EncodingError for non-UTF-8 magic, have %v", err)
	}
}

func TestUnexpectedSection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	data := pff2test.Concat(
		pff2test.Section("FILE", []byte("PFF2")),
		pff2test.OpenSection("GLYF", nil),
	)
	_, _, err := Load(data)
	var ferr *FormatError
	if !errors.As(err, &ferr) || ferr.Kind != UnexpectedSection {
		t.Fatalf("expected UnexpectedSection, have %v", err)
	}
	if ferr.Found != "GLYF" || ferr.Offset != 12 {
		t.Errorf("expected GLYF at offset 12, have %q at %d", ferr.Found, ferr.Offset)
	}
}

func TestUnknownSectionNotUTF8(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	desc := pff2test.Font{
		PointSize: 8,
		MaxWidth:  8,
		MaxHeight: 8,
		Extra: [][]byte{
			pff2test.Section("\xff\xfe\xfd\xfc", []byte("x")),
		},
		Glyphs: []pff2test.Glyph{
			{CodePoint: 'A', DeviceWidth: 2, Rows: []string{"X"}},
		},
	}
	_, glyphs, err := Load(desc.Bytes())
	if err != nil {
		t.Fatalf("expected unknown section to be skipped, have %v", err)
	}
	if len(glyphs) != 1 {
		t.Errorf("expected 1 glyph, have %d", len(glyphs))
	}
	// a non-UTF-8 tag in place of DATA is still reported
	data := pff2test.Concat(
		pff2test.Section("FILE", []byte("PFF2")),
		pff2test.OpenSection("\xff\xfe\xfd\xfc", nil),
	)
	if _, _, err = Load(data); KindOf(err) != EncodingError {
		t.Errorf("expected EncodingError for non-UTF-8 terminal section, have %v", err)
	}
}

func TestHeaderFields(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	data := pff2test.Concat(
		pff2test.Section("FILE", []byte("PFF2")),
		pff2test.Section("NAME", []byte("Unifont Regular 16\x00")),
		pff2test.Section("FAMI", []byte("Unifont")),
		pff2test.U16Section("PTSZ", 16),
		pff2test.U16Section("ASCE", 14),
		pff2test.U16Section("DESC", 2),
		pff2test.Section("PTSZ", []byte{0}),
	)
	l := &loader{cursor: sectionCursor{data: data}, index: newCharIndex()}
	if err := l.cursor.checkSignature(); err != nil {
		t.Fatal(err)
	}
	var err error
	for i := 0; i < 5; i++ {
		l.cursor.advance()
		if err = l.parseSection(); err != nil {
			t.Fatalf("section %s: %v", l.cursor.tag, err)
		}
	}
	if l.info.Name != "Unifont Regular 16" || l.info.Family != "Unifont" {
		t.Errorf("unexpected font info %+v", l.info)
	}
	if l.metrics.PointSize != 16 || l.metrics.Ascent != 14 || l.metrics.Descent != 2 {
		t.Errorf("unexpected font metrics %+v", l.metrics)
	}
	l.cursor.advance()
	if err = l.parseSection(); !errors.Is(err, TruncatedInput) {
		t.Errorf("expected 1-byte PTSZ section to be truncated, have %v", err)
	}
}
