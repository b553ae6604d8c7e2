package main

import (
	"testing"

	"github.com/npillmayer/glyphatlas/core"
	"github.com/npillmayer/glyphatlas/core/font/pff2"
	"github.com/npillmayer/glyphatlas/core/font/pff2/pff2test"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	assert.Equal(t, Op{code: GLYPH, arg: "A"}, parseCommand("glyph:A"))
	assert.Equal(t, Op{code: GLYPH, arg: "U+0041"}, parseCommand("g U+0041"))
	assert.Equal(t, Op{code: LIST, arg: "5"}, parseCommand("list:5"))
	assert.Equal(t, Op{code: QUIT}, parseCommand("Quit"))
	assert.Equal(t, Op{code: HELP}, parseCommand("what"))
	assert.Equal(t, Op{code: GLYPH, arg: ":"}, parseCommand("glyph::"))
}

func TestParseCodePoint(t *testing.T) {
	for input, r := range map[string]rune{
		"A":      'A',
		"é":      'é',
		"U+00E9": 'é',
		"u+41":   'A',
		"0x20":   ' ',
		"65":     'A',
	} {
		c, err := parseCodePoint(input)
		require.NoError(t, err, input)
		assert.Equal(t, r, c, input)
	}
	_, err := parseCodePoint("U+XYZ")
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = parseCodePoint("")
	assert.Error(t, err)
}

func TestGlyphArt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphatlas.fonts")
	defer teardown()
	//
	desc := pff2test.Font{
		PointSize: 4, MaxWidth: 4, MaxHeight: 4,
		Glyphs: []pff2test.Glyph{
			{CodePoint: 'v', DeviceWidth: 4, Rows: []string{
				"X.X",
				".X.",
			}},
		},
	}
	f, err := pff2.Parse(desc.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "█·█\n·█·\n", glyphArt(f.Atlas, f.Bitmaps['v']))
}
