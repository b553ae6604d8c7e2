/*
Package pff2 loads bitmap fonts in the PFF2 container format, as used by the
GRUB boot loader, and packs all glyphs into a single texture atlas.

A PFF2 file is a sequence of tagged sections, each consisting of a 4-byte
ASCII tag, a 32-bit big-endian length and the section body. The first section
is always

    FILE  4  "PFF2"

followed by metadata sections (NAME, FAMI, WEIG, SLAN, PTSZ, MAXW, MAXH,
ASCE, DESC), the character index CHIX and, finally, a DATA section with
length 0xFFFFFFFF. The DATA section extends to the end of the file and holds
the glyph definitions, which are addressed by absolute file offsets from
the character index. Sections with unknown tags are skipped.

Every glyph definition starts with a 10-byte header

    width  height  x-offset  y-offset  device-width
    u16    u16     i16       i16       i16

followed by ceil(width*height/8) bytes of bitmap, one bit per pixel,
row-major and MSB-first. Bitmap rows are not padded to byte boundaries.

Loading happens in a single pass: the section scan collects metrics and the
character index, then the atlas is sized from glyph count and maximum glyph
dimensions alone, and then every glyph is decoded into its own atlas cell.
Cells are disjoint, which allows decoding in parallel (see Workers).

    atlas, glyphs, err := pff2.Load(data)

Geometry of glyphs is normalized: texture coordinates are relative to the
atlas dimensions, all other measures are in em units, i.e. relative to the
font's point size.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pff2

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphatlas.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphatlas.fonts")
}
