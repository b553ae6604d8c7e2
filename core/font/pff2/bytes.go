package pff2

// Reading bytes from a font's binary representation

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of a font's byte data. Sections and glyph
// definitions are sub-slices of the complete font buffer; binarySegm never
// copies.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b. If fewer than n bytes are
// available, view returns ok = false.
func (b binarySegm) view(offset, n int) (binarySegm, bool) {
	if offset < 0 || n < 0 || uint64(offset)+uint64(n) > uint64(len(b)) {
		return nil, false
	}
	return b[offset : offset+n], true
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, bool) {
	buf, ok := b.view(i, 2)
	if !ok {
		return 0, false
	}
	return u16(buf), true
}

// i16 returns the int16 in b at the relative offset i.
func (b binarySegm) i16(i int) (int16, bool) {
	n, ok := b.u16(i)
	return int16(n), ok
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, bool) {
	buf, ok := b.view(i, 4)
	if !ok {
		return 0, false
	}
	return u32(buf), true
}

// --- Tag -------------------------------------------------------------------

// Tag is the 4-byte identifier of a section, stored as a big-endian integer.
type Tag uint32

// MakeTag creates a tag from 4 bytes.
func MakeTag(b []byte) Tag {
	if len(b) < 4 {
		return Tag(0)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter than 4 letters, it is padded with spaces.
func T(t string) Tag {
	b := []byte(t + "    ")
	return MakeTag(b[:4])
}

// Bytes returns the 4 bytes of a tag.
func (t Tag) Bytes() []byte {
	return []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
}

func (t Tag) String() string {
	return string(t.Bytes())
}

// Section tags known to the loader.
var (
	tagFILE = T("FILE")
	tagNAME = T("NAME")
	tagFAMI = T("FAMI")
	tagWEIG = T("WEIG")
	tagSLAN = T("SLAN")
	tagPTSZ = T("PTSZ")
	tagMAXW = T("MAXW")
	tagMAXH = T("MAXH")
	tagASCE = T("ASCE")
	tagDESC = T("DESC")
	tagCHIX = T("CHIX")
	tagDATA = T("DATA")
)

// Magic is the required content of the FILE section.
const Magic = "PFF2"
